package fulldump

import (
	"context"
	"database/sql"

	perrors "github.com/pkg/errors"

	"github.com/huangjunwen/mytemporal/sqlh"
)

var (
	dumpConnOptions = &sqlh.ConnOptions{
		SessionVars: []sqlh.SessionVar{
			{Name: "time_zone", Value: "+00:00"},
		},
		BeforeFn: startSnapshot,
		AfterFn:  endSnapshot,
	}
)

// Dump runs handler inside a read only transaction started with a consistent snapshot,
// so that all queries of handler see the same data.
//
// The session time_zone is UTC during the dump, so TIMESTAMP values are read as UTC. It is
// restored before the connection is returned to db's pool.
func Dump(ctx context.Context, db *sql.DB, handler Handler) error {
	return sqlh.WithConn(ctx, db, dumpConnOptions, func(ctx context.Context, conn *sql.Conn) error {
		return handler(ctx, conn)
	})
}

func startSnapshot(ctx context.Context, conn *sql.Conn) error {
	// Without SESSION the isolation level applies to the next transaction only.
	for _, stmt := range []string{
		"SET TRANSACTION ISOLATION LEVEL REPEATABLE READ",
		"START TRANSACTION WITH CONSISTENT SNAPSHOT, READ ONLY",
	} {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return perrors.Wrapf(err, "%s error", stmt)
		}
	}
	return nil
}

func endSnapshot(ctx context.Context, conn *sql.Conn, _ error) error {
	// Nothing to commit.
	_, err := conn.ExecContext(ctx, "ROLLBACK")
	return perrors.Wrap(err, "ROLLBACK error")
}
