package fulldump

import (
	"context"
	"database/sql"
	"log"
	"testing"

	tstmysql "github.com/huangjunwen/tstsvc/mysql"
	"github.com/stretchr/testify/assert"

	"github.com/huangjunwen/mytemporal/temporal"
)

func TestDump(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	log.Printf("\n")
	log.Printf(">>> TestDump.\n")
	var err error
	assert := assert.New(t)
	ctx := context.Background()

	// Starts test mysql server.
	var resMySQL *tstmysql.Resource
	{
		resMySQL, err = tstmysql.Run(nil)
		if err != nil {
			t.Skipf("Can't start MySQL server: %s", err)
		}
		defer resMySQL.Close()
		log.Printf("MySQL server started.\n")
	}

	// Connects to test mysql server.
	var db *sql.DB
	{
		db, err = resMySQL.Client()
		if err != nil {
			log.Panic(err)
		}
		defer db.Close()
		// Dump reuses the connection of later checks.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		log.Printf("MySQL client created.\n")
	}

	var origTimeZone string
	if err := db.QueryRowContext(ctx, "SELECT @@SESSION.time_zone").Scan(&origTimeZone); err != nil {
		log.Panic(err)
	}

	// Prepares data in UTC+8 session, so TIMESTAMP is stored as 09:29:04 UTC.
	{
		conn, err := db.Conn(ctx)
		if err != nil {
			log.Panic(err)
		}
		for _, stmt := range []string{
			"CREATE DATABASE IF NOT EXISTS xxxx",
			"CREATE TABLE xxxx.tt (id INT PRIMARY KEY, d DATE, t TIME, dt DATETIME, ts TIMESTAMP NULL, b BLOB)",
			"SET SESSION time_zone = '+08:00'",
			"INSERT INTO xxxx.tt VALUES (1, '2021-01-28', '17:29:04', '2021-01-28 17:29:04', '2021-01-28 17:29:04', 'x')",
			"INSERT INTO xxxx.tt VALUES (2, NULL, '-01:00:00', NULL, NULL, NULL)",
		} {
			if _, err := conn.ExecContext(ctx, stmt); err != nil {
				log.Panic(err)
			}
		}
		if _, err := conn.ExecContext(ctx, "SET SESSION time_zone = ?", origTimeZone); err != nil {
			log.Panic(err)
		}
		conn.Close()
	}

	n := temporal.Must(
		temporal.WithTimestampZone("UTC+8"),
		temporal.WithPattern(temporal.DateTime, "yyyy-MM-dd HH:mm:ss"),
		temporal.WithPattern(temporal.Timestamp, "yyyy-MM-dd HH:mm:ss"),
	)

	rows := [][]interface{}{}
	err = Dump(ctx, db, func(ctx context.Context, q Queryer) error {
		var tz string
		assert.NoError(q.QueryRowContext(ctx, "SELECT @@SESSION.time_zone").Scan(&tz))
		assert.Equal("+00:00", tz)
		return ConvertRows(ctx, q, n, "SELECT d, t, dt, ts, b FROM xxxx.tt ORDER BY id", nil, func(names []string, row []interface{}) error {
			assert.Equal([]string{"d", "t", "dt", "ts", "b"}, names)
			rows = append(rows, row)
			return nil
		})
	})
	assert.NoError(err)

	if assert.Len(rows, 2) {
		assert.Equal([]interface{}{"2021-01-28", "17:29:04", "2021-01-28 17:29:04", "2021-01-28 17:29:04", []byte("x")}, rows[0])
		assert.Equal([]interface{}{nil, "23:00:00", nil, nil, nil}, rows[1])
	}

	// The pooled connection gets its session time_zone back.
	{
		var tz string
		assert.NoError(db.QueryRowContext(ctx, "SELECT @@SESSION.time_zone").Scan(&tz))
		assert.Equal(origTimeZone, tz)
	}

	// Query errors are returned, and the session is restored as well.
	{
		err := Dump(ctx, db, func(ctx context.Context, q Queryer) error {
			return ConvertRows(ctx, q, n, "SELECT * FROM xxxx.not_exists", nil, nil)
		})
		assert.Error(err)

		var tz string
		assert.NoError(db.QueryRowContext(ctx, "SELECT @@SESSION.time_zone").Scan(&tz))
		assert.Equal(origTimeZone, tz)
	}

	// The dump transaction is finished when Dump returns.
	{
		var inTx int
		assert.NoError(db.QueryRowContext(ctx, "SELECT COUNT(*) FROM information_schema.innodb_trx WHERE trx_mysql_thread_id = CONNECTION_ID()").Scan(&inTx))
		assert.Equal(0, inTx)
	}
}
