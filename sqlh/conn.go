package sqlh

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	perrors "github.com/pkg/errors"
)

var (
	emptyConnOptions = &ConnOptions{}
)

// SessionVar is a session system variable, e.g. {"time_zone", "+00:00"}.
type SessionVar struct {
	Name  string
	Value string
}

// ConnOptions contains options for WithConn.
type ConnOptions struct {
	// SessionVars are set before fn and restored to their previous values after fn.
	SessionVars []SessionVar

	// BeforeFn will be called (if not nil) after session variables are set.
	// If it returns an error, WithConn returns that error, fn is not called and the
	// connection is discarded.
	BeforeFn func(ctx context.Context, conn *sql.Conn) error

	// AfterFn will be called (if not nil) after fn, with fn's result, if BeforeFn succeeded.
	// If it returns an error the connection is discarded, and the error is returned when fn
	// succeeded.
	AfterFn func(ctx context.Context, conn *sql.Conn, fnErr error) error
}

// WithConn runs fn on a single connection of db.
//
// Session variables changed by opts are restored before the connection goes back to the
// pool. If that's not possible, or a hook fails, the connection is discarded.
func WithConn(ctx context.Context, db *sql.DB, opts *ConnOptions, fn func(context.Context, *sql.Conn) error) (err error) {

	if opts == nil {
		opts = emptyConnOptions
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return perrors.Wrap(err, "Get connection error")
	}
	defer conn.Close()

	// bad is set when the session of conn can't be trusted any more.
	bad := false
	saved := make([]SessionVar, 0, len(opts.SessionVars))
	defer func() {
		if !bad && len(saved) != 0 {
			if restoreErr := setSessionVars(ctx, conn, saved); restoreErr != nil {
				bad = true
				if err == nil {
					err = restoreErr
				}
			}
		}
		if bad {
			discard(conn)
		}
	}()

	for _, v := range opts.SessionVars {
		prev, err := getSessionVar(ctx, conn, v.Name)
		if err != nil {
			return err
		}
		saved = append(saved, SessionVar{Name: v.Name, Value: prev})
	}
	if err := setSessionVars(ctx, conn, opts.SessionVars); err != nil {
		return err
	}

	if opts.BeforeFn != nil {
		if err := opts.BeforeFn(ctx, conn); err != nil {
			bad = true
			return err
		}
	}

	err = fn(ctx, conn)

	if opts.AfterFn != nil {
		if afterErr := opts.AfterFn(ctx, conn, err); afterErr != nil {
			bad = true
			if err == nil {
				err = afterErr
			}
		}
	}
	return
}

func getSessionVar(ctx context.Context, conn *sql.Conn, name string) (string, error) {
	var val sql.NullString
	if err := conn.QueryRowContext(ctx, fmt.Sprintf("SELECT @@SESSION.%s", name)).Scan(&val); err != nil {
		return "", perrors.Wrapf(err, "Get session variable %s error", name)
	}
	if !val.Valid {
		return "", perrors.Errorf("Session variable %s is NULL", name)
	}
	return val.String, nil
}

func setSessionVars(ctx context.Context, conn *sql.Conn, vars []SessionVar) error {
	for _, v := range vars {
		if _, err := conn.ExecContext(ctx, fmt.Sprintf("SET SESSION %s = ?", v.Name), v.Value); err != nil {
			return perrors.Wrapf(err, "Set session variable %s error", v.Name)
		}
	}
	return nil
}

// discard makes the pool close conn instead of reusing it.
func discard(conn *sql.Conn) {
	conn.Raw(func(interface{}) error {
		return driver.ErrBadConn
	})
}
