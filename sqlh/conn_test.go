package sqlh

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"testing"

	tstmysql "github.com/huangjunwen/tstsvc/mysql"
	"github.com/stretchr/testify/assert"
)

var (
	testFnErr       = errors.New("test fn error")
	testBeforeFnErr = errors.New("test before fn error")
	testAfterFnErr  = errors.New("test after fn error")
)

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func mustGetDBSessionId(ctx context.Context, q queryer) (id int64) {
	if err := q.QueryRowContext(ctx, "SELECT CONNECTION_ID()").Scan(&id); err != nil {
		panic(err)
	}
	return
}

func mustGetTimeZone(ctx context.Context, q queryer) (tz string) {
	if err := q.QueryRowContext(ctx, "SELECT @@SESSION.time_zone").Scan(&tz); err != nil {
		panic(err)
	}
	return
}

func TestWithConn(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	log.Printf("\n")
	log.Printf(">>> TestWithConn.\n")
	var err error
	assert := assert.New(t)

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

	// Connects to test mysql server. A single pooled connection makes session leaks visible.
	var db *sql.DB
	{
		db, err = resMySQL.Client()
		if err != nil {
			log.Panic(err)
		}
		defer db.Close()
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		log.Printf("MySQL client created.\n")
	}

	bgctx := context.Background()
	origTimeZone := mustGetTimeZone(bgctx, db)
	assert.NotEqual("+05:00", origTimeZone)

	setTimeZone := []SessionVar{{Name: "time_zone", Value: "+05:00"}}

	for i, testCase := range []struct {
		Opts          *ConnOptions
		Fn            func(context.Context, *sql.Conn) error
		ExpectErr     error
		ExpectAnyErr  bool
		ExpectDiscard bool
	}{
		// No options.
		{
			Fn: func(ctx context.Context, conn *sql.Conn) error {
				assert.Equal(origTimeZone, mustGetTimeZone(ctx, conn))
				return nil
			},
		},
		// Session variables set in fn and restored afterwards.
		{
			Opts: &ConnOptions{SessionVars: setTimeZone},
			Fn: func(ctx context.Context, conn *sql.Conn) error {
				assert.Equal("+05:00", mustGetTimeZone(ctx, conn))
				return nil
			},
		},
		// Restored when fn fails too.
		{
			Opts: &ConnOptions{SessionVars: setTimeZone},
			Fn: func(ctx context.Context, conn *sql.Conn) error {
				return testFnErr
			},
			ExpectErr: testFnErr,
		},
		// Hooks run on the same connection as fn.
		{
			Opts: &ConnOptions{
				SessionVars: setTimeZone,
				BeforeFn: func(ctx context.Context, conn *sql.Conn) error {
					assert.Equal("+05:00", mustGetTimeZone(ctx, conn))
					_, err := conn.ExecContext(ctx, "SET @x = 1")
					return err
				},
				AfterFn: func(ctx context.Context, conn *sql.Conn, fnErr error) error {
					assert.Equal(testFnErr, fnErr)
					_, err := conn.ExecContext(ctx, "SET @x = NULL")
					return err
				},
			},
			Fn: func(ctx context.Context, conn *sql.Conn) error {
				var x int
				assert.NoError(conn.QueryRowContext(ctx, "SELECT @x").Scan(&x))
				assert.Equal(1, x)
				return testFnErr
			},
			ExpectErr: testFnErr,
		},
		// BeforeFn fails: fn is not called and the connection is not reused.
		{
			Opts: &ConnOptions{
				SessionVars: setTimeZone,
				BeforeFn: func(ctx context.Context, conn *sql.Conn) error {
					return testBeforeFnErr
				},
			},
			Fn: func(ctx context.Context, conn *sql.Conn) error {
				assert.Fail("fn should not be called")
				return nil
			},
			ExpectErr:     testBeforeFnErr,
			ExpectDiscard: true,
		},
		// AfterFn fails: its error is returned and the connection is not reused.
		{
			Opts: &ConnOptions{
				AfterFn: func(ctx context.Context, conn *sql.Conn, fnErr error) error {
					return testAfterFnErr
				},
			},
			Fn: func(ctx context.Context, conn *sql.Conn) error {
				return nil
			},
			ExpectErr:     testAfterFnErr,
			ExpectDiscard: true,
		},
		// Unknown variable.
		{
			Opts: &ConnOptions{SessionVars: []SessionVar{{Name: "no_such_variable", Value: "1"}}},
			Fn: func(ctx context.Context, conn *sql.Conn) error {
				assert.Fail("fn should not be called")
				return nil
			},
			ExpectAnyErr: true,
		},
	} {
		sessionId := mustGetDBSessionId(bgctx, db)

		err := WithConn(bgctx, db, testCase.Opts, testCase.Fn)
		switch {
		case testCase.ExpectErr != nil:
			assert.Equal(testCase.ExpectErr, err, "test case %d", i)
		case testCase.ExpectAnyErr:
			assert.Error(err, "test case %d", i)
		default:
			assert.NoError(err, "test case %d", i)
		}

		// The pooled connection never keeps changed session variables.
		assert.Equal(origTimeZone, mustGetTimeZone(bgctx, db), "test case %d", i)
		if testCase.ExpectDiscard {
			assert.NotEqual(sessionId, mustGetDBSessionId(bgctx, db), "test case %d", i)
		} else {
			assert.Equal(sessionId, mustGetDBSessionId(bgctx, db), "test case %d", i)
		}
	}
}
