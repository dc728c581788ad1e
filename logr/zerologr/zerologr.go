package zerologr

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/huangjunwen/mytemporal/logr"
)

// Logger is implements github.com/huangjunwen/mytemporal/logr::Logger interface using
// github.com/rs/zerolog::Logger.
type Logger zerolog.Logger

var (
	_ logr.Logger = (*Logger)(nil)
)

// New creates a Logger writing json lines with timestamp to w.
func New(w io.Writer) *Logger {
	l := zerolog.New(w).With().Timestamp().Logger()
	return (*Logger)(&l)
}

func (logger *Logger) Info(msg string, keysAndValues ...interface{}) {
	l := (*zerolog.Logger)(logger)
	ev := l.Info()
	logr.KeyValues(keysAndValues, func(key string, val interface{}) {
		ev = ev.Interface(key, val)
	})
	ev.Msg(msg)
}

func (logger *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l := (*zerolog.Logger)(logger)
	ev := l.Error().Err(err)
	logr.KeyValues(keysAndValues, func(key string, val interface{}) {
		ev = ev.Interface(key, val)
	})
	ev.Msg(msg)
}

func (logger *Logger) WithValues(keysAndValues ...interface{}) logr.Logger {
	ctx := (*zerolog.Logger)(logger).With()
	logr.KeyValues(keysAndValues, func(key string, val interface{}) {
		ctx = ctx.Interface(key, val)
	})
	l := ctx.Logger()
	return (*Logger)(&l)
}
