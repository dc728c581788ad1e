// Package logr defines Logger interface.
package logr

// Logger is a sub-interface of github.com/go-logr/logr::Logger,
// which i think it's enough in most cases.
type Logger interface {
	// Info logs a non-error message with the given key/value pairs as context.
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error, with the given message and key/value pairs as context.
	Error(err error, msg string, keysAndValues ...interface{})

	// WithValues adds some key-value pairs of context to a logger.
	WithValues(keysAndValues ...interface{}) Logger
}

type nopLogger struct{}

func (l nopLogger) Info(msg string, keysAndValues ...interface{}) {}

func (l nopLogger) Error(err error, msg string, keysAndValues ...interface{}) {}

func (l nopLogger) WithValues(keysAndValues ...interface{}) Logger { return nopLogger{} }

var (
	// Nop does nothing.
	Nop Logger = nopLogger{}
)

// KeyValues calls fn for each key/value pair. A key that is not a string is
// formatted as "!BADKEY", and a missing trailing value is nil.
func KeyValues(keysAndValues []interface{}, fn func(key string, val interface{})) {
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = "!BADKEY"
		}
		var val interface{}
		if i+1 < len(keysAndValues) {
			val = keysAndValues[i+1]
		}
		fn(key, val)
	}
}
