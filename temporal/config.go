package temporal

import (
	"fmt"
	"time"

	perrors "github.com/pkg/errors"

	"github.com/huangjunwen/mytemporal/logr"
	"github.com/huangjunwen/mytemporal/pattern"
)

// Configuration keys.
const (
	KeyDatePattern      = "format.date"
	KeyTimePattern      = "format.time"
	KeyDateTimePattern  = "format.datetime"
	KeyTimestampPattern = "format.timestamp"
	KeyTimestampZone    = "format.timestamp.zone"
)

var (
	// DefaultLogger is the logger used when WithLogger is not given.
	DefaultLogger = logr.Nop

	// settingKeys lists recognized keys in processing order.
	settingKeys = []string{
		KeyDatePattern,
		KeyTimePattern,
		KeyDateTimePattern,
		KeyTimestampPattern,
		KeyTimestampZone,
	}
)

// ConfigError is returned when a setting can not be applied.
type ConfigError struct {
	// Key is the setting key, e.g. "format.timestamp.zone".
	Key string

	// Value is the offending value.
	Value string

	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("temporal: invalid setting %s=%q: %s", e.Key, e.Value, e.Err)
}

// Cause implements github.com/pkg/errors causer.
func (e *ConfigError) Cause() error {
	return e.Err
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config is the immutable configuration of a Normalizer.
type Config struct {
	patterns [numKinds]*pattern.Pattern
	zone     *time.Location
}

// DefaultConfig returns ISO patterns and the process local zone.
func DefaultConfig() Config {
	return Config{
		patterns: [numKinds]*pattern.Pattern{
			Date:      pattern.ISOLocalDate,
			Time:      pattern.ISOLocalTime,
			DateTime:  pattern.ISOLocalDateTime,
			Timestamp: pattern.ISOLocalDateTime,
		},
		zone: time.Local,
	}
}

// Pattern returns the format pattern of kind.
func (cfg Config) Pattern(kind Kind) *pattern.Pattern {
	if !kind.valid() {
		return nil
	}
	return cfg.patterns[kind]
}

// TimestampZone returns the zone TIMESTAMP values are converted to.
func (cfg Config) TimestampZone() *time.Location {
	return cfg.zone
}

// Option is the option in creating Normalizer.
type Option func(*Normalizer) error

// WithLogger sets the logger. It should be given before other options so that
// their errors are logged with it.
func WithLogger(logger logr.Logger) Option {
	return func(n *Normalizer) error {
		if logger == nil {
			return perrors.New("WithLogger(nil)")
		}
		n.logger = logger
		return nil
	}
}

// WithPattern sets the format pattern of kind. A DATE pattern must not use time fields
// and a TIME pattern must not use date fields.
func WithPattern(kind Kind, src string) Option {
	return func(n *Normalizer) error {
		if !kind.valid() {
			return perrors.Errorf("WithPattern: invalid kind %d", int(kind))
		}
		p, err := compilePattern(kind, src)
		if err != nil {
			return &ConfigError{Key: kind.SettingKey(), Value: src, Err: err}
		}
		n.cfg.patterns[kind] = p
		return nil
	}
}

// WithTimestampZone sets the zone TIMESTAMP values are converted to. See ResolveZone
// for accepted forms.
func WithTimestampZone(id string) Option {
	return func(n *Normalizer) error {
		loc, err := ResolveZone(id)
		if err != nil {
			return &ConfigError{Key: KeyTimestampZone, Value: id, Err: err}
		}
		n.cfg.zone = loc
		return nil
	}
}

// WithProperties applies recognized keys of props. Missing or empty values
// are skipped, and unrecognized keys are ignored.
func WithProperties(props map[string]string) Option {
	return func(n *Normalizer) error {
		for _, key := range settingKeys {
			val := props[key]
			if val == "" {
				continue
			}
			if err := settingOption(key, val)(n); err != nil {
				return err
			}
			n.logger.Info("Temporal setting applied", "key", key, "value", val)
		}
		return nil
	}
}

func settingOption(key, val string) Option {
	switch key {
	case KeyDatePattern:
		return WithPattern(Date, val)
	case KeyTimePattern:
		return WithPattern(Time, val)
	case KeyDateTimePattern:
		return WithPattern(DateTime, val)
	case KeyTimestampPattern:
		return WithPattern(Timestamp, val)
	case KeyTimestampZone:
		return WithTimestampZone(val)
	}
	panic(fmt.Errorf("unknown setting key %q", key))
}

func compilePattern(kind Kind, src string) (*pattern.Pattern, error) {
	p, err := pattern.Compile(src)
	if err != nil {
		return nil, err
	}
	switch kind {
	case Date:
		if p.Uses(pattern.TimeFields) {
			return nil, perrors.New("time fields are not allowed in DATE pattern")
		}
	case Time:
		if p.Uses(pattern.DateFields) {
			return nil, perrors.New("date fields are not allowed in TIME pattern")
		}
	}
	return p, nil
}
