package temporal

import (
	"github.com/huangjunwen/mytemporal/logr"
)

// ConvertFunc converts a value to string. ok is false when the value's shape is not
// supported, in which case the caller should fall back to its default representation.
type ConvertFunc func(v Value) (s string, ok bool)

// Normalizer converts MySQL temporal values into formatted strings.
//
// All state is fixed in New, so a Normalizer is safe to be shared by any number of goroutines.
type Normalizer struct {
	cfg    Config
	logger logr.Logger
}

// Must creates a Normalizer or panic.
func Must(opts ...Option) *Normalizer {
	ret, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return ret
}

// New creates a Normalizer with default configuration then applies opts in order.
// Any error aborts the creation, no Normalizer is returned.
func New(opts ...Option) (*Normalizer, error) {
	n := &Normalizer{
		cfg:    DefaultConfig(),
		logger: DefaultLogger,
	}

	for _, opt := range opts {
		if err := opt(n); err != nil {
			if cerr, ok := err.(*ConfigError); ok {
				n.logger.Error(err, "Temporal setting rejected", "key", cerr.Key, "value", cerr.Value)
			} else {
				n.logger.Error(err, "Temporal option rejected")
			}
			return nil, err
		}
	}

	return n, nil
}

// Configure creates a Normalizer from a flat property set (see Key* constants).
// opts are applied before props.
func Configure(props map[string]string, opts ...Option) (*Normalizer, error) {
	return New(append(opts[:len(opts):len(opts)], WithProperties(props))...)
}

// Config returns the configuration.
func (n *Normalizer) Config() Config {
	return n.cfg
}

// Classify returns the kind of a SQL type name, or false if it's not a temporal type
// handled here.
func (n *Normalizer) Classify(typeName string) (Kind, bool) {
	return ParseKind(typeName)
}

// ConvertFunc returns the conversion function of kind, or nil for invalid kind.
func (n *Normalizer) ConvertFunc(kind Kind) ConvertFunc {
	switch kind {
	case Date:
		return n.ConvertDate
	case Time:
		return n.ConvertTime
	case DateTime:
		return n.ConvertDateTime
	case Timestamp:
		return n.ConvertTimestamp
	}
	return nil
}

// Convert dispatches v to the conversion function of kind.
func (n *Normalizer) Convert(kind Kind, v Value) (string, bool) {
	fn := n.ConvertFunc(kind)
	if fn == nil {
		return "", false
	}
	return fn(v)
}

// ConvertDate accepts LocalDate or EpochDay. Out of range EpochDay is not converted.
func (n *Normalizer) ConvertDate(v Value) (string, bool) {
	var d LocalDate
	switch v := v.(type) {
	case LocalDate:
		d = v
	case EpochDay:
		var ok bool
		if d, ok = v.LocalDate(); !ok {
			return "", false
		}
	default:
		return "", false
	}
	return n.cfg.patterns[Date].Format(d.midnight()), true
}

// ConvertTime accepts Duration. Seconds are reduced modulo one day.
func (n *Normalizer) ConvertTime(v Value) (string, bool) {
	d, ok := v.(Duration)
	if !ok {
		return "", false
	}
	return n.cfg.patterns[Time].Format(d.timeOfDay()), true
}

// ConvertDateTime accepts LocalDateTime. The wall clock is formatted as is, no
// timezone conversion applies to DATETIME.
func (n *Normalizer) ConvertDateTime(v Value) (string, bool) {
	dt, ok := v.(LocalDateTime)
	if !ok {
		return "", false
	}
	return n.cfg.patterns[DateTime].Format(dt.t), true
}

// ConvertTimestamp accepts ZonedDateTime. The instant is re-expressed in the configured
// timestamp zone, then the wall clock in that zone is formatted.
func (n *Normalizer) ConvertTimestamp(v Value) (string, bool) {
	z, ok := v.(ZonedDateTime)
	if !ok {
		return "", false
	}
	return n.cfg.patterns[Timestamp].Format(z.In(n.cfg.zone).t), true
}
