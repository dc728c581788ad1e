package incrdump

import (
	"time"

	"github.com/huangjunwen/mytemporal/temporal"
)

// FromBinlogValue maps a temporal column value decoded by go-mysql into temporal.Value.
// It returns false for zero dates and unexpected shapes.
//
// With BinlogSyncerConfig.ParseTime, DATETIME and TIMESTAMP values are time.Time: the
// former carries wall clock only, the latter is an instant. Otherwise they are strings,
// in which case TIMESTAMP strings are read as UTC: the syncer must be configured with
// TimestampStringLocation set to time.UTC (see mycanal.Config.ToBinlogSyncerCfg), since
// go-mysql formats them in the local zone by default.
func FromBinlogValue(kind temporal.Kind, val interface{}) (temporal.Value, bool) {
	switch kind {
	case temporal.Date:
		switch v := val.(type) {
		case string:
			d, err := temporal.ParseLocalDate(v)
			return d, err == nil
		case time.Time:
			if v.IsZero() {
				return nil, false
			}
			return temporal.LocalDateOf(v), true
		}

	case temporal.Time:
		switch v := val.(type) {
		case string:
			d, err := temporal.ParseDuration(v)
			return d, err == nil
		case []byte:
			d, err := temporal.ParseDuration(string(v))
			return d, err == nil
		case time.Duration:
			return temporal.DurationOf(v), true
		}

	case temporal.DateTime:
		switch v := val.(type) {
		case string:
			dt, err := temporal.ParseLocalDateTime(v)
			return dt, err == nil
		case time.Time:
			if v.IsZero() {
				return nil, false
			}
			return temporal.LocalDateTimeOf(v), true
		}

	case temporal.Timestamp:
		switch v := val.(type) {
		case string:
			dt, err := temporal.ParseLocalDateTime(v)
			if err != nil {
				return nil, false
			}
			return temporal.ZonedDateTimeOf(dt.Time()), true
		case time.Time:
			if v.IsZero() {
				return nil, false
			}
			return temporal.ZonedDateTimeOf(v.UTC()), true
		}
	}

	return nil, false
}
