package temporal

import (
	"time"
)

const (
	secondsPerDay  = 24 * 60 * 60
	nanosPerSecond = int64(time.Second)

	// Epoch days of -999999999-01-01 and +999999999-12-31.
	minEpochDay = -365243219162
	maxEpochDay = 365241780471
)

// Value is a decoded temporal value. It is implemented only by the types in this package:
// LocalDate, EpochDay, Duration, LocalDateTime and ZonedDateTime.
type Value interface {
	temporalValue()
}

var (
	_ Value = LocalDate{}
	_ Value = EpochDay(0)
	_ Value = Duration{}
	_ Value = LocalDateTime{}
	_ Value = ZonedDateTime{}
)

// LocalDate is a calendar date. Out of range fields are normalized the way time.Date does.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// LocalDateOf returns the calendar date of t in t's location.
func LocalDateOf(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{Year: y, Month: m, Day: d}
}

func (LocalDate) temporalValue() {}

func (d LocalDate) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// EpochDay is the number of days since 1970-01-01.
type EpochDay int64

func (EpochDay) temporalValue() {}

// LocalDate returns the calendar date of the day offset. It returns false if the date is
// outside years [-999999999, 999999999].
func (d EpochDay) LocalDate() (LocalDate, bool) {
	if d < minEpochDay || d > maxEpochDay {
		return LocalDate{}, false
	}
	return LocalDateOf(time.Unix(int64(d)*secondsPerDay, 0).UTC()), true
}

// Duration is a duration since midnight, as (seconds, nanosecond remainder).
type Duration struct {
	Seconds int64
	Nanos   int32
}

// DurationOf converts a time.Duration.
func DurationOf(d time.Duration) Duration {
	return Duration{
		Seconds: int64(d / time.Second),
		Nanos:   int32(d % time.Second),
	}
}

func (Duration) temporalValue() {}

// timeOfDay reduces d modulo one day. Nanos outside [0, 1e9) are carried into seconds
// first, and negative durations wrap to the previous day's clock.
func (d Duration) timeOfDay() time.Time {
	nanos := int64(d.Nanos)
	secs := d.Seconds + floorDiv(nanos, nanosPerSecond)
	nanos = floorMod(nanos, nanosPerSecond)
	secs = floorMod(secs, secondsPerDay)
	return time.Date(1970, time.January, 1, 0, 0, int(secs), int(nanos), time.UTC)
}

// LocalDateTime is a date-time without timezone. Only the wall clock fields are meaningful.
type LocalDateTime struct {
	t time.Time
}

// LocalDateTimeOf returns the wall clock fields of t (in t's location), dropping the location.
func LocalDateTimeOf(t time.Time) LocalDateTime {
	y, mon, d := t.Date()
	h, m, s := t.Clock()
	return LocalDateTime{t: time.Date(y, mon, d, h, m, s, t.Nanosecond(), time.UTC)}
}

// NewLocalDateTime creates a LocalDateTime from fields.
func NewLocalDateTime(year int, month time.Month, day, hour, min, sec, nsec int) LocalDateTime {
	return LocalDateTime{t: time.Date(year, month, day, hour, min, sec, nsec, time.UTC)}
}

func (LocalDateTime) temporalValue() {}

// Time returns the wall clock fields as a time.Time located in UTC.
func (dt LocalDateTime) Time() time.Time {
	return dt.t
}

// ZonedDateTime is a date-time with an attached zone, i.e. an instant.
type ZonedDateTime struct {
	t time.Time
}

// ZonedDateTimeOf wraps t.
func ZonedDateTimeOf(t time.Time) ZonedDateTime {
	return ZonedDateTime{t: t}
}

func (ZonedDateTime) temporalValue() {}

// Time returns the wrapped time.
func (z ZonedDateTime) Time() time.Time {
	return z.t
}

// In returns the wall clock fields of the same instant in loc.
func (z ZonedDateTime) In(loc *time.Location) LocalDateTime {
	return LocalDateTimeOf(z.t.In(loc))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
