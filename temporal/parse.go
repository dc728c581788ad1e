package temporal

import (
	"strings"
	"time"

	perrors "github.com/pkg/errors"
)

var (
	// ErrZeroDate is returned when parsing MySQL's zero dates such as "0000-00-00".
	ErrZeroDate = perrors.New("zero date")
)

// ParseLocalDate parses MySQL date text "YYYY-MM-DD".
func ParseLocalDate(s string) (LocalDate, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return LocalDate{}, perrors.Errorf("invalid date %q", s)
	}
	y, ok1 := atoiDigits(s[:4])
	m, ok2 := atoiDigits(s[5:7])
	d, ok3 := atoiDigits(s[8:])
	if !ok1 || !ok2 || !ok3 || m > 12 || d > 31 {
		return LocalDate{}, perrors.Errorf("invalid date %q", s)
	}
	if m == 0 || d == 0 {
		return LocalDate{}, ErrZeroDate
	}
	return LocalDate{Year: y, Month: time.Month(m), Day: d}, nil
}

// ParseLocalDateTime parses MySQL datetime text "YYYY-MM-DD hh:mm:ss[.ffffff]".
// 'T' is accepted as the separator too.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	if len(s) < 19 || (s[10] != ' ' && s[10] != 'T') {
		return LocalDateTime{}, perrors.Errorf("invalid datetime %q", s)
	}
	date, err := ParseLocalDate(s[:10])
	if err != nil {
		return LocalDateTime{}, err
	}
	clock := s[11:]
	if clock[2] != ':' || clock[5] != ':' {
		return LocalDateTime{}, perrors.Errorf("invalid datetime %q", s)
	}
	h, ok1 := atoiDigits(clock[:2])
	m, ok2 := atoiDigits(clock[3:5])
	sec, nsec, ok3 := parseSeconds(clock[6:])
	if !ok1 || !ok2 || !ok3 || h > 23 || m > 59 || sec > 59 {
		return LocalDateTime{}, perrors.Errorf("invalid datetime %q", s)
	}
	return NewLocalDateTime(date.Year, date.Month, date.Day, h, m, sec, nsec), nil
}

// maxTimeHours is the hour part of MySQL's TIME upper bound 838:59:59.
const maxTimeHours = 838

// ParseDuration parses MySQL time text "[-]hhh:mm:ss[.ffffff]" as a duration since midnight.
func ParseDuration(s string) (Duration, error) {
	neg := strings.HasPrefix(s, "-")
	parts := strings.Split(strings.TrimPrefix(s, "-"), ":")
	if len(parts) != 3 || parts[0] == "" || len(parts[1]) != 2 {
		return Duration{}, perrors.Errorf("invalid time %q", s)
	}
	h, ok1 := atoiDigits(parts[0])
	m, ok2 := atoiDigits(parts[1])
	sec, nsec, ok3 := parseSeconds(parts[2])
	if !ok1 || !ok2 || !ok3 || m > 59 || sec > 59 {
		return Duration{}, perrors.Errorf("invalid time %q", s)
	}
	if h > maxTimeHours {
		return Duration{}, perrors.Errorf("time %q out of range [-838:59:59, 838:59:59]", s)
	}

	ret := Duration{
		Seconds: int64(h)*3600 + int64(m)*60 + int64(sec),
		Nanos:   int32(nsec),
	}
	if neg {
		ret.Seconds, ret.Nanos = -ret.Seconds, -ret.Nanos
	}
	return ret, nil
}

// parseSeconds parses "ss[.fffffffff]".
func parseSeconds(s string) (sec, nsec int, ok bool) {
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s, frac = s[:i], s[i+1:]
		if frac == "" || len(frac) > 9 {
			return 0, 0, false
		}
	}
	if len(s) != 2 {
		return 0, 0, false
	}
	if sec, ok = atoiDigits(s); !ok {
		return 0, 0, false
	}
	if nsec, ok = atoiDigits(frac); !ok {
		return 0, 0, false
	}
	for i := len(frac); i < 9; i++ {
		nsec *= 10
	}
	return sec, nsec, true
}
