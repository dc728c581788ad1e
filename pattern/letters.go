package pattern

import (
	"time"
)

type letter struct {
	fields Fields
	max    int
	build  func(count int) element
}

var letters = map[byte]letter{
	'G': {DateFields, 5, buildEra},
	'u': {DateFields, 19, buildYear(func(t time.Time) int { return t.Year() })},
	'y': {DateFields, 19, buildYear(yearOfEra)},
	'Q': {DateFields, 5, buildQuarter},
	'q': {DateFields, 5, buildQuarter},
	'M': {DateFields, 5, buildMonth},
	'L': {DateFields, 5, buildMonth},
	'd': {DateFields, 2, buildNumber(func(t time.Time) int64 { return int64(t.Day()) })},
	'D': {DateFields, 3, buildNumber(func(t time.Time) int64 { return int64(t.YearDay()) })},
	'E': {DateFields, 5, buildWeekday},

	'a': {TimeFields, 1, buildAmPm},
	'H': {TimeFields, 2, buildNumber(func(t time.Time) int64 { return int64(t.Hour()) })},
	'k': {TimeFields, 2, buildNumber(clockHourOfDay)},
	'K': {TimeFields, 2, buildNumber(func(t time.Time) int64 { return int64(t.Hour() % 12) })},
	'h': {TimeFields, 2, buildNumber(clockHourOfAmPm)},
	'm': {TimeFields, 2, buildNumber(func(t time.Time) int64 { return int64(t.Minute()) })},
	's': {TimeFields, 2, buildNumber(func(t time.Time) int64 { return int64(t.Second()) })},
	'S': {TimeFields, 9, buildFraction},
	'n': {TimeFields, 19, buildNumber(func(t time.Time) int64 { return int64(t.Nanosecond()) })},
	'N': {TimeFields, 19, buildNumber(nanoOfDay)},
	'A': {TimeFields, 19, buildNumber(func(t time.Time) int64 { return nanoOfDay(t) / int64(time.Millisecond) })},
}

var ordinalQuarters = [4]string{"1st quarter", "2nd quarter", "3rd quarter", "4th quarter"}

func buildNumber(get func(time.Time) int64) func(int) element {
	return func(count int) element {
		return func(b []byte, t time.Time) []byte {
			return appendInt(b, get(t), count)
		}
	}
}

func buildYear(get func(time.Time) int) func(int) element {
	return func(count int) element {
		if count == 2 {
			// Two digit reduced year.
			return func(b []byte, t time.Time) []byte {
				y := get(t) % 100
				if y < 0 {
					y += 100
				}
				return appendInt(b, int64(y), 2)
			}
		}
		if count < 4 {
			return func(b []byte, t time.Time) []byte {
				return appendInt(b, int64(get(t)), count)
			}
		}
		// Years wider than count carry a '+' sign.
		limit := int64(-1)
		if count < 19 {
			limit = 1
			for i := 0; i < count; i++ {
				limit *= 10
			}
		}
		return func(b []byte, t time.Time) []byte {
			y := int64(get(t))
			if limit > 0 && y >= limit {
				b = append(b, '+')
			}
			return appendInt(b, y, count)
		}
	}
}

func buildEra(count int) element {
	return func(b []byte, t time.Time) []byte {
		ad := t.Year() > 0
		switch {
		case count == 4 && ad:
			return append(b, "Anno Domini"...)
		case count == 4:
			return append(b, "Before Christ"...)
		case count == 5 && ad:
			return append(b, 'A')
		case count == 5:
			return append(b, 'B')
		case ad:
			return append(b, "AD"...)
		default:
			return append(b, "BC"...)
		}
	}
}

func buildQuarter(count int) element {
	return func(b []byte, t time.Time) []byte {
		q := (int(t.Month())-1)/3 + 1
		switch count {
		case 2:
			return appendInt(b, int64(q), 2)
		case 3:
			return appendInt(append(b, 'Q'), int64(q), 1)
		case 4:
			return append(b, ordinalQuarters[q-1]...)
		default:
			return appendInt(b, int64(q), 1)
		}
	}
}

func buildMonth(count int) element {
	return func(b []byte, t time.Time) []byte {
		m := t.Month()
		switch count {
		case 1, 2:
			return appendInt(b, int64(m), count)
		case 3:
			return append(b, m.String()[:3]...)
		case 4:
			return append(b, m.String()...)
		default:
			return append(b, m.String()[0])
		}
	}
}

func buildWeekday(count int) element {
	return func(b []byte, t time.Time) []byte {
		wd := t.Weekday().String()
		switch count {
		case 4:
			return append(b, wd...)
		case 5:
			return append(b, wd[0])
		default:
			return append(b, wd[:3]...)
		}
	}
}

func buildAmPm(int) element {
	return func(b []byte, t time.Time) []byte {
		if t.Hour() < 12 {
			return append(b, "AM"...)
		}
		return append(b, "PM"...)
	}
}

// buildFraction truncates nano-of-second to count digits.
func buildFraction(count int) element {
	div := int64(1)
	for i := count; i < 9; i++ {
		div *= 10
	}
	return func(b []byte, t time.Time) []byte {
		return appendInt(b, int64(t.Nanosecond())/div, count)
	}
}

func appendISOFraction(b []byte, t time.Time) []byte {
	ns := t.Nanosecond()
	if ns == 0 {
		return b
	}
	digits := 9
	for ns%10 == 0 {
		ns /= 10
		digits--
	}
	return appendInt(append(b, '.'), int64(ns), digits)
}

func yearOfEra(t time.Time) int {
	y := t.Year()
	if y > 0 {
		return y
	}
	return 1 - y
}

func clockHourOfDay(t time.Time) int64 {
	if h := t.Hour(); h != 0 {
		return int64(h)
	}
	return 24
}

func clockHourOfAmPm(t time.Time) int64 {
	if h := t.Hour() % 12; h != 0 {
		return int64(h)
	}
	return 12
}

func nanoOfDay(t time.Time) int64 {
	h, m, s := t.Clock()
	return (int64(h)*3600+int64(m)*60+int64(s))*int64(time.Second) + int64(t.Nanosecond())
}

// appendInt appends v in decimal, zero padded to at least width digits.
func appendInt(b []byte, v int64, width int) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	for n := len(buf) - i; n < width; n++ {
		b = append(b, '0')
	}
	return append(b, buf[i:]...)
}
