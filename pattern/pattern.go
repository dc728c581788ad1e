// Package pattern compiles java.time style date-time patterns (e.g. "yyyy-MM-dd HH:mm:ss")
// into immutable formatters.
//
// Supported letters:
//   - date: G (era), u (year), y (year-of-era), Q/q (quarter), M/L (month), d (day-of-month),
//     D (day-of-year), E (day-of-week)
//   - time: a (AM/PM), H (0-23), k (1-24), K (0-11), h (1-12), m, s, S (fraction),
//     n (nano-of-second), N (nano-of-day), A (milli-of-day)
//
// Text in single quotes is literal, '' is a single quote, and any other non-letter
// character is literal. Zone/offset letters are rejected: formatted values never carry a zone.
package pattern

import (
	"fmt"
	"strings"
	"time"
)

// Fields is a set of field groups used by a pattern.
type Fields uint8

const (
	// DateFields are calendar fields (era, year, quarter, month, day ...).
	DateFields Fields = 1 << iota

	// TimeFields are time-of-day fields (hour, minute, second, fraction ...).
	TimeFields
)

// Error is returned by Compile on malformed pattern.
type Error struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("pattern %q: %s at position %d", e.Pattern, e.Msg, e.Pos)
}

type element func(b []byte, t time.Time) []byte

// Pattern is a compiled pattern. It is safe for concurrent use.
type Pattern struct {
	src    string
	elems  []element
	fields Fields
}

var (
	// ISOLocalDate formats like "2021-01-28".
	ISOLocalDate = isoPattern("ISO_LOCAL_DATE", "uuuu-MM-dd", false)

	// ISOLocalTime formats like "17:29:04" or "17:29:04.5". The fraction uses as few digits
	// as possible and is omitted when zero.
	ISOLocalTime = isoPattern("ISO_LOCAL_TIME", "HH:mm:ss", true)

	// ISOLocalDateTime formats like "2021-01-28T17:29:04", fraction as in ISOLocalTime.
	ISOLocalDateTime = isoPattern("ISO_LOCAL_DATE_TIME", "uuuu-MM-dd'T'HH:mm:ss", true)
)

func isoPattern(name, src string, fraction bool) *Pattern {
	p := MustCompile(src)
	p.src = name
	if fraction {
		p.elems = append(p.elems, appendISOFraction)
	}
	return p
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Pattern {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// Compile parses src into a Pattern.
func Compile(src string) (*Pattern, error) {
	p := &Pattern{src: src}
	lit := []byte{}

	flush := func() {
		if len(lit) == 0 {
			return
		}
		s := string(lit)
		p.elems = append(p.elems, func(b []byte, _ time.Time) []byte {
			return append(b, s...)
		})
		lit = lit[:0]
	}

	fail := func(pos int, format string, args ...interface{}) (*Pattern, error) {
		return nil, &Error{Pattern: src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
	}

	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case isLetter(c):
			j := i + 1
			for j < len(src) && src[j] == c {
				j++
			}
			count := j - i

			l, ok := letters[c]
			if !ok {
				return fail(i, "%s %q", unsupportedReason(c), c)
			}
			if count > l.max {
				return fail(i, "too many pattern letters %q (%d > %d)", c, count, l.max)
			}
			flush()
			p.elems = append(p.elems, l.build(count))
			p.fields |= l.fields
			i = j

		case c == '\'':
			// '' is an escaped quote.
			if i+1 < len(src) && src[i+1] == '\'' {
				lit = append(lit, '\'')
				i += 2
				continue
			}
			j := i + 1
			for {
				if j >= len(src) {
					return fail(i, "unterminated quote")
				}
				if src[j] == '\'' {
					if j+1 < len(src) && src[j+1] == '\'' {
						lit = append(lit, '\'')
						j += 2
						continue
					}
					break
				}
				lit = append(lit, src[j])
				j++
			}
			i = j + 1

		case strings.IndexByte("#{}[]", c) >= 0:
			return fail(i, "reserved character %q", c)

		default:
			lit = append(lit, c)
			i++
		}
	}
	flush()

	return p, nil
}

// String returns the source of the pattern.
func (p *Pattern) String() string {
	return p.src
}

// Fields returns field groups used by the pattern.
func (p *Pattern) Fields() Fields {
	return p.fields
}

// Uses reports whether the pattern uses any field in f.
func (p *Pattern) Uses(f Fields) bool {
	return p.fields&f != 0
}

// Format formats the wall clock fields of t (in t's own location).
func (p *Pattern) Format(t time.Time) string {
	return string(p.AppendFormat(make([]byte, 0, len(p.src)+16), t))
}

// AppendFormat is like Format but appends to b.
func (p *Pattern) AppendFormat(b []byte, t time.Time) []byte {
	for _, elem := range p.elems {
		b = elem(b, t)
	}
	return b
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func unsupportedReason(c byte) string {
	switch {
	case strings.IndexByte("VzOXxZ", c) >= 0:
		return "zone/offset letter not supported"
	case c == 'p':
		return "pad modifier not supported"
	case strings.IndexByte("YwWecFg", c) >= 0:
		return "localized/week-based letter not supported"
	}
	return "unknown pattern letter"
}
