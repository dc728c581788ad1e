package temporal

import (
	"strings"
	"time"

	perrors "github.com/pkg/errors"
)

const maxOffsetSeconds = 18 * 3600

var offsetPrefixes = []string{"UTC", "GMT", "UT"}

// ResolveZone resolves a zone identifier. Accepted forms:
//   - "Z", "UTC", "GMT", "UT" and "Local"
//   - offsets with mandatory sign: "+8", "+08", "+08:00", "+0800", "+08:00:00", "+080000"
//   - offsets prefixed with "UTC", "GMT" or "UT", e.g. "UTC+8", "GMT-05:30"
//   - IANA region names, e.g. "Asia/Shanghai"
func ResolveZone(id string) (*time.Location, error) {
	id = strings.TrimSpace(id)

	switch id {
	case "":
		return nil, perrors.New("empty zone id")
	case "Z", "UTC", "GMT", "UT":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}

	if id[0] == '+' || id[0] == '-' {
		offset, err := parseOffset(id)
		if err != nil {
			return nil, err
		}
		return time.FixedZone(id, offset), nil
	}

	for _, prefix := range offsetPrefixes {
		if len(id) > len(prefix) && strings.HasPrefix(id, prefix) {
			if c := id[len(prefix)]; c == '+' || c == '-' {
				offset, err := parseOffset(id[len(prefix):])
				if err != nil {
					return nil, err
				}
				return time.FixedZone(id, offset), nil
			}
		}
	}

	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, perrors.Wrapf(err, "unknown zone %q", id)
	}
	return loc, nil
}

// parseOffset parses a signed offset into seconds east of UTC.
func parseOffset(s string) (int, error) {
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	body := s[1:]

	var h, m, sec string
	switch {
	case len(body) == 1 || len(body) == 2:
		h = body
	case len(body) == 4:
		h, m = body[:2], body[2:]
	case len(body) == 5 && body[2] == ':':
		h, m = body[:2], body[3:]
	case len(body) == 6:
		h, m, sec = body[:2], body[2:4], body[4:]
	case len(body) == 8 && body[2] == ':' && body[5] == ':':
		h, m, sec = body[:2], body[3:5], body[6:]
	default:
		return 0, perrors.Errorf("invalid offset %q", s)
	}

	hv, ok1 := atoiDigits(h)
	mv, ok2 := atoiDigits(m)
	sv, ok3 := atoiDigits(sec)
	if !ok1 || !ok2 || !ok3 || mv > 59 || sv > 59 {
		return 0, perrors.Errorf("invalid offset %q", s)
	}

	total := hv*3600 + mv*60 + sv
	if total > maxOffsetSeconds {
		return 0, perrors.Errorf("offset %q out of range [-18:00, +18:00]", s)
	}
	return sign * total, nil
}

// atoiDigits parses an unsigned decimal of at most 9 digits. Empty string is 0.
func atoiDigits(s string) (int, bool) {
	if len(s) > 9 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
