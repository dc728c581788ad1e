package temporal

import (
	"fmt"
	"strings"
)

// Kind is one of the MySQL temporal column types handled by Normalizer.
type Kind int

const (
	// Date is MySQL DATE.
	Date Kind = iota

	// Time is MySQL TIME.
	Time

	// DateTime is MySQL DATETIME, which carries no timezone.
	DateTime

	// Timestamp is MySQL TIMESTAMP, which is stored as UTC.
	Timestamp

	numKinds
)

var (
	kindNames = [numKinds]string{"DATE", "TIME", "DATETIME", "TIMESTAMP"}

	kindSettingKeys = [numKinds]string{KeyDatePattern, KeyTimePattern, KeyDateTimePattern, KeyTimestampPattern}
)

// Kinds returns all kinds.
func Kinds() []Kind {
	return []Kind{Date, Time, DateTime, Timestamp}
}

// ParseKind maps a SQL type name to Kind. The name is matched case-insensitively,
// and a trailing precision like "(6)" is ignored.
func ParseKind(typeName string) (Kind, bool) {
	name := strings.TrimSpace(typeName)
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	switch strings.ToUpper(name) {
	case "DATE":
		return Date, true
	case "TIME":
		return Time, true
	case "DATETIME":
		return DateTime, true
	case "TIMESTAMP":
		return Timestamp, true
	}
	return 0, false
}

func (k Kind) valid() bool {
	return k >= 0 && k < numKinds
}

// String returns the SQL type name.
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// SchemaName returns the name of the logical string schema registered for the kind.
func (k Kind) SchemaName() string {
	if !k.valid() {
		return ""
	}
	return "mytemporal." + strings.ToLower(k.String()) + ".string"
}

// SettingKey returns the configuration key of the kind's format pattern.
func (k Kind) SettingKey() string {
	if !k.valid() {
		return ""
	}
	return kindSettingKeys[k]
}
