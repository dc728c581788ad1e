package fulldump

import (
	"context"
	"database/sql"
	"time"

	perrors "github.com/pkg/errors"

	"github.com/huangjunwen/mytemporal/temporal"
)

// RowConverter rewrites temporal columns of query rows.
type RowConverter struct {
	names []string
	kinds []temporal.Kind
	convs []temporal.ConvertFunc
}

// column adapts *sql.ColumnType to temporal.Column.
type column struct {
	*sql.ColumnType
}

var (
	_ temporal.Column = column{}
)

func (col column) TypeName() string {
	return col.DatabaseTypeName()
}

// NewRowConverter creates a RowConverter for columns. Columns are classified by their
// database type names.
func NewRowConverter(n *temporal.Normalizer, columns []*sql.ColumnType) *RowConverter {
	rc := &RowConverter{
		names: make([]string, len(columns)),
		kinds: make([]temporal.Kind, len(columns)),
		convs: make([]temporal.ConvertFunc, len(columns)),
	}
	for i, ct := range columns {
		i := i
		col := column{ct}
		rc.names[i] = col.Name()
		n.ConverterFor(col, temporal.RegistrationFunc(func(_ temporal.Schema, fn temporal.ConvertFunc) {
			rc.kinds[i], _ = temporal.ParseKind(col.TypeName())
			rc.convs[i] = fn
		}))
	}
	return rc
}

// Names returns column names.
func (rc *RowConverter) Names() []string {
	return rc.names
}

// ConvertRow rewrites temporal values of row in place into formatted strings.
// nil and unsupported values are left untouched.
func (rc *RowConverter) ConvertRow(row []interface{}) []interface{} {
	for i, val := range row {
		if i >= len(rc.convs) {
			break
		}
		if val == nil || rc.convs[i] == nil {
			continue
		}
		v, ok := FromDriverValue(rc.kinds[i], val)
		if !ok {
			continue
		}
		if s, ok := rc.convs[i](v); ok {
			row[i] = s
		}
	}
	return row
}

// FromDriverValue maps a temporal column value scanned from go-sql-driver/mysql into
// temporal.Value. It expects connections configured like mycanal.Config.ToDriverCfg
// (ParseTime, UTC location and UTC session time_zone), but text values are accepted too.
func FromDriverValue(kind temporal.Kind, val interface{}) (temporal.Value, bool) {
	if b, ok := val.([]byte); ok {
		val = string(b)
	}

	switch kind {
	case temporal.Date:
		switch v := val.(type) {
		case time.Time:
			if v.IsZero() {
				return nil, false
			}
			return temporal.LocalDateOf(v), true
		case string:
			if d, err := temporal.ParseLocalDate(v); err == nil {
				return d, true
			}
		}

	case temporal.Time:
		if v, ok := val.(string); ok {
			if d, err := temporal.ParseDuration(v); err == nil {
				return d, true
			}
		}

	case temporal.DateTime:
		switch v := val.(type) {
		case time.Time:
			if v.IsZero() {
				return nil, false
			}
			return temporal.LocalDateTimeOf(v), true
		case string:
			if dt, err := temporal.ParseLocalDateTime(v); err == nil {
				return dt, true
			}
		}

	case temporal.Timestamp:
		switch v := val.(type) {
		case time.Time:
			if v.IsZero() {
				return nil, false
			}
			return temporal.ZonedDateTimeOf(v), true
		case string:
			if dt, err := temporal.ParseLocalDateTime(v); err == nil {
				return temporal.ZonedDateTimeOf(dt.Time()), true
			}
		}
	}

	return nil, false
}

// ConvertRows runs query and calls fn for each row with temporal columns converted.
func ConvertRows(
	ctx context.Context,
	q Queryer,
	n *temporal.Normalizer,
	query string,
	args []interface{},
	fn func(names []string, row []interface{}) error,
) error {

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return perrors.Wrap(err, "Query error")
	}
	defer rows.Close()

	columns, err := rows.ColumnTypes()
	if err != nil {
		return perrors.Wrap(err, "Get column types error")
	}
	rc := NewRowConverter(n, columns)

	for rows.Next() {
		row := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return perrors.Wrap(err, "Scan error")
		}
		if err := fn(rc.Names(), rc.ConvertRow(row)); err != nil {
			return err
		}
	}

	return perrors.Wrap(rows.Err(), "Iterate rows error")
}
