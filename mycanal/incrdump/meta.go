package incrdump

import (
	"fmt"

	. "github.com/siddontang/go-mysql/mysql"
	"github.com/siddontang/go-mysql/replication"

	"github.com/huangjunwen/mytemporal/temporal"
)

// TableConverter rewrites temporal columns of binlog rows of a table.
type TableConverter struct {
	*replication.TableMapEvent
	// cache fields
	schemaName string
	tableName  string

	kinds   []temporal.Kind
	schemas []*temporal.Schema // nil for non temporal columns
	convs   []temporal.ConvertFunc
}

// column is a binlog column offered to temporal.Normalizer.
type column struct {
	table *TableConverter
	i     int
}

var (
	_ temporal.Column = column{}
)

// NewTableConverter creates a TableConverter for table. Columns are classified by their binlog types.
func NewTableConverter(n *temporal.Normalizer, table *replication.TableMapEvent) *TableConverter {
	cnt := len(table.ColumnType)
	tc := &TableConverter{
		TableMapEvent: table,
		kinds:         make([]temporal.Kind, cnt),
		schemas:       make([]*temporal.Schema, cnt),
		convs:         make([]temporal.ConvertFunc, cnt),
	}

	for i := 0; i < cnt; i++ {
		col := column{table: tc, i: i}
		n.ConverterFor(col, temporal.RegistrationFunc(func(schema temporal.Schema, fn temporal.ConvertFunc) {
			kind, _ := temporal.ParseKind(col.TypeName())
			tc.kinds[col.i] = kind
			tc.schemas[col.i] = &schema
			tc.convs[col.i] = fn
		}))
	}

	return tc
}

func (tc *TableConverter) SchemaName() string {
	if tc.schemaName == "" {
		tc.schemaName = string(tc.TableMapEvent.Schema)
	}
	return tc.schemaName
}

func (tc *TableConverter) TableName() string {
	if tc.tableName == "" {
		tc.tableName = string(tc.TableMapEvent.Table)
	}
	return tc.tableName
}

// ColumnName returns the name of the i-th column. Column names are present only when
// `--binlog-row-metadata=FULL`, otherwise "@1", "@2" ... are returned.
func (tc *TableConverter) ColumnName(i int) string {
	if i < len(tc.TableMapEvent.ColumnName) {
		return string(tc.TableMapEvent.ColumnName[i])
	}
	return fmt.Sprintf("@%d", i+1)
}

// Schema returns the output schema of the i-th column if it is a temporal column.
func (tc *TableConverter) Schema(i int) (temporal.Schema, bool) {
	if i < 0 || i >= len(tc.schemas) || tc.schemas[i] == nil {
		return temporal.Schema{}, false
	}
	return *tc.schemas[i], true
}

// I didn't export TableMapEvent.realType in go-mysql but need to use it here ....
// So copy https://github.com/siddontang/go-mysql/replication/row_event.go
func (tc *TableConverter) RealType(i int) byte {
	typ := tc.TableMapEvent.ColumnType[i]

	switch typ {
	case MYSQL_TYPE_STRING:
		rtyp := byte(tc.TableMapEvent.ColumnMeta[i] >> 8)
		if rtyp == MYSQL_TYPE_ENUM || rtyp == MYSQL_TYPE_SET {
			return rtyp
		}

	case MYSQL_TYPE_DATE:
		return MYSQL_TYPE_NEWDATE
	}

	return typ
}

// ConvertRow rewrites temporal values of data in place into formatted strings.
// nil and unsupported values are left untouched.
func (tc *TableConverter) ConvertRow(data []interface{}) []interface{} {
	for i, val := range data {
		if i >= len(tc.convs) {
			break
		}

		// No need to handle nil.
		if val == nil || tc.convs[i] == nil {
			continue
		}

		v, ok := FromBinlogValue(tc.kinds[i], val)
		if !ok {
			continue
		}
		if s, ok := tc.convs[i](v); ok {
			data[i] = s
		}
	}
	return data
}

func (col column) Name() string {
	return col.table.ColumnName(col.i)
}

func (col column) TypeName() string {
	switch col.table.RealType(col.i) {
	case MYSQL_TYPE_NEWDATE:
		return "DATE"
	case MYSQL_TYPE_TIME, MYSQL_TYPE_TIME2:
		return "TIME"
	case MYSQL_TYPE_DATETIME, MYSQL_TYPE_DATETIME2:
		return "DATETIME"
	case MYSQL_TYPE_TIMESTAMP, MYSQL_TYPE_TIMESTAMP2:
		return "TIMESTAMP"
	}
	return ""
}
