package incrdump

import (
	"github.com/siddontang/go-mysql/replication"

	"github.com/huangjunwen/mytemporal/temporal"
)

// Converters tracks table map events of a binlog stream and rewrites rows events with
// their TableConverter. It is not safe for concurrent use: a binlog stream is sequential.
type Converters struct {
	n      *temporal.Normalizer
	tables map[uint64]*TableConverter
}

// NewConverters creates Converters.
func NewConverters(n *temporal.Normalizer) *Converters {
	return &Converters{
		n:      n,
		tables: map[uint64]*TableConverter{},
	}
}

// Table returns the TableConverter of a table id seen in a TableMapEvent.
func (c *Converters) Table(tableID uint64) *TableConverter {
	return c.tables[tableID]
}

// HandleEvent handles a binlog event:
//   - TableMapEvent: (re)builds the TableConverter of the table.
//   - RowsEvent: rewrites temporal values of all rows (before and after images) in place.
//   - RotateEvent: drops all TableConverters since table ids are only valid within a binlog file.
//
// Other events are ignored. It returns the TableConverter used for a RowsEvent, or nil.
func (c *Converters) HandleEvent(ev *replication.BinlogEvent) *TableConverter {
	switch e := ev.Event.(type) {
	case *replication.TableMapEvent:
		if tc := c.tables[e.TableID]; tc == nil || tc.TableMapEvent != e {
			c.tables[e.TableID] = NewTableConverter(c.n, e)
		}

	case *replication.RowsEvent:
		tc := c.tables[e.TableID]
		if tc == nil && e.Table != nil {
			tc = NewTableConverter(c.n, e.Table)
			c.tables[e.TableID] = tc
		}
		if tc == nil {
			return nil
		}
		for _, row := range e.Rows {
			tc.ConvertRow(row)
		}
		return tc

	case *replication.RotateEvent:
		c.tables = map[uint64]*TableConverter{}
	}

	return nil
}
