package vitals

import (
	"fmt"
	"slices"

	"github.com/etnz/vitals/date"
)

// Table is the unified per-day dataset: one row per date, ascending, and one nullable value per
// column and row.
//
// A Table is never modified once returned. A nil *Table is a valid empty table.
type Table struct {
	dates   []date.Date
	columns []string
	values  map[string][]Value // aligned with dates
	dropped []string
}

// newTable returns a table with the given axis and all-null columns.
func newTable(dates []date.Date, columns []string) *Table {
	t := &Table{
		dates:   dates,
		columns: columns,
		values:  make(map[string][]Value, len(columns)),
	}
	for _, col := range columns {
		t.values[col] = make([]Value, len(dates))
	}
	return t
}

// Len returns the number of days in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.dates)
}

// Dates returns the date axis, ascending.
func (t *Table) Dates() []date.Date {
	if t == nil {
		return nil
	}
	return slices.Clone(t.dates)
}

// Columns returns the column names, in table order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.columns)
}

// Dropped returns the source columns that were not numeric and therefore not imported.
func (t *Table) Dropped() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.dropped)
}

// Has reports whether the table has column col.
func (t *Table) Has(col string) bool {
	if t == nil {
		return false
	}
	_, ok := t.values[col]
	return ok
}

// Column returns a copy of the values of col aligned with Dates(), or nil if there is no such
// column.
func (t *Table) Column(col string) []Value {
	if t == nil {
		return nil
	}
	return slices.Clone(t.values[col])
}

// column returns col's values without copy.
func (t *Table) column(col string) []Value {
	if t == nil {
		return nil
	}
	return t.values[col]
}

// index returns the row of 'day'.
func (t *Table) index(day date.Date) (int, bool) {
	if t == nil {
		return 0, false
	}
	return slices.BinarySearchFunc(t.dates, day, date.Date.Compare)
}

// Get returns the value of col on 'day'. It is Null if either does not exist.
func (t *Table) Get(day date.Date, col string) Value {
	i, ok := t.index(day)
	if !ok {
		return Null
	}
	vs := t.values[col]
	if vs == nil {
		return Null
	}
	return vs[i]
}

// Row returns every column value on 'day', or nil if the day is not in the table.
func (t *Table) Row(day date.Date) map[string]Value {
	i, ok := t.index(day)
	if !ok {
		return nil
	}
	row := make(map[string]Value, len(t.columns))
	for _, col := range t.columns {
		row[col] = t.values[col][i]
	}
	return row
}

// WithColumn returns a new table with an extra column, or with col replaced if it exists.
// values must be aligned with Dates().
func (t *Table) WithColumn(col string, values []Value) (*Table, error) {
	if len(values) != t.Len() {
		return nil, fmt.Errorf("column %q has %d values want %d", col, len(values), t.Len())
	}
	if col == "" || col == DateColumn {
		return nil, fmt.Errorf("invalid column name %q", col)
	}
	n := &Table{
		dates:   t.Dates(),
		columns: t.Columns(),
		values:  make(map[string][]Value, len(t.Columns())+1),
		dropped: t.Dropped(),
	}
	for _, c := range n.columns {
		n.values[c] = t.values[c] // columns are never mutated, they can be shared.
	}
	if !n.Has(col) {
		n.columns = append(n.columns, col)
	}
	n.values[col] = slices.Clone(values)
	return n, nil
}

// Merge outer-joins series into a Table.
//
// The date axis is the sorted union of every series' dates. Columns are the canonical columns of
// every domain that has at least one record, in domain order whatever the order of the arguments.
// A domain without a record on a date has null values on that row.
//
// nil series are ignored. When several series have the same domain the later one wins for a
// shared date. Merge of nothing, or of empty series only, is an empty table.
func Merge(series ...*Series) *Table {
	// Consolidate series per domain, later series win.
	byDomain := make(map[Domain]*date.History[DailyRecord])
	for _, s := range series {
		if s.Len() == 0 {
			continue
		}
		h, ok := byDomain[s.domain]
		if !ok {
			h = new(date.History[DailyRecord])
			byDomain[s.domain] = h
		}
		for on, rec := range s.Records() {
			h.Append(on, rec)
		}
	}

	histories := make([]*date.History[DailyRecord], 0, len(byDomain))
	var columns []string
	for _, d := range Domains {
		if h, ok := byDomain[d]; ok {
			histories = append(histories, h)
			columns = append(columns, d.Columns()...)
		}
	}

	t := newTable(slices.Collect(date.Iterate(histories...)), columns)
	for i, on := range t.dates {
		for _, h := range histories {
			rec, ok := h.Get(on)
			if !ok {
				continue // already null.
			}
			for _, c := range rec.Cells() {
				t.values[c.Column][i] = c.Value
			}
		}
	}
	return t
}
