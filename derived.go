package vitals

import "github.com/etnz/vitals/date"

// DerivedSet gathers the aggregates of a table snapshot. It is computed on demand and must be
// recomputed when the table is replaced.
type DerivedSet struct {
	Days        int
	From, To    date.Date        // zero when the table is empty.
	Means       map[string]Value // null-skipping mean of every column, Null when undefined.
	Coverage    map[string]int   // number of non-null values of every column.
	Correlation *Matrix          // over the columns with at least 2 values.
}

// Derive computes the aggregates of t.
func Derive(t *Table) *DerivedSet {
	s := &DerivedSet{
		Days:     t.Len(),
		Means:    make(map[string]Value),
		Coverage: make(map[string]int),
	}
	if dates := t.Dates(); len(dates) > 0 {
		s.From, s.To = dates[0], dates[len(dates)-1]
	}
	var correlated []string
	for _, col := range t.Columns() {
		s.Means[col] = Mean(t, col)
		s.Coverage[col] = Count(t, col)
		if s.Coverage[col] >= 2 {
			correlated = append(correlated, col)
		}
	}
	s.Correlation = &Matrix{}
	if len(correlated) > 0 {
		s.Correlation = Correlate(t, correlated...)
	}
	return s
}

// Mean returns the mean of col, Null if undefined or unknown.
func (s *DerivedSet) Mean(col string) Value { return s.Means[col] }
