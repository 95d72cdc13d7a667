package vitals

import (
	"math"
)

// SecondsToHours converts a duration column stored in seconds to hours.
const SecondsToHours = 1.0 / 3600

// present returns the non-null values of col.
func present(t *Table, col string) []float64 {
	var xs []float64
	for _, v := range t.column(col) {
		if x, ok := v.Float64(); ok {
			xs = append(xs, x)
		}
	}
	return xs
}

// finite reports whether x is neither NaN nor infinite.
func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Mean returns the arithmetic mean of the non-null values of col. It is undefined (Null) if there
// are none, or if their sum overflows.
func Mean(t *Table, col string) Value {
	xs := present(t, col)
	if len(xs) == 0 {
		return Null
	}
	return V(mean(xs))
}

// Count returns the number of non-null values of col.
func Count(t *Table, col string) int { return len(present(t, col)) }

// Scale returns the values of col multiplied by factor, aligned with t.Dates(). Null values stay
// null. A missing column is all null.
func Scale(t *Table, col string, factor float64) []Value {
	out := make([]Value, t.Len())
	for i, v := range t.column(col) {
		out[i] = v.Mul(factor)
	}
	return out
}

// RollingMean returns, for each row, the mean of the non-null values of col over the trailing
// window of calendar days ending on that row's date (included). A window without values is null.
func RollingMean(t *Table, col string, window int) []Value {
	out := make([]Value, t.Len())
	values := t.column(col)
	if window < 1 || values == nil {
		return out
	}
	dates := t.dates
	var sum float64
	var n int
	start := 0
	for i, on := range dates {
		if x, ok := values[i].Float64(); ok {
			sum += x
			n++
		}
		// evict the rows that left the window.
		for ; on.Sub(dates[start]) >= window; start++ {
			if x, ok := values[start].Float64(); ok {
				sum -= x
				n--
			}
		}
		if !finite(sum) {
			// an overflow cannot be evicted, sum the window again.
			sum = 0
			for j := start; j <= i; j++ {
				if x, ok := values[j].Float64(); ok {
					sum += x
				}
			}
		}
		if n > 0 {
			out[i] = V(sum / float64(n))
		}
	}
	return out
}

// Summary is the distribution of a column. Aggregates are undefined when there is not enough
// data.
type Summary struct {
	Column string
	Count  int
	Mean   Value
	Min    Value
	Max    Value
	StdDev Value // sample standard deviation, needs 2 values.
}

// Summarize returns the distribution of the non-null values of col. Mean and StdDev are undefined
// when their sums overflow.
func Summarize(t *Table, col string) Summary {
	xs := present(t, col)
	s := Summary{Column: col, Count: len(xs)}
	if len(xs) == 0 {
		return s
	}
	m := mean(xs)
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	s.Mean, s.Min, s.Max = V(m), V(lo), V(hi)
	if len(xs) > 1 {
		var ss float64
		for _, x := range xs {
			ss += (x - m) * (x - m)
		}
		s.StdDev = V(math.Sqrt(ss / float64(len(xs)-1)))
	}
	return s
}

// Bin is a histogram bucket [Low, High). The last bin includes High.
type Bin struct {
	Low, High float64
	Count     int
}

// Histogram splits the non-null values of col in 'bins' equal-width buckets between their min and
// max. It is empty when there are no values. When all values are equal there is a single bin.
func Histogram(t *Table, col string, bins int) []Bin {
	xs := present(t, col)
	if len(xs) == 0 || bins < 1 {
		return nil
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	// Work on halves: hi-lo may overflow, hi/2-lo/2 never does.
	width := (hi/2 - lo/2) / float64(bins)
	if width == 0 {
		return []Bin{{Low: lo, High: hi, Count: len(xs)}}
	}
	out := make([]Bin, bins)
	for i := range out {
		out[i].Low = 2 * (lo/2 + float64(i)*width)
		out[i].High = 2 * (lo/2 + float64(i+1)*width)
	}
	out[0].Low = lo
	out[bins-1].High = hi
	for _, x := range xs {
		i := int((x/2 - lo/2) / width)
		out[min(max(i, 0), bins-1)].Count++
	}
	return out
}
