package vitals

import (
	"math"
	"slices"
)

// paired returns the values of x and y on the rows where both are present.
func paired(t *Table, x, y string) (xs, ys []float64) {
	vx, vy := t.column(x), t.column(y)
	if vx == nil || vy == nil {
		return nil, nil
	}
	for i := range vx {
		a, okA := vx[i].Float64()
		b, okB := vy[i].Float64()
		if okA && okB {
			xs, ys = append(xs, a), append(ys, b)
		}
	}
	return xs, ys
}

// moments returns the means, the sums of squared deviations and the sum of cross deviations. ok
// is false when any of them overflows.
func moments(xs, ys []float64) (mx, my, sxx, syy, sxy float64, ok bool) {
	mx, my = mean(xs), mean(ys)
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	ok = finite(mx) && finite(my) && finite(sxx) && finite(syy) && finite(sxy)
	return
}

// coefficient returns sxy/sqrt(sxx*syy) clamped to [-1, 1], without forming the product.
func coefficient(sxx, syy, sxy float64) float64 {
	r := sxy / math.Sqrt(sxx) / math.Sqrt(syy)
	return math.Max(-1, math.Min(1, r))
}

// pearson returns the correlation coefficient of paired samples. It is undefined with fewer than
// 2 pairs, when either sample is constant or when the sums overflow.
func pearson(xs, ys []float64) Value {
	if len(xs) < 2 {
		return Null
	}
	_, _, sxx, syy, sxy, ok := moments(xs, ys)
	if !ok || sxx == 0 || syy == 0 {
		return Null
	}
	return V(coefficient(sxx, syy, sxy))
}

// Matrix is a symmetric correlation matrix.
type Matrix struct {
	fields []string
	cells  [][]Value
}

// Correlate returns the pairwise Pearson correlation of cols, computed on the rows where both
// columns of a pair are present. Without cols, every column of t is used. Columns not in t are
// ignored. A pair with fewer than 2 shared observations is undefined.
func Correlate(t *Table, cols ...string) *Matrix {
	if len(cols) == 0 {
		cols = t.Columns()
	}
	m := &Matrix{}
	for _, col := range cols {
		if t.Has(col) && !slices.Contains(m.fields, col) {
			m.fields = append(m.fields, col)
		}
	}
	m.cells = make([][]Value, len(m.fields))
	for i := range m.cells {
		m.cells[i] = make([]Value, len(m.fields))
	}
	for i, a := range m.fields {
		for j := i; j < len(m.fields); j++ {
			r := pearson(paired(t, a, m.fields[j]))
			m.cells[i][j], m.cells[j][i] = r, r
		}
	}
	return m
}

// Fields returns the matrix fields, in order.
func (m *Matrix) Fields() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.fields)
}

// At returns the correlation between a and b, Null if undefined or unknown.
func (m *Matrix) At(a, b string) Value {
	if m == nil {
		return Null
	}
	i, j := slices.Index(m.fields, a), slices.Index(m.fields, b)
	if i < 0 || j < 0 {
		return Null
	}
	return m.cells[i][j]
}

// Line is an ordinary least squares fit y = Slope*x + Intercept.
type Line struct {
	X, Y      string
	Slope     float64
	Intercept float64
	R2        Value // undefined when y is constant.
	N         int   // number of observations.
}

// At returns the fitted y for x.
func (l Line) At(x float64) float64 { return l.Slope*x + l.Intercept }

// Trend fits y against x on the rows where both are present. ok is false when there are fewer
// than 2 such rows, x is constant or the fit is beyond the float64 range.
func Trend(t *Table, x, y string) (line Line, ok bool) {
	xs, ys := paired(t, x, y)
	if len(xs) < 2 {
		return Line{}, false
	}
	mx, my, sxx, syy, sxy, ok := moments(xs, ys)
	if !ok || sxx == 0 {
		return Line{}, false
	}
	line = Line{X: x, Y: y, N: len(xs)}
	line.Slope = sxy / sxx
	line.Intercept = my - line.Slope*mx
	if !finite(line.Slope) || !finite(line.Intercept) {
		return Line{}, false
	}
	if syy > 0 {
		r := coefficient(sxx, syy, sxy)
		line.R2 = V(r * r)
	}
	return line, true
}
