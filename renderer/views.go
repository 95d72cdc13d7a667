package renderer

import (
	"fmt"
	"slices"

	"github.com/etnz/vitals"
)

// RollingWindow is the number of days averaged by the "7-day avg" columns.
const RollingWindow = 7

const noData = "No data available."

// Overview returns the daily overview of a dataset: day count, average scores and the raw table.
func Overview(ds *vitals.Dataset) *View {
	v := &View{Title: "Daily Overview"}
	if ds == nil {
		v.Info = "No dataset loaded. Use -csv to read an export or -token to fetch from the Oura API."
		return v
	}
	t := ds.Table
	if t.Len() == 0 {
		v.Info = noData
		return v
	}
	d := vitals.Derive(t)
	v.Subtitle = fmt.Sprintf("Loaded from %s: %s to %s", ds.Origin, d.From, d.To)
	v.Stats = append(v.Stats, Stat{"Total Days", fmt.Sprint(d.Days)})
	for _, s := range []struct{ label, col string }{
		{"Avg Sleep Score", vitals.SleepScore},
		{"Avg Readiness", vitals.ReadinessScore},
		{"Avg Activity", vitals.ActivityScore},
	} {
		if t.Has(s.col) {
			v.Stats = append(v.Stats, Stat{s.label, format(d.Mean(s.col), 1)})
		}
	}

	columns := t.Columns()
	data := Section{Title: "Raw Data", Header: append([]string{vitals.DateColumn}, columns...)}
	if dropped := t.Dropped(); len(dropped) > 0 {
		data.Note = fmt.Sprintf("Non numeric columns not loaded: %v.", dropped)
	}
	for _, on := range t.Dates() {
		row := t.Row(on)
		line := []string{on.String()}
		for _, col := range columns {
			line = append(line, raw(row[col]))
		}
		data.Rows = append(data.Rows, line)
	}
	v.Sections = append(v.Sections, data)
	return v
}

// overTime returns a section listing cols day by day. The first column is followed by its
// rolling average when rolling is true.
func overTime(t *vitals.Table, title string, places int32, rolling bool, cols ...string) Section {
	s := Section{Title: title, Header: []string{"Date"}}
	columns := make([][]vitals.Value, 0, len(cols)+1)
	for i, col := range cols {
		s.Header = append(s.Header, col)
		columns = append(columns, t.Column(col))
		if i == 0 && rolling {
			s.Header = append(s.Header, fmt.Sprintf("%d-day avg", RollingWindow))
			columns = append(columns, vitals.RollingMean(t, col, RollingWindow))
		}
	}
	for i, on := range t.Dates() {
		row := []string{on.String()}
		for _, values := range columns {
			row = append(row, cell(values[i], places))
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

// distribution returns a histogram section of col.
func distribution(t *vitals.Table, title, col string, bins int, places int32) Section {
	s := Section{Title: title, Bars: bars(vitals.Histogram(t, col, bins), places, 30)}
	if len(s.Bars) == 0 {
		s.Note = noData
	}
	return s
}

// Sleep returns the sleep analysis: score, duration in hours and sleep stages.
func Sleep(t *vitals.Table) *View {
	v := &View{Title: "Sleep Analysis"}
	switch {
	case t.Len() == 0:
		v.Info = noData
		return v
	case !t.Has(vitals.SleepScore):
		v.Info = "No sleep data available."
		return v
	}

	v.Stats = append(v.Stats, Stat{"Avg Sleep Score", format(vitals.Mean(t, vitals.SleepScore), 1)})
	v.Sections = append(v.Sections, overTime(t, "Sleep Score Over Time", 0, true, vitals.SleepScore))

	if t.Has(vitals.TotalSleepDuration) {
		hours, err := t.WithColumn(vitals.SleepHours, vitals.Scale(t, vitals.TotalSleepDuration, vitals.SecondsToHours))
		if err == nil {
			v.Stats = append(v.Stats, Stat{"Average Sleep Duration", format(vitals.Mean(hours, vitals.SleepHours), 1) + " hours"})
			v.Sections = append(v.Sections,
				distribution(hours, "Sleep Duration Distribution (hours)", vitals.SleepHours, 30, 1),
				overTime(hours, "Sleep Duration Over Time", 1, true, vitals.SleepHours),
			)
		}
	}

	stages := []string{vitals.DeepSleep, vitals.RemSleep, vitals.LightSleep}
	if !slices.ContainsFunc(stages, func(col string) bool { return !t.Has(col) }) {
		v.Sections = append(v.Sections, overTime(t, "Sleep Stages", 0, false, stages...))
	}
	return v
}

// Activity returns the activity analysis: score, steps and active calories.
func Activity(t *vitals.Table) *View {
	v := &View{Title: "Activity Analysis"}
	switch {
	case t.Len() == 0:
		v.Info = noData
		return v
	case !t.Has(vitals.ActivityScore):
		v.Info = "No activity data available."
		return v
	}

	v.Stats = append(v.Stats, Stat{"Avg Activity Score", format(vitals.Mean(t, vitals.ActivityScore), 1)})
	v.Sections = append(v.Sections, overTime(t, "Activity Score Over Time", 0, true, vitals.ActivityScore))
	if t.Has(vitals.Steps) {
		v.Stats = append(v.Stats, Stat{"Average Steps", format(vitals.Mean(t, vitals.Steps), 0)})
		v.Sections = append(v.Sections, overTime(t, "Daily Steps", 0, true, vitals.Steps))
	}
	if t.Has(vitals.Calories) {
		v.Stats = append(v.Stats, Stat{"Avg Active Calories", format(vitals.Mean(t, vitals.Calories), 0)})
		v.Sections = append(v.Sections, overTime(t, "Active Calories Burned", 0, false, vitals.Calories))
	}
	return v
}

// Readiness returns the readiness analysis: score, its distribution, temperature and heart rate.
func Readiness(t *vitals.Table) *View {
	v := &View{Title: "Readiness Analysis"}
	switch {
	case t.Len() == 0:
		v.Info = noData
		return v
	case !t.Has(vitals.ReadinessScore):
		v.Info = "No readiness data available."
		return v
	}

	s := vitals.Summarize(t, vitals.ReadinessScore)
	v.Stats = append(v.Stats,
		Stat{"Avg Readiness", format(s.Mean, 1)},
		Stat{"Lowest", format(s.Min, 0)},
		Stat{"Highest", format(s.Max, 0)},
	)
	v.Sections = append(v.Sections,
		overTime(t, "Readiness Score Over Time", 0, true, vitals.ReadinessScore),
		distribution(t, "Readiness Score Distribution", vitals.ReadinessScore, 20, 0),
	)
	if t.Has(vitals.TemperatureDeviation) {
		v.Sections = append(v.Sections, overTime(t, "Temperature Deviation", 2, false, vitals.TemperatureDeviation))
	}
	if t.Has(vitals.RestingHeartRate) {
		v.Sections = append(v.Sections, overTime(t, "Resting Heart Rate", 0, false, vitals.RestingHeartRate))
	}
	return v
}

// Trends returns the x against y trend line and the correlation matrix of every column.
//
// Empty x or y default to the first columns of the table.
func Trends(t *vitals.Table, x, y string) *View {
	v := &View{Title: "Trends & Correlations"}
	columns := t.Columns()
	switch {
	case t.Len() == 0:
		v.Info = noData
		return v
	case len(columns) < 2:
		v.Info = "At least two numeric columns are needed for trends."
		return v
	}
	if x == "" {
		x = columns[0]
	}
	if y == "" {
		y = columns[slices.IndexFunc(columns, func(c string) bool { return c != x })]
	}
	for _, col := range []string{x, y} {
		if !t.Has(col) {
			v.Info = fmt.Sprintf("Unknown column %q, available columns are %v.", col, columns)
			return v
		}
	}

	scatter := Section{Title: fmt.Sprintf("%s vs %s", x, y), Header: []string{"Date", x, y}}
	line, ok := vitals.Trend(t, x, y)
	if ok {
		scatter.Note = fmt.Sprintf("OLS trend: %s = %s × %s + %s (R² = %s, n = %d)",
			y, format(vitals.V(line.Slope), 2), x, format(vitals.V(line.Intercept), 2), format(line.R2, 2), line.N)
		scatter.Header = append(scatter.Header, "trend")
	} else {
		scatter.Note = "Not enough data for a trend line."
	}
	xs, ys := t.Column(x), t.Column(y)
	for i, on := range t.Dates() {
		if xs[i].IsNull() || ys[i].IsNull() {
			continue
		}
		row := []string{on.String(), raw(xs[i]), raw(ys[i])}
		if ok {
			xv, _ := xs[i].Float64()
			row = append(row, format(vitals.V(line.At(xv)), 2))
		}
		scatter.Rows = append(scatter.Rows, row)
	}

	m := vitals.Correlate(t)
	fields := m.Fields()
	corr := Section{Title: "Correlation Matrix", Header: append([]string{""}, fields...)}
	for _, a := range fields {
		row := []string{a}
		for _, b := range fields {
			row = append(row, format(m.At(a, b), 2))
		}
		corr.Rows = append(corr.Rows, row)
	}
	v.Sections = append(v.Sections, scatter, corr)
	return v
}
