package vitals

import (
	"encoding/json"
	"math"
	"testing"
)

// raw decodes a json object into a RawItem.
func raw(t *testing.T, s string) RawItem {
	t.Helper()
	var item RawItem
	if err := json.Unmarshal([]byte(s), &item); err != nil {
		t.Fatalf("invalid test item %s: %v", s, err)
	}
	return item
}

// dump flattens a table into date -> column -> value for comparisons.
func dump(tbl *Table) map[string]map[string]string {
	out := make(map[string]map[string]string)
	for _, on := range tbl.Dates() {
		row := make(map[string]string)
		for col, v := range tbl.Row(on) {
			row[col] = v.String()
		}
		out[on.String()] = row
	}
	return out
}

// near reports whether v is present and within 1e-9 of want.
func near(v Value, want float64) bool {
	got, ok := v.Float64()
	return ok && math.Abs(got-want) < 1e-9
}

// sample returns the three series of the reference example.
func sample(t *testing.T) (sleep, activity, readiness *Series) {
	t.Helper()
	sleep = BuildSeries(Sleep, []RawItem{
		raw(t, `{"day":"2024-01-01","score":80,"contributors":{"total_sleep":25200}}`),
	})
	activity = BuildSeries(Activity, []RawItem{
		raw(t, `{"day":"2024-01-01","score":70,"steps":5000}`),
	})
	readiness = BuildSeries(Readiness, []RawItem{
		raw(t, `{"day":"2024-01-02","score":90}`),
	})
	return
}
