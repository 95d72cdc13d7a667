package vitals

import (
	"errors"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/vitals/date"
)

// ErrMalformedRecord is returned by Normalize when a raw item cannot be dated.
var ErrMalformedRecord = errors.New("malformed record")

// RawItem is one source item for one date in one domain, as decoded from json.
type RawItem map[string]any

// Cell is a named value of a record.
type Cell struct {
	Column string
	Value  Value
}

// Fields is the fixed set of values a domain records for one day.
type Fields interface {
	// Cells returns the canonical columns and their value, in canonical order.
	Cells() []Cell
}

// SleepFields are the daily sleep values. Durations are in seconds.
type SleepFields struct {
	Score              Value
	TotalSleepDuration Value
	DeepSleep          Value
	RemSleep           Value
	LightSleep         Value
}

func (f SleepFields) Cells() []Cell {
	return []Cell{
		{SleepScore, f.Score},
		{TotalSleepDuration, f.TotalSleepDuration},
		{DeepSleep, f.DeepSleep},
		{RemSleep, f.RemSleep},
		{LightSleep, f.LightSleep},
	}
}

// ActivityFields are the daily activity values.
type ActivityFields struct {
	Score    Value
	Steps    Value
	Calories Value
}

func (f ActivityFields) Cells() []Cell {
	return []Cell{
		{ActivityScore, f.Score},
		{Steps, f.Steps},
		{Calories, f.Calories},
	}
}

// ReadinessFields are the daily readiness values.
type ReadinessFields struct {
	Score                Value
	TemperatureDeviation Value
	RestingHeartRate     Value
}

func (f ReadinessFields) Cells() []Cell {
	return []Cell{
		{ReadinessScore, f.Score},
		{TemperatureDeviation, f.TemperatureDeviation},
		{RestingHeartRate, f.RestingHeartRate},
	}
}

// DailyRecord is the normalized values of one domain for one day.
type DailyRecord struct {
	Date   date.Date
	Domain Domain
	Fields Fields
}

// Cells returns the record's canonical columns and values.
func (r DailyRecord) Cells() []Cell {
	if r.Fields == nil {
		return nil
	}
	return r.Fields.Cells()
}

// Normalize maps a raw source item to a DailyRecord of domain d.
//
// The item must have a 'day' property holding a date, otherwise ErrMalformedRecord is returned.
// A missing top level property is null, but a missing member of the nested 'contributors' object
// defaults to zero.
func Normalize(raw RawItem, d Domain) (DailyRecord, error) {
	day, ok := raw["day"].(string)
	if !ok {
		return DailyRecord{}, fmt.Errorf("%s item without a 'day': %w", d, ErrMalformedRecord)
	}
	on, err := date.Parse(day)
	if err != nil {
		return DailyRecord{}, fmt.Errorf("%s item with invalid 'day': %w: %w", d, ErrMalformedRecord, err)
	}

	item := map[string]any(raw)
	rec := DailyRecord{Date: on, Domain: d}
	switch d {
	case Sleep:
		rec.Fields = SleepFields{
			Score:              top(item, "$.score"),
			TotalSleepDuration: nested(item, "$.contributors.total_sleep"),
			DeepSleep:          nested(item, "$.contributors.deep_sleep"),
			RemSleep:           nested(item, "$.contributors.rem_sleep"),
			LightSleep:         nested(item, "$.contributors.light_sleep"),
		}
	case Activity:
		rec.Fields = ActivityFields{
			Score:    top(item, "$.score"),
			Steps:    top(item, "$.steps"),
			Calories: top(item, "$.active_calories"),
		}
	case Readiness:
		rec.Fields = ReadinessFields{
			Score:                top(item, "$.score"),
			TemperatureDeviation: top(item, "$.temperature_deviation"),
			RestingHeartRate:     nested(item, "$.contributors.resting_heart_rate"),
		}
	default:
		return DailyRecord{}, fmt.Errorf("unknown domain %d", int(d))
	}
	return rec, nil
}

// lookup evaluates path against item. found is false when the path does not exist.
func lookup(item map[string]any, path string) (value any, found bool) {
	v, err := jsonpath.Get(path, item)
	if err != nil {
		// jsonpath reports unknown keys as errors.
		return nil, false
	}
	return v, true
}

// top extracts a top level field: missing is null.
func top(item map[string]any, path string) Value {
	v, found := lookup(item, path)
	if !found {
		return Null
	}
	return valueOf(v)
}

// nested extracts a 'contributors' member: missing is zero, but an explicit json null stays null.
func nested(item map[string]any, path string) Value {
	v, found := lookup(item, path)
	if !found {
		return V(0)
	}
	return valueOf(v)
}
