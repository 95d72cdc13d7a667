package vitals

import (
	"fmt"
	"strings"
)

// Domain is a telemetry category.
type Domain int

const (
	Sleep Domain = iota
	Activity
	Readiness
)

// Domains lists every domain in canonical order.
var Domains = []Domain{Sleep, Activity, Readiness}

func (d Domain) String() string {
	switch d {
	case Sleep:
		return "sleep"
	case Activity:
		return "activity"
	case Readiness:
		return "readiness"
	default:
		return fmt.Sprintf("domain(%d)", int(d))
	}
}

// ParseDomain returns the domain named s.
func ParseDomain(s string) (Domain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sleep":
		return Sleep, nil
	case "activity":
		return Activity, nil
	case "readiness":
		return Readiness, nil
	default:
		return Sleep, fmt.Errorf("unknown domain %q", s)
	}
}

// Canonical column names. They are also the CSV header names of a flat export.
const (
	DateColumn = "date"

	SleepScore         = "sleep_score"
	TotalSleepDuration = "total_sleep_duration" // seconds
	DeepSleep          = "deep_sleep"
	RemSleep           = "rem_sleep"
	LightSleep         = "light_sleep"

	ActivityScore = "activity_score"
	Steps         = "steps"
	Calories      = "calories" // active calories

	ReadinessScore       = "readiness_score"
	TemperatureDeviation = "temperature_deviation"
	RestingHeartRate     = "resting_heart_rate"

	// SleepHours is derived from TotalSleepDuration.
	SleepHours = "sleep_hours"
)

// Columns returns the canonical columns of the domain, in canonical order.
func (d Domain) Columns() []string {
	switch d {
	case Sleep:
		return []string{SleepScore, TotalSleepDuration, DeepSleep, RemSleep, LightSleep}
	case Activity:
		return []string{ActivityScore, Steps, Calories}
	case Readiness:
		return []string{ReadinessScore, TemperatureDeviation, RestingHeartRate}
	default:
		return nil
	}
}

// ScoreColumn returns the column holding the domain's daily score.
func (d Domain) ScoreColumn() string {
	switch d {
	case Activity:
		return ActivityScore
	case Readiness:
		return ReadinessScore
	default:
		return SleepScore
	}
}
