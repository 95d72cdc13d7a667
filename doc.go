// Package vitals reconciles personal health telemetry into a single per-day table and computes
// the metrics displayed by the vtl command-line tool.
//
// Telemetry comes in three domains: sleep, activity and readiness. Each domain is an independent
// daily series, either read from the Oura API (see the ouraapi package) or from a CSV export.
//
// The core functionalities are:
//   - Normalization: [Normalize] maps one raw API item to a [DailyRecord] with a fixed set of
//     nullable fields per domain.
//   - Series: [BuildSeries] collects the records of one domain by date, the last record for a
//     given date wins.
//   - Reconciliation: [Merge] outer-joins up to three series into a [Table], one row per date seen
//     in any source. A domain without a record on a date yields null values, never zeros.
//   - Derived metrics: [Mean], [Scale], [RollingMean], [Summarize], [Histogram], [Correlate] and
//     [Trend] are pure functions over a Table. Any aggregate lacking data is a null [Value], the
//     "undefined" marker.
//   - Session: [Session] holds the current dataset and replaces or clears it atomically.
//
// The package holds no state across calls: every Table is built fresh and never mutated once
// returned.
package vitals
