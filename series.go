package vitals

import (
	"iter"

	"github.com/etnz/vitals/date"
	"github.com/rs/zerolog/log"
)

// Series is the chronological records of a single domain, unique by date.
type Series struct {
	domain  Domain
	records date.History[DailyRecord]
}

// NewSeries returns an empty series for domain d.
func NewSeries(d Domain) *Series { return &Series{domain: d} }

// BuildSeries normalizes items, in order, into a new series of domain d.
//
// Malformed items are dropped. An empty input is an empty series, not an error.
func BuildSeries(d Domain, items []RawItem) *Series {
	s := NewSeries(d)
	s.Add(items...)
	return s
}

// Add normalizes items and inserts them by date. When two items share the same date the later one
// wins. Add returns the number of malformed items that were dropped.
func (s *Series) Add(items ...RawItem) (dropped int) {
	for i, item := range items {
		rec, err := Normalize(item, s.domain)
		if err != nil {
			log.Warn().Err(err).Str("domain", s.domain.String()).Int("index", i).Msg("dropping record")
			dropped++
			continue
		}
		s.records.Append(rec.Date, rec)
	}
	return dropped
}

// Domain returns the series' domain.
func (s *Series) Domain() Domain { return s.domain }

// Len returns the number of days in the series.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return s.records.Len()
}

// Get returns the record on 'day'.
func (s *Series) Get(day date.Date) (DailyRecord, bool) { return s.records.Get(day) }

// Dates returns the series' dates in chronological order.
func (s *Series) Dates() []date.Date { return s.records.Days() }

// Records returns an iterator over the records in chronological order.
func (s *Series) Records() iter.Seq2[date.Date, DailyRecord] { return s.records.Values() }
