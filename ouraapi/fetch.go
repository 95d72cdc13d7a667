package ouraapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/date"
	"github.com/rs/zerolog/log"
)

// Result holds the items fetched per domain, and the error of each domain that failed.
type Result struct {
	Range  date.Range
	Items  map[vitals.Domain][]vitals.RawItem
	Errors map[vitals.Domain]error
}

// Fetch queries every domain, all of them by default, over range r. A failing domain never
// prevents the others from being fetched.
func (c *Client) Fetch(ctx context.Context, r date.Range, domains ...vitals.Domain) *Result {
	if len(domains) == 0 {
		domains = vitals.Domains
	}
	res := &Result{
		Range:  r,
		Items:  make(map[vitals.Domain][]vitals.RawItem),
		Errors: make(map[vitals.Domain]error),
	}
	for _, d := range domains {
		items, err := c.Items(ctx, d, r)
		if err != nil {
			res.Errors[d] = err
			continue
		}
		res.Items[d] = items
	}
	return res
}

// Series returns the series of every domain that was fetched successfully.
func (r *Result) Series() []*vitals.Series {
	var series []*vitals.Series
	for _, d := range vitals.Domains {
		if items, ok := r.Items[d]; ok {
			series = append(series, vitals.BuildSeries(d, items))
		}
	}
	return series
}

// Err returns the errors of the failed domains, or nil.
func (r *Result) Err() error {
	var errs []error
	for _, d := range vitals.Domains {
		if err, ok := r.Errors[d]; ok {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Table merges the successfully fetched domains.
func (r *Result) Table() *vitals.Table { return vitals.Merge(r.Series()...) }

// Load fetches every domain over range r and merges them.
//
// It fails only when no domain could be fetched. Otherwise the failed domains are logged and the
// others are merged: the table may be empty if the range holds no data.
func Load(ctx context.Context, c *Client, r date.Range) (*vitals.Table, error) {
	res := c.Fetch(ctx, r)
	if len(res.Items) == 0 {
		return nil, fmt.Errorf("cannot load %s: %w", r, res.Err())
	}
	for d, err := range res.Errors {
		log.Warn().Err(err).Str("domain", d.String()).Msg("domain not loaded")
	}
	return res.Table(), nil
}
