// Package ouraapi reads the daily sleep, activity and readiness collections of the Oura v2 API.
package ouraapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/date"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Oura v2 user collection API.
const DefaultBaseURL = "https://api.ouraring.com/v2/usercollection"

// Client queries the Oura API with a personal access token.
type Client struct {
	Token   string
	BaseURL string
	HTTP    *http.Client
	Limiter *rate.Limiter // paces the requests missing the cache, nil means unlimited.
}

// NewClient returns a client for token with a daily disk cache and at most 5 requests per second.
func NewClient(token string) *Client {
	return &Client{
		Token:   token,
		BaseURL: DefaultBaseURL,
		HTTP:    newDailyCachingClient(),
		Limiter: rate.NewLimiter(rate.Limit(5), 1),
	}
}

// Endpoint returns the collection name of domain d, e.g. "daily_sleep".
func Endpoint(d vitals.Domain) string { return "daily_" + d.String() }

// page is one response of a collection endpoint.
//
//	{
//	  "data": [
//	    {"id": "...", "day": "2024-01-01", "score": 80, "contributors": {"total_sleep": 90, ...}, ...}
//	  ],
//	  "next_token": null
//	}
type page struct {
	Data      []vitals.RawItem `json:"data"`
	NextToken *string          `json:"next_token"`
}

// Items returns every item of domain d in range r, following the pagination tokens.
func (c *Client) Items(ctx context.Context, d vitals.Domain, r date.Range) ([]vitals.RawItem, error) {
	items := make([]vitals.RawItem, 0)
	next := ""
	for {
		q := url.Values{}
		q.Set("start_date", r.From.String())
		q.Set("end_date", r.To.String())
		if next != "" {
			q.Set("next_token", next)
		}
		addr := fmt.Sprintf("%s/%s?%s", strings.TrimSuffix(c.BaseURL, "/"), Endpoint(d), q.Encode())

		var p page
		if err := c.get(ctx, addr, &p); err != nil {
			return nil, fmt.Errorf("cannot fetch %s data: %w", d, err)
		}
		items = append(items, p.Data...)

		if p.NextToken == nil || *p.NextToken == "" {
			return items, nil
		}
		if *p.NextToken == next {
			return nil, fmt.Errorf("cannot fetch %s data: pagination token %q repeats", d, next)
		}
		next = *p.NextToken
	}
}

// get GETs addr with the client's credentials. Responses served from the disk cache do not wait
// for the limiter.
func (c *Client) get(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	if c.Limiter != nil && !cached(client, req) {
		if err := c.Limiter.Wait(ctx); err != nil {
			return err
		}
	}
	return jwget(client, req, data)
}
