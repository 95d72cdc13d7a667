package ouraapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/date"
	"golang.org/x/time/rate"
)

const testToken = "secret"

// newServer serves fixed collections. Unknown endpoints answer 401.
func newServer(t *testing.T, pages map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if got := r.Header.Get("Authorization"); got != "Bearer "+testToken {
			t.Errorf("Authorization = %q want %q", got, "Bearer "+testToken)
		}
		key := r.URL.Path + "?" + r.URL.Query().Get("next_token")
		body, ok := pages[key]
		if !ok {
			http.Error(w, `{"detail":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestClient(srv *httptest.Server) *Client {
	return &Client{Token: testToken, BaseURL: srv.URL, HTTP: srv.Client()}
}

var testRange = date.NewRange(date.MustParse("2024-01-01"), date.MustParse("2024-01-31"))

func TestItemsPagination(t *testing.T) {
	srv, hits := newServer(t, map[string]string{
		"/daily_sleep?":   `{"data":[{"day":"2024-01-01","score":80}],"next_token":"p2"}`,
		"/daily_sleep?p2": `{"data":[{"day":"2024-01-02","score":81},{"day":"2024-01-03","score":82}],"next_token":null}`,
	})
	items, err := newTestClient(srv).Items(context.Background(), vitals.Sleep, testRange)
	if err != nil {
		t.Fatalf("Items() unexpected error = %v", err)
	}
	if len(items) != 3 {
		t.Errorf("Items() returned %d items want 3", len(items))
	}
	if hits.Load() != 2 {
		t.Errorf("Items() made %d requests want 2", hits.Load())
	}
}

func TestItemsRepeatedToken(t *testing.T) {
	srv, _ := newServer(t, map[string]string{
		"/daily_sleep?":   `{"data":[],"next_token":"p2"}`,
		"/daily_sleep?p2": `{"data":[],"next_token":"p2"}`,
	})
	if _, err := newTestClient(srv).Items(context.Background(), vitals.Sleep, testRange); err == nil {
		t.Errorf("Items() with a looping pagination must fail")
	}
}

func TestFetchPartialFailure(t *testing.T) {
	srv, _ := newServer(t, map[string]string{
		"/daily_sleep?":    `{"data":[{"day":"2024-01-01","score":80,"contributors":{"total_sleep":25200}}]}`,
		"/daily_activity?": `{"data":[{"day":"2024-01-01","score":70,"steps":5000},{"score":1}]}`,
		// readiness is unauthorized.
	})
	res := newTestClient(srv).Fetch(context.Background(), testRange)

	var status *StatusError
	if !errors.As(res.Errors[vitals.Readiness], &status) || status.StatusCode != http.StatusUnauthorized {
		t.Errorf("Errors[readiness] = %v want a 401 StatusError", res.Errors[vitals.Readiness])
	}
	if res.Err() == nil {
		t.Errorf("Err() = nil want the readiness error")
	}
	if len(res.Series()) != 2 {
		t.Fatalf("Series() has %d series want 2", len(res.Series()))
	}

	tbl, err := Load(context.Background(), newTestClient(srv), testRange)
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}
	d := date.MustParse("2024-01-01")
	if tbl.Len() != 1 {
		t.Errorf("Load().Len() = %d want 1", tbl.Len())
	}
	if v, _ := tbl.Get(d, vitals.Steps).Float64(); v != 5000 {
		t.Errorf("steps = %v want 5000", tbl.Get(d, vitals.Steps))
	}
	if v, _ := tbl.Get(d, vitals.TotalSleepDuration).Float64(); v != 25200 {
		t.Errorf("total_sleep_duration = %v want 25200", tbl.Get(d, vitals.TotalSleepDuration))
	}
	if tbl.Has(vitals.ReadinessScore) {
		t.Errorf("Load() has readiness columns without readiness data")
	}
}

func TestLoadAllFailed(t *testing.T) {
	srv, _ := newServer(t, nil)
	if _, err := Load(context.Background(), newTestClient(srv), testRange); err == nil {
		t.Errorf("Load() with every domain failing must fail")
	}
}

func TestLoadEmpty(t *testing.T) {
	srv, _ := newServer(t, map[string]string{
		"/daily_sleep?":     `{"data":[]}`,
		"/daily_activity?":  `{"data":[]}`,
		"/daily_readiness?": `{"data":[]}`,
	})
	tbl, err := Load(context.Background(), newTestClient(srv), testRange)
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("Load().Len() = %d want 0", tbl.Len())
	}
}

func TestItemsCancelled(t *testing.T) {
	srv, _ := newServer(t, map[string]string{"/daily_sleep?": `{"data":[]}`})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newTestClient(srv)
	if _, err := c.Items(ctx, vitals.Sleep, testRange); err == nil {
		t.Errorf("Items() with a cancelled context must fail")
	}
}

func TestDiskCache(t *testing.T) {
	srv, hits := newServer(t, map[string]string{"/daily_sleep?": `{"data":[{"day":"2024-01-01"}]}`})
	c := newTestClient(srv)
	c.HTTP = &http.Client{Transport: &diskCache{base: srv.Client().Transport, dir: t.TempDir()}}

	for range 2 {
		items, err := c.Items(context.Background(), vitals.Sleep, testRange)
		if err != nil {
			t.Fatalf("Items() unexpected error = %v", err)
		}
		if len(items) != 1 {
			t.Errorf("Items() returned %d items want 1", len(items))
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server received %d requests want 1", hits.Load())
	}
}

func TestLimiterOnCacheMiss(t *testing.T) {
	srv, hits := newServer(t, map[string]string{"/daily_sleep?": `{"data":[{"day":"2024-01-01"}]}`})
	c := newTestClient(srv)
	c.HTTP = &http.Client{Transport: &diskCache{base: srv.Client().Transport, dir: t.TempDir()}}
	// a single request per hour.
	c.Limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	if _, err := c.Items(context.Background(), vitals.Sleep, testRange); err != nil {
		t.Fatalf("Items() unexpected error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := c.Items(ctx, vitals.Sleep, testRange); err != nil {
		t.Errorf("Items() from the cache must not wait for the limiter: %v", err)
	}
	other := date.NewRange(date.MustParse("2024-02-01"), date.MustParse("2024-02-29"))
	if _, err := c.Items(ctx, vitals.Sleep, other); err == nil {
		t.Errorf("Items() missing the cache must wait for the limiter")
	}
	if hits.Load() != 1 {
		t.Errorf("server received %d requests want 1", hits.Load())
	}
}

func TestEndpoint(t *testing.T) {
	for d, want := range map[vitals.Domain]string{
		vitals.Sleep:     "daily_sleep",
		vitals.Activity:  "daily_activity",
		vitals.Readiness: "daily_readiness",
	} {
		if got := Endpoint(d); got != want {
			t.Errorf("Endpoint(%v) = %q want %q", d, got, want)
		}
	}
}
