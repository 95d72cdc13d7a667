package ouraapi

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/vitals/date"
	"github.com/rs/zerolog/log"
)

// StatusError is returned when the API answers with a non-success status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot http GET %s: %s", e.Endpoint, e.Status)
}

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
	dir  string // defaults to os.TempDir()
}

// RoundTrip implements the http.RoundTripper interface. It checks for a cached
// response on disk first. If a fresh cached response is not found, it proceeds
// with the actual HTTP request and caches the new response if it's successful.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	key := c.key(req)
	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		log.Debug().Err(err).Msg("cache write err (ignored)")
	}
	return resp, nil
}

// key returns the cache entry name of req.
func (c *diskCache) key(req *http.Request) string {
	// diskcache implements a unique key per day, so the local tmp expires every day.
	// The credentials are part of the key: two accounts never share an entry.
	key := fmt.Sprintf("%s %s %s %s", date.Today(), req.Method, req.URL, req.Header.Get("Authorization"))
	return fmt.Sprintf("vitals-%x", sha1.Sum([]byte(key)))
}

// has reports whether a response to req is cached.
func (c *diskCache) has(req *http.Request) bool {
	_, err := os.Stat(c.file(c.key(req)))
	return err == nil
}

// cached reports whether client answers req from its disk cache.
func cached(client *http.Client, req *http.Request) bool {
	dc, ok := client.Transport.(*diskCache)
	return ok && dc.has(req)
}

func (c *diskCache) file(key string) string {
	dir := c.dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, key)
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(c.file(key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(c.file(key))
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// newDailyCachingClient returns an http.Client that uses a disk cache where entries expire daily.
func newDailyCachingClient() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{base: http.DefaultTransport}
	return client
}

// jwget performs the HTTP request and unmarshals the JSON response body into the provided data
// structure. Numbers are decoded as json.Number.
func jwget(client *http.Client, req *http.Request, data any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &StatusError{
			Endpoint:   resp.Request.URL.Host + resp.Request.URL.Path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("cannot decode %s: %w", req.URL.Path, err)
	}
	return nil
}
