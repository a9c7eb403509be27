package eodhd

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/phuslu/log"
	"github.com/tstivers/portfolio/date"
)

// diskCache is an http.RoundTripper keeping successful responses on disk for the
// current period, so the same query is sent at most once a day by default.
type diskCache struct {
	base   http.RoundTripper
	dir    string      // os.TempDir() when empty
	period date.Period // Daily by default
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.base.RoundTrip(req)
	}
	key := c.key(req)
	if resp, err := c.get(key, req); err == nil {
		log.Debug().Str("url", req.URL.Path).Msg("cache hit")
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Int("status", resp.StatusCode).Msg("http request")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		log.Warn().Err(err).Msg("cache write failed (ignored)")
	}
	return resp, nil
}

// key is unique per request and per period, so that entries expire with the period.
func (c *diskCache) key(req *http.Request) string {
	r := c.period.Range(date.Today())
	sum := sha1.Sum([]byte(fmt.Sprintf("%s %s %s", r.Identifier(), req.Method, req.URL.String())))
	return fmt.Sprintf("eodhd-%s-%x", r.Name(), sum)
}

func (c *diskCache) file(key string) string {
	dir := c.dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, key)
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(c.file(key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores a response to disk, the response body remains readable.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(c.file(key), content, 0o644)
}
