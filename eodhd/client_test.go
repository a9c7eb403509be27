package eodhd

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tstivers/portfolio"
	"github.com/tstivers/portfolio/date"
)

// fakeAPI serves close prices for any ticker: the close of a day is its day of month.
type fakeAPI struct {
	mu       sync.Mutex
	requests []*http.Request
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.mu.Unlock()

	if r.URL.Query().Get("api_token") != "secret" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	switch {
	case strings.HasPrefix(r.URL.Path, "/api/eod/"):
		from := date.MustParse(r.URL.Query().Get("from"))
		to := date.MustParse(r.URL.Query().Get("to"))
		var list []map[string]any
		// one day early, to check that out of range days are ignored.
		for d := from.Add(-1); !d.After(to); d = d.Add(1) {
			if d.IsWeekend() {
				continue
			}
			list = append(list, map[string]any{"date": d.String(), "open": 1, "close": d.Day()})
		}
		json.NewEncoder(w).Encode(list)
	case r.URL.Path == "/api/real-time/AAA.US":
		io.WriteString(w, `{"code": "AAA.US", "timestamp": 1704316800, "close": 184.25}`)
	case r.URL.Path == "/api/real-time/NA.US":
		io.WriteString(w, `{"code": "NA.US", "close": "NA"}`)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAPI) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var paths []string
	for _, r := range f.requests {
		paths = append(paths, r.URL.Path+" "+r.URL.Query().Get("from"))
	}
	return paths
}

func newTestClient(t *testing.T) (*Client, *fakeAPI) {
	t.Helper()
	api := new(fakeAPI)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return New("secret", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithRate(0)), api
}

func TestClient_Ticker(t *testing.T) {
	c := New("secret")
	assert.Equal(t, "AAA.US", c.Ticker("aaa"))
	assert.Equal(t, "VOD.LSE", c.Ticker("VOD.LSE"))
	assert.Equal(t, "BMW.XETRA", New("secret", WithExchange("xetra")).Ticker("bmw"))
}

func TestClient_Prices(t *testing.T) {
	c, api := newTestClient(t)
	r := date.NewRange(date.MustParse("2024-01-02"), date.MustParse("2024-01-08"))

	h, err := c.Prices(context.Background(), "aaa", r)
	require.NoError(t, err)
	assert.Equal(t, []date.Date{
		date.MustParse("2024-01-02"),
		date.MustParse("2024-01-03"),
		date.MustParse("2024-01-04"),
		date.MustParse("2024-01-05"),
		date.MustParse("2024-01-08"),
	}, h.Days())
	v, ok := h.Get(date.MustParse("2024-01-04"))
	require.True(t, ok)
	assert.True(t, v.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, []string{"/api/eod/AAA.US 2024-01-02"}, api.paths())
}

func TestClient_Latest(t *testing.T) {
	c, _ := newTestClient(t)

	v, err := c.Latest(context.Background(), "AAA")
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.RequireFromString("184.25")), "got %v", v)

	_, err = c.Latest(context.Background(), "NA")
	assert.Error(t, err)

	_, err = c.Latest(context.Background(), "MISSING")
	assert.ErrorContains(t, err, "404")
}

func TestClient_Errors(t *testing.T) {
	c, _ := newTestClient(t)
	r := date.NewRange(date.MustParse("2024-01-02"), date.MustParse("2024-01-03"))

	c.APIKey = ""
	_, err := c.Prices(context.Background(), "AAA", r)
	assert.ErrorIs(t, err, ErrNoAPIKey)

	c.APIKey = "wrong"
	_, err = c.Prices(context.Background(), "AAA", r)
	assert.ErrorContains(t, err, "401")
}

func TestClient_Update(t *testing.T) {
	c, api := newTestClient(t)
	market := portfolio.NewMarketData()
	market.Append("AAA", date.MustParse("2024-01-03"), decimal.NewFromInt(3))

	// 2024-01-07 is a sunday, the last close is on friday.
	r := date.NewRange(date.MustParse("2024-01-02"), date.MustParse("2024-01-07"))
	n, err := c.Update(context.Background(), market, []string{"AAA", "BBB"}, r)
	require.NoError(t, err)
	assert.Equal(t, 6, n) // AAA on 01-04 and 01-05, BBB from 01-02 to 01-05
	assert.ElementsMatch(t, []string{"/api/eod/AAA.US 2024-01-04", "/api/eod/BBB.US 2024-01-02"}, api.paths())
	assert.True(t, market.Covers(date.MustParse("2024-01-05"), "AAA", "BBB"))
	price, ok := market.Close("BBB", date.MustParse("2024-01-02"))
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(2)))

	// up to date, nothing is requested.
	n, err = c.Update(context.Background(), market, []string{"AAA", "BBB"}, r)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, api.paths(), 2)
}

func TestClient_UpdateError(t *testing.T) {
	c, _ := newTestClient(t)
	c.APIKey = "wrong"
	market := portfolio.NewMarketData()
	r := date.NewRange(date.MustParse("2024-01-02"), date.MustParse("2024-01-05"))
	_, err := c.Update(context.Background(), market, []string{"AAA"}, r)
	assert.Error(t, err)
	assert.Empty(t, market.Symbols())
}

func TestDiskCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/fail" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		io.WriteString(w, `{"close": 1}`)
	}))
	defer srv.Close()

	client := &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: t.TempDir()}}
	for range 2 {
		resp, err := client.Get(srv.URL + "/ok")
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, `{"close": 1}`, string(body))
	}
	assert.Equal(t, int32(1), hits.Load(), "second request should be served from the cache")

	for range 2 {
		resp, err := client.Get(srv.URL + "/fail")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	}
	assert.Equal(t, int32(3), hits.Load(), "errors are not cached")
}
