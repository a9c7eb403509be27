// Package eodhd fetches close prices from the EOD Historical Data API (https://eodhd.com).
package eodhd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/phuslu/log"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the address of the EODHD API.
const DefaultBaseURL = "https://eodhd.com"

// DefaultExchange is the exchange suffix of tickers without one.
const DefaultExchange = "US"

// ErrNoAPIKey is returned when the client has no API key.
var ErrNoAPIKey = errors.New("missing eodhd api key")

// Client is an EODHD API client. Requests are rate limited and cached on disk for the day.
type Client struct {
	APIKey   string
	BaseURL  string
	Exchange string
	HTTP     *http.Client
	Limiter  *rate.Limiter
	// Concurrency bounds the number of symbols fetched at once by Update.
	Concurrency int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API address, used to test against a local server.
func WithBaseURL(u string) Option { return func(c *Client) { c.BaseURL = strings.TrimSuffix(u, "/") } }

// WithHTTPClient replaces the caching http client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.HTTP = h } }

// WithRate limits the client to rps requests per second, 0 disables the limit.
func WithRate(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.Limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.Limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithExchange sets the exchange suffix of tickers without one.
func WithExchange(exchange string) Option {
	return func(c *Client) {
		if exchange != "" {
			c.Exchange = strings.ToUpper(exchange)
		}
	}
}

// WithCacheDir stores the cached responses in dir.
func WithCacheDir(dir string) Option {
	return func(c *Client) {
		if t, ok := c.HTTP.Transport.(*diskCache); ok {
			t.dir = dir
		}
	}
}

// New returns a client with a daily disk cache, limited to 5 requests per second.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		APIKey:      apiKey,
		BaseURL:     DefaultBaseURL,
		Exchange:    DefaultExchange,
		HTTP:        &http.Client{Transport: &diskCache{base: http.DefaultTransport}},
		Limiter:     rate.NewLimiter(5, 1),
		Concurrency: 4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ticker returns the EODHD ticker of a symbol: "aaa" is "AAA.US".
func (c *Client) Ticker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + "." + c.Exchange
}

// jwget sends a rate limited GET to the API path and unmarshals the JSON response into data.
func (c *Client) jwget(ctx context.Context, path string, query url.Values, data any) error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}
	if err := c.Limiter.Wait(ctx); err != nil {
		return err
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_token", c.APIKey)
	query.Set("fmt", "json")
	addr := c.BaseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, data); err != nil {
		return fmt.Errorf("invalid response from %v: %w", req.URL.Path, err)
	}
	log.Debug().Str("path", req.URL.Path).Int("bytes", len(body)).Msg("eodhd response")
	return nil
}
