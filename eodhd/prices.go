package eodhd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
	"github.com/tstivers/portfolio"
	"github.com/tstivers/portfolio/date"
	"golang.org/x/sync/errgroup"
)

// Prices returns the daily close prices of symbol over r, bounds included.
func (c *Client) Prices(ctx context.Context, symbol string, r date.Range) (*date.History[decimal.Decimal], error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json&from=2024-02-01&to=2024-02-13
	// [{"date": "2024-02-13", "open": 675.066, "high": 684.219, "low": 648.659, "close": 668.445, ...}]
	type eod struct {
		Date  date.Date       `json:"date"`
		Close decimal.Decimal `json:"close"`
	}
	query := url.Values{"from": {r.From.String()}, "to": {r.To.String()}}
	var content []eod
	if err := c.jwget(ctx, "/api/eod/"+url.PathEscape(c.Ticker(symbol)), query, &content); err != nil {
		return nil, fmt.Errorf("cannot fetch prices of %s: %w", symbol, err)
	}

	h := new(date.History[decimal.Decimal])
	for _, e := range content {
		if r.Contains(e.Date) {
			h.Append(e.Date, e.Close)
		}
	}
	return h, nil
}

// Latest returns the last price of symbol, possibly delayed, during market hours.
func (c *Client) Latest(ctx context.Context, symbol string) (decimal.Decimal, error) {
	// https://eodhd.com/api/real-time/AAPL.US?api_token=demo&fmt=json
	// {"code": "AAPL.US", "timestamp": 1704316800, "close": 184.25, ...}
	var jobj any
	if err := c.jwget(ctx, "/api/real-time/"+url.PathEscape(c.Ticker(symbol)), nil, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("cannot fetch latest price of %s: %w", symbol, err)
	}
	path := "$.close"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing latest price of %s: %q %w", symbol, path, err)
	}
	// jsonpath may return a list of one answer, keep the first one.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Zero, fmt.Errorf("error parsing latest price of %s: %q is not a number: %v", symbol, path, jval)
	}
	return decimal.NewFromFloat(val), nil
}

// lastClose is the last day a close price can be published for, as of r.To.
func lastClose(r date.Range) date.Date {
	end := r.To
	if today := date.Today(); !end.Before(today) {
		end = today.PreviousBusinessDay()
	}
	for end.IsWeekend() {
		end = end.Add(-1)
	}
	return end
}

// Update fetches the missing close prices of symbols over r and merges them into market.
//
// Symbols are fetched concurrently. Nothing is fetched when market already has a
// price for every symbol on the last business day. It returns the number of prices added.
func (c *Client) Update(ctx context.Context, market *portfolio.MarketData, symbols []string, r date.Range) (int, error) {
	end := lastClose(r)
	if market.Covers(end, symbols...) {
		log.Info().Str("day", end.String()).Msg("market data is up to date")
		return 0, nil
	}

	fetched := make([]*date.History[decimal.Decimal], len(symbols))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Concurrency, 1))
	for i, symbol := range symbols {
		from := r.From
		if last, ok := market.Latest(symbol); ok && !last.Before(from) {
			from = last.Add(1)
		}
		if from.After(end) {
			continue
		}
		g.Go(func() error {
			h, err := c.Prices(ctx, symbol, date.NewRange(from, end))
			if err != nil {
				return err
			}
			log.Info().Str("symbol", symbol).Str("from", from.String()).Str("to", end.String()).Int("prices", h.Len()).Msg("fetched prices")
			fetched[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	n := 0
	for i, h := range fetched {
		if h == nil {
			continue
		}
		for on, price := range h.Values() {
			market.Append(symbols[i], on, price)
			n++
		}
	}
	return n, nil
}
