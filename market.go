package portfolio

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/tstivers/portfolio/date"
)

// MarketData holds the daily close prices of a set of symbols.
type MarketData struct {
	prices map[string]*date.History[decimal.Decimal]
}

// NewMarketData returns a new empty market data collection.
func NewMarketData() *MarketData {
	return &MarketData{prices: make(map[string]*date.History[decimal.Decimal])}
}

// Has returns true if at least one price is known for symbol.
func (m *MarketData) Has(symbol string) bool {
	_, ok := m.prices[NormalizeSymbol(symbol)]
	return ok
}

// Symbols returns the symbols with prices, in alphabetical order.
func (m *MarketData) Symbols() []string {
	return slices.Sorted(maps.Keys(m.prices))
}

// Append records the close price of symbol on a day. An existing price is overwritten.
func (m *MarketData) Append(symbol string, on date.Date, price decimal.Decimal) {
	symbol = NormalizeSymbol(symbol)
	h, ok := m.prices[symbol]
	if !ok {
		h = new(date.History[decimal.Decimal])
		m.prices[symbol] = h
	}
	h.Append(on, price)
}

// Close returns the close price of symbol on that exact day.
func (m *MarketData) Close(symbol string, on date.Date) (decimal.Decimal, bool) {
	h, ok := m.prices[NormalizeSymbol(symbol)]
	if !ok {
		return decimal.Zero, false
	}
	return h.Get(on)
}

// Price returns the last close price of symbol on or before the day.
func (m *MarketData) Price(symbol string, on date.Date) (decimal.Decimal, bool) {
	h, ok := m.prices[NormalizeSymbol(symbol)]
	if !ok {
		return decimal.Zero, false
	}
	return h.ValueAsOf(on)
}

// Latest returns the day of the last known price of symbol, and false if there is none.
func (m *MarketData) Latest(symbol string) (date.Date, bool) {
	h, ok := m.prices[NormalizeSymbol(symbol)]
	if !ok || h.Len() == 0 {
		return date.Date{}, false
	}
	on, _ := h.Latest()
	return on, true
}

// Covers returns true if every symbol has a close price on the day.
func (m *MarketData) Covers(on date.Date, symbols ...string) bool {
	for _, s := range symbols {
		if _, ok := m.Close(s, on); !ok {
			return false
		}
	}
	return true
}

// Days returns every day with at least one price, in chronological order.
func (m *MarketData) Days() []date.Date {
	histories := make([]*date.History[decimal.Decimal], 0, len(m.prices))
	for _, s := range m.Symbols() {
		histories = append(histories, m.prices[s])
	}
	return slices.Collect(date.Iterate(histories...))
}

// Merge copies every price of other into m, other wins on conflicts.
func (m *MarketData) Merge(other *MarketData) {
	for symbol, h := range other.prices {
		for on, price := range h.Values() {
			m.Append(symbol, on, price)
		}
	}
}
