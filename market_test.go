package portfolio

import (
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tstivers/portfolio/date"
)

func TestMarketData(t *testing.T) {
	m := NewMarketData()
	m.Append("aaa", date.MustParse("2024-01-03"), decimal.NewFromInt(11))
	m.Append("AAA", date.MustParse("2024-01-02"), decimal.NewFromInt(10))
	m.Append("BBB", date.MustParse("2024-01-02"), decimal.NewFromInt(20))

	if !m.Has("aaa") || m.Has("CCC") {
		t.Errorf("Has() mismatch")
	}
	if got := m.Symbols(); !slices.Equal(got, []string{"AAA", "BBB"}) {
		t.Errorf("Symbols() = %v", got)
	}
	wantDays := []date.Date{date.MustParse("2024-01-02"), date.MustParse("2024-01-03")}
	if got := m.Days(); !slices.Equal(got, wantDays) {
		t.Errorf("Days() = %v, want %v", got, wantDays)
	}
	if _, ok := m.Close("BBB", date.MustParse("2024-01-03")); ok {
		t.Error("Close(BBB, 01-03) found a price")
	}
	if p, ok := m.Price("BBB", date.MustParse("2024-01-05")); !ok || !p.Equal(decimal.NewFromInt(20)) {
		t.Errorf("Price(BBB, 01-05) = %v, %v want 20", p, ok)
	}
	if _, ok := m.Price("BBB", date.MustParse("2024-01-01")); ok {
		t.Error("Price() before the first price found a price")
	}
	if on, ok := m.Latest("AAA"); !ok || on != date.MustParse("2024-01-03") {
		t.Errorf("Latest(AAA) = %s, %v", on, ok)
	}
	if m.Covers(date.MustParse("2024-01-03"), "AAA", "BBB") || !m.Covers(date.MustParse("2024-01-02"), "AAA", "BBB") {
		t.Error("Covers() mismatch")
	}
}

func TestMarketData_Merge(t *testing.T) {
	m := NewMarketData()
	m.Append("AAA", date.MustParse("2024-01-02"), decimal.NewFromInt(10))
	m.Append("AAA", date.MustParse("2024-01-03"), decimal.NewFromInt(11))

	other := NewMarketData()
	other.Append("AAA", date.MustParse("2024-01-03"), decimal.NewFromInt(12))
	other.Append("CCC", date.MustParse("2024-01-04"), decimal.NewFromInt(1))
	m.Merge(other)

	testCases := []struct {
		symbol, on string
		want       int64
	}{
		{"AAA", "2024-01-02", 10},
		{"AAA", "2024-01-03", 12}, // other wins
		{"CCC", "2024-01-04", 1},
	}
	for _, tc := range testCases {
		if p, ok := m.Close(tc.symbol, date.MustParse(tc.on)); !ok || !p.Equal(decimal.NewFromInt(tc.want)) {
			t.Errorf("Close(%s, %s) = %v, %v want %d", tc.symbol, tc.on, p, ok, tc.want)
		}
	}
	if got := len(m.Days()); got != 3 {
		t.Errorf("len(Days()) = %d, want 3", got)
	}
}
