package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tstivers/portfolio/date"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// testPortfolio returns a small portfolio:
//
//	          AAA (10, +2 on 01-04)   BBB (5)   Total
//	01-02     10                      20        200
//	01-03     11                      20        210
//	01-04     10.5                    19        221
//	01-05     12                      21        249
//	01-09     12                      21        249
func testPortfolio(t *testing.T) *Portfolio {
	t.Helper()
	ledger := NewLedger()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected ledger error: %v", err)
		}
	}
	must(ledger.Declare("AAA", Q(10), date.MustParse("2024-01-02")))
	must(ledger.Declare("BBB", Q(5), date.MustParse("2024-01-02")))
	must(ledger.Add("AAA", Q(2), date.MustParse("2024-01-04")))

	market := NewMarketData()
	prices := []struct {
		on       string
		aaa, bbb float64
	}{
		{"2023-12-29", 9, 20},
		{"2024-01-02", 10, 20},
		{"2024-01-03", 11, 20},
		{"2024-01-04", 10.5, 19},
		{"2024-01-05", 12, 21},
		{"2024-01-09", 12, 21},
	}
	for _, p := range prices {
		on := date.MustParse(p.on)
		market.Append("AAA", on, decimal.NewFromFloat(p.aaa))
		market.Append("BBB", on, decimal.NewFromFloat(p.bbb))
	}
	return New(ledger, market, "USD")
}
