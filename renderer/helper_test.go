package renderer

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tstivers/portfolio"
	"github.com/tstivers/portfolio/date"
)

// testPortfolio returns a portfolio of two symbols:
//
//	          AAA (10, +2 on 01-04)   BBB (5)   Total
//	01-02     10                      20        200
//	01-03     11                      20        210
//	01-04     10.5                    19        221
//	01-05     12                      21        249
//	01-09     12                      21        249
func testPortfolio(t *testing.T) *portfolio.Portfolio {
	t.Helper()
	ledger := portfolio.NewLedger()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected ledger error: %v", err)
		}
	}
	must(ledger.Declare("AAA", portfolio.Q(10), date.MustParse("2024-01-02")))
	must(ledger.Declare("BBB", portfolio.Q(5), date.MustParse("2024-01-02")))
	must(ledger.Add("AAA", portfolio.Q(2), date.MustParse("2024-01-04")))

	market := portfolio.NewMarketData()
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
	return portfolio.New(ledger, market, "USD")
}

// usd is a helper for test to create usd money from cents.
func usd(cents int64) portfolio.Money { return portfolio.M(decimal.New(cents, -2), "USD") }

// testReport returns a complete report with n symbols, named S0, S1...
func testReport(n int) *Report {
	r := &Report{
		Title:         DefaultTitle,
		Date:          date.New(2024, 1, 2),
		Total:         usd(123450),
		Difference:    usd(3450),
		PctDifference: 2.87,
		Days:          10,
		RankChange:    "3rd",
		RankValue:     "2nd",
		Symbols:       NewSymbols(),
		TableText:     "TABLE",
	}
	for i := range n {
		r.Symbols.Set(fmt.Sprintf("S%d", i), Holding{
			Total:         usd(100000),
			Difference:    usd(-500),
			PctDifference: -1.2,
			RankChange:    "4th",
			RankValue:     "2nd",
		})
	}
	return r
}
