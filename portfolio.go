package portfolio

import (
	"fmt"
	"slices"
	"sort"

	"github.com/phuslu/log"
	"github.com/tstivers/portfolio/date"
)

// Portfolio values the holdings of a ledger with the close prices of a market data.
//
// Values are expressed in a single currency, symbol "" stands for the sum of all
// holdings in every valuation method.
type Portfolio struct {
	Ledger   *Ledger
	Market   *MarketData
	Currency string
}

// New returns a Portfolio valued in currency.
func New(ledger *Ledger, market *MarketData, currency string) *Portfolio {
	return &Portfolio{Ledger: ledger, Market: market, Currency: currency}
}

// Symbols returns the declared symbols in declaration order.
func (p *Portfolio) Symbols() []string { return p.Ledger.Symbols() }

// Days returns the trading days on or after the first holding operation.
func (p *Portfolio) Days() []date.Date {
	days := p.Market.Days()
	start, ok := p.Ledger.Start()
	if !ok {
		return nil
	}
	i := sort.Search(len(days), func(i int) bool { return !days[i].Before(start) })
	return days[i:]
}

// Nearest returns the trading day closest to on. Ties go to the earlier day.
func (p *Portfolio) Nearest(on date.Date) (date.Date, error) {
	days := p.Days()
	if len(days) == 0 {
		return date.Date{}, ErrNoData
	}
	i, found := slices.BinarySearchFunc(days, on, date.Date.Compare)
	switch {
	case found:
		return days[i], nil
	case i == 0:
		return days[0], nil
	case i == len(days):
		return days[i-1], nil
	}
	before, after := days[i-1], days[i]
	if date.NewRange(before, on).Days() <= date.NewRange(on, after).Days() {
		return before, nil
	}
	return after, nil
}

// Price returns the last close price of symbol on or before the day.
func (p *Portfolio) Price(symbol string, on date.Date) (Money, error) {
	price, ok := p.Market.Price(symbol, on)
	if !ok {
		return Money{}, fmt.Errorf("%w for %s on %s", ErrNoPrice, NormalizeSymbol(symbol), on)
	}
	return M(price, p.Currency), nil
}

// Value returns the value of the position in symbol at the end of the day.
//
// A position without any known price is worth zero.
func (p *Portfolio) Value(symbol string, on date.Date) Money {
	if symbol == "" {
		return p.Total(on)
	}
	shares := p.Ledger.Position(symbol, on)
	if shares.IsZero() {
		return M(0, p.Currency)
	}
	price, err := p.Price(symbol, on)
	if err != nil {
		log.Debug().Err(err).Msg("position valued at zero")
		return M(0, p.Currency)
	}
	return price.Mul(shares)
}

// Total returns the value of all holdings at the end of the day.
func (p *Portfolio) Total(on date.Date) Money {
	total := M(0, p.Currency)
	for _, s := range p.Ledger.Symbols() {
		total = total.Add(p.Value(s, on))
	}
	return total
}

// previous returns the trading day before on, and false if there is none.
func previous(days []date.Date, on date.Date) (date.Date, bool) {
	i, _ := slices.BinarySearchFunc(days, on, date.Date.Compare)
	if i == 0 {
		return date.Date{}, false
	}
	return days[i-1], true
}

// difference is Difference with the trading days already computed.
func (p *Portfolio) difference(days []date.Date, symbol string, on date.Date) Money {
	prev, ok := previous(days, on)
	if !ok {
		return M(0, p.Currency)
	}
	return p.Value(symbol, on).Sub(p.Value(symbol, prev))
}

// Difference returns the change in value of symbol since the previous trading day.
// It is zero on the first trading day.
func (p *Portfolio) Difference(symbol string, on date.Date) Money {
	return p.difference(p.Days(), symbol, on)
}

// PctDifference returns the percent change in value of symbol since the previous trading day.
// It is zero on the first trading day, or when the previous value was zero.
func (p *Portfolio) PctDifference(symbol string, on date.Date) Percent {
	prev, ok := previous(p.Days(), on)
	if !ok {
		return 0
	}
	return p.Value(symbol, prev).PctChange(p.Value(symbol, on))
}

// YearDays returns the trading days from January 1st of on's year through on.
func (p *Portfolio) YearDays(on date.Date) []date.Date {
	ytd := date.Yearly.ToDate(on)
	var days []date.Date
	for _, d := range p.Days() {
		if ytd.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// rank returns the 1-based rank of the value on the day among the values of all days, in
// descending order. Equal values share the same rank.
func rank(days []date.Date, on date.Date, value func(date.Date) Money) int {
	v := value(on)
	r := 1
	for _, d := range days {
		if value(d).GreaterThan(v) {
			r++
		}
	}
	return r
}

// RankDifference ranks the Difference of symbol on the day among this year's trading days.
func (p *Portfolio) RankDifference(symbol string, on date.Date) int {
	all := p.Days()
	return rank(p.YearDays(on), on, func(d date.Date) Money { return p.difference(all, symbol, d) })
}

// RankValue ranks the Value of symbol on the day among this year's trading days.
func (p *Portfolio) RankValue(symbol string, on date.Date) int {
	return rank(p.YearDays(on), on, func(d date.Date) Money { return p.Value(symbol, d) })
}

// ToShares returns the number of shares of symbol purchasable with cash at the last close price on or before the day.
func (p *Portfolio) ToShares(symbol string, cash Money, on date.Date) (Quantity, error) {
	price, err := p.Price(symbol, on)
	if err != nil {
		return Quantity{}, err
	}
	if price.IsZero() {
		return Quantity{}, fmt.Errorf("%w: %s closed at zero on %s", ErrNoPrice, NormalizeSymbol(symbol), on)
	}
	shares := cash.In(p.Currency).Div(price)
	log.Info().Str("cash", cash.String()).Str("shares", shares.Fixed(3)).Str("symbol", NormalizeSymbol(symbol)).Msg("converted cash to shares")
	return shares, nil
}

// ToCash returns the value of shares of symbol at the last close price on or before the day.
func (p *Portfolio) ToCash(symbol string, shares Quantity, on date.Date) (Money, error) {
	price, err := p.Price(symbol, on)
	if err != nil {
		return Money{}, err
	}
	return price.Mul(shares), nil
}

// AddCash records the purchase of cash worth of symbol.
func (p *Portfolio) AddCash(symbol string, cash Money, on date.Date) error {
	shares, err := p.ToShares(symbol, cash, on)
	if err != nil {
		return err
	}
	return p.Ledger.Add(symbol, shares, on)
}

// RemoveCash records the sale of cash worth of symbol.
func (p *Portfolio) RemoveCash(symbol string, cash Money, on date.Date) error {
	shares, err := p.ToShares(symbol, cash, on)
	if err != nil {
		return err
	}
	return p.Ledger.Remove(symbol, shares, on)
}

// Window returns up to before trading days before on, on itself when it is a trading day,
// and up to after trading days after it.
func (p *Portfolio) Window(on date.Date, before, after int) []date.Date {
	days := p.Days()
	i, found := slices.BinarySearchFunc(days, on, date.Date.Compare)
	from := max(i-before, 0)
	to := i + after
	if found {
		to++
	}
	to = min(to, len(days))
	return days[from:to]
}

// Holding is a position valued on a day.
type Holding struct {
	Symbol string
	Shares Quantity
	Price  Money
	Value  Money
}

// Holdings returns the positions of every declared symbol on the day, in declaration order.
func (p *Portfolio) Holdings(on date.Date) []Holding {
	var list []Holding
	for _, s := range p.Ledger.Symbols() {
		price, _ := p.Price(s, on)
		list = append(list, Holding{
			Symbol: s,
			Shares: p.Ledger.Position(s, on),
			Price:  price,
			Value:  p.Value(s, on),
		})
	}
	return list
}
