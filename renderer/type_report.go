package renderer

import (
	"github.com/tstivers/portfolio"
	"github.com/tstivers/portfolio/date"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Report is the model of a portfolio report: the values of all holdings on a day,
// their change since the previous day, and how the day ranks among this year's days.
type Report struct {
	Title         string                                  `json:"title"`
	Date          date.Date                               `json:"date"`
	Total         portfolio.Money                         `json:"total"`
	Difference    portfolio.Money                         `json:"difference"`
	PctDifference portfolio.Percent                       `json:"pct_difference"`
	Days          int                                     `json:"days"`
	RankChange    string                                  `json:"rank_change"`
	RankValue     string                                  `json:"rank_value"`
	Periodic      *Periodic                               `json:"periodic,omitempty"`
	Symbols       *orderedmap.OrderedMap[string, Holding] `json:"symbols"`
	TableText     string                                  `json:"table_text"`
}

// Periodic summarizes a range of days, like the last week.
type Periodic struct {
	Period        string            `json:"period"`
	Start         date.Date         `json:"start"`
	End           date.Date         `json:"end"`
	Difference    portfolio.Money   `json:"difference"`
	PctDifference portfolio.Percent `json:"pct_difference"`
	// Changes are the shares transacted, by day then by symbol.
	Changes *orderedmap.OrderedMap[date.Date, *orderedmap.OrderedMap[string, portfolio.Quantity]] `json:"changes,omitempty"`
}

// Holding is the part of the report about a single symbol.
type Holding struct {
	Total         portfolio.Money   `json:"total"`
	Difference    portfolio.Money   `json:"difference"`
	PctDifference portfolio.Percent `json:"pct_difference"`
	RankChange    string            `json:"rank_change"`
	RankValue     string            `json:"rank_value"`
}

// NamedHolding is a Holding with its symbol.
type NamedHolding struct {
	Symbol string
	Holding
}

// ShareChange is a number of shares of a symbol transacted on a day.
type ShareChange struct {
	On     date.Date
	Symbol string
	Shares portfolio.Quantity
}

// NewSymbols returns an empty ordered collection of holdings.
func NewSymbols() *orderedmap.OrderedMap[string, Holding] {
	return orderedmap.New[string, Holding]()
}

// NewChanges returns an empty ordered collection of share changes.
func NewChanges() *orderedmap.OrderedMap[date.Date, *orderedmap.OrderedMap[string, portfolio.Quantity]] {
	return orderedmap.New[date.Date, *orderedmap.OrderedMap[string, portfolio.Quantity]]()
}

// AddChange appends a share change, keeping days and symbols in insertion order.
func (p *Periodic) AddChange(on date.Date, symbol string, shares portfolio.Quantity) {
	if p.Changes == nil {
		p.Changes = NewChanges()
	}
	day, ok := p.Changes.Get(on)
	if !ok {
		day = orderedmap.New[string, portfolio.Quantity]()
		p.Changes.Set(on, day)
	}
	day.Set(symbol, shares)
}

// Holdings returns the symbols of the report in their display order.
func (r *Report) Holdings() []NamedHolding {
	if r.Symbols == nil {
		return nil
	}
	list := make([]NamedHolding, 0, r.Symbols.Len())
	for pair := r.Symbols.Oldest(); pair != nil; pair = pair.Next() {
		list = append(list, NamedHolding{Symbol: pair.Key, Holding: pair.Value})
	}
	return list
}

// ChangeList returns the share changes in their display order.
func (p *Periodic) ChangeList() []ShareChange {
	if p.Changes == nil {
		return nil
	}
	var list []ShareChange
	for day := p.Changes.Oldest(); day != nil; day = day.Next() {
		if day.Value == nil {
			continue
		}
		for s := day.Value.Oldest(); s != nil; s = s.Next() {
			list = append(list, ShareChange{On: day.Key, Symbol: s.Key, Shares: s.Value})
		}
	}
	return list
}

// Change is a change line: the sign of the difference picks the wording.
type Change struct {
	Difference    portfolio.Money   `json:"difference"`
	PctDifference portfolio.Percent `json:"pct_difference"`
	// Span completes the sentence, like "since the previous day".
	Span string `json:"span"`
	// FoldZero renders a zero difference as an increase instead of "no change".
	FoldZero bool `json:"fold_zero"`
}

// Increase returns true when the line reports an increase.
func (c Change) Increase() bool {
	return c.Difference.IsPositive() || (c.FoldZero && c.Difference.IsZero())
}

// Decrease returns true when the line reports a decrease.
func (c Change) Decrease() bool { return c.Difference.IsNegative() }

// Amount is the absolute value of the difference.
func (c Change) Amount() portfolio.Money { return c.Difference.Abs() }

// Pct is the percent to print: absolute for a decrease, as is otherwise.
func (c Change) Pct() portfolio.Percent {
	if c.Decrease() {
		return c.PctDifference.Abs()
	}
	return c.PctDifference
}

// Ranking is a ranking line.
type Ranking struct {
	RankChange string `json:"rank_change"`
	RankValue  string `json:"rank_value"`
	Days       int    `json:"days"`
}
