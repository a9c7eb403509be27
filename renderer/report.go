package renderer

import (
	"github.com/phuslu/log"
	"github.com/tstivers/portfolio"
	"github.com/tstivers/portfolio/date"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTitle is the title of reports built without one.
const DefaultTitle = "Portfolio Report"

// Options tune NewReport.
type Options struct {
	Title string // DefaultTitle when empty
	// Period adds a summary of the period ending on the report day.
	Period *date.Period
}

// NewReport computes the report of a portfolio on the trading day nearest to on.
//
// Symbols worth nothing on that day are not part of the report.
func NewReport(pf *portfolio.Portfolio, on date.Date, opts Options) (*Report, error) {
	day, err := pf.Nearest(on)
	if err != nil {
		return nil, err
	}
	if day != on {
		log.Info().Str("requested", on.String()).Str("day", day.String()).Msg("reporting on the nearest trading day")
	}

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	r := &Report{
		Title:         title,
		Date:          day,
		Total:         pf.Total(day),
		Difference:    pf.Difference("", day),
		PctDifference: pf.PctDifference("", day),
		Days:          len(pf.YearDays(day)),
		RankChange:    portfolio.Ordinal(pf.RankDifference("", day)),
		RankValue:     portfolio.Ordinal(pf.RankValue("", day)),
		Symbols:       NewSymbols(),
	}

	for _, s := range pf.Symbols() {
		value := pf.Value(s, day)
		if value.IsZero() {
			log.Debug().Str("symbol", s).Msg("symbol not held, skipped")
			continue
		}
		r.Symbols.Set(s, Holding{
			Total:         value,
			Difference:    pf.Difference(s, day),
			PctDifference: pf.PctDifference(s, day),
			RankChange:    portfolio.Ordinal(pf.RankDifference(s, day)),
			RankValue:     portfolio.Ordinal(pf.RankValue(s, day)),
		})
	}

	if opts.Period != nil {
		r.Periodic = newPeriodic(pf, day, *opts.Period)
	}
	held := make([]string, 0, r.Symbols.Len())
	for pair := r.Symbols.Oldest(); pair != nil; pair = pair.Next() {
		held = append(held, pair.Key)
	}
	r.TableText = Table(pf, day, held)
	return r, nil
}

// newPeriodic summarizes the period ending on day. Only purchases are listed as changes.
func newPeriodic(pf *portfolio.Portfolio, day date.Date, period date.Period) *Periodic {
	rng := period.Trailing(day)
	start, end := pf.Total(rng.From), pf.Total(rng.To)
	p := &Periodic{
		Period:        cases.Title(language.English).String(period.String()),
		Start:         rng.From,
		End:           rng.To,
		Difference:    end.Sub(start),
		PctDifference: start.PctChange(end),
	}
	// changes on the first day belong to the previous period.
	for _, c := range pf.Ledger.Changes(date.NewRange(rng.From.Add(1), rng.To)) {
		if c.Shares.IsPositive() {
			p.AddChange(c.On, c.Symbol, c.Shares)
		}
	}
	return p
}
