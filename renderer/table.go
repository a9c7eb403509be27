package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"
	"github.com/tstivers/portfolio"
	"github.com/tstivers/portfolio/date"
)

const (
	tableDaysBefore = 4
	tableDaysAfter  = 5
)

// Table returns a markdown table of the value of symbols, and their total, on the trading
// days around on. Symbols without any value in that window are left out.
func Table(pf *portfolio.Portfolio, on date.Date, symbols []string) string {
	days := pf.Window(on, tableDaysBefore, tableDaysAfter)

	header := []string{"Symbol"}
	for _, d := range days {
		header = append(header, d.Format("Jan-02"))
	}

	totals := make([]portfolio.Money, len(days))
	for i := range totals {
		totals[i] = portfolio.M(0, pf.Currency)
	}
	rows := [][]string{}
	for _, s := range symbols {
		row := []string{s}
		held := false
		for i, d := range days {
			v := pf.Value(s, d)
			held = held || !v.IsZero()
			totals[i] = totals[i].Add(v)
			row = append(row, v.String())
		}
		if held {
			rows = append(rows, row)
		}
	}
	total := []string{"Total"}
	for _, t := range totals {
		total = append(total, t.String())
	}
	rows = append(rows, total)

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	alignment := []md.TableAlignment{md.AlignLeft}
	for range days {
		alignment = append(alignment, md.AlignRight)
	}
	doc.Table(md.TableSet{
		Alignment: alignment,
		Header:    header,
		Rows:      rows,
	})
	return doc.String()
}

// HoldingsTable returns a markdown table of the position, price and value of every
// declared symbol on a day, followed by the total value.
func HoldingsTable(pf *portfolio.Portfolio, on date.Date) string {
	rows := [][]string{}
	for _, h := range pf.Holdings(on) {
		rows = append(rows, []string{h.Symbol, h.Shares.String(), h.Price.String(), h.Value.String()})
	}
	rows = append(rows, []string{"Total", "", "", pf.Total(on).String()})

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Symbol", "Shares", "Price", "Value"},
		Rows:      rows,
	})
	return doc.String()
}
