package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
)

// ExportCSV writes the holdings table: a date column then one column of shares per symbol,
// one row for every day the positions changed.
func ExportCSV(w io.Writer, pf *Portfolio) error {
	symbols := pf.Ledger.Symbols()
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"date"}, symbols...)); err != nil {
		return fmt.Errorf("cannot write csv header: %w", err)
	}

	var last []string
	for _, day := range pf.Ledger.Days() {
		row := make([]string, 0, len(symbols))
		for _, s := range symbols {
			row = append(row, pf.Ledger.Position(s, day).String())
		}
		if slices.Equal(row, last) {
			continue // operations that cancel out
		}
		last = row
		if err := cw.Write(append([]string{day.String()}, row...)); err != nil {
			return fmt.Errorf("cannot write csv row for %s: %w", day, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
