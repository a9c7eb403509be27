package date

import (
	"fmt"
	"strings"
)

// Period is a standard reporting period.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Range returns the Range of the period containing the date d.
func (p Period) Range(d Date) Range {
	return Range{From: d.StartOf(p), To: d.EndOf(p)}
}

// ToDate returns the range from the start of the period containing d up to d.
func (p Period) ToDate(d Date) Range {
	return Range{From: d.StartOf(p), To: d}
}

// Trailing returns the range of one period ending on d, like the last 7 days for Weekly.
func (p Period) Trailing(d Date) Range {
	switch p {
	case Daily:
		return Range{From: d.Add(-1), To: d}
	case Weekly:
		return Range{From: d.Add(-7), To: d}
	case Monthly:
		return Range{From: New(d.Year(), d.Month()-1, d.Day()), To: d}
	case Quarterly:
		return Range{From: New(d.Year(), d.Month()-3, d.Day()), To: d}
	case Yearly:
		return Range{From: New(d.Year()-1, d.Month(), d.Day()), To: d}
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %s", p)
	}
}
