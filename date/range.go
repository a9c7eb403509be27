package date

import (
	"fmt"
	"time"
)

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains reports whether date is within the range.
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of calendar days in the range.
func (r Range) Days() int {
	return int(r.To.time().Sub(r.From.time())/Day) + 1
}

// String returns "from..to".
func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }

// Period returns the standard period exactly covered by r, if any.
func (r Range) Period() (Period, bool) {
	if r.From == r.To {
		return Daily, true
	}
	for _, p := range []Period{Weekly, Monthly, Quarterly, Yearly} {
		if r == p.Range(r.From) {
			return p, true
		}
	}
	return Daily, false
}

// Name is the period name of r, or "special".
func (r Range) Name() string {
	if p, ok := r.Period(); ok {
		return p.String()
	}
	return "special"
}

// Identifier is a short unique label of r: "2025-09-08", "2025-W37", "2025-09",
// "2025-Q3", "2025" or "from_to" for non standard ranges.
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
	from := r.From
	switch p {
	case Weekly:
		year, week := from.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return from.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", from.Year(), (from.Month()-time.January)/3+1)
	case Yearly:
		return from.Format("2006")
	default:
		return from.String()
	}
}
