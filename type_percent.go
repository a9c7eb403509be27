package portfolio

import (
	"fmt"
	"math"
)

// Percent is a percentage, 2.5 means 2.5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

func (p Percent) Abs() Percent { return Percent(math.Abs(float64(p))) }

// String formats the value with two decimals, without the percent sign.
func (p Percent) String() string {
	return fmt.Sprintf("%.2f", float64(p))
}
