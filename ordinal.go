package portfolio

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// Ordinal returns the english ordinal of n: 1st, 2nd, 3rd, 4th, 11th, 21st.
func Ordinal(n int) string { return humanize.Ordinal(n) }

// Superscript wraps the suffix of an ordinal in a <sup> tag: "3rd" becomes "3<sup>rd</sup>".
//
// Strings without a letter suffix are returned unchanged.
func Superscript(ordinal string) string {
	i := strings.LastIndexAny(ordinal, "0123456789")
	if i < 0 || i == len(ordinal)-1 {
		return ordinal
	}
	return ordinal[:i+1] + "<sup>" + ordinal[i+1:] + "</sup>"
}
