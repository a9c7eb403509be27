package renderer

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestHTML(t *testing.T) {
	f, err := os.Open("testdata/report.json")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	r, err := DecodeReport(f)
	if err != nil {
		t.Fatal(err)
	}

	got, err := HTML(r)
	if err != nil {
		t.Fatalf("HTML() unexpected error: %v", err)
	}
	for _, want := range []string{
		"<p>Portfolio Report for January 02</p>",
		"Today was the 3<sup>rd</sup> best day this year, and the 2<sup>nd</sup> best investment balance",
		"Today was the 4<sup>th</sup> best day this year",
		"<li>On 12/28 2.500 shares of BBB were purchased.</li>",
		"<table>",
		"<td>$1,200.00</td>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML() does not contain %q:\n%s", want, got)
		}
	}

	if r.RankChange != "3rd" {
		t.Errorf("HTML() modified the report, RankChange = %q", r.RankChange)
	}
	if h, _ := r.Symbols.Get("AAA"); h.RankChange != "4th" {
		t.Errorf("HTML() modified the report holdings, RankChange = %q", h.RankChange)
	}
}

func TestHTML_Invalid(t *testing.T) {
	r := testReport(0)
	r.Days = 0
	if _, err := HTML(r); !errors.Is(err, ErrFormatting) {
		t.Errorf("HTML() error = %v, want %v", err, ErrFormatting)
	}
}
