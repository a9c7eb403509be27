package renderer

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/tstivers/portfolio"
)

// validReport returns the json fields of a complete report, to be broken by each test case.
func validReport() map[string]any {
	return map[string]any{
		"title":          "Portfolio Report",
		"date":           "2024-01-02",
		"total":          1234.5,
		"difference":     34.5,
		"pct_difference": 2.87,
		"days":           10,
		"rank_change":    "3rd",
		"rank_value":     "2nd",
		"symbols": map[string]any{
			"AAA": map[string]any{
				"total":          1200,
				"difference":     -5,
				"pct_difference": -1.2,
				"rank_change":    "4th",
				"rank_value":     "2nd",
			},
		},
		"periodic": map[string]any{
			"period":         "Weekly",
			"start":          "2023-12-26",
			"end":            "2024-01-02",
			"difference":     0,
			"pct_difference": 0,
			"changes":        map[string]any{"2023-12-28": map[string]any{"AAA": 10}},
		},
		"table_text": "TABLE",
	}
}

func TestDecodeReport(t *testing.T) {
	f, err := os.Open("testdata/report.json")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r, err := DecodeReport(f)
	if err != nil {
		t.Fatalf("DecodeReport() unexpected error: %v", err)
	}
	if r.Title != "Portfolio Report" || r.Days != 10 || r.RankChange != "3rd" {
		t.Errorf("DecodeReport() = %+v", r)
	}
	if !r.Total.Equal(portfolio.M(1234.5, "")) {
		t.Errorf("Total = %v, want $1,234.50", r.Total)
	}
	changes := r.Periodic.ChangeList()
	if len(changes) != 2 || changes[0].Symbol != "BBB" || changes[1].Symbol != "AAA" {
		t.Errorf("ChangeList() = %v, want BBB then AAA, in document order", changes)
	}
}

func TestDecodeReport_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(m map[string]any)
		raw    string // used instead of the broken report when set
		target error
		field  string
	}{
		{name: "invalid json", raw: `{"title": `, target: ErrStructure, field: ""},
		{name: "not an object", raw: `[1, 2]`, target: ErrStructure, field: ""},
		{name: "missing title", mutate: func(m map[string]any) { delete(m, "title") }, target: ErrFormatting, field: "title"},
		{name: "empty title", mutate: func(m map[string]any) { m["title"] = "" }, target: ErrFormatting, field: "title"},
		{name: "null total", mutate: func(m map[string]any) { m["total"] = nil }, target: ErrFormatting, field: "total"},
		{name: "invalid total", mutate: func(m map[string]any) { m["total"] = "a lot" }, target: ErrFormatting, field: "total"},
		{name: "invalid date", mutate: func(m map[string]any) { m["date"] = "01/02/2024" }, target: ErrFormatting, field: "date"},
		{name: "zero days", mutate: func(m map[string]any) { m["days"] = 0 }, target: ErrFormatting, field: "days"},
		{name: "missing table", mutate: func(m map[string]any) { delete(m, "table_text") }, target: ErrFormatting, field: "table_text"},
		{name: "empty rank", mutate: func(m map[string]any) { m["rank_value"] = "" }, target: ErrFormatting, field: "rank_value"},
		{name: "missing symbols", mutate: func(m map[string]any) { delete(m, "symbols") }, target: ErrStructure, field: "symbols"},
		{name: "symbols not a mapping", mutate: func(m map[string]any) { m["symbols"] = []string{"AAA"} }, target: ErrStructure, field: "symbols"},
		{name: "holding not a mapping", mutate: func(m map[string]any) { m["symbols"] = map[string]any{"AAA": 12} }, target: ErrStructure, field: "symbols.AAA"},
		{
			name:   "holding without total",
			mutate: func(m map[string]any) { delete(m["symbols"].(map[string]any)["AAA"].(map[string]any), "total") },
			target: ErrFormatting,
			field:  "symbols.AAA.total",
		},
		{
			name:   "holding without rank",
			mutate: func(m map[string]any) { m["symbols"].(map[string]any)["AAA"].(map[string]any)["rank_change"] = "" },
			target: ErrFormatting,
			field:  "symbols.AAA.rank_change",
		},
		{name: "periodic not a mapping", mutate: func(m map[string]any) { m["periodic"] = "weekly" }, target: ErrStructure, field: "periodic"},
		{
			name:   "periodic inverted",
			mutate: func(m map[string]any) { m["periodic"].(map[string]any)["start"] = "2024-01-03" },
			target: ErrStructure,
			field:  "periodic",
		},
		{
			name:   "periodic without period",
			mutate: func(m map[string]any) { delete(m["periodic"].(map[string]any), "period") },
			target: ErrFormatting,
			field:  "periodic.period",
		},
		{
			name: "change on an invalid day",
			mutate: func(m map[string]any) {
				m["periodic"].(map[string]any)["changes"] = map[string]any{"yesterday": map[string]any{"AAA": 1}}
			},
			target: ErrFormatting,
			field:  "periodic.changes.yesterday",
		},
		{
			name:   "change not a mapping",
			mutate: func(m map[string]any) { m["periodic"].(map[string]any)["changes"] = map[string]any{"2023-12-28": 1} },
			target: ErrStructure,
			field:  "periodic.changes.2023-12-28",
		},
		{
			name: "invalid shares",
			mutate: func(m map[string]any) {
				m["periodic"].(map[string]any)["changes"] = map[string]any{"2023-12-28": map[string]any{"AAA": "ten"}}
			},
			target: ErrFormatting,
			field:  "periodic.changes.2023-12-28.AAA",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := tc.raw
			if raw == "" {
				m := validReport()
				tc.mutate(m)
				data, err := json.Marshal(m)
				if err != nil {
					t.Fatal(err)
				}
				raw = string(data)
			}

			_, err := DecodeReport(strings.NewReader(raw))
			if !errors.Is(err, tc.target) {
				t.Fatalf("DecodeReport() error = %v, want %v", err, tc.target)
			}
			var field string
			var fe *FormattingError
			var se *StructureError
			switch {
			case errors.As(err, &fe):
				field = fe.Field
			case errors.As(err, &se):
				field = se.Field
			}
			if field != tc.field {
				t.Errorf("DecodeReport() error on field %q, want %q", field, tc.field)
			}
		})
	}
}

func TestDecodeReport_NotAnObject(t *testing.T) {
	testCases := []struct {
		symbols any
		want    string
	}{
		{[]string{}, "not an object, found array"},
		{"AAA", "not an object, found string"},
		{12, "not an object, found number"},
		{true, "not an object, found boolean"},
	}
	for _, tc := range testCases {
		m := validReport()
		m["symbols"] = tc.symbols
		data, err := json.Marshal(m)
		if err != nil {
			t.Fatal(err)
		}
		_, err = DecodeReport(strings.NewReader(string(data)))
		var se *StructureError
		if !errors.As(err, &se) || se.Field != "symbols" {
			t.Fatalf("DecodeReport(symbols=%v) error = %v, want a StructureError on symbols", tc.symbols, err)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("DecodeReport(symbols=%v) error = %q, want it to contain %q", tc.symbols, err, tc.want)
		}
	}
}

func TestDecodeReport_OptionalPeriodic(t *testing.T) {
	for _, periodic := range []any{nil, "absent"} {
		m := validReport()
		if periodic == nil {
			m["periodic"] = nil
		} else {
			delete(m, "periodic")
		}
		data, _ := json.Marshal(m)
		r, err := DecodeReport(strings.NewReader(string(data)))
		if err != nil {
			t.Fatalf("DecodeReport() unexpected error: %v", err)
		}
		if r.Periodic != nil {
			t.Errorf("Periodic = %+v, want nil", r.Periodic)
		}
	}
}

func TestRender_Invalid(t *testing.T) {
	r := testReport(1)
	r.Symbols = nil
	if _, err := Render(r); !errors.Is(err, ErrStructure) {
		t.Errorf("Render() error = %v, want %v", err, ErrStructure)
	}
	r = testReport(1)
	r.Title = ""
	if _, err := Render(r); !errors.Is(err, ErrFormatting) {
		t.Errorf("Render() error = %v, want %v", err, ErrFormatting)
	}
}
