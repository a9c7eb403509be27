package agent

import (
	"context"
	"fmt"

	"github.com/tstivers/portfolio"
	"github.com/tstivers/portfolio/date"
	"github.com/tstivers/portfolio/docs"
	"github.com/tstivers/portfolio/renderer"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

const instruction = `You are a financial analyst commenting the user's portfolio of funds.
Use the tools to read the daily report and the holdings before answering.
Answer in a few sentences, quote the figures of the report, and never invent a figure.
Dates are relative to today, %s.`

// NewAnalyst returns the expert commenting pf, with model (DefaultModel when empty).
func NewAnalyst(model string, pf *portfolio.Portfolio, today date.Date) *Expert {
	if model == "" {
		model = DefaultModel
	}
	lib := Functions(pf, today)
	return &Expert{
		Name:      "Analyst",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: fmt.Sprintf(instruction, today)}}},
		},
		Library: NewLibrary(lib),
	}
}

// Functions returns the functions reading pf, relative dates are relative to today.
func Functions(pf *portfolio.Portfolio, today date.Date) []*Func {
	dateParam := map[string]*genai.Schema{
		"date": {
			Type:        genai.TypeString,
			Description: "The day, today by default. Formats:\n\n" + dateTopic(),
		},
	}
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "get_report",
				Description: "Returns the daily report of the portfolio: total value, change since the previous trading day, rankings, per fund details and a table of the values around the day.",
				Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: dateParam},
				Response:    &genai.Schema{Type: genai.TypeString, Description: "The report in markdown."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				on, err := parseDate(args, today)
				if err != nil {
					return "", err
				}
				r, err := renderer.NewReport(pf, on, renderer.Options{})
				if err != nil {
					return "", err
				}
				return renderer.Render(r)
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "list_holdings",
				Description: "Lists the funds of the portfolio with their number of shares, close price and value on a day.",
				Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: dateParam},
				Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown table of the holdings."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				on, err := parseDate(args, today)
				if err != nil {
					return "", err
				}
				day, err := pf.Nearest(on)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Holdings on %s\n\n%s", day, renderer.HoldingsTable(pf, day)), nil
			},
		},
	}
}

func dateTopic() string {
	s, err := docs.GetTopic("dates")
	if err != nil {
		return "YYYY-MM-DD"
	}
	return s
}

// parseDate reads the optional "date" argument.
func parseDate(args map[string]any, today date.Date) (date.Date, error) {
	v, ok := args["date"]
	if !ok || v == "" {
		return today, nil
	}
	s, ok := v.(string)
	if !ok {
		return today, fmt.Errorf("argument 'date' is a %T, want a string", v)
	}
	on, err := date.Parse(s)
	if err != nil {
		return today, fmt.Errorf("argument 'date' must be a valid date got %q: %w", s, err)
	}
	return on, nil
}
