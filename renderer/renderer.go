// Package renderer turns a portfolio report model into text, markdown or HTML.
//
// Rendering is a pure function of the report: it is safe to render independent
// reports concurrently.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/tstivers/portfolio"
)

//go:embed *.md
var templates embed.FS

// funcs are the helpers available to every template.
var funcs = template.FuncMap{
	"change": func(difference portfolio.Money, pct portfolio.Percent, span string, foldZero bool) Change {
		return Change{Difference: difference, PctDifference: pct, Span: span, FoldZero: foldZero}
	},
	"ranking": func(rankChange, rankValue string, days int) Ranking {
		return Ranking{RankChange: rankChange, RankValue: rankValue, Days: days}
	},
}

// reportPartials are the templates the report assembly depends on.
var reportPartials = map[string]string{
	"report_header":   "report_header.md",
	"report_periodic": "report_periodic.md",
	"report_symbols":  "report_symbols.md",
	"report_change":   "report_change.md",
	"report_ranking":  "report_ranking.md",
}

// Render renders the report as text.
//
// The text is also valid markdown. It fails with a *FormattingError or a *StructureError
// when the report is not complete.
func Render(r *Report) (string, error) {
	if err := Validate(r); err != nil {
		return "", err
	}
	return renderTemplate("report", "report.md", reportPartials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) (string, error) {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return "", fmt.Errorf("error reading main template %q: %w", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return "", fmt.Errorf("error parsing main template %q: %w", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return "", fmt.Errorf("error reading partial template %q: %w", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return "", fmt.Errorf("error parsing partial template %q for %q: %w", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return "", fmt.Errorf("error executing template %q: %w", templateName, err)
	}
	return b.String(), nil
}
