package renderer

import (
	"bytes"
	"fmt"

	"github.com/tstivers/portfolio"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// markdown converts the rendered text, raw html is kept for the <sup> tags.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// HTML renders the report as an HTML fragment, with the ordinal suffixes in superscript.
func HTML(r *Report) (string, error) {
	if err := Validate(r); err != nil {
		return "", err
	}

	sup := *r
	sup.RankChange = portfolio.Superscript(r.RankChange)
	sup.RankValue = portfolio.Superscript(r.RankValue)
	sup.Symbols = NewSymbols()
	for pair := r.Symbols.Oldest(); pair != nil; pair = pair.Next() {
		h := pair.Value
		h.RankChange = portfolio.Superscript(h.RankChange)
		h.RankValue = portfolio.Superscript(h.RankValue)
		sup.Symbols.Set(pair.Key, h)
	}

	text, err := renderTemplate("report", "report.md", reportPartials, &sup)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("cannot convert report to html: %w", err)
	}
	return buf.String(), nil
}
