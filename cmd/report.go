package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
	"github.com/phuslu/log"
	"github.com/tstivers/portfolio"
	"github.com/tstivers/portfolio/date"
	"github.com/tstivers/portfolio/mail"
	"github.com/tstivers/portfolio/renderer"
)

type reportCmd struct {
	date   string
	period string
	email  bool
	test   bool
	output string
	export string
	quiet  bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "report the value of the portfolio on a trading day" }
func (*reportCmd) Usage() string {
	return `pf report [-d <date>] [-p <period>] [-e [-t]] [-o <file>] [-x <file.csv>] [-q]

  Reports the total value of the portfolio, its change since the previous
  trading day, and its rankings this year, on the trading day nearest to the
  date. See 'pf topic report'.

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "day of the report")
	f.StringVar(&c.period, "p", "", "add a summary of the period: daily, weekly, monthly, quarterly or yearly")
	f.BoolVar(&c.email, "e", false, "send the report by email")
	f.BoolVar(&c.test, "t", false, "with -e, print the email instead of sending it")
	f.StringVar(&c.output, "o", "", "write the report to a .txt, .md or .html file")
	f.StringVar(&c.export, "x", "", "export the holdings to a csv file")
	f.BoolVar(&c.quiet, "q", false, "do not print the report")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx); err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}

func (c *reportCmd) run(ctx context.Context) error {
	on, err := date.Parse(c.date)
	if err != nil {
		return usagef("invalid -d: %v", err)
	}
	var opts renderer.Options
	if c.period != "" {
		p, err := date.ParsePeriod(c.period)
		if err != nil {
			return usagef("invalid -p: %v", err)
		}
		opts.Period = &p
	}
	if c.output != "" {
		if _, err := formatOf(c.output); err != nil {
			return err
		}
	}

	pf, err := openPortfolio()
	if err != nil {
		return err
	}
	r, err := renderer.NewReport(pf, on, opts)
	if err != nil {
		return err
	}
	text, err := renderer.Render(r)
	if err != nil {
		return err
	}
	if !c.quiet {
		fmt.Println(text)
	}

	if c.output != "" {
		if err := writeReport(c.output, r); err != nil {
			return err
		}
		log.Info().Str("file", c.output).Msg("report written")
	}
	if c.export != "" {
		if err := exportFile(c.export, pf); err != nil {
			return err
		}
	}
	if c.email {
		return c.send(ctx, pf, r, text)
	}
	return nil
}

// send delivers the report to the configured recipients.
func (c *reportCmd) send(ctx context.Context, pf *portfolio.Portfolio, r *renderer.Report, text string) error {
	var sender mail.Sender = mail.Dry{W: os.Stdout}
	if !c.test {
		var err error
		if sender, err = mail.NewSender(cfg.Email); err != nil {
			return err
		}
	}
	html, err := renderer.HTML(r)
	if err != nil {
		return err
	}
	m := mail.NewMessage(cfg.Email, subject(r, account(pf)), text, html)
	if err := sender.Send(ctx, m); err != nil {
		return fmt.Errorf("cannot send the report: %w", err)
	}
	if !c.test {
		fmt.Fprintf(os.Stderr, "Report sent to %s\n", strings.Join(m.To, ", "))
	}
	return nil
}

// subject is the email subject of the report, with the masked account number when there is one.
func subject(r *renderer.Report, a *portfolio.Account) string {
	s := fmt.Sprintf("%s for %s", r.Title, r.Date.Format("January 02"))
	if a != nil {
		s += fmt.Sprintf(" (%s)", a.Number())
	}
	return s
}

type format int

const (
	formatText format = iota
	formatHTML
)

// formatOf returns the report format of a file from its extension.
func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return formatText, nil
	case ".html", ".htm":
		return formatHTML, nil
	default:
		return 0, usagef("unsupported report file %q, want .txt, .md or .html", path)
	}
}

// writeReport writes the report to path in the format of its extension.
func writeReport(path string, r *renderer.Report) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	var content string
	switch f {
	case formatHTML:
		content, err = renderer.HTML(r)
	default:
		content, err = renderer.Render(r)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
