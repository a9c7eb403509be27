package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"github.com/tstivers/portfolio/date"
	"github.com/tstivers/portfolio/renderer"
)

type listCmd struct {
	level int
	date  string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the funds of the portfolio" }
func (*listCmd) Usage() string {
	return `pf list [-l <level>] [-d <date>]

  Lists the declared funds. With -l 1 their number of shares, with -l 2 their
  close price and value on the nearest trading day.

`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.level, "l", 0, "level of details: 0, 1 or 2")
	f.StringVar(&c.date, "d", "0d", "day of the positions")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		return failure(usagef("invalid -d: %v", err))
	}
	pf, err := openPortfolio()
	if err != nil {
		return failure(err)
	}

	if a := account(pf); a != nil {
		fmt.Println(a)
	}
	switch {
	case c.level <= 0:
		fmt.Println(strings.Join(pf.Symbols(), "\n"))
	case c.level == 1:
		for _, h := range pf.Holdings(on) {
			fmt.Printf("%s\t%s\n", h.Symbol, h.Shares)
		}
	default:
		day, err := pf.Nearest(on)
		if err != nil {
			return failure(err)
		}
		printMarkdown(fmt.Sprintf("# Holdings on %s\n\n%s", day, renderer.HoldingsTable(pf, day)))
	}
	return subcommands.ExitSuccess
}
