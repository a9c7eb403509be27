package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tstivers/portfolio"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the history of the holdings to csv" }
func (*exportCmd) Usage() string {
	return `pf export [-o <file.csv>]

  Writes one row per day the holdings changed, with the number of shares of
  each fund. Prints to the standard output without -o.

`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "csv file")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pf, err := openPortfolio()
	if err != nil {
		return failure(err)
	}
	if c.output == "" {
		err = portfolio.ExportCSV(os.Stdout, pf)
	} else {
		err = exportFile(c.output, pf)
	}
	if err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}

// exportFile writes the csv export of the holdings to path.
func exportFile(path string, pf *portfolio.Portfolio) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create export: %w", err)
	}
	if err := portfolio.ExportCSV(f, pf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
