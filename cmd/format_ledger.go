package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/tstivers/portfolio"
)

type formatLedgerCmd struct{}

func (*formatLedgerCmd) Name() string     { return "fmt" }
func (*formatLedgerCmd) Synopsis() string { return "rewrite the holdings ledger in canonical form" }
func (*formatLedgerCmd) Usage() string {
	return `pf fmt

  Validates the holdings ledger and writes it back in chronological order,
  one operation per line, with normalized symbols.

`
}

func (*formatLedgerCmd) SetFlags(_ *flag.FlagSet) {}

func (*formatLedgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := portfolio.LoadLedger(cfg.DataDir)
	if err != nil {
		return failure(err)
	}
	if err := portfolio.SaveLedger(cfg.DataDir, ledger); err != nil {
		return failure(err)
	}
	fmt.Printf("%d operations formatted.\n", ledger.Len())
	return subcommands.ExitSuccess
}
