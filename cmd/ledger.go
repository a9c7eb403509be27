package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/tstivers/portfolio"
	"github.com/tstivers/portfolio/date"
)

// ledgerCmd records one kind of operation in the holdings ledger.
type ledgerCmd struct {
	command portfolio.Command
	symbol  string
	qty     string
	date    string
	cash    bool
}

var ledgerSynopsis = map[portfolio.Command]string{
	portfolio.CmdDeclare: "start tracking a fund with an initial number of shares",
	portfolio.CmdAdd:     "record a purchase of shares",
	portfolio.CmdRemove:  "record a sale of shares",
	portfolio.CmdSet:     "correct the number of shares held",
}

func (c *ledgerCmd) Name() string     { return string(c.command) }
func (c *ledgerCmd) Synopsis() string { return ledgerSynopsis[c.command] }
func (c *ledgerCmd) Usage() string {
	return fmt.Sprintf(`pf %s -s <symbol> -q <quantity> [-d <date>] [-cash]

  %s. With -cash the quantity is an amount of money converted into shares
  with the close price of the day. See 'pf topic update'.

`, c.command, ledgerSynopsis[c.command])
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "symbol of the fund (required)")
	f.StringVar(&c.qty, "q", "", "number of shares, or amount of money with -cash (required)")
	f.StringVar(&c.date, "d", "0d", "day of the operation")
	f.BoolVar(&c.cash, "cash", false, "the quantity is an amount of money")
}

func (c *ledgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	op, err := c.operation()
	if err != nil {
		return failure(err)
	}
	pf, err := openPortfolio()
	if err != nil {
		return failure(err)
	}
	if err := c.apply(pf, op); err != nil {
		return failure(err)
	}
	if err := portfolio.SaveLedger(cfg.DataDir, pf.Ledger); err != nil {
		return failure(err)
	}
	fmt.Printf("%s %s: %s shares on %s\n", op.Command, op.Symbol, pf.Ledger.Position(op.Symbol, op.Date), op.Date)
	return subcommands.ExitSuccess
}

// operation parses the flags, the quantity is left zero with -cash.
func (c *ledgerCmd) operation() (portfolio.Operation, error) {
	op := portfolio.Operation{Command: c.command, Symbol: portfolio.NormalizeSymbol(c.symbol)}
	if op.Symbol == "" || c.qty == "" {
		return op, usagef("-s and -q are required")
	}
	on, err := date.Parse(c.date)
	if err != nil {
		return op, usagef("invalid -d: %v", err)
	}
	op.Date = on
	if c.cash {
		if _, err := portfolio.ParseMoney(c.qty, cfg.Currency); err != nil {
			return op, usagef("invalid -q: %v", err)
		}
		return op, nil
	}
	if op.Shares, err = portfolio.ParseQuantity(c.qty); err != nil {
		return op, usagef("invalid -q: %v", err)
	}
	return op, nil
}

// apply records op, converting the amount of money into shares with -cash.
func (c *ledgerCmd) apply(pf *portfolio.Portfolio, op portfolio.Operation) error {
	if c.cash {
		cash, err := portfolio.ParseMoney(c.qty, cfg.Currency)
		if err != nil {
			return err
		}
		if op.Shares, err = pf.ToShares(op.Symbol, cash, op.Date); err != nil {
			return err
		}
	}
	return pf.Ledger.Apply(op)
}
