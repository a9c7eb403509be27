// Package cmd implements the pf command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/phuslu/log"
	"github.com/tstivers/portfolio"
	"github.com/tstivers/portfolio/config"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "configuration file (default "+config.DefaultPath()+")")
	dataDir    = flag.String("data", "", "data directory, overrides the configuration")
	verbose    verbosity

	// cfg is the configuration loaded by Setup.
	cfg = config.Default()
)

func init() {
	flag.Var(&verbose, "v", "verbose logging, repeat for debug logs")
}

// verbosity counts the occurrences of a boolean flag.
type verbosity int

func (v *verbosity) String() string   { return strconv.Itoa(int(*v)) }
func (v *verbosity) IsBoolFlag() bool { return true }
func (v *verbosity) Set(s string) error {
	switch s {
	case "true":
		*v++
	case "false":
		*v = 0
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid verbosity %q", s)
		}
		*v = verbosity(n)
	}
	return nil
}

// Setup loads the configuration and configures the logger. It must be called after flag.Parse.
func Setup() error {
	c, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	if *dataDir != "" {
		c.DataDir = *dataDir
	}
	if level := config.LevelFromVerbosity(int(verbose)); level != "" {
		c.Logging.Level = level
	}
	config.SetupLogging(c.Logging.Level, c.Logging.File)
	log.Debug().Str("data", c.DataDir).Str("config", *configFile).Msg("configuration loaded")
	cfg = c
	return nil
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&assistCmd{}, "reports")

	c.Register(&listCmd{}, "holdings")
	c.Register(&exportCmd{}, "holdings")
	c.Register(&formatLedgerCmd{}, "holdings")
	c.Register(&ledgerCmd{command: portfolio.CmdDeclare}, "holdings")
	c.Register(&ledgerCmd{command: portfolio.CmdAdd}, "holdings")
	c.Register(&ledgerCmd{command: portfolio.CmdRemove}, "holdings")
	c.Register(&ledgerCmd{command: portfolio.CmdSet}, "holdings")

	c.Register(&fetchCmd{}, "market")

	c.Register(&configureCmd{}, "setup")
	c.Register(&topicCmd{}, "help")
}

// openPortfolio loads the ledger and the market data from the data directory.
func openPortfolio() (*portfolio.Portfolio, error) {
	ledger, err := portfolio.LoadLedger(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	market, err := portfolio.LoadMarketData(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return portfolio.New(ledger, market, cfg.Currency), nil
}

// account returns the configured account, nil when there is none.
func account(pf *portfolio.Portfolio) *portfolio.Account {
	if cfg.Account.Number == "" {
		return nil
	}
	a, err := portfolio.NewAccount(cfg.Account.Number, pf, cfg.Account.Name, cfg.Account.Owner)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring the account")
		return nil
	}
	return a
}

// printMarkdown renders markdown for the terminal, as is when it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	log.Debug().Err(err).Msg("cannot render markdown")
	fmt.Println(md)
}

// failure prints the error and returns the exit status for it.
func failure(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var usage *usageError
	if errors.As(err, &usage) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// usageError is an error in the command line arguments.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error { return &usageError{fmt.Sprintf(format, args...)} }
