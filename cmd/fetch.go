package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/phuslu/log"
	"github.com/tstivers/portfolio"
	"github.com/tstivers/portfolio/config"
	"github.com/tstivers/portfolio/date"
	"github.com/tstivers/portfolio/eodhd"
)

type fetchCmd struct {
	from   string
	to     string
	imp    string
	latest bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download the missing close prices from EODHD" }
func (*fetchCmd) Usage() string {
	return `pf fetch [-from <date>] [-to <date>] [-i <prices.jsonl>] [-latest]

  Downloads the close prices of every declared fund, from the day after the
  last known price, and saves them in the data directory.
  See 'pf topic fetch'.

`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "first day to fetch (default the first holding day)")
	f.StringVar(&c.to, "to", "0d", "last day to fetch")
	f.StringVar(&c.imp, "i", "", "merge the prices of another prices file instead of downloading")
	f.BoolVar(&c.latest, "latest", false, "print the latest close prices without saving them")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx); err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}

func (c *fetchCmd) run(ctx context.Context) error {
	pf, err := openPortfolio()
	if err != nil {
		return err
	}
	if c.imp != "" {
		if err := importPrices(pf.Market, c.imp); err != nil {
			return err
		}
		return portfolio.SaveMarketData(cfg.DataDir, pf.Market)
	}

	symbols := pf.Symbols()
	if len(symbols) == 0 {
		return errors.New("no fund declared, see 'pf topic update'")
	}
	if cfg.EODHD.APIKey == "" {
		return eodhd.ErrNoAPIKey
	}
	client := eodhd.New(cfg.EODHD.APIKey,
		eodhd.WithRate(cfg.EODHD.RPS),
		eodhd.WithExchange(cfg.EODHD.Exchange),
		eodhd.WithCacheDir(config.CacheDir()),
	)

	if c.latest {
		for _, s := range symbols {
			price, err := client.Latest(ctx, s)
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\n", s, portfolio.M(price, cfg.Currency))
		}
		return nil
	}

	rng, err := c.fetchRange(pf)
	if err != nil {
		return err
	}
	n, err := client.Update(ctx, pf.Market, symbols, rng)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Println("Prices are up to date.")
		return nil
	}
	if err := portfolio.SaveMarketData(cfg.DataDir, pf.Market); err != nil {
		return err
	}
	fmt.Printf("%d prices fetched for %d funds.\n", n, len(symbols))
	return nil
}

// fetchRange returns the days to fetch, from the first holding day by default.
func (c *fetchCmd) fetchRange(pf *portfolio.Portfolio) (date.Range, error) {
	to, err := date.Parse(c.to)
	if err != nil {
		return date.Range{}, usagef("invalid -to: %v", err)
	}
	from, ok := pf.Ledger.Start()
	if c.from != "" {
		if from, err = date.Parse(c.from); err != nil {
			return date.Range{}, usagef("invalid -from: %v", err)
		}
	} else if !ok {
		from = to
	}
	return date.NewRange(from, to), nil
}

// importPrices merges the prices of a market data file into market.
func importPrices(market *portfolio.MarketData, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	other, err := portfolio.DecodeMarketData(f)
	if err != nil {
		return fmt.Errorf("cannot decode %q: %w", path, err)
	}
	market.Merge(other)
	log.Info().Str("file", path).Int("symbols", len(other.Symbols())).Msg("prices imported")
	return nil
}
