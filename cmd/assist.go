package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/tstivers/portfolio/agent"
	"github.com/tstivers/portfolio/date"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with an analyst about the portfolio" }
func (*assistCmd) Usage() string {
	return `pf assist [<question>]

  Starts a chat with a Gemini analyst reading the reports of the portfolio.
  The question, if any, is asked first. Type 'bye' to exit.
  The API key is read from [assist] api_key or GEMINI_API_KEY.

`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pf, err := openPortfolio()
	if err != nil {
		return failure(err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Assist.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return failure(err)
	}

	a := agent.New(os.Stdout, os.Stdin, agent.NewAnalyst(cfg.Assist.Model, pf, date.Today()))
	if err := a.Run(ctx, client, strings.Join(f.Args(), " ")); err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}
