package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/tstivers/portfolio/config"
)

type configureCmd struct{}

func (*configureCmd) Name() string     { return "configure" }
func (*configureCmd) Synopsis() string { return "set up the email delivery of reports" }
func (*configureCmd) Usage() string {
	return `pf configure

  Asks for the email settings, an empty answer keeps the current value, and
  saves the configuration file. See 'pf topic email'.

`
}

func (*configureCmd) SetFlags(_ *flag.FlagSet) {}

func (c *configureCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path := *configFile
	if path == "" {
		path = config.DefaultPath()
	}
	if err := configure(os.Stdin, os.Stdout, cfg); err != nil {
		return failure(err)
	}
	if err := cfg.Save(path); err != nil {
		return failure(err)
	}
	fmt.Printf("Configuration saved to %s\n", path)
	return subcommands.ExitSuccess
}

// configure asks for the email settings of c on w, reading the answers from r.
func configure(r io.Reader, w io.Writer, c *config.Config) error {
	in := bufio.NewReader(r)
	ask := func(question string, value *string) error {
		fmt.Fprintf(w, "%s [%s]: ", question, *value)
		answer, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			*value = answer
		}
		return nil
	}

	e := &c.Email
	port := strconv.Itoa(e.SMTPPort)
	recipients := strings.Join(e.Recipients, ", ")
	questions := []struct {
		q string
		v *string
	}{
		{"Provider (smtp or mailgun)", &e.Provider},
		{"Sender address", &e.Sender},
		{"Recipients, comma separated", &recipients},
	}
	for _, q := range questions {
		if err := ask(q.q, q.v); err != nil {
			return err
		}
	}

	if strings.EqualFold(e.Provider, "mailgun") {
		if err := ask("Mailgun domain", &e.MailgunDomain); err != nil {
			return err
		}
		if err := ask("Mailgun API key", &e.MailgunAPIKey); err != nil {
			return err
		}
	} else {
		for _, q := range []struct {
			q string
			v *string
		}{
			{"SMTP server", &e.SMTPServer},
			{"SMTP port", &port},
			{"SMTP user", &e.SMTPUser},
			{"SMTP password", &e.SMTPPassword},
		} {
			if err := ask(q.q, q.v); err != nil {
				return err
			}
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return usagef("invalid SMTP port %q", port)
		}
		e.SMTPPort = p
	}
	e.Recipients = config.SplitList(recipients)
	return nil
}
