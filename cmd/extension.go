package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/google/subcommands"
	"github.com/phuslu/log"
)

// Environment passed to the extensions, read back by config.Load when they call pf.
const (
	EnvDataDir  = "PORTFOLIO_DATA_DIR"
	EnvCurrency = "PORTFOLIO_CURRENCY"
	EnvLogLevel = "PORTFOLIO_LOG_LEVEL"
)

// IsRegistered returns true if the commander has a command of that name.
func IsRegistered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		found = found || cmd.Name() == name
	})
	return found
}

// RunExtension attempts to find and execute an external pf-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "pf-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		log.Debug().Str("extension", name).Err(err).Msg("extension not found")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		EnvDataDir+"="+cfg.DataDir,
		EnvCurrency+"="+cfg.Currency,
		EnvLogLevel+"="+cfg.Logging.Level,
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
