package config

import (
	"os"

	"github.com/phuslu/log"
)

// LevelFromVerbosity maps a count of -v flags to a level name, "" for none.
func LevelFromVerbosity(v int) string {
	switch {
	case v <= 0:
		return ""
	case v == 1:
		return "info"
	default:
		return "debug"
	}
}

// SetupLogging configures the process logger: human readable on stderr, and JSON
// lines appended to file when it is not empty.
func SetupLogging(level, file string) {
	if level == "" {
		level = "warn"
	}
	var writer log.Writer = &log.ConsoleWriter{
		Writer:      os.Stderr,
		ColorOutput: log.IsTerminal(os.Stderr.Fd()),
	}
	if file != "" {
		writer = &log.MultiEntryWriter{
			writer,
			&log.FileWriter{Filename: file, MaxSize: 10 * 1024 * 1024, MaxBackups: 3},
		}
	}
	log.DefaultLogger = log.Logger{
		Level:      log.ParseLevel(level),
		TimeFormat: "15:04:05",
		Writer:     writer,
	}
}
