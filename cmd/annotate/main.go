// Package main is the entry point for the annotate CLI.
package main

import (
	"os"

	"github.com/yaklabco/annotate/internal/cli"
	"github.com/yaklabco/annotate/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Build and execute the root command.
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		code := cli.ExitCode(err)
		// Error and warning exits are just signals for the exit code.
		if code != cli.ExitErrors && code != cli.ExitWarnings {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return code
	}

	return 0
}
