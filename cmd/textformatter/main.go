package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args[1:], DefaultEnv()))
}

// runMain dispatches a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	cmd, rest := splitCommand(args)

	switch cmd {
	case "version":
		fmt.Fprintf(env.Stdout, "textformatter %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	case "rules":
		return reportError(runRules(env), env.Stderr)
	case "templates":
		return reportError(runTemplates(rest, env), env.Stderr)
	}

	flags, positional, err := parseConvertFlags(rest, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	setMaxProcs(logger, flags.common.verbose)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return reportError(runConvert(ctx, positional, flags, logger, env), env.Stderr)
}

// splitCommand separates the subcommand from its arguments.
// Anything that is not a known command runs convert.
func splitCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "convert", nil
	}
	switch args[0] {
	case "convert", "version", "help", "rules", "templates":
		return args[0], args[1:]
	}
	return "convert", args
}

// setMaxProcs adjusts GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(logger *slog.Logger, verbose bool) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			logger.Debug(fmt.Sprintf(format, args...))
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// reportError prints err with its hints and returns the matching exit code.
func reportError(err error, w io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}
