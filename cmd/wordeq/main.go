package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for unrecognized commands.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	env := DefaultEnv()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, env)
	stop()
	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
// Errors are printed to env.Stderr.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, cmdArgs := args[1], args[2:]
	err := runCommand(ctx, cmd, cmdArgs, env)

	if errors.Is(err, flag.ErrHelp) {
		if usage := commandUsage(cmd); usage != nil {
			usage(env.Stdout)
		}
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "wordeq %s: %v\n", cmd, err)
	}
	return exitCodeFor(err)
}

// runCommand runs one command.
func runCommand(ctx context.Context, cmd string, args []string, env *Environment) error {
	switch cmd {
	case "convert":
		flags, rest, err := parseConvertFlags(args)
		if err != nil {
			return err
		}
		return runConvert(ctx, rest, flags, env)
	case "rules":
		flags, rest, err := parseRulesFlags(args)
		if err != nil {
			return err
		}
		return runRules(rest, flags, env)
	case "report":
		flags, rest, err := parseReportFlags(args)
		if err != nil {
			return err
		}
		return runReport(ctx, rest, flags, env)
	case "completion":
		return runCompletion(args, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "wordeq %s\n", Version)
		return nil
	case "help", "-h", "--help":
		return runHelp(args, env)
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

// boolShorthands are the boolean shorthands that can precede v in a group
// such as -iv. Any other shorthand takes a value and ends the group.
const boolShorthands = "iq"

// hasVerboseFlag reports whether -v, --verbose or a shorthand group holding v
// appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		switch {
		case a == "--":
			return false
		case a == "--verbose":
			return true
		case len(a) > 1 && a[0] == '-' && a[1] != '-':
			for _, c := range a[1:] {
				if c == 'v' {
					return true
				}
				if !strings.ContainsRune(boolShorthands, c) {
					break
				}
			}
		}
	}
	return false
}
