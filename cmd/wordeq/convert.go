package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-wordeq"
	"github.com/alnah/go-wordeq/internal/fileutil"
)

// Sentinel errors for the convert command.
var (
	ErrConflictingFlags = errors.New("conflicting flags")
	ErrWouldChange      = errors.New("input would change")
)

// Display names for in-memory inputs.
const (
	stdinName = "<stdin>"
	exprName  = "<expr>"
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if err := validateConvertFlags(args, flags); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	conv, err := buildConverter(cfg, flags.timeout)
	if err != nil {
		return err
	}

	if flags.exprSet {
		return convertText(ctx, conv, exprName, flags.expr, flags, env)
	}

	inputs := args
	if len(inputs) == 0 {
		switch {
		case cfg.Input.DefaultDir != "":
			inputs = []string{cfg.Input.DefaultDir}
		case !env.StdinIsTerminal():
			inputs = []string{stdinArg}
		default:
			return fmt.Errorf("%w: give files, a directory, --expr, or pipe text to stdin", ErrNoInput)
		}
	}

	if slices.Contains(inputs, stdinArg) {
		if len(inputs) > 1 {
			return fmt.Errorf("%w: %q cannot be combined with other inputs", ErrUsage, stdinArg)
		}
		if flags.inPlace {
			return fmt.Errorf("%w: --in-place needs file inputs", ErrConflictingFlags)
		}
		text, err := readStdin(env.Stdin)
		if err != nil {
			return err
		}
		return convertText(ctx, conv, stdinName, text, flags, env)
	}

	dest, err := resolveDestination(inputs, flags, cfg.Output.DefaultDir)
	if err != nil {
		return err
	}

	jobs, err := discoverFiles(inputs, cfg.Input.Extensions, dest)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("%w in %s (extensions: %s)", ErrNoFilesFound,
			strings.Join(inputs, ", "), strings.Join(cfg.Input.Extensions, " "))
	}

	workers := resolvePoolSize(flags.workers, envCfg.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d, files: %d\n", workers, len(jobs))
	}

	results := convertBatch(ctx, conv, jobs, workers, dest.kind)

	if dest.kind == destStdout && results[0].Err == nil {
		if _, err := io.WriteString(env.Stdout, results[0].Output); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}
	}

	if err := printResults(results, flags, dest.kind, env); err != nil {
		return err
	}

	if dest.kind == destNone {
		if n := countResults(results).Changed; n > 0 {
			return fmt.Errorf("%w: %d of %d input(s)", ErrWouldChange, n, len(results))
		}
	}

	return nil
}

// validateConvertFlags rejects flag combinations with no single meaning.
func validateConvertFlags(args []string, flags *convertFlags) error {
	switch {
	case flags.inPlace && flags.check:
		return fmt.Errorf("%w: --in-place and --check", ErrConflictingFlags)
	case flags.inPlace && flags.output != "":
		return fmt.Errorf("%w: --in-place and --output", ErrConflictingFlags)
	case flags.exprSet && flags.inPlace:
		return fmt.Errorf("%w: --expr and --in-place", ErrConflictingFlags)
	case flags.exprSet && len(args) > 0:
		return fmt.Errorf("%w: --expr and input arguments", ErrConflictingFlags)
	case flags.common.quiet && flags.common.verbose:
		return fmt.Errorf("%w: --quiet and --verbose", ErrConflictingFlags)
	}
	return nil
}

// convertText converts an in-memory input and writes it to --output or
// Stdout. With --check nothing is written.
func convertText(ctx context.Context, conv Converter, name, text string, flags *convertFlags, env *Environment) error {
	start := time.Now()

	result, err := conv.Convert(ctx, wordeq.Input{Text: text})
	if err != nil {
		return explainConvertError(fmt.Errorf("%s: %w", name, err))
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "%s (%v, %s)\n", name, time.Since(start).Round(time.Millisecond), formatMatches(result.Matches))
	}

	if flags.check {
		if result.Changed {
			fmt.Fprintln(env.Stdout, name)
			return fmt.Errorf("%w: %s", ErrWouldChange, name)
		}
		return nil
	}

	if flags.output != "" {
		return writeOutputFile(flags.output, result.Output, flags.common.quiet, name, env)
	}

	if _, err := io.WriteString(env.Stdout, result.Output); err != nil {
		return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
	}
	return nil
}

// writeOutputFile writes content to path, creating parent directories.
func writeOutputFile(path, content string, quiet bool, source string, env *Environment) error {
	if isDirTarget(path) {
		return fmt.Errorf("%w: --output %s is a directory; give a file path", ErrUsage, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %w", ErrWriteOutput, err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(content), filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if !quiet {
		fmt.Fprintf(env.Stderr, "Converted %s -> %s\n", source, path)
	}
	return nil
}

// readStdin reads at most one byte past the default input limit, enough
// for the Converter to reject oversized input.
func readStdin(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, wordeq.DefaultMaxInputSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
	}
	return string(data), nil
}
