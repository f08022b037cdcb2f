package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alnah/go-wordeq"
	"github.com/alnah/go-wordeq/internal/assets"
	"github.com/alnah/go-wordeq/internal/config"
	"github.com/alnah/go-wordeq/internal/fileutil"
	"github.com/alnah/go-wordeq/internal/hints"
	"github.com/alnah/go-wordeq/internal/report"
)

// runReport converts one input and renders an HTML report of the result.
func runReport(ctx context.Context, args []string, flags *reportFlags, env *Environment) error {
	if flags.common.quiet && flags.common.verbose {
		return fmt.Errorf("%w: --quiet and --verbose", ErrConflictingFlags)
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeReportFlags(flags, cfg)

	source, text, err := readReportInput(args, flags, env)
	if err != nil {
		return err
	}

	conv, err := buildConverter(cfg, flags.timeout)
	if err != nil {
		return err
	}

	result, err := conv.Convert(ctx, wordeq.Input{Text: text})
	if err != nil {
		return explainConvertError(fmt.Errorf("%s: %w", source, err))
	}

	gen, err := report.NewGenerator(
		report.WithStyle(cfg.Report.Style),
		report.WithCSS(cfg.Report.CSS),
		report.WithAssetsDir(cfg.Report.AssetsDir),
		report.WithNow(env.Now),
	)
	if err != nil {
		return explainReportError(err, cfg.Report.AssetsDir)
	}

	page, err := gen.Generate(ctx, report.Data{
		Title:  cfg.Report.Title,
		Date:   cfg.Report.Date,
		Source: source,
		Input:  text,
		Result: result,
	})
	if err != nil {
		return err
	}

	if flags.output == "" {
		if _, err := io.WriteString(env.Stdout, page); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(flags.output), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	if err := fileutil.WriteFileAtomic(flags.output, []byte(page), filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s\n", flags.output)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "%s: %s\n", source, formatMatches(result.Matches))
	}
	return nil
}

// mergeReportFlags merges CLI flags into config. CLI values override config values.
func mergeReportFlags(flags *reportFlags, cfg *config.Config) {
	if flags.title != "" {
		cfg.Report.Title = flags.title
	}
	if flags.style != "" {
		cfg.Report.Style = flags.style
	}
	if flags.css != "" {
		cfg.Report.CSS = flags.css
	}
	if flags.assetsDir != "" {
		cfg.Report.AssetsDir = flags.assetsDir
	}
	if flags.date != "" {
		cfg.Report.Date = flags.date
	}
}

// readReportInput returns the display name and text of the report input:
// --expr, a single file, "-", or piped stdin.
func readReportInput(args []string, flags *reportFlags, env *Environment) (string, string, error) {
	if flags.exprSet {
		if len(args) > 0 {
			return "", "", fmt.Errorf("%w: --expr and input arguments", ErrConflictingFlags)
		}
		return exprName, flags.expr, nil
	}

	switch {
	case len(args) > 1:
		return "", "", fmt.Errorf("%w: report takes one input, got %d", ErrUsage, len(args))
	case len(args) == 0 && env.StdinIsTerminal():
		return "", "", fmt.Errorf("%w: give a file, --expr, or pipe text to stdin", ErrNoInput)
	case len(args) == 0 || args[0] == stdinArg:
		text, err := readStdin(env.Stdin)
		return stdinName, text, err
	}

	path := args[0]
	if fileutil.DirExists(path) {
		return "", "", fmt.Errorf("%w: %s is a directory; report takes one file", ErrUsage, path)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return filepath.Base(path), string(data), nil
}

// explainReportError appends the available names to unknown style errors.
func explainReportError(err error, assetsDir string) error {
	switch {
	case errors.Is(err, report.ErrUnknownStyle):
		return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(report.StyleNames()))
	case errors.Is(err, assets.ErrStyleNotFound):
		names := assets.StyleNames()
		if r, rerr := assets.NewResolver(assetsDir); rerr == nil {
			names = r.StyleNames()
		}
		return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(names))
	default:
		return err
	}
}
