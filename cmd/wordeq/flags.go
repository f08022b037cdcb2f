package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	expr    string
	exprSet bool // --expr given, possibly empty
	output  string
	inPlace bool
	check   bool
	workers int
	timeout string
}

// rulesFlags holds flags for the rules command.
type rulesFlags struct {
	config string
	format string
}

// reportFlags holds flags for the report command.
type reportFlags struct {
	common    commonFlags
	expr      string
	exprSet   bool
	output    string
	title     string
	style     string
	css       string
	assetsDir string
	date      string
	timeout   string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file timing and rule counts")
}

// newFlagSet returns a FlagSet that reports errors instead of printing them.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	return fs
}

// newConvertFlagSet registers convert flags into f. Shared with completion.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := newFlagSet("convert")

	fs.StringVarP(&f.expr, "expr", "e", "", "convert this string instead of files")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVarP(&f.inPlace, "in-place", "i", false, "rewrite input files")
	fs.BoolVar(&f.check, "check", false, "list inputs that would change, write nothing")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-match regex timeout (e.g., 100ms)")
	addCommonFlags(fs, &f.common)

	return fs
}

// newRulesFlagSet registers rules flags into f.
func newRulesFlagSet(f *rulesFlags) *flag.FlagSet {
	fs := newFlagSet("rules")

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.format, "format", "f", formatText, "output format: text, yaml")

	return fs
}

// newReportFlagSet registers report flags into f.
func newReportFlagSet(f *reportFlags) *flag.FlagSet {
	fs := newFlagSet("report")

	fs.StringVarP(&f.expr, "expr", "e", "", "report on this string instead of a file")
	fs.StringVarP(&f.output, "output", "o", "", "output HTML file")
	fs.StringVar(&f.title, "title", "", "report title")
	fs.StringVar(&f.style, "style", "", "chroma highlight style")
	fs.StringVar(&f.css, "css", "", "stylesheet name, .css path, or none")
	fs.StringVar(&f.assetsDir, "assets-dir", "", "directory with custom styles/ and templates/")
	fs.StringVar(&f.date, "date", "", "date: auto, auto:FORMAT, preset, or literal")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-match regex timeout (e.g., 100ms)")
	addCommonFlags(fs, &f.common)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	f.exprSet = fs.Changed("expr")
	return f, fs.Args(), nil
}

// parseRulesFlags parses rules command flags and returns positional args.
func parseRulesFlags(args []string) (*rulesFlags, []string, error) {
	f := &rulesFlags{}
	fs := newRulesFlagSet(f)
	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseReportFlags parses report command flags and returns positional args.
func parseReportFlags(args []string) (*reportFlags, []string, error) {
	f := &reportFlags{}
	fs := newReportFlagSet(f)
	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	f.exprSet = fs.Changed("expr")
	return f, fs.Args(), nil
}

// parseFlagSet parses args. flag.ErrHelp is returned as is so callers can
// print usage; other parse errors wrap ErrUsage.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrUsage, fs.Name(), err)
}
