package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wordeq <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Turn Word equation markup into plain LaTeX by removing")
	fmt.Fprintln(w, `\mathbit{...} and \mathbf{...} word-tags.`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert      Convert word-tags to plain LaTeX")
	fmt.Fprintln(w, "  rules        Print the effective rule set")
	fmt.Fprintln(w, "  report       Render an HTML conversion report")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'wordeq help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wordeq convert [inputs...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert word-tags to plain LaTeX.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  inputs   Files, directories, or - for stdin. Without inputs, input.defaultDir")
	fmt.Fprintln(w, "           is used, then piped stdin.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -e, --expr <s>            Convert this string instead of files")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (single input) or directory")
	fmt.Fprintln(w, "  -i, --in-place            Rewrite input files")
	fmt.Fprintln(w, "      --check               List inputs that would change, write nothing (exit 5)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rules:")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-match regex timeout, e.g. 100ms (0 = none)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-file timing and rule counts")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, `  wordeq convert -e '\mathbit{x}*\mathbf{y}'`)
	fmt.Fprintln(w, "  wordeq convert notes.tex -o clean.tex")
	fmt.Fprintln(w, "  wordeq convert equations/ --in-place")
	fmt.Fprintln(w, "  pbpaste | wordeq convert | pbcopy")
}

// printRulesUsage prints usage for the rules command.
func printRulesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wordeq rules [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the rules applied by convert, in order.")
	fmt.Fprintln(w, "YAML output is a config block that reproduces the same rules.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: text, yaml")
}

// printReportUsage prints usage for the report command.
func printReportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wordeq report [input|-] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert one input and render an HTML page with per-rule match counts")
	fmt.Fprintln(w, "and the highlighted LaTeX output.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -e, --expr <s>            Report on this string instead of a file")
	fmt.Fprintln(w, "  -o, --output <path>       Output HTML file (default: stdout)")
	fmt.Fprintln(w, "      --title <s>           Report title")
	fmt.Fprintln(w, "      --style <name>        Chroma highlight style (default: github)")
	fmt.Fprintln(w, "      --css <name|path>     Stylesheet: default, plain, a .css file, or none")
	fmt.Fprintln(w, "      --assets-dir <dir>    Directory with custom styles/ and templates/")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"auto:FORMAT\", preset, or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm, ss")
	fmt.Fprintln(w, "                            Presets: iso, european, us, long, stamp")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-match regex timeout")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show rule counts")
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wordeq completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(wordeq completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(wordeq completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    wordeq completion fish > ~/.config/fish/completions/wordeq.fish")
}

// commandUsage returns the usage printer for a command, or nil.
func commandUsage(name string) func(io.Writer) {
	switch name {
	case "convert":
		return printConvertUsage
	case "rules":
		return printRulesUsage
	case "report":
		return printReportUsage
	case "completion":
		return printCompletionUsage
	case "version":
		return func(w io.Writer) {
			fmt.Fprintln(w, "Usage: wordeq version")
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Show version information.")
		}
	case "help":
		return func(w io.Writer) {
			fmt.Fprintln(w, "Usage: wordeq help [command]")
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Show help for a command.")
		}
	default:
		return nil
	}
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	usage := commandUsage(args[0])
	if usage == nil {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	usage(env.Stdout)
	return nil
}
