package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-wordeq"
	"github.com/alnah/go-wordeq/internal/config"
	"github.com/alnah/go-wordeq/internal/yamlutil"
)

// Output formats for the rules command.
const (
	formatText = "text"
	formatYAML = "yaml"
)

// ErrUnknownFormat is returned for unsupported --format values.
var ErrUnknownFormat = errors.New("unknown format")

// rulesDocument is the YAML shape printed by "rules --format yaml". It loads
// back as a config file that reproduces the same RuleSet.
type rulesDocument struct {
	Rules rulesBlock `yaml:"rules"`
}

type rulesBlock struct {
	Mode    string              `yaml:"mode"`
	Timeout string              `yaml:"timeout,omitempty"`
	Extra   []config.RuleConfig `yaml:"extra"`
}

// runRules prints the effective RuleSet in order.
func runRules(args []string, flags *rulesFlags, env *Environment) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: rules takes no arguments, got %q", ErrUsage, args[0])
	}

	format := strings.ToLower(flags.format)
	if format != formatText && format != formatYAML {
		return fmt.Errorf("%w: %q (supported: %s, %s)", ErrUnknownFormat, flags.format, formatText, formatYAML)
	}

	cfg, err := loadConfig(flags.config, loadEnvConfig())
	if err != nil {
		return err
	}

	rules, err := buildRules(cfg)
	if err != nil {
		return err
	}

	timeout, err := cfg.Rules.MatchTimeout()
	if err != nil {
		return err
	}

	if format == formatYAML {
		return writeRulesYAML(env.Stdout, rules, cfg.Rules.Timeout)
	}

	writeRulesText(env.Stdout, rules)
	if timeout > 0 {
		fmt.Fprintf(env.Stdout, "\nMatch timeout: %v\n", timeout)
	}
	return nil
}

// writeRulesText prints one numbered block per rule.
func writeRulesText(w io.Writer, rules wordeq.RuleSet) {
	for i, r := range rules {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%d. %s\n", i+1, r.Name)
		fmt.Fprintf(w, "   pattern:     %s\n", r.Pattern)
		fmt.Fprintf(w, "   replacement: %q\n", r.Replacement)
	}
}

// writeRulesYAML prints rules as a replace-mode config block.
func writeRulesYAML(w io.Writer, rules wordeq.RuleSet, timeout string) error {
	doc := rulesDocument{Rules: rulesBlock{
		Mode:    config.RulesModeReplace,
		Timeout: timeout,
		Extra:   make([]config.RuleConfig, 0, len(rules)),
	}}
	for _, s := range rules.Specs() {
		doc.Rules.Extra = append(doc.Rules.Extra, config.RuleConfig{
			Name:        s.Name,
			Pattern:     s.Pattern,
			Replacement: s.Replacement,
		})
	}

	data, err := yamlutil.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
