package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-wordeq"
	"github.com/alnah/go-wordeq/internal/config"
	"github.com/alnah/go-wordeq/internal/hints"
)

// ErrInvalidTimeout is returned for unparsable --timeout values.
var ErrInvalidTimeout = errors.New("invalid timeout")

// loadConfig loads the config named by the flag, falling back to
// WORDEQ_CONFIG, then applies environment overrides.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// buildRules returns the effective RuleSet: the built-in rules followed by
// the config's extra rules, or the extra rules alone in replace mode.
func buildRules(cfg *config.Config) (wordeq.RuleSet, error) {
	specs := make([]wordeq.RuleSpec, 0, len(cfg.Rules.Extra))
	for _, r := range cfg.Rules.Extra {
		specs = append(specs, wordeq.RuleSpec{Name: r.Name, Pattern: r.Pattern, Replacement: r.Replacement})
	}

	extra, err := wordeq.CompileRules(specs)
	if err != nil {
		return nil, fmt.Errorf("compiling rules.extra: %w%s", err, hints.ForInvalidPattern())
	}

	if cfg.Rules.ReplaceDefaults() {
		return extra, nil
	}
	return append(wordeq.DefaultRules(), extra...), nil
}

// resolveTimeout returns the per-match timeout: the flag when set,
// otherwise rules.timeout (already merged with WORDEQ_TIMEOUT).
func resolveTimeout(flagTimeout string, cfg *config.Config) (time.Duration, error) {
	if flagTimeout == "" {
		return cfg.Rules.MatchTimeout()
	}

	d, err := time.ParseDuration(flagTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s (must be >= 0)", ErrInvalidTimeout, d)
	}
	return d, nil
}

// buildConverter creates a Converter from the config and timeout flag.
func buildConverter(cfg *config.Config, flagTimeout string) (*wordeq.Converter, error) {
	rules, err := buildRules(cfg)
	if err != nil {
		return nil, err
	}

	timeout, err := resolveTimeout(flagTimeout, cfg)
	if err != nil {
		return nil, err
	}

	return wordeq.NewConverter(
		wordeq.WithRules(rules),
		wordeq.WithMatchTimeout(timeout),
	)
}

// explainConvertError appends a hint to well-known conversion failures.
func explainConvertError(err error) error {
	switch {
	case errors.Is(err, wordeq.ErrRuleEvaluation):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, wordeq.ErrInputTooLarge):
		return fmt.Errorf("%w%s", err, hints.ForInputTooLarge())
	case errors.Is(err, wordeq.ErrInvalidEncoding):
		return fmt.Errorf("%w%s", err, hints.ForInvalidEncoding())
	default:
		return err
	}
}
