package wordeq

import (
	"context"
	"fmt"
)

// Converter runs a RuleSet over inputs and reports per-rule statistics.
// Create with NewConverter. A Converter holds no mutable state and is safe
// for concurrent use.
type Converter struct {
	cfg converterConfig
}

// NewConverter creates a Converter using the default word-tag rules.
// Use options to customize behavior (e.g., WithRules, WithMatchTimeout).
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := converterConfig{
		rules:        DefaultRules(),
		maxInputSize: DefaultMaxInputSize,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.matchTimeout > 0 {
		cfg.rules = cfg.rules.WithMatchTimeout(cfg.matchTimeout)
	}

	return &Converter{cfg: cfg}, nil
}

// Rules returns a copy of the rules used by c.
func (c *Converter) Rules() RuleSet {
	return c.cfg.rules.Clone()
}

// Convert applies the rules to input.Text in order. The output always equals
// Transform(input.Text, c.Rules()) when no error is returned. Input that is
// not valid UTF-8 fails with ErrInvalidEncoding.
// The context is checked between rules.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if len(input.Text) > c.cfg.maxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(input.Text), c.cfg.maxInputSize)
	}

	if err := checkEncoding(input.Text); err != nil {
		return nil, err
	}

	doc := input.Text
	matches := make([]RuleMatch, 0, len(c.cfg.rules))

	for _, r := range c.cfg.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var n int
		doc, n, err = r.replace(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRuleEvaluation, r.Name, err)
		}

		matches = append(matches, RuleMatch{Rule: r.Name, Count: n})
	}

	return &ConvertResult{
		Output:  doc,
		Changed: doc != input.Text,
		Matches: matches,
	}, nil
}
