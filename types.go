package wordeq

import (
	"fmt"
	"time"
)

// Input size bounds in bytes.
const (
	DefaultMaxInputSize = 1 << 20 // 1 MiB
	MaxInputSizeLimit   = 1 << 26 // 64 MiB
)

// Input contains conversion parameters.
type Input struct {
	Text string // Equation markup, may be empty
}

// RuleMatch reports how many matches a rule replaced during a conversion.
type RuleMatch struct {
	Rule  string
	Count int
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	Output  string      // Converted text
	Changed bool        // Output differs from input
	Matches []RuleMatch // One entry per rule, in rule order
}

// Total returns the number of replacements across all rules.
func (r *ConvertResult) Total() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, m := range r.Matches {
		n += m.Count
	}
	return n
}

// Option configures a Converter.
type Option func(*converterConfig)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	rules        RuleSet
	matchTimeout time.Duration
	maxInputSize int
}

// WithRules replaces the default word-tag rules.
func WithRules(rules RuleSet) Option {
	return func(c *converterConfig) {
		c.rules = rules.Clone()
	}
}

// WithMatchTimeout bounds the time spent in a single regular expression
// match. Zero disables the timeout.
func WithMatchTimeout(d time.Duration) Option {
	return func(c *converterConfig) {
		c.matchTimeout = d
	}
}

// WithMaxInputSize sets the largest accepted input in bytes.
func WithMaxInputSize(n int) Option {
	return func(c *converterConfig) {
		c.maxInputSize = n
	}
}

// validate checks option values after all options are applied.
func (c *converterConfig) validate() error {
	if len(c.rules) == 0 {
		return ErrEmptyRuleSet
	}
	if c.matchTimeout < 0 {
		return fmt.Errorf("%w: %v (must be >= 0)", ErrInvalidTimeout, c.matchTimeout)
	}
	if c.maxInputSize <= 0 || c.maxInputSize > MaxInputSizeLimit {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidInputSize, c.maxInputSize, MaxInputSizeLimit)
	}
	return nil
}
