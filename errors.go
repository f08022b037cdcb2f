package wordeq

import "errors"

// Sentinel errors for library operations.
var (
	// Rule compilation errors.
	ErrEmptyPattern   = errors.New("rule pattern cannot be empty")
	ErrInvalidPattern = errors.New("invalid rule pattern")
	ErrEmptyRuleSet   = errors.New("rule set cannot be empty")

	// Conversion errors.
	ErrInputTooLarge   = errors.New("input exceeds maximum size")
	ErrInvalidEncoding = errors.New("input is not valid UTF-8")
	ErrRuleEvaluation  = errors.New("rule evaluation failed")

	// Option validation errors.
	ErrInvalidTimeout   = errors.New("invalid match timeout")
	ErrInvalidInputSize = errors.New("invalid maximum input size")
)
