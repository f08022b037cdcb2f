package report

import "errors"

// Sentinel errors for report generation.
var (
	ErrUnknownStyle   = errors.New("unknown highlight style")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrTemplateRender = errors.New("report template rendering failed")
	ErrCSSRead        = errors.New("failed to read stylesheet")
)
