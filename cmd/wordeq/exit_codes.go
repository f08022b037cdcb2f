package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-wordeq"
	"github.com/alnah/go-wordeq/internal/assets"
	"github.com/alnah/go-wordeq/internal/config"
	"github.com/alnah/go-wordeq/internal/dateutil"
	"github.com/alnah/go-wordeq/internal/report"
)

// Exit codes for the wordeq CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or rules
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitRule    = 4 // Rule evaluation failure or match timeout
	ExitCheck   = 5 // --check found input that would change
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrWouldChange) {
		return ExitCheck
	}

	// Rule evaluation errors (exit 4)
	if errors.Is(err, wordeq.ErrRuleEvaluation) {
		return ExitRule
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoFilesFound) ||
		errors.Is(err, report.ErrCSSRead) {
		return ExitIO
	}

	// Usage/config/rule errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrConflictingFlags) ||
		errors.Is(err, ErrDirectoryNeedsOutput) ||
		errors.Is(err, ErrOutputConflict) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnknownFormat) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, wordeq.ErrEmptyPattern) ||
		errors.Is(err, wordeq.ErrInvalidPattern) ||
		errors.Is(err, wordeq.ErrEmptyRuleSet) ||
		errors.Is(err, wordeq.ErrInvalidTimeout) ||
		errors.Is(err, wordeq.ErrInputTooLarge) ||
		errors.Is(err, wordeq.ErrInvalidEncoding) ||
		errors.Is(err, report.ErrUnknownStyle) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) {
		return ExitUsage
	}

	return ExitGeneral
}
