package main

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-wordeq"
	"github.com/alnah/go-wordeq/internal/assets"
	"github.com/alnah/go-wordeq/internal/config"
	"github.com/alnah/go-wordeq/internal/dateutil"
	"github.com/alnah/go-wordeq/internal/report"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unknown error", errors.New("boom"), ExitGeneral},

		// Check
		{"would change", fmt.Errorf("%w: 2 of 3 input(s)", ErrWouldChange), ExitCheck},

		// Rule evaluation
		{"rule evaluation", fmt.Errorf("eq.txt: %w", wordeq.ErrRuleEvaluation), ExitRule},

		// I/O
		{"not exist", fmt.Errorf("open: %w", fs.ErrNotExist), ExitIO},
		{"permission", fmt.Errorf("open: %w", fs.ErrPermission), ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no files found", ErrNoFilesFound, ExitIO},
		{"css read", report.ErrCSSRead, ExitIO},

		// Usage
		{"usage", ErrUsage, ExitUsage},
		{"help", flag.ErrHelp, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"conflicting flags", ErrConflictingFlags, ExitUsage},
		{"directory needs output", ErrDirectoryNeedsOutput, ExitUsage},
		{"output conflict", ErrOutputConflict, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"unknown format", ErrUnknownFormat, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"config not found", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), ExitUsage},
		{"config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},
		{"config invalid value", config.ErrInvalidValue, ExitUsage},
		{"empty pattern", wordeq.ErrEmptyPattern, ExitUsage},
		{"invalid pattern", wordeq.ErrInvalidPattern, ExitUsage},
		{"empty rule set", wordeq.ErrEmptyRuleSet, ExitUsage},
		{"input too large", wordeq.ErrInputTooLarge, ExitUsage},
		{"invalid encoding", fmt.Errorf("caf.txt: %w", wordeq.ErrInvalidEncoding), ExitUsage},
		{"unknown style", report.ErrUnknownStyle, ExitUsage},
		{"stylesheet not found", assets.ErrStyleNotFound, ExitUsage},
		{"path traversal", assets.ErrPathTraversal, ExitUsage},
		{"date format", dateutil.ErrInvalidDateFormat, ExitUsage},

		// Batch failures take the code of their first failure.
		{"batch of read errors", &batchError{failed: 2, total: 3, first: fmt.Errorf("%w: a.txt", ErrReadInput)}, ExitIO},
		{"batch of rule errors", &batchError{failed: 1, total: 3, first: fmt.Errorf("a.txt: %w", wordeq.ErrRuleEvaluation)}, ExitRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
