package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-wordeq"
	"github.com/alnah/go-wordeq/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// maxAutoWorkers caps the worker count derived from GOMAXPROCS.
const maxAutoWorkers = 16

// Sentinel errors for batch operations.
var (
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
)

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input wordeq.Input) (*wordeq.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ Converter = (*wordeq.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Output     string // converted text, kept only for destStdout
	Changed    bool
	Matches    []wordeq.RuleMatch
	Err        error
	Duration   time.Duration
}

// batchError reports failed conversions. It unwraps to the first failure so
// the exit code reflects its cause.
type batchError struct {
	failed int
	total  int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d conversion(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error { return e.first }

// resolvePoolSize determines the worker count.
// Priority: flag > env > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return min(envWorkers, MaxWorkers)
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	return max(1, min(runtime.GOMAXPROCS(0), maxAutoWorkers))
}

// convertBatch processes jobs concurrently with a bounded set of workers
// sharing one Converter. Results keep the order of jobs. Jobs not started
// before ctx is canceled carry ctx.Err().
func convertBatch(ctx context.Context, conv Converter, jobs []fileJob, workers int, dest destKind) []ConversionResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := max(1, min(workers, len(jobs)))

	results := make([]ConversionResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: jobs[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, jobs[idx], dest)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv Converter, job fileJob, dest destKind) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  job.InputPath,
		OutputPath: job.OutputPath,
	}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(job.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return done(fmt.Errorf("%w: %w", ErrReadInput, err))
	}

	converted, err := conv.Convert(ctx, wordeq.Input{Text: string(content)})
	if err != nil {
		return done(err)
	}
	result.Changed = converted.Changed
	result.Matches = converted.Matches

	switch dest {
	case destStdout:
		result.Output = converted.Output
	case destNone:
	case destInPlace:
		if converted.Changed {
			if err := fileutil.WriteFileAtomic(job.InputPath, []byte(converted.Output), filePermissions); err != nil {
				return done(fmt.Errorf("%w: %w", ErrWriteOutput, err))
			}
		}
	default:
		if err := os.MkdirAll(filepath.Dir(job.OutputPath), dirPermissions); err != nil {
			return done(fmt.Errorf("%w: creating output directory: %w", ErrWriteOutput, err))
		}
		if err := fileutil.WriteFileAtomic(job.OutputPath, []byte(converted.Output), filePermissions); err != nil {
			return done(fmt.Errorf("%w: %w", ErrWriteOutput, err))
		}
	}

	return done(nil)
}

// ResultSummary holds conversion counts.
type ResultSummary struct {
	Changed   int
	Unchanged int
	Failed    int
}

// countResults tallies changed, unchanged and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Changed:
			summary.Changed++
		default:
			summary.Unchanged++
		}
	}
	return summary
}

// printResults writes status lines to Stderr and, for --check, the inputs
// that would change to Stdout. It returns the first failure, or nil.
func printResults(results []ConversionResult, flags *convertFlags, dest destKind, env *Environment) error {
	summary := countResults(results)
	quiet, verbose := flags.common.quiet, flags.common.verbose

	var first error
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			if first == nil {
				first = r.Err
			}
			continue
		}

		if dest == destNone {
			if r.Changed {
				fmt.Fprintln(env.Stdout, r.InputPath)
			}
			if verbose {
				fmt.Fprintf(env.Stderr, "%s (%v, %s)\n", r.InputPath, r.Duration.Round(time.Millisecond), formatMatches(r.Matches))
			}
			continue
		}

		if quiet {
			continue
		}

		target := r.OutputPath
		if dest == destStdout {
			target = "stdout"
		}
		switch {
		case verbose:
			fmt.Fprintf(env.Stderr, "%s -> %s (%v, %s)\n", r.InputPath, target, r.Duration.Round(time.Millisecond), formatMatches(r.Matches))
		case dest == destStdout:
		case dest == destInPlace && !r.Changed:
		default:
			fmt.Fprintf(env.Stderr, "Converted %s -> %s\n", r.InputPath, target)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stderr, "\n%d changed, %d unchanged, %d failed\n", summary.Changed, summary.Unchanged, summary.Failed)
	}

	if summary.Failed > 0 {
		return &batchError{failed: summary.Failed, total: len(results), first: first}
	}
	return nil
}

// formatMatches renders per-rule counts as "name=n, name=n".
func formatMatches(matches []wordeq.RuleMatch) string {
	if len(matches) == 0 {
		return "no rules"
	}
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = fmt.Sprintf("%s=%d", m.Rule, m.Count)
	}
	return strings.Join(parts, ", ")
}
