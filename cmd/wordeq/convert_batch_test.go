package main

// Notes:
// - convertBatch runs against a stub Converter so ordering and cancellation
//   can be checked without regex timing.
// - resolvePoolSize auto mode depends on GOMAXPROCS; only its bounds are
//   asserted.

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alnah/go-wordeq"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Stub converter
// ---------------------------------------------------------------------------

// upperConverter upper-cases its input and counts calls.
type upperConverter struct {
	calls atomic.Int32
	err   error
}

func (c *upperConverter) Convert(_ context.Context, in wordeq.Input) (*wordeq.ConvertResult, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	out := strings.ToUpper(in.Text)
	return &wordeq.ConvertResult{
		Output:  out,
		Changed: out != in.Text,
		Matches: []wordeq.RuleMatch{{Rule: "upper", Count: 1}},
	}, nil
}

// ---------------------------------------------------------------------------
// TestResolvePoolSize - Worker count priority
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := resolvePoolSize(3, 5); got != 3 {
		t.Errorf("resolvePoolSize(3, 5) = %d, want 3 (flag wins)", got)
	}
	if got := resolvePoolSize(0, 5); got != 5 {
		t.Errorf("resolvePoolSize(0, 5) = %d, want 5 (env)", got)
	}
	if got := resolvePoolSize(0, MaxWorkers*2); got != MaxWorkers {
		t.Errorf("resolvePoolSize(0, %d) = %d, want %d", MaxWorkers*2, got, MaxWorkers)
	}

	auto := resolvePoolSize(0, 0)
	if auto < 1 || auto > maxAutoWorkers {
		t.Errorf("resolvePoolSize(0, 0) = %d, want 1..%d", auto, maxAutoWorkers)
	}
	if want := min(runtime.GOMAXPROCS(0), maxAutoWorkers); auto != want {
		t.Errorf("resolvePoolSize(0, 0) = %d, want %d", auto, want)
	}
}

// ---------------------------------------------------------------------------
// TestConvertBatch - Concurrency and ordering
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var jobs []fileJob
	for i := range 20 {
		in := writeFile(t, dir, fmt.Sprintf("in/%02d.txt", i), fmt.Sprintf("file %d", i))
		jobs = append(jobs, fileJob{InputPath: in, OutputPath: filepath.Join(dir, "out", fmt.Sprintf("%02d.txt", i))})
	}

	conv := &upperConverter{}
	results := convertBatch(context.Background(), conv, jobs, 4, destDir)

	if len(results) != len(jobs) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(jobs))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
			continue
		}
		if r.InputPath != jobs[i].InputPath {
			t.Errorf("results[%d].InputPath = %q, want %q (order)", i, r.InputPath, jobs[i].InputPath)
		}
		if got, want := readFile(t, jobs[i].OutputPath), fmt.Sprintf("FILE %d", i); got != want {
			t.Errorf("output %d = %q, want %q", i, got, want)
		}
	}
	if got := conv.calls.Load(); got != int32(len(jobs)) {
		t.Errorf("Convert called %d times, want %d", got, len(jobs))
	}
}

func TestConvertBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := convertBatch(context.Background(), &upperConverter{}, nil, 4, destDir); got != nil {
		t.Errorf("convertBatch(nil) = %v, want nil", got)
	}
}

func TestConvertBatch_Canceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jobs := []fileJob{
		{InputPath: writeFile(t, dir, "a.txt", "a")},
		{InputPath: writeFile(t, dir, "b.txt", "b")},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := &upperConverter{}
	results := convertBatch(ctx, conv, jobs, 2, destNone)

	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("results[%d].Err = %v, want context.Canceled", i, r.Err)
		}
	}
	if conv.calls.Load() != 0 {
		t.Errorf("Convert called %d times after cancel, want 0", conv.calls.Load())
	}
}

func TestConvertFile(t *testing.T) {
	t.Parallel()

	t.Run("stdout keeps output", func(t *testing.T) {
		t.Parallel()

		in := writeFile(t, t.TempDir(), "a.txt", "abc")
		r := convertFile(context.Background(), &upperConverter{}, fileJob{InputPath: in}, destStdout)
		if r.Err != nil || r.Output != "ABC" || !r.Changed {
			t.Errorf("convertFile() = %+v", r)
		}
	})

	t.Run("in-place skips unchanged", func(t *testing.T) {
		t.Parallel()

		in := writeFile(t, t.TempDir(), "a.txt", "ABC")
		r := convertFile(context.Background(), &upperConverter{}, fileJob{InputPath: in, OutputPath: in}, destInPlace)
		if r.Err != nil || r.Changed {
			t.Errorf("convertFile() = %+v", r)
		}
		if r.Output != "" {
			t.Errorf("Output = %q, want empty outside stdout mode", r.Output)
		}
	})

	t.Run("read error", func(t *testing.T) {
		t.Parallel()

		r := convertFile(context.Background(), &upperConverter{}, fileJob{InputPath: filepath.Join(t.TempDir(), "none")}, destNone)
		if !errors.Is(r.Err, ErrReadInput) {
			t.Errorf("Err = %v, want ErrReadInput", r.Err)
		}
	})

	t.Run("converter error", func(t *testing.T) {
		t.Parallel()

		in := writeFile(t, t.TempDir(), "a.txt", "abc")
		conv := &upperConverter{err: wordeq.ErrRuleEvaluation}
		r := convertFile(context.Background(), conv, fileJob{InputPath: in}, destNone)
		if !errors.Is(r.Err, wordeq.ErrRuleEvaluation) {
			t.Errorf("Err = %v, want ErrRuleEvaluation", r.Err)
		}
	})

	t.Run("in-place leaves non UTF-8 file untouched", func(t *testing.T) {
		t.Parallel()

		conv, err := wordeq.NewConverter()
		if err != nil {
			t.Fatal(err)
		}
		original := "caf\xe9 \\mathbf{x}"
		in := writeFile(t, t.TempDir(), "latin1.tex", original)

		r := convertFile(context.Background(), conv, fileJob{InputPath: in, OutputPath: in}, destInPlace)
		if !errors.Is(r.Err, wordeq.ErrInvalidEncoding) {
			t.Errorf("Err = %v, want ErrInvalidEncoding", r.Err)
		}
		if got := readFile(t, in); got != original {
			t.Errorf("file = %q, want %q", got, original)
		}
		if code := exitCodeFor(&batchError{failed: 1, total: 1, first: r.Err}); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("write error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "a.txt", "abc")
		// A regular file where a parent directory is expected.
		blocker := writeFile(t, dir, "blocker", "")
		r := convertFile(context.Background(), &upperConverter{}, fileJob{InputPath: in, OutputPath: filepath.Join(blocker, "a.txt")}, destDir)
		if !errors.Is(r.Err, ErrWriteOutput) {
			t.Errorf("Err = %v, want ErrWriteOutput", r.Err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintResults - Status output
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	failure := fmt.Errorf("%w: boom", ErrReadInput)
	results := []ConversionResult{
		{InputPath: "a.txt", OutputPath: "out/a.txt", Changed: true},
		{InputPath: "b.txt", OutputPath: "out/b.txt"},
		{InputPath: "c.txt", Err: failure},
	}

	env := newTestEnv()
	err := printResults(results, &convertFlags{}, destDir, env.Environment)

	var be *batchError
	if !errors.As(err, &be) {
		t.Fatalf("printResults() error = %v, want *batchError", err)
	}
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("batch error should unwrap to the first failure: %v", err)
	}
	if got := err.Error(); got != "1 of 3 conversion(s) failed" {
		t.Errorf("Error() = %q", got)
	}

	stderr := env.stderr.String()
	for _, want := range []string{
		"Converted a.txt -> out/a.txt",
		"Converted b.txt -> out/b.txt",
		"FAILED c.txt: ",
		"1 changed, 1 unchanged, 1 failed",
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
	if env.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", env.stdout.String())
	}
}

func TestPrintResults_QuietStillReportsFailures(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	flags := &convertFlags{common: commonFlags{quiet: true}}
	results := []ConversionResult{
		{InputPath: "a.txt", OutputPath: "b.txt", Changed: true},
		{InputPath: "c.txt", Err: errors.New("boom")},
	}

	_ = printResults(results, flags, destDir, env.Environment)

	if got := env.stderr.String(); got != "FAILED c.txt: boom\n" {
		t.Errorf("stderr = %q, want only the failure", got)
	}
}

func TestFormatMatches(t *testing.T) {
	t.Parallel()

	if got := formatMatches(nil); got != "no rules" {
		t.Errorf("formatMatches(nil) = %q", got)
	}
	got := formatMatches([]wordeq.RuleMatch{{Rule: "a", Count: 2}, {Rule: "b", Count: 0}})
	if got != "a=2, b=0" {
		t.Errorf("formatMatches() = %q, want %q", got, "a=2, b=0")
	}
}
