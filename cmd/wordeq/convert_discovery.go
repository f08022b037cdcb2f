package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-wordeq/internal/fileutil"
	"github.com/alnah/go-wordeq/internal/hints"
)

// Sentinel errors for file discovery.
var (
	ErrNoInput              = errors.New("no input specified")
	ErrNoFilesFound         = errors.New("no matching files found")
	ErrDirectoryNeedsOutput = errors.New("directory or multiple inputs need a destination")
	ErrOutputConflict       = errors.New("two inputs map to the same output")
	ErrInvalidWorkerCount   = errors.New("invalid worker count")
)

// MaxWorkers bounds --workers and WORDEQ_WORKERS.
const MaxWorkers = 64

// stdinArg names standard input on the command line.
const stdinArg = "-"

// destKind selects where converted text goes.
type destKind int

const (
	destStdout  destKind = iota // single input, written to Stdout
	destFile                    // single input, written to path
	destDir                     // inputs mirrored under path
	destInPlace                 // inputs rewritten
	destNone                    // --check: nothing written
)

// destination is the resolved output target of a convert run.
type destination struct {
	kind destKind
	path string
}

// fileJob is a single file to process. OutputPath is empty when nothing is
// written to disk.
type fileJob struct {
	InputPath  string
	OutputPath string
}

// resolveDestination picks the output target from flags and config.
// Priority: --check, --in-place, --output, output.defaultDir, stdout.
func resolveDestination(inputs []string, flags *convertFlags, outputDefaultDir string) (destination, error) {
	switch {
	case flags.check:
		return destination{kind: destNone}, nil
	case flags.inPlace:
		return destination{kind: destInPlace}, nil
	case flags.output != "":
		if isSingleFile(inputs) && !isDirTarget(flags.output) {
			return destination{kind: destFile, path: flags.output}, nil
		}
		return destination{kind: destDir, path: flags.output}, nil
	case outputDefaultDir != "":
		return destination{kind: destDir, path: outputDefaultDir}, nil
	case isSingleFile(inputs):
		return destination{kind: destStdout}, nil
	default:
		return destination{}, fmt.Errorf("%w%s", ErrDirectoryNeedsOutput, hints.ForDirectoryInput())
	}
}

// isSingleFile reports whether inputs is one path that is not a directory.
// Missing paths count as files; reading them reports the error.
func isSingleFile(inputs []string) bool {
	return len(inputs) == 1 && !fileutil.DirExists(inputs[0])
}

// isDirTarget reports whether an --output value names a directory.
func isDirTarget(path string) bool {
	return strings.HasSuffix(path, "/") ||
		strings.HasSuffix(path, string(filepath.Separator)) ||
		fileutil.DirExists(path)
}

// discoverFiles expands inputs into jobs. Files named explicitly are always
// converted; directories are walked for files with one of extensions.
func discoverFiles(inputs []string, extensions []string, dest destination) ([]fileJob, error) {
	var jobs []fileJob
	seenInput := make(map[string]bool)
	seenOutput := make(map[string]string)

	add := func(inputPath, baseDir string) error {
		clean := filepath.Clean(inputPath)
		if seenInput[clean] {
			return nil
		}
		seenInput[clean] = true

		out := outputPathFor(inputPath, baseDir, dest)
		if out != "" && dest.kind == destDir {
			if prev, ok := seenOutput[out]; ok {
				return fmt.Errorf("%w: %s and %s -> %s", ErrOutputConflict, prev, inputPath, out)
			}
			seenOutput[out] = inputPath
		}

		jobs = append(jobs, fileJob{InputPath: inputPath, OutputPath: out})
		return nil
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := add(input, ""); err != nil {
				return nil, err
			}
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() {
				if dest.kind == destDir && path != input && sameDir(path, dest.path) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !fileutil.HasExtension(path, extensions) {
				return nil
			}
			return add(path, input)
		})
		if err != nil {
			return nil, err
		}
	}

	return jobs, nil
}

// outputPathFor maps an input path to its output path under dest.
// Files found under baseDir keep their relative location.
func outputPathFor(inputPath, baseDir string, dest destination) string {
	switch dest.kind {
	case destFile:
		return dest.path
	case destInPlace:
		return inputPath
	case destDir:
		if baseDir != "" {
			if rel, err := filepath.Rel(baseDir, inputPath); err == nil {
				return filepath.Join(dest.path, rel)
			}
		}
		return filepath.Join(dest.path, filepath.Base(inputPath))
	default:
		return ""
	}
}

// sameDir reports whether a and b name the same directory.
func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
