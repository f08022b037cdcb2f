package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Inputs shared by command tests.
const (
	taggedInput    = `\mathbit{x}*\mathbf{y}`
	convertedInput = " x * y "
	plainInput     = `x^2 + y^2 = z^2`
)

// testEnv is an Environment backed by buffers.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns an environment whose stdin is an interactive terminal
// with no data.
func newTestEnv() *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:             func() time.Time { return time.Date(2025, time.March, 4, 9, 0, 0, 0, time.UTC) },
			Stdin:           strings.NewReader(""),
			Stdout:          stdout,
			Stderr:          stderr,
			StdinIsTerminal: func() bool { return true },
		},
		stdout: stdout,
		stderr: stderr,
	}
}

// withStdin returns e with piped stdin content.
func (e *testEnv) withStdin(content string) *testEnv {
	e.Stdin = strings.NewReader(content)
	e.StdinIsTerminal = func() bool { return false }
	return e
}

// writeFile creates dir/rel with content, creating parent directories.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
