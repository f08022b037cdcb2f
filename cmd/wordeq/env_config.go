package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-wordeq/internal/config"
)

// envPrefix is shared by every recognized environment variable.
const envPrefix = "WORDEQ_"

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath  string        // WORDEQ_CONFIG: config file name or path
	Timeout     time.Duration // WORDEQ_TIMEOUT: per-match regex timeout
	Workers     int           // WORDEQ_WORKERS: parallel workers
	InputDir    string        // WORDEQ_INPUT_DIR: default input directory
	OutputDir   string        // WORDEQ_OUTPUT_DIR: default output directory
	ReportStyle string        // WORDEQ_REPORT_STYLE: chroma highlight style
}

// knownEnvVars lists valid WORDEQ_* environment variables.
var knownEnvVars = map[string]bool{
	"WORDEQ_CONFIG":       true,
	"WORDEQ_TIMEOUT":      true,
	"WORDEQ_WORKERS":      true,
	"WORDEQ_INPUT_DIR":    true,
	"WORDEQ_OUTPUT_DIR":   true,
	"WORDEQ_REPORT_STYLE": true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable or non-positive numbers are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("WORDEQ_CONFIG"),
		InputDir:    os.Getenv("WORDEQ_INPUT_DIR"),
		OutputDir:   os.Getenv("WORDEQ_OUTPUT_DIR"),
		ReportStyle: os.Getenv("WORDEQ_REPORT_STYLE"),
	}

	if timeout := os.Getenv("WORDEQ_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("WORDEQ_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized WORDEQ_* variable.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig fills config values that the config file left at their
// defaults. Flags are applied afterwards, giving:
// flags > config file > env vars > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	defaults := config.DefaultConfig()

	if env.Timeout > 0 && cfg.Rules.Timeout == defaults.Rules.Timeout {
		cfg.Rules.Timeout = env.Timeout.String()
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == defaults.Input.DefaultDir {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == defaults.Output.DefaultDir {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.ReportStyle != "" && cfg.Report.Style == defaults.Report.Style {
		cfg.Report.Style = env.ReportStyle
	}
}
