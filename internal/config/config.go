package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-wordeq/internal/fileutil"
	"github.com/alnah/go-wordeq/internal/hints"
	"github.com/alnah/go-wordeq/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxExtensionLength   = 16
	MaxRuleNameLength    = 100
	MaxPatternLength     = 4096
	MaxReplacementLength = 1024
	MaxExtraRules        = 64
	MaxTitleLength       = 200
	MaxStyleLength       = 50
	MaxDateLength        = 60
)

// Rule modes.
const (
	RulesModeAppend  = "append"  // built-in rules, then extra rules
	RulesModeReplace = "replace" // extra rules only
)

// Config holds all configuration for conversion and reports.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Rules  RulesConfig  `yaml:"rules"`
	Report ReportConfig `yaml:"report"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // Used when no input argument is given
	Extensions []string `yaml:"extensions"` // Files picked up when walking directories
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = stdout for single input
}

// RulesConfig defines the substitution rules.
type RulesConfig struct {
	Mode    string       `yaml:"mode"`    // "append" (default) or "replace"
	Timeout string       `yaml:"timeout"` // Per-match timeout, e.g. "500ms"; empty or "0" = none
	Extra   []RuleConfig `yaml:"extra"`
}

// RuleConfig is one user-defined rule.
type RuleConfig struct {
	Name        string `yaml:"name"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// ReportConfig defines HTML report options.
type ReportConfig struct {
	Title     string `yaml:"title"`
	Style     string `yaml:"style"`     // chroma highlight style
	CSS       string `yaml:"css"`       // stylesheet name, .css path, or "none"
	AssetsDir string `yaml:"assetsDir"` // custom styles/ and templates/ directory
	Date      string `yaml:"date"`      // "auto", "auto:FORMAT", or literal
}

// MatchTimeout parses Rules.Timeout. Empty means no timeout.
func (r RulesConfig) MatchTimeout() (time.Duration, error) {
	if r.Timeout == "" || r.Timeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: rules.timeout %q: %v", ErrInvalidValue, r.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: rules.timeout must be >= 0, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks field lengths and enumerations. Called by LoadConfig,
// and available for configs built in code. Rule patterns are compiled by
// the caller, not here.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	for i, ext := range c.Input.Extensions {
		field := fmt.Sprintf("input.extensions[%d]", i)
		if err := validateFieldLength(field, ext, MaxExtensionLength); err != nil {
			return err
		}
		if err := fileutil.ValidateExtension(ext); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
		}
	}

	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	switch strings.ToLower(c.Rules.Mode) {
	case "", RulesModeAppend, RulesModeReplace:
	default:
		return fmt.Errorf("%w: rules.mode %q (must be %s or %s)", ErrInvalidValue, c.Rules.Mode, RulesModeAppend, RulesModeReplace)
	}
	if _, err := c.Rules.MatchTimeout(); err != nil {
		return err
	}
	if len(c.Rules.Extra) > MaxExtraRules {
		return fmt.Errorf("%w: rules.extra has %d rules (max %d)", ErrInvalidValue, len(c.Rules.Extra), MaxExtraRules)
	}
	for i, r := range c.Rules.Extra {
		prefix := fmt.Sprintf("rules.extra[%d]", i)
		if r.Pattern == "" {
			return fmt.Errorf("%w: %s.pattern: required", ErrInvalidValue, prefix)
		}
		if err := validateFieldLength(prefix+".name", r.Name, MaxRuleNameLength); err != nil {
			return err
		}
		if err := validateFieldLength(prefix+".pattern", r.Pattern, MaxPatternLength); err != nil {
			return err
		}
		if err := validateFieldLength(prefix+".replacement", r.Replacement, MaxReplacementLength); err != nil {
			return err
		}
	}
	if c.Rules.replaceMode() && len(c.Rules.Extra) == 0 {
		return fmt.Errorf("%w: rules.mode %q requires at least one rules.extra entry", ErrInvalidValue, RulesModeReplace)
	}

	if err := validateFieldLength("report.title", c.Report.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("report.style", c.Report.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("report.css", c.Report.CSS, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("report.assetsDir", c.Report.AssetsDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("report.date", c.Report.Date, MaxDateLength); err != nil {
		return err
	}

	return nil
}

// ReplaceDefaults reports whether the extra rules replace the built-in ones.
func (r RulesConfig) ReplaceDefaults() bool {
	return r.replaceMode()
}

func (r RulesConfig) replaceMode() bool {
	return strings.EqualFold(r.Mode, RulesModeReplace)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultExtensions are the file extensions picked up from directories.
func DefaultExtensions() []string {
	return []string{".txt", ".tex", ".md"}
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{Extensions: DefaultExtensions()},
		Rules: RulesConfig{Mode: RulesModeAppend},
		Report: ReportConfig{
			Style: "github",
			CSS:   "default",
			Date:  "auto",
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path. Otherwise it is a
// name searched in standard locations. A missing file is an error.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFileStrict(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		if errors.Is(err, yamlutil.ErrNilData) {
			// An empty file is a valid config with every default.
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if len(cfg.Input.Extensions) == 0 {
		cfg.Input.Extensions = DefaultExtensions()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for name.yaml then name.yml, first in the
// current directory, then in the user config directory.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, hints.ConfigDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s%s", ErrConfigNotFound, strings.Join(triedPaths, ", "), hints.ForConfigNotFound(triedPaths))
}
