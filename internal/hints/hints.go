// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ConfigDirName is the directory under the user config dir searched for
// named configs.
const ConfigDirName = "go-wordeq"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the user config location when it was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ConfigDirName) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForInvalidPattern returns hints for rule patterns that fail to compile.
func ForInvalidPattern() string {
	return formatHints([]string{
		"patterns use .NET regex syntax (look-behind allowed)",
		`in single-quoted YAML write '\\mathit' to match \mathit`,
	})
}

// ForTimeout returns a hint for rules that exceed the per-match timeout.
func ForTimeout() string {
	return format("raise --timeout or WORDEQ_TIMEOUT, or avoid nested quantifiers in extra rules")
}

// ForDirectoryInput returns a hint when a directory is given without a
// destination.
func ForDirectoryInput() string {
	return format("use --output DIR, --in-place, or --check")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the available names for an unknown style.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForInputTooLarge returns a hint for inputs over the size limit.
func ForInputTooLarge() string {
	return format("split the document, equations rarely exceed a few kilobytes")
}

// ForInvalidEncoding returns a hint for input that is not UTF-8.
func ForInvalidEncoding() string {
	return format("re-encode the file as UTF-8, e.g. iconv -f latin1 -t utf-8")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
