package report

import (
	"fmt"

	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// StyleNames lists the registered chroma highlight styles, sorted.
func StyleNames() []string {
	return styles.Names()
}

// ValidateStyle returns ErrUnknownStyle if name is not a registered chroma
// style. chroma itself falls back silently, so this check is explicit.
func ValidateStyle(name string) error {
	if _, ok := styles.Registry[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return nil
}
