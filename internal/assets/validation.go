package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that name is a bare file name stem: not empty,
// with no path separators and no dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
