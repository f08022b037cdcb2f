package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"simple name", "default", nil},
		{"hyphen", "dark-print", nil},
		{"underscore and digits", "style_2", nil},
		{"empty", "", ErrInvalidAssetName},
		{"forward slash", "../secret", ErrInvalidAssetName},
		{"backslash", `..\secret`, ErrInvalidAssetName},
		{"extension", "default.css", ErrInvalidAssetName},
		{"null byte", "default\x00", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
