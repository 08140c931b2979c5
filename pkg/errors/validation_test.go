package errors

import (
	"strings"
	"testing"
)

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid six digit", "#ff0000", false},
		{"valid three digit", "#f00", false},
		{"valid uppercase", "#FF00AA", false},
		{"valid mixed case", "#Ff00aA", false},

		{"empty", "", true},
		{"missing hash", "ff0000", true},
		{"wrong length", "#ff00", true},
		{"eight digits", "#ff0000ff", true},
		{"not hex", "#zzzzzz", true},
		{"named color", "red", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColor) {
				t.Errorf("ValidateHexColor(%q) code = %v, want INVALID_COLOR", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidatePatternName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "mandala", false},
		{"valid with spaces", "winter sampler", false},
		{"valid with dash", "sea-rings", false},
		{"valid unicode", "fleur-de-lys é", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 129), true},
		{"path traversal", "foo/../bar", true},
		{"forward slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePatternName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePatternName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "out/pattern.svg", false},
		{"valid absolute", "/tmp/pattern.png", false},
		{"empty", "", true},
		{"null byte", "out\x00.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
