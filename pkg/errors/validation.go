package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches 3- or 6-digit CSS hex colors.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a "#RGB" or "#RRGGBB" color string.
func ValidateHexColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q", s)
	}
	return nil
}

// ValidatePatternName validates a user-supplied pattern name for the
// library. The rules are intentionally conservative: names end up in URLs,
// cache keys and file names.
func ValidatePatternName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "pattern name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "pattern name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "pattern name contains invalid control characters")
		}
	}

	// Path-traversal characters make names unsafe as file or cache keys.
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "pattern name contains invalid characters")
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
// It rejects empty paths and null bytes; anything else is left to the OS.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "output path contains invalid characters")
	}
	return nil
}
