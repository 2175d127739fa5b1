package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const maxNameLength = 256

// ValidateNodeName checks a hierarchy node name. Names are embedded in SVG
// attributes and cache keys, so control characters are rejected.
func ValidateNodeName(name string) error {
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidHierarchy, "node name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidHierarchy, "node name %q contains control characters", name)
		}
	}
	return nil
}

var (
	hexColor   = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColor  = regexp.MustCompile(`^(rgb|rgba|hsl|hsla)\([0-9.,%\s]+\)$`)
	namedColor = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// ValidateColor accepts hex colours, rgb()/hsl() functions and named colours.
func ValidateColor(c string) error {
	c = strings.TrimSpace(c)
	if c == "" {
		return New(ErrCodeInvalidPalette, "colour cannot be empty")
	}
	if hexColor.MatchString(c) || funcColor.MatchString(c) || namedColor.MatchString(c) {
		return nil
	}
	return New(ErrCodeInvalidPalette, "invalid colour %q", c)
}

// ValidateOutputPath validates a path the CLI is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Path must not end in a separator
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path %q names a directory", path)
	}
	return nil
}
