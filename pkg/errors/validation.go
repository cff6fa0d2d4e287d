package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateNetName validates a net name passed on the command line.
//
// Net names come straight from DEF and may contain hierarchy separators,
// bus brackets and escapes, so the rules only reject what can never name a
// net:
//   - No empty names
//   - No control characters or null bytes
//   - No whitespace
//   - Maximum length of 1024 characters
func ValidateNetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "net name cannot be empty")
	}

	if len(name) > 1024 {
		return New(ErrCodeInvalidInput, "net name too long (max 1024 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "net name contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "net name cannot contain whitespace: %q", name)
		}
	}

	return nil
}

// ValidateRoutingLevel checks that level names a routing layer.
// Routing levels start at 1; cut layers have no routing level.
func ValidateRoutingLevel(level int) error {
	if level < 1 {
		return New(ErrCodeInvalidLevel, "routing level must be >= 1, got %d", level)
	}
	return nil
}

// cellNameRegex matches LEF macro and pin names.
var cellNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$<>\[\].]*$`)

// ValidateCellName validates a library cell or pin name.
func ValidateCellName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "cell name cannot be empty")
	}
	if !cellNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid cell name: %q", name)
	}
	return nil
}

// ValidatePath validates a report or design file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Path must not name a directory (trailing separator)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
