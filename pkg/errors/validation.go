package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// Output formats accepted by the render pipeline.
var validFormats = map[string]bool{
	"svg":  true,
	"png":  true,
	"pdf":  true,
	"dot":  true,
	"json": true,
}

// ValidateFormat validates a render output format.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "output format cannot be empty")
	}

	if !validFormats[strings.ToLower(format)] {
		return New(ErrCodeInvalidFormat, "unsupported output format: %q (valid: svg, png, pdf, dot, json)", format)
	}

	return nil
}

// ValidateDocumentPath validates a markdown document path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No backslashes (Windows-style paths)
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "document path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "document path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "document path contains invalid characters")
		}
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "document path cannot contain backslashes")
	}

	return nil
}

// nodeIDRegex matches the identifiers assigned to scene nodes.
var nodeIDRegex = regexp.MustCompile(`^(title|section-[0-9]+(-sub-[0-9]+)?|item-[0-9]+)$`)

// ValidateNodeID validates a scene node identifier.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}

	if !nodeIDRegex.MatchString(id) {
		return New(ErrCodeInvalidNodeID, "invalid node id: %q", id)
	}

	return nil
}
