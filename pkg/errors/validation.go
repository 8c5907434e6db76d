package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateUID validates a node identifier taken from a document.
// Identifiers are opaque, but they end up in SVG element ids, cache keys and
// JSON output, so control characters and quotes are rejected.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No quotes or angle brackets
//   - Maximum length of 256 characters
func ValidateUID(uid string) error {
	if uid == "" {
		return New(ErrCodeInvalidDocument, "node uid cannot be empty")
	}

	if len(uid) > 256 {
		return New(ErrCodeInvalidDocument, "node uid too long (max 256 characters)")
	}

	for _, r := range uid {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "node uid contains invalid control characters")
		}
	}

	if strings.ContainsAny(uid, `"'<>`) {
		return New(ErrCodeInvalidDocument, "node uid contains invalid characters: %q", uid)
	}

	return nil
}

// ValidatePath validates an output path for safety.
// It prevents writing through control characters and keeps paths reasonable.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// colorRegex matches #rgb, #rrggbb and #rrggbbaa hex colours.
var colorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColorRegex matches CSS named colours such as "transparent" or "white".
var namedColorRegex = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)

// ValidateColor validates a theme colour. Hex colours and CSS colour names
// are accepted; anything else (including markup) is rejected.
func ValidateColor(c string) error {
	if c == "" {
		return New(ErrCodeInvalidTheme, "colour cannot be empty")
	}
	if colorRegex.MatchString(c) || namedColorRegex.MatchString(c) {
		return nil
	}
	return New(ErrCodeInvalidTheme, "invalid colour: %q", c)
}
