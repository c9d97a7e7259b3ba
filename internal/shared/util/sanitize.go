package util

import (
	"errors"
	"strings"
)

// SanitizeFileName flattens a client-supplied name into a single path segment
// by replacing separators and NUL bytes with underscores. Whitespace is kept.
func SanitizeFileName(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty file name")
	}
	return strings.NewReplacer("/", "_", "\\", "_", "\x00", "_").Replace(name), nil
}
