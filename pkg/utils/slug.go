package utils

import (
	"strings"
)

// Slugify derives a URL-safe slug from a title: lowercase, runs of
// whitespace collapsed to a single hyphen, surrounding whitespace dropped.
func Slugify(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), "-")
}
