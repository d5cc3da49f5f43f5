package services

import (
	"strings"
)

// Reserved route names that can never act as a short code, custom URL or
// username. Keep in sync with the routes registered in handlers.SetupRouter.
var reservedSegments = map[string]struct{}{
	"api":       {},
	"login":     {},
	"logout":    {},
	"register":  {},
	"dashboard": {},
	"settings":  {},
	"uploads":   {},
	"oauth":     {},
	"link":      {},
	"l":         {},
	"users":     {},
	"user":      {},
	"images":    {},
	"videos":    {},
	"links":     {},
	"manager":   {},
	"profile":   {},
	"health":    {},
	"demo_user": {},
	"test":      {},
}

var staticExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".ico",
	".css", ".js", ".map", ".txt", ".json", ".xml",
	".woff", ".woff2", ".ttf",
}

// Requests produced by dev tooling and crawlers, never a user identifier.
var artifactPrefixes = []string{
	"@", "__", ".", "wp-", "node_modules",
}

// NormalizeIdentifier classifies a raw, URL-decoded path segment before the
// resolution chain is consulted. It returns the segment unchanged and true
// when it is a plausible identifier, or ("", false) when the segment is a
// reserved route, a static asset path, or a dev artifact. Pure and total.
func NormalizeIdentifier(raw string) (string, bool) {
	segment := strings.TrimSpace(raw)
	if segment == "" {
		return "", false
	}

	if _, reserved := reservedSegments[strings.ToLower(segment)]; reserved {
		return "", false
	}

	lower := strings.ToLower(segment)
	for _, ext := range staticExtensions {
		if strings.HasSuffix(lower, ext) {
			return "", false
		}
	}

	for _, prefix := range artifactPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return "", false
		}
	}

	return segment, true
}
