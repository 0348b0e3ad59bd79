package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	traceWhitespace    = regexp.MustCompile(`\s+`)
	traceStringLiteral = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// formatDBQueryForTrace turns SQL into a single line span attribute.
// Inline string literals are masked because account values are user data;
// bound placeholders like $1 are kept as is.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	query = traceStringLiteral.ReplaceAllString(query, "'?'")
	query = traceWhitespace.ReplaceAllString(query, " ")
	if len(query) > maxTracedQueryLength {
		query = query[:maxTracedQueryLength] + "..."
	}
	return query
}
