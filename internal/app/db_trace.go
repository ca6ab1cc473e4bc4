package app

import "strings"

const maxTracedQueryLength = 512

// formatDBQueryForTrace collapses whitespace so multi-line repository queries
// read as one line in span attributes, and caps their length.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
