package utils

import "strings"

// Canonical is the comparison form of user-entered text: surrounding
// whitespace trimmed, case folded. Tag and search matching both go
// through this so "Go", " go " and "GO" compare equal.
func Canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DedupeFirstSeen collapses repeated literal strings, keeping the first
// occurrence's position. Input order is preserved for determinism.
func DedupeFirstSeen(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Preview truncates content for list views. Content longer than limit is
// cut at limit characters with "..." appended; shorter content is
// returned unmodified.
func Preview(content string, limit int) string {
	r := []rune(content)
	if len(r) <= limit {
		return content
	}
	return string(r[:limit]) + "..."
}
