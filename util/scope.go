package util

import "strings"

// ScopeToList splits a space-separated scope string into its tokens,
// dropping empty entries produced by repeated or leading/trailing spaces.
func ScopeToList(scope string) []string {
	fields := strings.Fields(scope)
	out := make([]string, 0, len(fields))
	out = append(out, fields...)
	return out
}

// ListToScope joins scope tokens back into a single space-separated string.
func ListToScope(list []string) string {
	return strings.Join(list, " ")
}
