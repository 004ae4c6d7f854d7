package schema

import "strings"

// CanonicalAgent returns the lookup key of an agent identifier.
// Matching is case-insensitive and ignores surrounding whitespace.
func CanonicalAgent(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FormatRoster formats a roster as "Jett, Sage, Sova".
func FormatRoster(roster Roster) string {
	return strings.Join(roster, ", ")
}
