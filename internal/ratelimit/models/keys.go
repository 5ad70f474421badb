package models

import "strings"

// SanitizeKeySegment escapes the key delimiter in a client-supplied segment.
// IPv6 addresses contain ':' and would otherwise be read as extra key
// segments, e.g. "::1" becomes "__1".
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}
