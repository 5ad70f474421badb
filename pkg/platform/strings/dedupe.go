// Package strings provides string list helpers for configuration input.
package strings

import (
	"strings"
)

// Normalize returns values mapped through normalize with empty results and
// duplicates removed. Order of first occurrence is preserved; a nil or empty
// input is returned unchanged.
func Normalize(values []string, normalize func(string) string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		n := normalize(v)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// DedupeAndTrim trims whitespace, drops empties and removes duplicates.
//
//	DedupeAndTrim([]string{" k1:9092", "k2:9092", "k1:9092 ", ""})
//	// []string{"k1:9092", "k2:9092"}
func DedupeAndTrim(values []string) []string {
	return Normalize(values, strings.TrimSpace)
}
