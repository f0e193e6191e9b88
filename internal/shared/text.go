// Package shared provides common utilities used across the codebase.
//
//nolint:revive // "shared" is an intentional package name for cross-cutting helpers.
package shared

import (
	"regexp"
	"strings"
)

var (
	parentheticalPattern = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// CleanRef removes parenthetical annotations from a verse reference and
// collapses whitespace, e.g. "Juan 3:16 (RVR1909)" -> "Juan 3:16".
func CleanRef(ref string) string {
	ref = parentheticalPattern.ReplaceAllString(ref, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(ref, " "))
}

// StripQuestionMarks removes every '?' and '¿'.
func StripQuestionMarks(s string) string {
	s = strings.NewReplacer("?", "", "¿", "").Replace(s)
	return strings.TrimSpace(s)
}

// LimitWords truncates s to at most max whitespace-separated words.
// Text already within the limit is returned trimmed but otherwise intact.
func LimitWords(s string, max int) string {
	s = strings.TrimSpace(s)
	words := strings.Fields(s)
	if len(words) <= max {
		return s
	}
	return strings.Join(words[:max], " ")
}

// WordCount returns the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// NormalizeQuestion lowercases and collapses whitespace so questions can be
// compared for duplicates.
func NormalizeQuestion(q string) string {
	q = strings.ToLower(q)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(q, " "))
}

// Truncate returns at most max runes of s.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
