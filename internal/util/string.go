package util

import (
	"strings"
	"unicode/utf8"
)

// TruncateWords keeps the first maxWords whitespace-separated tokens of s,
// rejoined with single spaces.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	return strings.Join(words, " ")
}

// FirstRune returns the first character of s, or "" when s is empty.
func FirstRune(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}

// SplitVerbatim splits on sep without trimming or dropping empty tokens.
func SplitVerbatim(s, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}
