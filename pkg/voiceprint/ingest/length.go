package ingest

import (
	"unicode"
	"unicode/utf16"
)

// TextLength returns the length of s in UTF-16 code units, the unit post
// length limits are expressed in. Characters outside the Basic
// Multilingual Plane, such as most emoji, count as two.
func TextLength(s string) int {
	n := 0
	for _, r := range s {
		n += unitLen(r)
	}
	return n
}

// TruncateText returns the longest prefix of s that fits in max UTF-16
// code units. A surrogate pair is never split.
func TruncateText(s string, max int) string {
	if max <= 0 {
		return ""
	}
	n := 0
	for i, r := range s {
		n += unitLen(r)
		if n > max {
			return s[:i]
		}
	}
	return s
}

func unitLen(r rune) int {
	if r1, _ := utf16.EncodeRune(r); r1 != unicode.ReplacementChar {
		return 2
	}
	return 1
}
