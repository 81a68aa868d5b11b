// Package textutil measures and cuts text in characters rather than bytes.
package textutil

import "unicode/utf8"

// Len returns the number of characters (runes) in s.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Prefix returns the first n characters of s. It never splits a multi-byte
// character; n <= 0 yields "".
func Prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		// Fewer bytes than n means fewer runes than n as well.
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
