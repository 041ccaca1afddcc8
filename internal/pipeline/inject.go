package pipeline

import "strings"

// asciiLower lowercases A-Z only. Unlike strings.ToLower it never changes
// the byte length, so indexes found in the result are valid in s.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// insertBeforeLast inserts block before the last case-insensitive occurrence
// of marker. Reports false when marker is absent.
func insertBeforeLast(htmlContent, marker, block string) (string, bool) {
	idx := strings.LastIndex(asciiLower(htmlContent), marker)
	if idx == -1 {
		return htmlContent, false
	}
	return htmlContent[:idx] + block + htmlContent[idx:], true
}

// insertAfterOpenTag inserts block right after the closing > of the first
// open tag starting with prefix (e.g. "<body"). Reports false when the tag
// is absent or never closed.
func insertAfterOpenTag(htmlContent, prefix, block string) (string, bool) {
	idx := strings.Index(asciiLower(htmlContent), prefix)
	if idx == -1 {
		return htmlContent, false
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return htmlContent, false
	}
	insertPos := idx + closeIdx + 1
	return htmlContent[:insertPos] + block + htmlContent[insertPos:], true
}
