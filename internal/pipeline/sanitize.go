package pipeline

import "strings"

// SanitizeMarker identifies the style block injected by Sanitize.
const SanitizeMarker = "pdf-copy-sanitize"

// sanitizeStyleBlock keeps text selectable and code monospaced when the page
// is printed to PDF.
const sanitizeStyleBlock = `
<style id="` + SanitizeMarker + `">
  body, pre, code, table, td, th, p, li, div { -webkit-user-select: text !important; user-select: text !important; }
  pre, code { font-family: SFMono-Regular, Menlo, Consolas, 'Liberation Mono', monospace; font-variant-ligatures: none; tab-size: 4; -moz-tab-size: 4; }
  pre { white-space: pre; }
  @media print { pre { white-space: pre-wrap; word-break: normal; overflow-wrap: anywhere; } }
</style>
`

var (
	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

	// No-break spaces become plain spaces. BOM, zero-width characters,
	// word joiner, directional marks, bidi embedding, override and isolate
	// controls and the soft hyphen are dropped.
	invisibles = strings.NewReplacer(
		"\u00a0", " ",
		"\u202f", " ",
		"\ufeff", "",
		"\u200b", "",
		"\u200c", "",
		"\u200d", "",
		"\u2060", "",
		"\u200e", "",
		"\u200f", "",
		"\u202a", "",
		"\u202b", "",
		"\u202c", "",
		"\u202d", "",
		"\u202e", "",
		"\u2066", "",
		"\u2067", "",
		"\u2068", "",
		"\u2069", "",
		"\u00ad", "",
	)
)

// selectionRewrites are applied in order, each over the result of the last.
// The -webkit- spellings are already covered by the bare ones and keep
// their prefix.
var selectionRewrites = []struct{ from, to string }{
	{"user-select: none", "user-select: text"},
	{"user-select:none", "user-select: text"},
	{"-webkit-user-select: none", "user-select: text"},
	{"-webkit-user-select:none", "user-select: text"},
	{"pointer-events: none", "pointer-events: auto"},
	{"pointer-events:none", "pointer-events: auto"},
}

// Sanitize prepares HTML so that text copied out of the printed PDF matches
// the source. Line endings become "\n", non-breaking spaces become spaces,
// invisible formatting code points are removed and rules disabling selection
// or pointer events are flipped.
//
// A style block tagged with SanitizeMarker is added once: before the last
// </head> when there is one, prepended when the input has no <html, <head or
// <body marker at all, and skipped otherwise. Sanitize is idempotent.
func Sanitize(htmlContent string) string {
	s := lineEndings.Replace(htmlContent)
	s = invisibles.Replace(s)
	for _, r := range selectionRewrites {
		s = strings.ReplaceAll(s, r.from, r.to)
	}

	lower := asciiLower(s)
	if strings.Contains(lower, SanitizeMarker) {
		return s
	}

	if idx := strings.LastIndex(lower, "</head>"); idx != -1 {
		return s[:idx] + sanitizeStyleBlock + s[idx:]
	}

	if !hasDocumentMarkers(lower) {
		return sanitizeStyleBlock + s
	}

	return s
}

// hasDocumentMarkers reports whether lowered HTML carries any of the
// document-level open tags.
func hasDocumentMarkers(lower string) bool {
	return strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<head") ||
		strings.Contains(lower, "<body")
}
