package pipeline

import (
	"fmt"
	"html"
	"slices"
	"strings"
)

// BandRepeat is how many times the band text is repeated across the page.
const BandRepeat = 5

const bandCSSFormat = `
<style>
  .print-header, .print-footer { display: block !important; position: fixed; left: 0; right: 0; height: 8mm; padding: 2mm 6mm; background: transparent; z-index: 9999; font-size: 9pt; color: #2a6792; text-align: center; line-height: 1; white-space: nowrap; overflow: hidden; text-overflow: clip; }
  .print-header { top: %dmm; }
  .print-footer { bottom: %dmm; }
  @media print { header, footer { display: none !important; } body { padding-top: max(15mm, %dmm); padding-bottom: max(15mm, %dmm); } }
</style>
`

const bandMarkupFormat = `
<div class="print-header" aria-hidden="true">%[1]s</div>
<div class="print-footer" aria-hidden="true">%[1]s</div>
`

// InjectBands adds a fixed header and footer band repeating text, so every
// printed page carries it. Offsets are in millimetres from the page edge.
// Blank text returns htmlContent unchanged. The text is HTML-escaped, so
// "A&B" appears as "A&amp;B" in the markup and cannot inject tags.
//
// The CSS goes before the last </head>, or is prepended. The markup goes
// right after the first <body> open tag, else before the last </html>, else
// at the end. Existing bands are not detected: calling InjectBands twice
// injects twice.
func InjectBands(htmlContent, text string, topMM, bottomMM int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return htmlContent
	}

	css := fmt.Sprintf(bandCSSFormat, topMM, bottomMM, topMM+3, bottomMM+3)
	markup := fmt.Sprintf(bandMarkupFormat, BandLine(text))

	out, ok := insertBeforeLast(htmlContent, "</head>", css)
	if !ok {
		out = css + htmlContent
	}

	if withBands, ok := insertAfterOpenTag(out, "<body", markup); ok {
		return withBands
	}
	if withBands, ok := insertBeforeLast(out, "</html>", markup); ok {
		return withBands
	}
	return out + markup
}

// BandLine returns the escaped band content: text repeated BandRepeat times,
// space-joined.
func BandLine(text string) string {
	return strings.Join(slices.Repeat([]string{html.EscapeString(text)}, BandRepeat), " ")
}
