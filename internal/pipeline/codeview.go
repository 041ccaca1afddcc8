package pipeline

import "strings"

// sourceEscaper escapes the four characters that matter inside <pre><code>.
// It runs in a single pass, so inserted entities are never re-escaped.
var sourceEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// ToCodeView returns htmlContent escaped inside a labelled <pre><code>
// section, so the source itself can be selected and copied from the PDF.
// Calling it twice escapes twice.
func ToCodeView(htmlContent string) string {
	return "<section class=\"code-view\">\n" +
		"  <h2 style=\"margin-bottom:12px;color:#ffa86b;font-weight:600;\">HTML Source</h2>\n" +
		"  <pre><code>" + sourceEscaper.Replace(htmlContent) + "</code></pre>\n" +
		"</section>"
}
