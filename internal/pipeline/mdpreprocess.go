package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters, which
// pass through Goldmark untouched and are turned into <mark> afterwards.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Highlight syntax ==text==
	highlightPattern = regexp.MustCompile(`==(.*?)==`)

	// Fenced code blocks are left alone by the highlight rewrite.
	fencedBlock = regexp.MustCompile("(?ms)^```.*?^```")
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before CommonMark conversion.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown normalizes line endings, marks ==highlights== and
// collapses runs of blank lines.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = lineEndings.Replace(content)
	content = convertHighlights(content)
	content = compressBlankLines(content)
	return content
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertHighlights transforms ==text== outside fenced code to placeholder
// markers.
func convertHighlights(content string) string {
	var b strings.Builder
	last := 0
	for _, loc := range fencedBlock.FindAllStringIndex(content, -1) {
		b.WriteString(highlightPattern.ReplaceAllString(content[last:loc[0]], MarkStartPlaceholder+"$1"+MarkEndPlaceholder))
		b.WriteString(content[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(highlightPattern.ReplaceAllString(content[last:], MarkStartPlaceholder+"$1"+MarkEndPlaceholder))
	return b.String()
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}
