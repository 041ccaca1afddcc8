package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var ErrHTMLConversion = errors.New("HTML conversion failed")

// HighlightStyle is the chroma style for fenced code blocks.
const HighlightStyle = "monokai"

// HTMLConverter turns Markdown into an HTML fragment.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter is the HTMLConverter used for --markdown input.
type GoldmarkConverter struct {
	md  goldmark.Markdown
	pre MarkdownPreprocessor
}

// codeHighlighter colors fenced blocks with inline styles, since the page
// is opened on its own without a chroma stylesheet.
func codeHighlighter() goldmark.Extender {
	return highlighting.NewHighlighting(
		highlighting.WithStyle(HighlightStyle),
		highlighting.WithFormatOptions(
			chromahtml.WithClasses(false),
			chromahtml.TabWidth(4),
		),
	)
}

// NewGoldmarkConverter enables GFM, footnotes, heading IDs and highlighting.
// Raw HTML inside the Markdown passes through.
func NewGoldmarkConverter() *GoldmarkConverter {
	return &GoldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote, codeHighlighter()),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe(), html.WithXHTML()),
		),
		pre: &CommonMarkPreprocessor{},
	}
}

// ToHTML converts content to a fragment; wrapping happens later. goldmark
// takes no context, so conversion runs in a goroutine and cancellation
// abandons it.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	src := []byte(c.pre.PreprocessMarkdown(ctx, content))

	out := make(chan string, 1)
	fail := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert(src, &buf); err != nil {
			fail <- fmt.Errorf("%w: %v", ErrHTMLConversion, err)
			return
		}
		out <- ConvertMarkPlaceholders(buf.String())
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-fail:
		return "", err
	case fragment := <-out:
		return fragment, nil
	}
}

var _ HTMLConverter = (*GoldmarkConverter)(nil)
