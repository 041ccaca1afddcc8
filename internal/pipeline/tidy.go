package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrTidy indicates the HTML could not be parsed or re-rendered.
var ErrTidy = errors.New("HTML tidy failed")

// Tidy balances tags in pasted HTML by parsing it with an HTML5 parser and
// rendering the tree back. Anything before a <!DOCTYPE html> declaration is
// dropped first, since clipboard payloads often carry a preamble.
// Fragments stay fragments: no <html> or <body> is added to them.
func Tidy(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content = TrimBeforeDoctype(content)
	if strings.TrimSpace(content) == "" {
		return content, nil
	}

	doc, isFragment, err := parseHTML(content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTidy, err)
	}

	out, err := renderHTML(doc, isFragment)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTidy, err)
	}
	return out, nil
}

// TrimBeforeDoctype drops everything before the first <!DOCTYPE html>,
// matched case-insensitively. Content without one is returned unchanged.
func TrimBeforeDoctype(content string) string {
	idx := strings.Index(asciiLower(content), "<!doctype html>")
	if idx <= 0 {
		return content
	}
	return content[idx:]
}
