package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-papyrus/internal/assets"
)

// Sentinel errors for wrapper rendering.
var (
	ErrWrapperParse  = errors.New("wrapper template parsing failed")
	ErrWrapperRender = errors.New("wrapper template rendering failed")
)

// WrapData is what the wrapper template receives.
type WrapData struct {
	Timestamp string
	Style     template.CSS
	Content   template.HTML
}

// Wrapper renders bare fragments into a complete themed document.
type Wrapper struct {
	tmpl  *template.Template
	style template.CSS
}

// NewWrapper loads the wrapper template and the theme stylesheet from loader.
func NewWrapper(loader assets.AssetLoader, theme string) (*Wrapper, error) {
	if theme == "" {
		theme = assets.DefaultThemeName
	}

	tmplContent, err := loader.LoadTemplate(assets.WrapperTemplateName)
	if err != nil {
		return nil, err
	}
	style, err := loader.LoadStyle(theme)
	if err != nil {
		return nil, err
	}

	return NewWrapperFromTemplate(tmplContent, style)
}

// NewWrapperFromTemplate creates a Wrapper from raw template and CSS content.
func NewWrapperFromTemplate(tmplContent, style string) (*Wrapper, error) {
	tmpl, err := template.New("wrapper").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrapperParse, err)
	}

	// #nosec G203 -- theme CSS comes from embedded or operator-supplied assets
	return &Wrapper{tmpl: tmpl, style: template.CSS(sanitizeCSS(style))}, nil
}

// Wrap places content inside the themed document with timestamp in its
// title. Disabled wrapping, or content that already is a full document
// (IsFullDocument), is returned unchanged.
func (w *Wrapper) Wrap(ctx context.Context, content string, enabled bool, timestamp string) (string, error) {
	if !enabled || IsFullDocument(content) {
		return content, nil
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	data := WrapData{
		Timestamp: timestamp,
		Style:     w.style,
		Content:   template.HTML(content), // #nosec G203 -- pasted HTML is the payload
	}
	if err := w.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrapperRender, err)
	}

	return buf.String(), nil
}

// IsFullDocument reports whether content carries both an <html and a <body
// marker, case-insensitively.
func IsFullDocument(content string) bool {
	lower := strings.ToLower(content)
	return strings.Contains(lower, "<html") && strings.Contains(lower, "<body")
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
