package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()
	ctx := context.Background()

	tests := []struct {
		name     string
		in       string
		contains []string
		excludes []string
	}{
		{
			name:     "heading with id",
			in:       "# Hello World",
			contains: []string{`<h1 id="hello-world">Hello World</h1>`},
		},
		{
			name:     "fragment only",
			in:       "para",
			contains: []string{"<p>para</p>"},
			excludes: []string{"<html", "<body"},
		},
		{
			name:     "GFM table",
			in:       "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "raw HTML kept",
			in:       "<div class=\"note\">x</div>",
			contains: []string{`<div class="note">x</div>`},
		},
		{
			name:     "highlight marks",
			in:       "a ==b== c",
			contains: []string{"<mark>b</mark>"},
			excludes: []string{MarkStartPlaceholder, MarkEndPlaceholder},
		},
		{
			name:     "fenced code inline styles",
			in:       "```go\nfunc main() {}\n```",
			contains: []string{"<pre", "style="},
		},
		{
			name:     "CRLF input",
			in:       "line one\r\n\r\nline two",
			contains: []string{"<p>line one</p>", "<p>line two</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(ctx, tt.in)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML(%q) missing %q in %q", tt.in, want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("ToHTML(%q) should not contain %q: %q", tt.in, bad, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
