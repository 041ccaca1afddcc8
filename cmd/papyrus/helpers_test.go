package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-papyrus"
)

// fixedNow is the clock used by CLI tests.
var fixedNow = time.Date(2026, 3, 5, 14, 7, 9, 0, time.UTC)

// fakeOpener records pages instead of launching a browser.
type fakeOpener struct {
	mu    sync.Mutex
	pages []string
	err   error
}

func (o *fakeOpener) Open(_ context.Context, htmlContent string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return "", o.err
	}
	o.pages = append(o.pages, htmlContent)
	return fmt.Sprintf("/tmp/papyrus-%d.html", len(o.pages)), nil
}

// fakeClipboard records copied text.
type fakeClipboard struct {
	text      string
	err       error
	tool      string
	available bool
}

func (c *fakeClipboard) Copy(_ context.Context, text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func (c *fakeClipboard) Available() (string, bool) {
	return c.tool, c.available
}

// fakePDF returns canned bytes and records the settings it was given.
type fakePDF struct {
	timeout  time.Duration
	html     string
	settings *papyrus.PDFSettings
	err      error
	closed   bool
}

func (p *fakePDF) Export(_ context.Context, htmlContent string, settings *papyrus.PDFSettings) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.html = htmlContent
	p.settings = settings
	return []byte("%PDF-1.4 fake"), nil
}

func (p *fakePDF) Close() error {
	p.closed = true
	return nil
}

// testEnv bundles an Environment with its captured outputs and fakes.
type testEnv struct {
	*Environment
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	vars      map[string]string
	opener    *fakeOpener
	clipboard *fakeClipboard
	pdf       *fakePDF
}

// newTestEnv returns an Environment whose outputs are buffers and whose
// desktop integrations are fakes. stdin is the render input.
func newTestEnv(t *testing.T, stdin string) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		vars:      map[string]string{},
		opener:    &fakeOpener{},
		clipboard: &fakeClipboard{tool: "xclip", available: true},
		pdf:       &fakePDF{},
	}
	te.Environment = &Environment{
		Now:       func() time.Time { return fixedNow },
		Stdin:     strings.NewReader(stdin),
		Stdout:    te.stdout,
		Stderr:    te.stderr,
		Getenv:    func(k string) string { return te.vars[k] },
		Environ:   te.environ,
		Opener:    te.opener,
		Clipboard: te.clipboard,
		NewPDF: func(timeout time.Duration) pdfExporter {
			te.pdf.timeout = timeout
			return te.pdf
		},
	}
	return te
}

func (te *testEnv) environ() []string {
	out := make([]string, 0, len(te.vars))
	for k, v := range te.vars {
		out = append(out, k+"="+v)
	}
	return out
}

// historyFile returns a history path inside a fresh temp dir.
func historyFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "history.json")
}
