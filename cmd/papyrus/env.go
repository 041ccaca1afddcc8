package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-papyrus"
)

// pdfExporter abstracts PDF export so commands run without a browser in tests.
type pdfExporter interface {
	Export(ctx context.Context, htmlContent string, settings *papyrus.PDFSettings) ([]byte, error)
	Close() error
}

// Environment holds injectable dependencies for testability.
// Includes I/O, time, environment variables, and the programs papyrus
// hands pages to.
type Environment struct {
	Now       func() time.Time
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Getenv    func(string) string
	Environ   func() []string
	Opener    papyrus.Opener
	Clipboard papyrus.Clipboard
	NewPDF    func(timeout time.Duration) pdfExporter
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Getenv:    os.Getenv,
		Environ:   os.Environ,
		Opener:    papyrus.NewBrowserOpener(),
		Clipboard: papyrus.NewSystemClipboard(),
		NewPDF: func(timeout time.Duration) pdfExporter {
			return papyrus.NewPDFExporter(papyrus.WithPDFTimeout(timeout))
		},
	}
}
