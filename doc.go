// Package papyrus turns pasted HTML (or Markdown) into a print-ready page and
// opens it in the default browser.
//
// # Quick Start
//
// Create a renderer, render the pasted content, and hand it to an opener:
//
//	r, err := papyrus.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := r.Render(ctx, "<p>Hello</p>", papyrus.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	path, err := papyrus.NewBrowserOpener().Open(ctx, page)
//
// # Rendering Pipeline
//
// Render runs these stages, in order:
//
//  1. Markdown to HTML via Goldmark (Options.Markdown)
//  2. Tag balancing via an HTML5 parser (Options.Tidy)
//  3. Copy-paste sanitizing: invisible characters, non-breaking spaces,
//     user-select and pointer-events rules
//  4. Escaped source view (Options.EnablePDFCopy)
//  5. Themed wrapper with a timestamped title (Options.AddWrapper)
//  6. Repeated print header and footer bands (Options.AddPrintBands)
//
// Content that already is a full document (it has both <html and <body) is
// never wrapped.
//
// # History
//
// Titled renders can be recorded with SaveIfTitled once a store is attached
// via WithHistory. The store keeps the 50 most recent distinct
// (title, content) pairs in a JSON file.
//
// # PDF Export
//
// PDFExporter prints a rendered page to PDF with headless Chrome (go-rod).
// Rod downloads Chromium on first use when no browser is found; set
// ROD_BROWSER_BIN to use a preinstalled one.
//
//	exp := papyrus.NewPDFExporter(papyrus.WithPDFTimeout(time.Minute))
//	defer exp.Close()
//	pdf, err := exp.Export(ctx, page, nil)
//
// # Errors
//
// Failures are reported with sentinel errors that can be matched with
// errors.Is, for example ErrEmptyInput, ErrRender, ErrBrowserOpen and
// ErrPDFGeneration.
package papyrus
