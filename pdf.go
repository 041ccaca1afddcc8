package papyrus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-papyrus/internal/fileutil"
	"github.com/alnah/go-papyrus/internal/process"
)

// Page size names.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.0
	MaxMargin     = 2.0
	DefaultMargin = 0.5
)

// DefaultPDFTimeout bounds page load when the context carries no deadline.
const DefaultPDFTimeout = 30 * time.Second

// paperInches maps page size names to portrait width and height in inches.
var paperInches = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PDFSettings configures the printed page. A nil *PDFSettings means
// portrait US Letter with half-inch margins.
type PDFSettings struct {
	PageSize  string
	Landscape bool
	Margin    float64 // inches, all sides
}

// DefaultPDFSettings returns portrait US Letter with half-inch margins.
func DefaultPDFSettings() *PDFSettings {
	return &PDFSettings{PageSize: PageSizeLetter, Margin: DefaultMargin}
}

// Validate checks page size and margin. A nil receiver is valid.
func (p *PDFSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := paperInches[strings.ToLower(p.PageSize)]; !ok {
		return fmt.Errorf("%w: %q (must be letter, a4, or legal)", ErrInvalidPageSize, p.PageSize)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing
// without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, printOpts *proto.PagePrintToPDF) ([]byte, error)
	Close() error
}

// PDFExporter prints rendered pages to PDF with headless Chrome. The browser
// is started on first Export and reused until Close.
type PDFExporter struct {
	mu       sync.Mutex
	renderer pdfRenderer
	logger   *slog.Logger
}

// PDFOption configures a PDFExporter.
type PDFOption func(*pdfExporterConfig)

type pdfExporterConfig struct {
	timeout time.Duration
	logger  *slog.Logger
}

// WithPDFTimeout sets the page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithPDFTimeout(d time.Duration) PDFOption {
	if d <= 0 {
		panic("papyrus: WithPDFTimeout duration must be positive")
	}
	return func(c *pdfExporterConfig) {
		c.timeout = d
	}
}

// WithPDFLogger sets the logger for browser lifecycle events.
func WithPDFLogger(l *slog.Logger) PDFOption {
	return func(c *pdfExporterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewPDFExporter creates an exporter backed by go-rod.
func NewPDFExporter(opts ...PDFOption) *PDFExporter {
	cfg := pdfExporterConfig{
		timeout: DefaultPDFTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &PDFExporter{
		renderer: &rodRenderer{timeout: cfg.timeout, logger: cfg.logger},
		logger:   cfg.logger,
	}
}

// Export prints htmlContent to PDF bytes. The page is loaded from a temp
// file so relative file:// references resolve.
func (e *PDFExporter) Export(ctx context.Context, htmlContent string, settings *PDFSettings) ([]byte, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return nil, ErrEmptyInput
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	pdf, err := e.renderer.RenderFromFile(ctx, tmpPath, buildPrintOptions(settings))
	if err != nil {
		return nil, err
	}
	e.logger.Debug("pdf exported", "bytes", len(pdf), "duration", time.Since(start))
	return pdf, nil
}

// Close releases the browser.
func (e *PDFExporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renderer.Close()
}

// buildPrintOptions converts settings to Chrome print parameters.
func buildPrintOptions(settings *PDFSettings) *proto.PagePrintToPDF {
	if settings == nil {
		settings = DefaultPDFSettings()
	}

	size := paperInches[strings.ToLower(settings.PageSize)]
	if size == [2]float64{} {
		size = paperInches[PageSizeLetter]
	}
	width, height := size[0], size[1]
	if settings.Landscape {
		width, height = height, width
	}

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(settings.Margin),
		MarginBottom:    floatPtr(settings.Margin),
		MarginLeft:      floatPtr(settings.Margin),
		MarginRight:     floatPtr(settings.Margin),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	logger   *slog.Logger
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Preinstalled browser (containers, CI images)
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	r.logger.Debug("browser started", "pid", l.PID())
	return nil
}

// Close shuts the browser down and kills any helper processes it left.
func (r *rodRenderer) Close() error {
	if r.browser == nil {
		return nil
	}

	err := r.browser.Close()
	if r.launcher != nil {
		if kerr := process.KillTree(r.launcher.PID()); kerr != nil {
			r.logger.Debug("browser process cleanup", "error", kerr)
		}
		r.launcher.Kill()
		r.launcher.Cleanup()
	}
	r.browser = nil
	r.launcher = nil
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, printOpts *proto.PagePrintToPDF) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(printOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// BrowserPath returns the Chrome binary rod would use without downloading
// one: ROD_BROWSER_BIN when set, else the first browser found on the system.
func BrowserPath() (string, bool) {
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin, fileutil.FileExists(bin)
	}
	return launcher.LookPath()
}

// Compile-time interface check.
var _ pdfRenderer = (*rodRenderer)(nil)
