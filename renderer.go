package papyrus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-papyrus/internal/assets"
	"github.com/alnah/go-papyrus/internal/dateutil"
	"github.com/alnah/go-papyrus/internal/pipeline"
)

// AssetLoader loads theme stylesheets and the wrapper template by name.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// HistoryRecorder records titled renders. *history.Store implements it.
type HistoryRecorder interface {
	InsertIfNew(title, content string) bool
}

// Renderer runs the rendering pipeline. It holds no per-render state and
// may be reused; wrappers are built once per theme and cached.
type Renderer struct {
	cfg           rendererConfig
	assetLoader   assets.AssetLoader
	htmlConverter pipeline.HTMLConverter
	history       HistoryRecorder
	logger        *slog.Logger

	mu       sync.Mutex
	wrappers map[string]*pipeline.Wrapper
}

// rendererConfig holds construction-time settings.
type rendererConfig struct {
	assetPath   string
	titleFormat string
	now         func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithAssetPath overrides embedded themes and the wrapper template with
// files under dir (styles/{name}.css, templates/wrapper.html). Missing files
// fall back to the embedded ones.
func WithAssetPath(dir string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = dir
	}
}

// WithAssetLoader replaces the asset source entirely.
func WithAssetLoader(loader AssetLoader) Option {
	return func(r *Renderer) {
		if loader != nil {
			r.assetLoader = loader
		}
	}
}

// WithLogger sets the logger for pipeline diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock sets the time source for the wrapper title timestamp.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.cfg.now = now
		}
	}
}

// WithTitleFormat sets the timestamp format of the wrapper title, using
// dateutil tokens such as "YYYY-MM-DD HH:mm" or a preset name.
func WithTitleFormat(format string) Option {
	return func(r *Renderer) {
		r.cfg.titleFormat = format
	}
}

// WithHistory attaches a store used by SaveIfTitled.
func WithHistory(h HistoryRecorder) Option {
	return func(r *Renderer) {
		r.history = h
	}
}

// NewRenderer creates a Renderer with embedded assets.
// Returns an error if the asset path or title format is invalid.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			titleFormat: dateutil.DefaultTitleFormat,
			now:         time.Now,
		},
		assetLoader:   assets.NewEmbeddedLoader(),
		htmlConverter: pipeline.NewGoldmarkConverter(),
		logger:        slog.New(slog.DiscardHandler),
		wrappers:      make(map[string]*pipeline.Wrapper),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(r.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
		r.assetLoader = resolver
		r.logger.Debug("asset overrides enabled", "path", r.cfg.assetPath, "custom", resolver.HasCustomLoader())
	}

	if err := dateutil.Validate(r.cfg.titleFormat); err != nil {
		return nil, fmt.Errorf("%w: title format: %v", ErrInvalidOptions, err)
	}

	return r, nil
}

// Render turns raw pasted content into the final page. It writes no files
// and starts no programs. Stage failures and internal panics are reported
// as ErrRender; cancellation returns the context error.
func (r *Renderer) Render(ctx context.Context, raw string, opts Options) (result string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = ""
			err = fmt.Errorf("%w: internal error: %v", ErrRender, rec)
		}
	}()

	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyInput
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}

	content := raw

	if opts.Markdown {
		content, err = r.htmlConverter.ToHTML(ctx, content)
		if err != nil {
			return "", stageError(ctx, "converting markdown", err)
		}
	}

	if opts.Tidy {
		content, err = pipeline.Tidy(ctx, content)
		if err != nil {
			return "", stageError(ctx, "tidying HTML", err)
		}
	}

	if opts.SourceDir != "" {
		content, err = pipeline.RewriteRelativePaths(content, opts.SourceDir)
		if err != nil {
			return "", stageError(ctx, "rewriting relative paths", err)
		}
	}

	content = pipeline.Sanitize(content)
	if opts.EnablePDFCopy {
		content = pipeline.ToCodeView(content)
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if opts.AddWrapper && !pipeline.IsFullDocument(content) {
		wrapper, err := r.wrapper(opts.Theme)
		if err != nil {
			return "", fmt.Errorf("%w: loading theme %q: %w", ErrRender, themeOrDefault(opts.Theme), err)
		}
		content, err = wrapper.Wrap(ctx, content, true, r.titleTimestamp())
		if err != nil {
			return "", stageError(ctx, "wrapping", err)
		}
	}

	if opts.AddPrintBands {
		content = pipeline.InjectBands(content, opts.BandText, opts.TopOffsetMM, opts.BottomOffsetMM)
	}

	r.logger.Debug("rendered",
		"input_bytes", len(raw),
		"output_bytes", len(content),
		"markdown", opts.Markdown,
		"wrapped", opts.AddWrapper,
		"bands", opts.AddPrintBands,
		"pdf_copy", opts.EnablePDFCopy)

	return content, nil
}

// SaveIfTitled records (title, raw) in the attached history when the
// trimmed title is non-empty and the pair is new. It reports whether an
// entry was added; without a history store it always returns false.
func (r *Renderer) SaveIfTitled(title, raw string) bool {
	if r.history == nil || strings.TrimSpace(title) == "" {
		return false
	}
	added := r.history.InsertIfNew(title, raw)
	r.logger.Debug("history insert", "title", title, "added", added)
	return added
}

// wrapper returns the cached wrapper for theme, building it on first use.
func (r *Renderer) wrapper(theme string) (*pipeline.Wrapper, error) {
	theme = themeOrDefault(theme)

	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.wrappers[theme]; ok {
		return w, nil
	}
	w, err := pipeline.NewWrapper(r.assetLoader, theme)
	if err != nil {
		return nil, err
	}
	r.wrappers[theme] = w
	return w, nil
}

// titleTimestamp formats the current time for the wrapper title. The format
// was validated in NewRenderer.
func (r *Renderer) titleTimestamp() string {
	ts, err := dateutil.Format(r.cfg.titleFormat, r.cfg.now())
	if err != nil {
		r.logger.Warn("formatting title timestamp", "error", err)
		return ""
	}
	return ts
}

func themeOrDefault(theme string) string {
	if theme == "" {
		return assets.DefaultThemeName
	}
	return theme
}

// stageError keeps context errors unwrapped and reports anything else as
// ErrRender.
func stageError(ctx context.Context, stage string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %s: %v", ErrRender, stage, err)
}
