package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alnah/go-papyrus"
	"github.com/alnah/go-papyrus/internal/config"
	"github.com/alnah/go-papyrus/internal/hints"
	"github.com/alnah/go-papyrus/internal/history"
)

// loadConfig loads the config named by --config or PAPYRUS_CONFIG, layers the
// environment over it, and validates the result. Without a name, only the
// environment applies.
func loadConfig(common commonFlags, envCfg *envConfig) (*config.Config, error) {
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildRenderOptions layers the config file and explicit flags over the
// library defaults.
func buildRenderOptions(cfg *config.Config, f pipelineFlags, changed func(string) bool) papyrus.Options {
	opts := papyrus.DefaultOptions()

	r := cfg.Render
	if r.Wrapper != nil {
		opts.AddWrapper = *r.Wrapper
	}
	opts.AddPrintBands = r.Bands
	opts.EnablePDFCopy = r.PDFCopy
	opts.Markdown = r.Markdown
	opts.Tidy = r.Tidy
	if r.BandText != "" {
		opts.BandText = r.BandText
	}
	if r.TopOffsetMM != nil {
		opts.TopOffsetMM = *r.TopOffsetMM
	}
	if r.BottomOffsetMM != nil {
		opts.BottomOffsetMM = *r.BottomOffsetMM
	}
	if r.Theme != "" {
		opts.Theme = r.Theme
	}

	if changed("no-wrapper") {
		opts.AddWrapper = !f.noWrapper
	}
	if changed("bands") {
		opts.AddPrintBands = f.bands
	}
	if changed("band-text") {
		opts.BandText = f.bandText
		if !changed("bands") {
			opts.AddPrintBands = true
		}
	}
	if changed("top-mm") {
		opts.TopOffsetMM = f.topMM
	}
	if changed("bottom-mm") {
		opts.BottomOffsetMM = f.bottomMM
	}
	if changed("pdf-copy") {
		opts.EnablePDFCopy = f.pdfCopy
	}
	if changed("markdown") {
		opts.Markdown = f.markdown
	}
	if changed("tidy") {
		opts.Tidy = f.tidy
	}
	if changed("theme") {
		opts.Theme = f.theme
	}

	return opts
}

// buildPDFSettings layers the config file and explicit flags over the
// default page.
func buildPDFSettings(cfg *config.Config, f outputFlags, changed func(string) bool) *papyrus.PDFSettings {
	s := papyrus.DefaultPDFSettings()

	if cfg.PDF.PageSize != "" {
		s.PageSize = cfg.PDF.PageSize
	}
	if cfg.PDF.Margin > 0 {
		s.Margin = cfg.PDF.Margin
	}
	s.Landscape = cfg.PDF.Landscape

	if changed("page-size") {
		s.PageSize = f.pageSize
	}
	if changed("margin") {
		s.Margin = f.margin
	}
	if changed("landscape") {
		s.Landscape = f.landscape
	}
	return s
}

// resolveTimeout returns the PDF export timeout: --timeout, then the config
// (which already carries PAPYRUS_TIMEOUT), then the library default.
func resolveTimeout(cfg *config.Config, flagValue string) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid --timeout %q: %v", ErrUsage, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, flagValue)
		}
		return d, nil
	}

	d, err := cfg.PDF.TimeoutDuration()
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return papyrus.DefaultPDFTimeout, nil
	}
	return d, nil
}

// newLogger returns a text logger on w. Quiet keeps errors only; verbose
// enables debug output.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openHistory opens the store at --history, else the configured path, else
// the per-user default.
func openHistory(cfg *config.Config, common commonFlags, logger *slog.Logger, now func() time.Time) *history.Store {
	path := cfg.History.Path
	if common.historyPath != "" {
		path = common.historyPath
	}

	opts := []history.Option{history.WithLogger(logger), history.WithClock(now)}
	if cfg.Timestamps.History != "" {
		opts = append(opts, history.WithTimestampFormat(cfg.Timestamps.History))
	}
	return history.New(path, opts...)
}

// newRenderer builds a renderer from the config and flags.
func newRenderer(cfg *config.Config, assetFlag string, env *Environment, logger *slog.Logger, store *history.Store) (*papyrus.Renderer, error) {
	opts := []papyrus.Option{
		papyrus.WithLogger(logger),
		papyrus.WithClock(env.Now),
	}

	assetPath := cfg.Assets.BasePath
	if assetFlag != "" {
		assetPath = assetFlag
	}
	if assetPath != "" {
		opts = append(opts, papyrus.WithAssetPath(assetPath))
	}
	if cfg.Timestamps.Title != "" {
		opts = append(opts, papyrus.WithTitleFormat(cfg.Timestamps.Title))
	}
	if store != nil {
		opts = append(opts, papyrus.WithHistory(store))
	}

	return papyrus.NewRenderer(opts...)
}
