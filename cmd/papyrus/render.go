package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-papyrus"
	"github.com/alnah/go-papyrus/internal/assets"
	"github.com/alnah/go-papyrus/internal/config"
	"github.com/alnah/go-papyrus/internal/hints"
	"github.com/alnah/go-papyrus/internal/history"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrReadInput       = errors.New("failed to read input")
	ErrWriteOutput     = errors.New("failed to write output")
	ErrConfirmRequired = errors.New("confirmation required")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// stdinArg selects standard input as the render source.
const stdinArg = "-"

// runRender reads pasted content, renders it, and delivers the page: to an
// HTML file, a PDF file, or the default browser.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, errHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: render takes at most one input, got %d", ErrUsage, len(positional))
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	envCfg := loadEnvConfig(env.Getenv, env.Stderr)
	cfg, err := loadConfig(flags.common, envCfg)
	if err != nil {
		return err
	}

	opts := buildRenderOptions(cfg, flags.pipeline, flags.changed)

	input := stdinArg
	if len(positional) == 1 {
		input = positional[0]
	}
	raw, err := readInput(input, env.Stdin)
	if err != nil {
		return err
	}
	if input != stdinArg {
		if abs, err := filepath.Abs(input); err == nil {
			opts.SourceDir = filepath.Dir(abs)
		}
	}

	var store *history.Store
	if flags.output.title != "" {
		store = openHistory(cfg, flags.common, logger, env.Now)
	}

	renderer, err := newRenderer(cfg, flags.pipeline.assetPath, env, logger, store)
	if err != nil {
		return err
	}

	start := env.Now()
	page, err := renderer.Render(ctx, raw, opts)
	if err != nil {
		return withRenderHints(err)
	}
	if renderer.SaveIfTitled(flags.output.title, raw) && !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Saved to history: %s\n", flags.output.title)
	}

	return deliver(ctx, page, flags, cfg, env, start)
}

// deliver writes or opens the rendered page. Without -o or --pdf the page
// opens in the browser, or goes to stdout with --no-open.
func deliver(ctx context.Context, page string, flags *renderFlags, cfg *config.Config, env *Environment, start time.Time) error {
	out := flags.output
	quiet := flags.common.quiet

	if out.output != "" {
		if err := writeOutput(out.output, []byte(page)); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(env.Stdout, "Wrote %s\n", out.output)
		}
	}

	if out.pdf != "" {
		if err := exportPDF(ctx, page, flags, cfg, env); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(env.Stdout, "Wrote %s\n", out.pdf)
		}
	}

	if out.output == "" && out.pdf == "" {
		if out.noOpen {
			fmt.Fprint(env.Stdout, page)
			return nil
		}
		path, err := env.Opener.Open(ctx, page)
		if err != nil {
			return fmt.Errorf("%w%s", err, hints.ForBrowserOpen())
		}
		if !quiet {
			fmt.Fprintf(env.Stdout, "Opened %s\n", path)
		}
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Done in %s\n", env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

// exportPDF prints page to the --pdf path with headless Chrome.
func exportPDF(ctx context.Context, page string, flags *renderFlags, cfg *config.Config, env *Environment) error {
	timeout, err := resolveTimeout(cfg, flags.output.timeout)
	if err != nil {
		return err
	}
	settings := buildPDFSettings(cfg, flags.output, flags.changed)

	exporter := env.NewPDF(timeout)
	defer func() { _ = exporter.Close() }()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pdf, err := exporter.Export(ctx, page, settings)
	if err != nil {
		return withPDFHints(err)
	}
	return writeOutput(flags.output.pdf, pdf)
}

// readInput reads a file, or standard input for "-".
func readInput(input string, stdin io.Reader) (string, error) {
	if input == stdinArg {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(input) // #nosec G304 -- user-provided input path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(data), nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		}
	}
	// #nosec G306 -- rendered pages are meant to be shared
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// withRenderHints appends a hint for render failures users can fix.
func withRenderHints(err error) error {
	switch {
	case errors.Is(err, papyrus.ErrEmptyInput):
		return fmt.Errorf("%w%s", err, hints.ForEmptyInput())
	case errors.Is(err, assets.ErrStyleNotFound):
		return fmt.Errorf("%w%s", err, hints.ForThemeNotFound(assets.Themes()))
	}
	return err
}

// withPDFHints appends a hint for browser and timeout failures.
func withPDFHints(err error) error {
	switch {
	case errors.Is(err, papyrus.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case errors.Is(err, papyrus.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	}
	return err
}
