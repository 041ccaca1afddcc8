package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-papyrus/internal/config"
)

// envPrefix marks papyrus environment variables.
const envPrefix = "PAPYRUS_"

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath  string        // PAPYRUS_CONFIG: config file name or path
	HistoryFile string        // PAPYRUS_HISTORY_FILE: history JSON path
	BandText    string        // PAPYRUS_BAND_TEXT: print band text
	Theme       string        // PAPYRUS_THEME: wrapper theme name
	AssetPath   string        // PAPYRUS_ASSET_PATH: custom asset directory
	Timeout     time.Duration // PAPYRUS_TIMEOUT: PDF export timeout
	PageSize    string        // PAPYRUS_PAGE_SIZE: letter, a4, legal
	Bands       *bool         // PAPYRUS_BANDS: enable print bands
	Markdown    *bool         // PAPYRUS_MARKDOWN: treat input as Markdown
}

// knownEnvVars lists valid PAPYRUS_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PAPYRUS_CONFIG":       true,
	"PAPYRUS_HISTORY_FILE": true,
	"PAPYRUS_BAND_TEXT":    true,
	"PAPYRUS_THEME":        true,
	"PAPYRUS_ASSET_PATH":   true,
	"PAPYRUS_TIMEOUT":      true,
	"PAPYRUS_PAGE_SIZE":    true,
	"PAPYRUS_BANDS":        true,
	"PAPYRUS_MARKDOWN":     true,
	"PAPYRUS_CONTAINER":    true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and booleans are reported on warn and ignored.
func loadEnvConfig(getenv func(string) string, warn io.Writer) *envConfig {
	cfg := &envConfig{
		ConfigPath:  getenv("PAPYRUS_CONFIG"),
		HistoryFile: getenv("PAPYRUS_HISTORY_FILE"),
		BandText:    getenv("PAPYRUS_BAND_TEXT"),
		Theme:       getenv("PAPYRUS_THEME"),
		AssetPath:   getenv("PAPYRUS_ASSET_PATH"),
		PageSize:    getenv("PAPYRUS_PAGE_SIZE"),
	}

	if v := getenv("PAPYRUS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			fmt.Fprintf(warn, "warning: ignoring PAPYRUS_TIMEOUT=%q (want a positive duration like 30s)\n", v)
		}
	}

	cfg.Bands = parseEnvBool(getenv, "PAPYRUS_BANDS", warn)
	cfg.Markdown = parseEnvBool(getenv, "PAPYRUS_MARKDOWN", warn)

	return cfg
}

func parseEnvBool(getenv func(string) string, name string, warn io.Writer) *bool {
	v := getenv(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		fmt.Fprintf(warn, "warning: ignoring %s=%q (want true or false)\n", name, v)
		return nil
	}
	return &b
}

// warnUnknownEnvVars prints a warning for each unrecognized PAPYRUS_*
// variable, so typos like PAPYRUS_THEMES do not fail silently.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	var unknown []string
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig layers environment values over the config file.
// Precedence: CLI flags > env vars > config file > defaults (flags are
// applied afterwards by buildRenderOptions).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.HistoryFile != "" {
		cfg.History.Path = env.HistoryFile
	}
	if env.BandText != "" {
		cfg.Render.BandText = env.BandText
	}
	if env.Theme != "" {
		cfg.Render.Theme = env.Theme
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout.String()
	}
	if env.PageSize != "" {
		cfg.PDF.PageSize = env.PageSize
	}
	if env.Bands != nil {
		cfg.Render.Bands = *env.Bands
	}
	if env.Markdown != nil {
		cfg.Render.Markdown = *env.Markdown
	}
}
