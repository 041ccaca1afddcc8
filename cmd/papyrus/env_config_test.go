package main

// Notes:
// - loadEnvConfig takes getenv, so tests pass a map lookup and stay parallel.
// - Malformed durations and booleans are ignored with a warning, not errors.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-papyrus/internal/config"
)

func mapGetenv(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("all variables", func(t *testing.T) {
		t.Parallel()

		var warn bytes.Buffer
		cfg := loadEnvConfig(mapGetenv(map[string]string{
			"PAPYRUS_CONFIG":       "work",
			"PAPYRUS_HISTORY_FILE": "/tmp/h.json",
			"PAPYRUS_BAND_TEXT":    "Internal",
			"PAPYRUS_THEME":        "light",
			"PAPYRUS_ASSET_PATH":   "/assets",
			"PAPYRUS_TIMEOUT":      "2m",
			"PAPYRUS_PAGE_SIZE":    "a4",
			"PAPYRUS_BANDS":        "true",
			"PAPYRUS_MARKDOWN":     "0",
		}), &warn)

		if cfg.ConfigPath != "work" {
			t.Errorf("ConfigPath = %q, want work", cfg.ConfigPath)
		}
		if cfg.HistoryFile != "/tmp/h.json" {
			t.Errorf("HistoryFile = %q", cfg.HistoryFile)
		}
		if cfg.BandText != "Internal" || cfg.Theme != "light" || cfg.AssetPath != "/assets" {
			t.Errorf("strings = %+v", cfg)
		}
		if cfg.Timeout != 2*time.Minute {
			t.Errorf("Timeout = %v, want 2m", cfg.Timeout)
		}
		if cfg.PageSize != "a4" {
			t.Errorf("PageSize = %q, want a4", cfg.PageSize)
		}
		if cfg.Bands == nil || !*cfg.Bands {
			t.Errorf("Bands = %v, want true", cfg.Bands)
		}
		if cfg.Markdown == nil || *cfg.Markdown {
			t.Errorf("Markdown = %v, want false", cfg.Markdown)
		}
		if warn.Len() != 0 {
			t.Errorf("unexpected warnings: %q", warn.String())
		}
	})

	t.Run("unset", func(t *testing.T) {
		t.Parallel()

		cfg := loadEnvConfig(mapGetenv(nil), &bytes.Buffer{})
		if cfg.Timeout != 0 || cfg.Bands != nil || cfg.Markdown != nil {
			t.Errorf("empty env should leave fields zero: %+v", cfg)
		}
	})

	t.Run("malformed values warn", func(t *testing.T) {
		t.Parallel()

		var warn bytes.Buffer
		cfg := loadEnvConfig(mapGetenv(map[string]string{
			"PAPYRUS_TIMEOUT": "-5s",
			"PAPYRUS_BANDS":   "sometimes",
		}), &warn)

		if cfg.Timeout != 0 {
			t.Errorf("Timeout = %v, want 0", cfg.Timeout)
		}
		if cfg.Bands != nil {
			t.Errorf("Bands = %v, want nil", *cfg.Bands)
		}
		for _, want := range []string{"PAPYRUS_TIMEOUT", "PAPYRUS_BANDS"} {
			if !strings.Contains(warn.String(), want) {
				t.Errorf("warnings should mention %s: %q", want, warn.String())
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"PATH=/usr/bin",
		"PAPYRUS_THEMES=light",
		"PAPYRUS_THEME=light",
		"PAPYRUS_BAND=x",
	})

	got := buf.String()
	if strings.Contains(got, "PAPYRUS_THEME ") || strings.Contains(got, "PATH") {
		t.Errorf("known or foreign variables should not warn: %q", got)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d warnings, want 2: %q", len(lines), got)
	}
	if !strings.Contains(lines[0], "PAPYRUS_BAND ") || !strings.Contains(lines[1], "PAPYRUS_THEMES") {
		t.Errorf("warnings should be sorted: %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Environment overrides the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("env overrides file", func(t *testing.T) {
		t.Parallel()

		yes, no := true, false
		cfg := &config.Config{}
		cfg.Render.Theme = "papyrus"
		cfg.Render.Markdown = true
		cfg.PDF.PageSize = "letter"

		applyEnvConfig(&envConfig{
			Theme:       "light",
			HistoryFile: "/h.json",
			AssetPath:   "/a",
			BandText:    "Env",
			Timeout:     45 * time.Second,
			PageSize:    "legal",
			Bands:       &yes,
			Markdown:    &no,
		}, cfg)

		if cfg.Render.Theme != "light" {
			t.Errorf("Theme = %q, want light", cfg.Render.Theme)
		}
		if cfg.History.Path != "/h.json" || cfg.Assets.BasePath != "/a" {
			t.Errorf("paths = %q, %q", cfg.History.Path, cfg.Assets.BasePath)
		}
		if cfg.Render.BandText != "Env" || !cfg.Render.Bands {
			t.Errorf("bands = %q, %v", cfg.Render.BandText, cfg.Render.Bands)
		}
		if cfg.Render.Markdown {
			t.Error("Markdown should be disabled by PAPYRUS_MARKDOWN=false")
		}
		if cfg.PDF.Timeout != "45s" || cfg.PDF.PageSize != "legal" {
			t.Errorf("pdf = %+v", cfg.PDF)
		}
	})

	t.Run("empty env keeps file", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{}
		cfg.Render.Theme = "papyrus"
		cfg.Render.Bands = true

		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Render.Theme != "papyrus" || !cfg.Render.Bands {
			t.Errorf("file values lost: %+v", cfg.Render)
		}
	})
}

// ---------------------------------------------------------------------------
// TestKnownEnvVars - Every variable read is registered
// ---------------------------------------------------------------------------

func TestKnownEnvVars(t *testing.T) {
	t.Parallel()

	var read []string
	loadEnvConfig(func(k string) string {
		read = append(read, k)
		return ""
	}, &bytes.Buffer{})

	for _, name := range read {
		if !knownEnvVars[name] {
			t.Errorf("%s is read but missing from knownEnvVars", name)
		}
	}
}
