// Package config loads the optional papyrus YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-papyrus/internal/dateutil"
	"github.com/alnah/go-papyrus/internal/fileutil"
	"github.com/alnah/go-papyrus/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DirName is the per-user directory under os.UserConfigDir().
const DirName = "papyrus"

// Field length limits.
const (
	MaxBandTextLength = 200
	MaxThemeLength    = 50
	MaxPathLength     = 4096
	MaxPageSizeLength = 10 // "letter", "a4", "legal"
)

// Offset bounds for print bands, in millimetres.
const (
	MinOffsetMM = 0
	MaxOffsetMM = 50
)

// Config holds everything a papyrus.yaml may set. Zero values mean "not set";
// the caller layers them over the library defaults.
type Config struct {
	Render     RenderConfig     `yaml:"render"`
	History    HistoryConfig    `yaml:"history"`
	Assets     AssetsConfig     `yaml:"assets"`
	Timestamps TimestampsConfig `yaml:"timestamps"`
	PDF        PDFConfig        `yaml:"pdf"`
}

// RenderConfig mirrors the render options. Pointers distinguish an explicit
// false or 0 from an absent key.
type RenderConfig struct {
	Wrapper        *bool  `yaml:"wrapper,omitempty"`
	Bands          bool   `yaml:"bands,omitempty"`
	BandText       string `yaml:"bandText,omitempty"`
	TopOffsetMM    *int   `yaml:"topOffsetMM,omitempty"`
	BottomOffsetMM *int   `yaml:"bottomOffsetMM,omitempty"`
	PDFCopy        bool   `yaml:"pdfCopy,omitempty"`
	Markdown       bool   `yaml:"markdown,omitempty"`
	Tidy           bool   `yaml:"tidy,omitempty"`
	Theme          string `yaml:"theme,omitempty"`
}

// HistoryConfig defines where conversion history is kept.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"` // Empty = user config dir
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath,omitempty"` // Empty = use embedded assets
}

// TimestampsConfig holds date format tokens (see dateutil).
type TimestampsConfig struct {
	Title   string `yaml:"title,omitempty"`   // Wrapper <title>; default "title" preset
	History string `yaml:"history,omitempty"` // History entries; default "history" preset
}

// PDFConfig defines headless PDF export settings.
type PDFConfig struct {
	PageSize  string  `yaml:"pageSize,omitempty"`  // "letter", "a4", "legal" (default: "letter")
	Landscape bool    `yaml:"landscape,omitempty"` // default portrait
	Margin    float64 `yaml:"margin,omitempty"`    // inches (default: 0.5)
	Timeout   string  `yaml:"timeout,omitempty"`   // Go duration, e.g. "30s"
}

// TimeoutDuration parses PDF.Timeout. Zero means unset.
func (p PDFConfig) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: pdf.timeout %q: %v", ErrInvalidValue, p.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: pdf.timeout must be positive, got %s", ErrInvalidValue, p.Timeout)
	}
	return d, nil
}

// Validate checks lengths and ranges. Called automatically by LoadConfig,
// but available for callers who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("render.bandText", c.Render.BandText, MaxBandTextLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.theme", c.Render.Theme, MaxThemeLength); err != nil {
		return err
	}
	if err := validateOffset("render.topOffsetMM", c.Render.TopOffsetMM); err != nil {
		return err
	}
	if err := validateOffset("render.bottomOffsetMM", c.Render.BottomOffsetMM); err != nil {
		return err
	}

	if err := validateFieldLength("history.path", c.History.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	for field, format := range map[string]string{
		"timestamps.title":   c.Timestamps.Title,
		"timestamps.history": c.Timestamps.History,
	} {
		if err := validateFieldLength(field, format, dateutil.MaxDateFormatLength); err != nil {
			return err
		}
		if format == "" {
			continue
		}
		if err := dateutil.Validate(format); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
		}
	}

	if err := validateFieldLength("pdf.pageSize", c.PDF.PageSize, MaxPageSizeLength); err != nil {
		return err
	}
	if c.PDF.PageSize != "" {
		switch strings.ToLower(c.PDF.PageSize) {
		case "letter", "a4", "legal":
		default:
			return fmt.Errorf("%w: pdf.pageSize %q (must be letter, a4, or legal)", ErrInvalidValue, c.PDF.PageSize)
		}
	}
	if c.PDF.Margin < 0 || c.PDF.Margin > 2 {
		return fmt.Errorf("%w: pdf.margin must be between 0 and 2 inches, got %.2f", ErrInvalidValue, c.PDF.Margin)
	}
	if _, err := c.PDF.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateOffset(fieldName string, v *int) error {
	if v == nil {
		return nil
	}
	if *v < MinOffsetMM || *v > MaxOffsetMM {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidValue, fieldName, MinOffsetMM, MaxOffsetMM, *v)
	}
	return nil
}

// DefaultConfig returns an empty configuration: every setting falls through
// to the library defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists where a config name is looked up, in order.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/papyrus/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, DirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
