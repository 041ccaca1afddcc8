package main

import (
	"errors"
	"os"

	"github.com/alnah/go-papyrus"
	"github.com/alnah/go-papyrus/internal/assets"
	"github.com/alnah/go-papyrus/internal/config"
)

// Exit codes for the papyrus CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, validation, or empty input
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser, opener, or clipboard errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser and desktop integration errors (exit 4)
	if errors.Is(err, papyrus.ErrBrowserOpen) ||
		errors.Is(err, papyrus.ErrClipboard) ||
		errors.Is(err, papyrus.ErrBrowserConnect) ||
		errors.Is(err, papyrus.ErrPageCreate) ||
		errors.Is(err, papyrus.ErrPageLoad) ||
		errors.Is(err, papyrus.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrConfirmRequired) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, papyrus.ErrEmptyInput) ||
		errors.Is(err, papyrus.ErrInvalidOptions) ||
		errors.Is(err, papyrus.ErrInvalidPageSize) ||
		errors.Is(err, papyrus.ErrInvalidMargin) ||
		errors.Is(err, papyrus.ErrHistoryIndex) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) {
		return ExitUsage
	}

	return ExitGeneral
}
