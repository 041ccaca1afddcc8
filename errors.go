package papyrus

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyInput     = errors.New("input content cannot be empty")
	ErrRender         = errors.New("rendering failed")
	ErrInvalidOptions = errors.New("invalid render options")
	ErrHistoryIndex   = errors.New("history index out of range")

	// External program errors.
	ErrBrowserOpen = errors.New("failed to open browser")
	ErrClipboard   = errors.New("clipboard copy failed")

	// PDF export errors.
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")
)
