package assets

import (
	"errors"
	"fmt"
)

// DefaultThemeName is the built-in dark theme.
const DefaultThemeName = "papyrus"

// WrapperTemplateName is the template rendered around bare fragments.
const WrapperTemplateName = "wrapper"

// MaxNameLength bounds theme and template names.
const MaxNameLength = 50

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("path traversal detected")
)

// AssetLoader loads theme styles and page templates by bare name, without
// extension. Unknown names yield ErrStyleNotFound or ErrTemplateNotFound;
// unsafe names yield ErrInvalidAssetName.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// ValidateAssetName accepts names made of ASCII letters, digits, '-' and '_'.
// Anything else could name a path or change the file extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAssetName, MaxNameLength)
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
