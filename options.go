package papyrus

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Render option defaults.
const (
	DefaultBandText = "Papyrus"
	DefaultOffsetMM = 12
	DefaultTheme    = "papyrus"
)

// Options is the per-render configuration.
type Options struct {
	AddWrapper     bool
	AddPrintBands  bool
	EnablePDFCopy  bool
	BandText       string `validate:"max=200"`
	TopOffsetMM    int    `validate:"min=0,max=50"`
	BottomOffsetMM int    `validate:"min=0,max=50"`
	Theme          string `validate:"omitempty,max=50,excludesall=/\\"`

	// Markdown treats the input as Markdown instead of HTML.
	Markdown bool
	// Tidy balances tags of the pasted HTML before sanitizing.
	Tidy bool
	// SourceDir resolves relative image and link paths against a directory.
	SourceDir string
}

// DefaultOptions returns the options a fresh session starts with.
func DefaultOptions() Options {
	return Options{
		AddWrapper:     true,
		BandText:       DefaultBandText,
		TopOffsetMM:    DefaultOffsetMM,
		BottomOffsetMM: DefaultOffsetMM,
		Theme:          DefaultTheme,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges. Violations are reported with
// ErrInvalidOptions, one line per field.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s exceeds %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "excludesall":
		return fmt.Sprintf("%s must be a name, not a path", fe.Field())
	default:
		return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
	}
}
