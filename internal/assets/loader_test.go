package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	valid := []string{"papyrus", "light", "my-theme", "my_theme", "Theme2", strings.Repeat("a", MaxNameLength)}
	for _, name := range valid {
		if err := ValidateAssetName(name); err != nil {
			t.Errorf("ValidateAssetName(%q) unexpected error: %v", name, err)
		}
	}

	invalid := map[string]string{
		"empty":             "",
		"too long":          strings.Repeat("a", MaxNameLength+1),
		"parent traversal":  "../secret",
		"windows traversal": "..\\secret",
		"absolute path":     "/etc/passwd",
		"drive path":        "C:\\Windows",
		"extension":         "papyrus.css",
		"hidden":            ".hidden",
		"dot":               ".",
		"space":             "dark mode",
		"non ascii":         "thème",
		"null byte":         "light\x00",
	}
	for label, name := range invalid {
		t.Run(label, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(name)
			if !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateAssetName(%q) = %v, want ErrInvalidAssetName", name, err)
			}
		})
	}
}
