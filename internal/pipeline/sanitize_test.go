package pipeline

import (
	"strings"
	"testing"
	"unicode/utf8"
)

var removedCodePoints = []string{
	"\ufeff", "\u200b", "\u200c", "\u200d", "\u2060", "\u200e", "\u200f",
	"\u202a", "\u202b", "\u202c", "\u202d", "\u202e",
	"\u2066", "\u2067", "\u2068", "\u2069", "\u00ad",
}

func TestSanitize_RemovesInvisibleCodePoints(t *testing.T) {
	t.Parallel()

	for _, cp := range removedCodePoints {
		in := "<p>a" + cp + "b" + cp + "</p>"
		got := Sanitize(in)
		if strings.Contains(got, cp) {
			t.Errorf("Sanitize() kept U+%04X", []rune(cp)[0])
		}
		if !strings.Contains(got, "<p>ab</p>") {
			t.Errorf("Sanitize() removed U+%04X but mangled text: %q", []rune(cp)[0], got)
		}
	}
}

func TestSanitize_Normalizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"CRLF", "<body>a\r\nb</body>", "<body>a\nb</body>"},
		{"lone CR", "<body>a\rb</body>", "<body>a\nb</body>"},
		{"NBSP", "<body>a\u00a0b</body>", "<body>a b</body>"},
		{"narrow NBSP", "<body>a\u202fb</body>", "<body>a b</body>"},
		{"user-select spaced", `<body style="user-select: none">`, `<body style="user-select: text">`},
		{"user-select compact", `<body style="user-select:none">`, `<body style="user-select: text">`},
		{"webkit user-select", `<body style="-webkit-user-select:none">`, `<body style="-webkit-user-select: text">`},
		{"pointer-events spaced", `<body style="pointer-events: none">`, `<body style="pointer-events: auto">`},
		{"pointer-events compact", `<body style="pointer-events:none">`, `<body style="pointer-events: auto">`},
		{"invisible inside token", "<body style=\"user-select:\u200bnone\">", `<body style="user-select: text">`},
		{"other casing untouched", `<body style="USER-SELECT: NONE">`, `<body style="USER-SELECT: NONE">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitize_StyleBlockPlacement(t *testing.T) {
	t.Parallel()

	t.Run("before last head close", func(t *testing.T) {
		t.Parallel()

		in := "<html><head><title>t</title></HEAD><body>x</body></html>"
		got := Sanitize(in)
		idx := strings.Index(got, SanitizeMarker)
		closeIdx := strings.Index(got, "</HEAD>")
		if idx == -1 || idx > closeIdx {
			t.Fatalf("style block not before </HEAD>: %q", got)
		}
		if !strings.HasPrefix(got, "<html><head><title>t</title>\n<style") {
			t.Errorf("unexpected placement: %q", got)
		}
	})

	t.Run("prepended for bare fragment", func(t *testing.T) {
		t.Parallel()

		got := Sanitize("<p>Hi</p>")
		if !strings.HasPrefix(got, sanitizeStyleBlock) {
			t.Errorf("style block not prepended: %q", got)
		}
		if !strings.HasSuffix(got, "<p>Hi</p>") {
			t.Errorf("content lost: %q", got)
		}
	})

	t.Run("skipped for document without head", func(t *testing.T) {
		t.Parallel()

		in := "<html><body>X</body></html>"
		if got := Sanitize(in); got != in {
			t.Errorf("Sanitize(%q) = %q, want unchanged", in, got)
		}
	})

	t.Run("skipped when marker present", func(t *testing.T) {
		t.Parallel()

		in := `<head><style id="PDF-COPY-SANITIZE"></style></head>`
		if got := Sanitize(in); got != in {
			t.Errorf("Sanitize() reinjected: %q", got)
		}
	})
}

func TestSanitize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"<p>Hi</p>",
		"<html><body>X</body></html>",
		"<html><head></head><body style=\"user-select:none\">a\r\n\u00a0b\u200b</body></html>",
		"<div style=\"-webkit-user-select: none; pointer-events:none\">x</div>",
		"plain text\rwith\u00adsoft\u2066hyphen",
		"<HEAD></HEAD><HEAD></HEAD>",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func FuzzSanitize_Idempotent(f *testing.F) {
	f.Add("<p>Hi</p>")
	f.Add("<html><head></head><body>\u200bx\r\n</body></html>")
	f.Add("user-select:none pointer-events: none")

	f.Fuzz(func(t *testing.T, in string) {
		// Removing a code point may splice stray bytes of invalid UTF-8 into
		// a new one.
		if !utf8.ValidString(in) {
			t.Skip()
		}
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize not idempotent for %q", in)
		}
		for _, cp := range removedCodePoints {
			if strings.Contains(once, cp) {
				t.Errorf("Sanitize(%q) kept %q", in, cp)
			}
		}
	})
}

func TestSanitize_NonASCIIBeforeHead(t *testing.T) {
	t.Parallel()

	for _, tt := range lengthShifting {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := tt.prefix + "<html><head><title>t</title></head><body>x</body></html>"
			want := tt.prefix + "<html><head><title>t</title>" + sanitizeStyleBlock + "</head><body>x</body></html>"
			if got := Sanitize(in); got != want {
				t.Errorf("Sanitize() = %q, want %q", got, want)
			}
		})
	}
}
