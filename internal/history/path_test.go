package history

// Notes:
// - These tests use t.Setenv and cannot run in parallel.
// - os.UserConfigDir reads XDG_CONFIG_HOME only on Linux and other Unixes
//   (not darwin or windows), so the tests are skipped elsewhere.

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func skipUnlessXDG(t *testing.T) {
	t.Helper()

	switch runtime.GOOS {
	case "darwin", "windows", "ios", "plan9":
		t.Skip("os.UserConfigDir ignores XDG_CONFIG_HOME on " + runtime.GOOS)
	}
}

func TestDefaultPath_UserConfigDir(t *testing.T) {
	skipUnlessXDG(t)

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := filepath.Join(dir, AppDirName, DefaultFileName)
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
	if info, err := os.Stat(filepath.Join(dir, AppDirName)); err != nil || !info.IsDir() {
		t.Errorf("app directory not created: %v", err)
	}
}

func TestDefaultPath_FallbackWhenDirCannotBeCreated(t *testing.T) {
	skipUnlessXDG(t)

	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("XDG_CONFIG_HOME", blocker)

	if got := DefaultPath(); got != FallbackPath() {
		t.Errorf("DefaultPath() = %q, want fallback %q", got, FallbackPath())
	}
}

func TestDefaultPath_FallbackWhenUnresolvable(t *testing.T) {
	skipUnlessXDG(t)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")

	if got := DefaultPath(); got != FallbackPath() {
		t.Errorf("DefaultPath() = %q, want fallback %q", got, FallbackPath())
	}
}

func TestFallbackPath(t *testing.T) {
	t.Parallel()

	want := filepath.Join(os.TempDir(), "papyrus_history.json")
	if got := FallbackPath(); got != want {
		t.Errorf("FallbackPath() = %q, want %q", got, want)
	}
}

func TestNew_EmptyPathUsesDefault(t *testing.T) {
	skipUnlessXDG(t)

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	s := New("")
	if want := filepath.Join(dir, AppDirName, DefaultFileName); s.Path() != want {
		t.Errorf("Path() = %q, want %q", s.Path(), want)
	}
}
