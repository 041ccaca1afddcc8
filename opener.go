package papyrus

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/alnah/go-papyrus/internal/fileutil"
)

// Opener displays a rendered page to the user.
type Opener interface {
	// Open shows htmlContent and returns the path of the file it wrote.
	Open(ctx context.Context, htmlContent string) (string, error)
}

// startFunc launches name with args without waiting for it to exit.
type startFunc func(ctx context.Context, name string, args ...string) error

// BrowserOpener writes the page to a papyrus-*.html temp file and opens it
// with the platform's default handler. The file is left in place because
// the browser reads it after Open returns.
type BrowserOpener struct {
	goos  string
	start startFunc
}

// NewBrowserOpener returns an opener for the current platform.
func NewBrowserOpener() *BrowserOpener {
	return &BrowserOpener{goos: runtime.GOOS, start: startDetached}
}

// Open writes htmlContent to a temp file and asks the OS to open it.
func (o *BrowserOpener) Open(ctx context.Context, htmlContent string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBrowserOpen, err)
	}

	name, args := openCommand(o.goos, path)
	if err := o.start(ctx, name, args...); err != nil {
		cleanup()
		return "", fmt.Errorf("%w: %s: %v", ErrBrowserOpen, name, err)
	}

	return path, nil
}

// Command returns the program Open runs on this platform.
func (o *BrowserOpener) Command() string {
	name, _ := openCommand(o.goos, "")
	return name
}

// openCommand returns the program and arguments that open path with the
// default handler on goos.
func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}

func startDetached(_ context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...) // #nosec G204 -- fixed program, temp file path argument
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Compile-time interface check.
var _ Opener = (*BrowserOpener)(nil)
