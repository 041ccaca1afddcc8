package papyrus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Clipboard places text on the system clipboard.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// errNoClipboardTool is returned when no known clipboard program is installed.
var errNoClipboardTool = errors.New("no clipboard tool found")

// clipboardTool is a program that reads the clipboard payload from stdin.
type clipboardTool struct {
	name string
	args []string
}

// SystemClipboard pipes text into pbcopy, clip, wl-copy, xclip or xsel,
// whichever applies to the platform and is installed.
type SystemClipboard struct {
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)
	run      func(ctx context.Context, stdin string, name string, args ...string) error
}

// NewSystemClipboard returns a clipboard for the current platform.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{
		goos:     runtime.GOOS,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		run:      runWithStdin,
	}
}

// Copy replaces the clipboard content with text.
func (c *SystemClipboard) Copy(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tool, err := c.tool()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}

	if err := c.run(ctx, text, tool.name, tool.args...); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrClipboard, tool.name, err)
	}
	return nil
}

// Available returns the clipboard program Copy would use, if any.
func (c *SystemClipboard) Available() (string, bool) {
	tool, err := c.tool()
	if err != nil {
		return "", false
	}
	return tool.name, true
}

// tool picks the first installed candidate for the platform.
func (c *SystemClipboard) tool() (clipboardTool, error) {
	for _, t := range c.candidates() {
		if _, err := c.lookPath(t.name); err == nil {
			return t, nil
		}
	}
	return clipboardTool{}, errNoClipboardTool
}

func (c *SystemClipboard) candidates() []clipboardTool {
	switch c.goos {
	case "darwin":
		return []clipboardTool{{name: "pbcopy"}}
	case "windows":
		return []clipboardTool{{name: "clip"}}
	}

	var tools []clipboardTool
	if c.getenv("WAYLAND_DISPLAY") != "" {
		tools = append(tools, clipboardTool{name: "wl-copy"})
	}
	return append(tools,
		clipboardTool{name: "xclip", args: []string{"-selection", "clipboard"}},
		clipboardTool{name: "xsel", args: []string{"--clipboard", "--input"}},
	)
}

func runWithStdin(ctx context.Context, stdin string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- program picked from a fixed list
	cmd.Stdin = strings.NewReader(stdin)

	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// Compile-time interface check.
var _ Clipboard = (*SystemClipboard)(nil)
