// Package hints builds the "\n  hint: ..." suffixes the CLI appends to
// error messages.
package hints

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/alnah/go-papyrus/internal/fileutil"
)

const prefix = "\n  hint: "

// platform is the slice of the host that hints depend on.
type platform struct {
	goos      string
	getenv    func(string) string
	container func() bool
}

var host = platform{
	goos:      runtime.GOOS,
	getenv:    os.Getenv,
	container: func() bool { return fileutil.FileExists("/.dockerenv") },
}

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// ForBrowserConnect suggests rod environment variables when headless
// Chrome fails to start.
func ForBrowserConnect() string { return host.browserConnect() }

func (p platform) browserConnect() string {
	var tips []string
	if p.sandboxed() && p.getenv("ROD_NO_SANDBOX") != "1" {
		tips = append(tips, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if p.getenv("ROD_BROWSER_BIN") == "" {
		tips = append(tips, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return join(tips...)
}

// sandboxed reports CI runners and containers, where Chrome's sandbox
// usually cannot start.
func (p platform) sandboxed() bool {
	for _, v := range ciVars {
		if p.getenv(v) != "" {
			return true
		}
	}
	return p.container()
}

// ForBrowserOpen explains how to fix the desktop opener.
func ForBrowserOpen() string { return host.browserOpen() }

func (p platform) browserOpen() string {
	switch p.goos {
	case "darwin":
		return join("check that 'open' can launch your default browser")
	case "windows":
		return join("check that a default browser is associated with .html files")
	}
	return join("install xdg-utils or use --no-open with -o file.html")
}

// ForClipboard names the clipboard tool to install.
func ForClipboard() string { return host.clipboard() }

func (p platform) clipboard() string {
	switch {
	case p.goos == "darwin" || p.goos == "windows":
		return join("check that the system clipboard is reachable from this session")
	case p.getenv("WAYLAND_DISPLAY") != "":
		return join("install wl-clipboard (wl-copy)")
	}
	return join("install xclip or xsel, or pipe 'papyrus history show' instead")
}

// ForTimeout points at the --timeout flag.
func ForTimeout() string {
	return join("for large documents, use --timeout flag")
}

// ForConfigNotFound suggests --config, plus the per-user location if it is
// among searched.
func ForConfigNotFound(searched []string) string {
	tip := "use --config /path/to/file.yaml"
	for _, p := range searched {
		if strings.Contains(p, ".config/papyrus") {
			return join(tip + " or create " + p)
		}
	}
	return join(tip)
}

func ForOutputDirectory() string {
	return join("check parent directory exists and is writable")
}

// ForThemeNotFound lists the built-in themes.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return join("available: " + strings.Join(available, ", "))
}

func ForEmptyInput() string {
	return join("pass a file path, or pipe HTML on stdin with '-'")
}

// ForHistoryIndex gives the valid 1-based range for a history of size entries.
func ForHistoryIndex(size int) string {
	if size == 0 {
		return join("history is empty")
	}
	return join("run 'papyrus history list' to see positions 1.." + strconv.Itoa(size))
}

// join renders tips as one hint line, or "" when there are none.
func join(tips ...string) string {
	if len(tips) == 0 || (len(tips) == 1 && tips[0] == "") {
		return ""
	}
	return prefix + strings.Join(tips, "; ")
}
