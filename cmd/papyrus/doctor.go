package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-papyrus"
	"github.com/alnah/go-papyrus/internal/fileutil"
	"github.com/alnah/go-papyrus/internal/history"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string      `json:"status"` // "ready", "warnings", "errors"
	Opener    toolInfo    `json:"opener"`
	Clipboard toolInfo    `json:"clipboard"`
	Chrome    chromeInfo  `json:"chrome"`
	History   historyInfo `json:"history"`
	Env       envInfo     `json:"environment"`
	System    systemInfo  `json:"system"`
	Warnings  []string    `json:"warnings,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
}

// toolInfo describes an external program papyrus hands content to.
type toolInfo struct {
	Found bool   `json:"found"`
	Name  string `json:"name,omitempty"`
	Path  string `json:"path,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// historyInfo describes the history file.
type historyInfo struct {
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Writable bool   `json:"writable"`
	Entries  int    `json:"entries"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// clipboardProber is implemented by clipboards that can report their tool.
type clipboardProber interface {
	Available() (string, bool)
}

// doctorProbe gathers the system facts the checks depend on.
type doctorProbe struct {
	getenv        func(string) string
	lookPath      func(string) (string, error)
	browserPath   func() (string, bool)
	chromeVersion func(path string) (string, error)
	openerCommand string
	clipboard     papyrus.Clipboard
	historyPath   string
	tempDir       string
	fileExists    func(string) bool
}

// newDoctorProbe returns a probe of the real system.
func newDoctorProbe(env *Environment, historyPath string) *doctorProbe {
	return &doctorProbe{
		getenv:        env.Getenv,
		lookPath:      exec.LookPath,
		browserPath:   papyrus.BrowserPath,
		chromeVersion: chromeVersion,
		openerCommand: papyrus.NewBrowserOpener().Command(),
		clipboard:     env.Clipboard,
		historyPath:   historyPath,
		tempDir:       os.TempDir(),
		fileExists:    fileutil.FileExists,
	}
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	jsonOutput := fs.Bool("json", false, "output in JSON format")
	historyPath := fs.String("history", "", "history file path to check")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, errHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	path := *historyPath
	if path == "" {
		path = env.Getenv("PAPYRUS_HISTORY_FILE")
	}
	if path == "" {
		path = history.DefaultPath()
	}

	result := runDoctor(newDoctorProbe(env, path))

	if *jsonOutput {
		_ = writeJSON(env.Stdout, result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(p *doctorProbe) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  p.getenv("ROD_NO_SANDBOX"),
			BrowserBin: p.getenv("ROD_BROWSER_BIN"),
		},
	}

	checkOpener(p, result)
	checkClipboard(p, result)
	checkChrome(p, result)
	checkHistory(p, result)
	checkEnvironment(p, result)
	checkSystem(p, result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkOpener verifies the program that opens pages in the browser.
func checkOpener(p *doctorProbe, result *doctorResult) {
	result.Opener.Name = p.openerCommand
	path, err := p.lookPath(p.openerCommand)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Browser opener %q not found; use --no-open with -o file.html", p.openerCommand))
		return
	}
	result.Opener.Found = true
	result.Opener.Path = path
}

// checkClipboard reports the clipboard tool. Only 'history copy' needs one.
func checkClipboard(p *doctorProbe, result *doctorResult) {
	prober, ok := p.clipboard.(clipboardProber)
	if !ok {
		return
	}
	name, found := prober.Available()
	result.Clipboard.Name = name
	if !found {
		result.Warnings = append(result.Warnings,
			"No clipboard tool found; 'history copy' will not work")
		return
	}
	result.Clipboard.Found = true
	if path, err := p.lookPath(name); err == nil {
		result.Clipboard.Path = path
	}
}

// checkChrome detects Chrome/Chromium. Only --pdf needs it.
func checkChrome(p *doctorProbe, result *doctorResult) {
	chromePath, found := p.browserPath()
	if !found {
		result.Warnings = append(result.Warnings,
			"Chrome/Chromium not found; --pdf needs Chrome or ROD_BROWSER_BIN")
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"

	version, err := p.chromeVersion(chromePath)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
		return
	}
	result.Chrome.Version = version
}

func chromeVersion(path string) (string, error) {
	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path from ROD_BROWSER_BIN or launcher lookup
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// checkHistory verifies the history file can be written.
func checkHistory(p *doctorProbe, result *doctorResult) {
	result.History.Path = p.historyPath
	result.History.Exists = p.fileExists(p.historyPath)
	if result.History.Exists {
		result.History.Entries = history.New(p.historyPath).Len()
	}

	if err := probeWritable(filepath.Dir(p.historyPath), "papyrus-doctor-history"); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("History directory not writable: %s", filepath.Dir(p.historyPath)))
		return
	}
	result.History.Writable = true
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(p *doctorProbe, result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer(p)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if p.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Chrome.Found && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 for --pdf")
	}
}

// isContainer detects if running in a container environment.
// Returns the signal that matched as a hint.
func isContainer(p *doctorProbe) (bool, string) {
	if p.getenv("PAPYRUS_CONTAINER") == "1" {
		return true, "PAPYRUS_CONTAINER=1"
	}
	if p.fileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := p.getenv("container"); v != "" {
		return true, "container=" + v
	}
	if p.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for opened pages.
func checkSystem(p *doctorProbe, result *doctorResult) {
	if err := probeWritable(p.tempDir, "papyrus-doctor-temp"); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", p.tempDir))
		return
	}
	result.System.TempWritable = true
}

// probeWritable creates and removes a scratch file in dir.
func probeWritable(dir, name string) error {
	f, err := os.CreateTemp(dir, name+"-*")
	if err != nil {
		return err
	}
	path := f.Name()
	_ = f.Close()
	return os.Remove(path)
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "papyrus doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Desktop")
	if r.Opener.Found {
		fmt.Fprintf(w, "  [OK] Opener: %s\n", r.Opener.Path)
	} else {
		fmt.Fprintf(w, "  [ERROR] Opener: %s not found\n", r.Opener.Name)
	}
	switch {
	case r.Clipboard.Found:
		fmt.Fprintf(w, "  [OK] Clipboard: %s\n", r.Clipboard.Name)
	case r.Clipboard.Name != "":
		fmt.Fprintf(w, "  [WARN] Clipboard: %s not found\n", r.Clipboard.Name)
	default:
		fmt.Fprintln(w, "  [WARN] Clipboard: no tool for this platform")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (PDF export)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "History")
	fmt.Fprintf(w, "  [OK] Path: %s\n", r.History.Path)
	if r.History.Exists {
		fmt.Fprintf(w, "  [OK] Entries: %d\n", r.History.Entries)
	}
	if r.History.Writable {
		fmt.Fprintln(w, "  [OK] Writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Not writable")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: READY")
	case statusWarnings:
		fmt.Fprintln(w, "Status: READY (with warnings)")
	default:
		fmt.Fprintln(w, "Status: NOT READY")
	}
}
