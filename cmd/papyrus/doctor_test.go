package main

// Notes:
// - runDoctor is tested through a fake doctorProbe, so results do not depend
//   on the machine running the tests.
// - runDoctorCmd is tested for output shape only, against the real system.

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// healthyProbe returns a probe where every check passes.
func healthyProbe(t *testing.T) *doctorProbe {
	t.Helper()

	dir := t.TempDir()
	return &doctorProbe{
		getenv:        func(string) string { return "" },
		lookPath:      func(name string) (string, error) { return "/usr/bin/" + name, nil },
		browserPath:   func() (string, bool) { return "/usr/bin/chromium", true },
		chromeVersion: func(string) (string, error) { return "Chromium 130.0", nil },
		openerCommand: "xdg-open",
		clipboard:     &fakeClipboard{tool: "xclip", available: true},
		historyPath:   filepath.Join(dir, "history.json"),
		tempDir:       dir,
		fileExists:    func(string) bool { return false },
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctor - Status from checks
// ---------------------------------------------------------------------------

func TestRunDoctor_Ready(t *testing.T) {
	t.Parallel()

	r := runDoctor(healthyProbe(t))

	if r.Status != statusReady {
		t.Fatalf("Status = %q, want ready (warnings %v, errors %v)", r.Status, r.Warnings, r.Errors)
	}
	if !r.Opener.Found || r.Opener.Path != "/usr/bin/xdg-open" {
		t.Errorf("Opener = %+v", r.Opener)
	}
	if !r.Clipboard.Found || r.Clipboard.Name != "xclip" {
		t.Errorf("Clipboard = %+v", r.Clipboard)
	}
	if !r.Chrome.Found || r.Chrome.Version != "Chromium 130.0" || !r.Chrome.Sandbox {
		t.Errorf("Chrome = %+v", r.Chrome)
	}
	if !r.History.Writable || r.History.Exists {
		t.Errorf("History = %+v", r.History)
	}
	if !r.System.TempWritable {
		t.Error("temp dir should be writable")
	}
	if r.Env.OS != runtime.GOOS {
		t.Errorf("OS = %q, want %q", r.Env.OS, runtime.GOOS)
	}
}

func TestRunDoctor_Warnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(p *doctorProbe)
		want   string
	}{
		{
			name:   "no clipboard",
			modify: func(p *doctorProbe) { p.clipboard = &fakeClipboard{tool: "xclip"} },
			want:   "clipboard",
		},
		{
			name:   "no chrome",
			modify: func(p *doctorProbe) { p.browserPath = func() (string, bool) { return "", false } },
			want:   "Chrome/Chromium not found",
		},
		{
			name: "chrome version fails",
			modify: func(p *doctorProbe) {
				p.chromeVersion = func(string) (string, error) { return "", errors.New("exit 1") }
			},
			want: "Chrome version",
		},
		{
			name: "container without no-sandbox",
			modify: func(p *doctorProbe) {
				p.getenv = func(k string) string {
					if k == "PAPYRUS_CONTAINER" {
						return "1"
					}
					return ""
				}
			},
			want: "ROD_NO_SANDBOX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := healthyProbe(t)
			tt.modify(p)
			r := runDoctor(p)

			if r.Status != statusWarnings {
				t.Fatalf("Status = %q, want warnings (errors %v)", r.Status, r.Errors)
			}
			if !strings.Contains(strings.Join(r.Warnings, "\n"), tt.want) {
				t.Errorf("warnings %v should mention %q", r.Warnings, tt.want)
			}
		})
	}
}

func TestRunDoctor_Errors(t *testing.T) {
	t.Parallel()

	t.Run("no opener", func(t *testing.T) {
		t.Parallel()

		p := healthyProbe(t)
		p.lookPath = func(name string) (string, error) {
			if name == "xdg-open" {
				return "", errors.New("not found")
			}
			return "/usr/bin/" + name, nil
		}
		r := runDoctor(p)
		if r.Status != statusErrors || r.Opener.Found {
			t.Errorf("Status = %q, Opener = %+v", r.Status, r.Opener)
		}
	})

	t.Run("history dir missing", func(t *testing.T) {
		t.Parallel()

		p := healthyProbe(t)
		p.historyPath = filepath.Join(t.TempDir(), "missing", "history.json")
		r := runDoctor(p)
		if r.Status != statusErrors || r.History.Writable {
			t.Errorf("Status = %q, History = %+v", r.Status, r.History)
		}
	})
}

func TestIsContainer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		env      map[string]string
		docker   bool
		want     bool
		wantHint string
	}{
		{"override", map[string]string{"PAPYRUS_CONTAINER": "1"}, false, true, "PAPYRUS_CONTAINER=1"},
		{"dockerenv", nil, true, true, "/.dockerenv"},
		{"podman", map[string]string{"container": "podman"}, false, true, "container=podman"},
		{"kubernetes", map[string]string{"KUBERNETES_SERVICE_HOST": "10.0.0.1"}, false, true, "KUBERNETES_SERVICE_HOST"},
		{"none", nil, false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := healthyProbe(t)
			p.getenv = mapGetenv(tt.env)
			p.fileExists = func(path string) bool { return tt.docker && path == "/.dockerenv" }

			got, hint := isContainer(p)
			if got != tt.want || hint != tt.wantHint {
				t.Errorf("isContainer() = (%v, %q), want (%v, %q)", got, hint, tt.want, tt.wantHint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPrintDoctorResult - Human-readable output
// ---------------------------------------------------------------------------

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	printDoctorResult(te.stdout, runDoctor(healthyProbe(t)))

	out := te.stdout.String()
	for _, want := range []string{"papyrus doctor", "[OK] Opener: /usr/bin/xdg-open", "[OK] Clipboard: xclip", "Status: READY"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Command output shape
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	code := runDoctorCmd([]string{"--json", "--history", historyFile(t)}, te.Environment)

	var result doctorResult
	if err := json.Unmarshal(te.stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, te.stdout.String())
	}
	validStatuses := map[string]bool{statusReady: true, statusWarnings: true, statusErrors: true}
	if !validStatuses[result.Status] {
		t.Errorf("invalid status %q", result.Status)
	}
	if result.Status == statusErrors && code != ExitGeneral {
		t.Errorf("exit code = %d, want %d for errors", code, ExitGeneral)
	}
	if result.Status != statusErrors && code != ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, ExitSuccess)
	}
}

func TestRunDoctorCmd_UnknownFlag(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	if code := runDoctorCmd([]string{"--bogus"}, te.Environment); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}
