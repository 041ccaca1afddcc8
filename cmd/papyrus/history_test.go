package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alnah/go-papyrus"
	"github.com/alnah/go-papyrus/internal/history"
)

// seedHistory writes two entries; "Second" is newest, so it is position 1.
func seedHistory(t *testing.T) string {
	t.Helper()

	path := historyFile(t)
	store := history.New(path)
	store.InsertIfNew("First", "<p>one</p>")
	store.InsertIfNew("Second", "# two")
	return path
}

// ---------------------------------------------------------------------------
// TestRunHistory_List
// ---------------------------------------------------------------------------

func TestRunHistory_List(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	path := seedHistory(t)

	if err := runHistory(context.Background(), []string{"list", "--history", path}, te.Environment); err != nil {
		t.Fatalf("runHistory(list) error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(te.stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), te.stdout.String())
	}
	if !strings.HasPrefix(lines[0], "1  ") || !strings.HasSuffix(lines[0], "Second") {
		t.Errorf("line 1 = %q, want position 1 for newest entry", lines[0])
	}
	if !strings.HasSuffix(lines[1], "First") {
		t.Errorf("line 2 = %q", lines[1])
	}
}

func TestRunHistory_ListJSON(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	path := seedHistory(t)

	if err := runHistory(context.Background(), []string{"list", "--json", "--history", path}, te.Environment); err != nil {
		t.Fatalf("runHistory(list --json) error = %v", err)
	}

	var entries []history.Entry
	if err := json.Unmarshal(te.stdout.Bytes(), &entries); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, te.stdout.String())
	}
	if len(entries) != 2 || entries[0].Title != "Second" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestRunHistory_ListEmpty(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")

	if err := runHistory(context.Background(), []string{"ls", "--history", historyFile(t)}, te.Environment); err != nil {
		t.Fatalf("runHistory(ls) error = %v", err)
	}
	if !strings.Contains(te.stdout.String(), "History is empty") {
		t.Errorf("stdout = %q", te.stdout.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunHistory_Entry - show, copy, open, delete
// ---------------------------------------------------------------------------

func TestRunHistory_Show(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	path := seedHistory(t)

	if err := runHistory(context.Background(), []string{"show", "2", "--history", path}, te.Environment); err != nil {
		t.Fatalf("runHistory(show) error = %v", err)
	}

	got := te.stdout.String()
	if !strings.Contains(got, "Title:     First") || !strings.Contains(got, "<p>one</p>") {
		t.Errorf("show output = %q", got)
	}
}

func TestRunHistory_Copy(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	path := seedHistory(t)

	if err := runHistory(context.Background(), []string{"copy", "1", "--history", path}, te.Environment); err != nil {
		t.Fatalf("runHistory(copy) error = %v", err)
	}
	if te.clipboard.text != "# two" {
		t.Errorf("clipboard = %q, want raw content", te.clipboard.text)
	}
}

func TestRunHistory_CopyFailure(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	te.clipboard.err = fmt.Errorf("%w: no tool", papyrus.ErrClipboard)
	path := seedHistory(t)

	err := runHistory(context.Background(), []string{"copy", "1", "--history", path}, te.Environment)
	if !errors.Is(err, papyrus.ErrClipboard) {
		t.Fatalf("error = %v, want ErrClipboard", err)
	}
	if !strings.Contains(err.Error(), "hint:") {
		t.Errorf("error should carry a hint: %v", err)
	}
	if exitCodeFor(err) != ExitBrowser {
		t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitBrowser)
	}
}

func TestRunHistory_OpenRendersEntry(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	path := seedHistory(t)

	if err := runHistory(context.Background(), []string{"open", "1", "-m", "--history", path}, te.Environment); err != nil {
		t.Fatalf("runHistory(open) error = %v", err)
	}
	if len(te.opener.pages) != 1 {
		t.Fatalf("opener called %d times, want 1", len(te.opener.pages))
	}
	if !strings.Contains(te.opener.pages[0], "<h1") {
		t.Errorf("opened page should contain rendered markdown: %q", te.opener.pages[0])
	}
}

func TestRunHistory_OpenNoOpen(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	path := seedHistory(t)

	if err := runHistory(context.Background(), []string{"open", "2", "--no-open", "--no-wrapper", "--history", path}, te.Environment); err != nil {
		t.Fatalf("runHistory(open --no-open) error = %v", err)
	}
	if len(te.opener.pages) != 0 {
		t.Error("--no-open should not launch the browser")
	}
	if !strings.Contains(te.stdout.String(), "<p>one</p>") {
		t.Errorf("stdout = %q", te.stdout.String())
	}
}

func TestRunHistory_Delete(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	path := seedHistory(t)

	if err := runHistory(context.Background(), []string{"delete", "1", "--history", path}, te.Environment); err != nil {
		t.Fatalf("runHistory(delete) error = %v", err)
	}

	entries := history.New(path).Entries()
	if len(entries) != 1 || entries[0].Title != "First" {
		t.Errorf("entries after delete = %+v", entries)
	}
}

// ---------------------------------------------------------------------------
// TestRunHistory_Clear
// ---------------------------------------------------------------------------

func TestRunHistory_ClearNeedsConfirmation(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	path := seedHistory(t)

	err := runHistory(context.Background(), []string{"clear", "--history", path}, te.Environment)
	if !errors.Is(err, ErrConfirmRequired) {
		t.Fatalf("error = %v, want ErrConfirmRequired", err)
	}
	if n := history.New(path).Len(); n != 2 {
		t.Errorf("entries = %d, want 2 (unchanged)", n)
	}
}

func TestRunHistory_ClearWithYes(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	path := seedHistory(t)

	if err := runHistory(context.Background(), []string{"clear", "-y", "--history", path}, te.Environment); err != nil {
		t.Fatalf("runHistory(clear -y) error = %v", err)
	}
	if n := history.New(path).Len(); n != 0 {
		t.Errorf("entries = %d, want 0", n)
	}
}

// ---------------------------------------------------------------------------
// TestRunHistory_Errors
// ---------------------------------------------------------------------------

func TestRunHistory_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{"position zero", []string{"show", "0"}, papyrus.ErrHistoryIndex, "positions 1..2"},
		{"position past end", []string{"show", "3"}, papyrus.ErrHistoryIndex, "positions 1..2"},
		{"not a number", []string{"show", "first"}, ErrUsage, "not a number"},
		{"missing position", []string{"copy"}, ErrUsage, "one position"},
		{"unknown subcommand", []string{"purge"}, ErrUsage, "unknown history command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t, "")
			args := append(tt.args, "--history", seedHistory(t))

			err := runHistory(context.Background(), args, te.Environment)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
			if exitCodeFor(err) != ExitUsage {
				t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitUsage)
			}
		})
	}
}

func TestRunHistory_EmptyIndexHint(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")

	err := runHistory(context.Background(), []string{"show", "1", "--history", historyFile(t)}, te.Environment)
	if !errors.Is(err, papyrus.ErrHistoryIndex) {
		t.Fatalf("error = %v, want ErrHistoryIndex", err)
	}
	if !strings.Contains(err.Error(), "history is empty") {
		t.Errorf("error = %v, want empty hint", err)
	}
}

func TestRunHistory_NoSubcommandPrintsUsage(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")

	if err := runHistory(context.Background(), nil, te.Environment); err != nil {
		t.Fatalf("runHistory() error = %v", err)
	}
	if !strings.Contains(te.stdout.String(), "Usage: papyrus history") {
		t.Errorf("stdout = %q", te.stdout.String())
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is t…"},
		{"héllo wörld", 6, "héllo…"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
