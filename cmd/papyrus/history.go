package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-papyrus"
	"github.com/alnah/go-papyrus/internal/hints"
	"github.com/alnah/go-papyrus/internal/history"
)

// listTitleWidth truncates titles in `history list`.
const listTitleWidth = 60

// runHistory dispatches history subcommands. Positions shown to users are
// 1-based; the store is 0-based.
func runHistory(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseHistoryFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, errHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) == 0 {
		printHistoryUsage(env.Stdout)
		return nil
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	envCfg := loadEnvConfig(env.Getenv, env.Stderr)
	cfg, err := loadConfig(flags.common, envCfg)
	if err != nil {
		return err
	}
	store := openHistory(cfg, flags.common, logger, env.Now)

	sub, rest := positional[0], positional[1:]
	switch sub {
	case "list", "ls":
		return historyList(env.Stdout, store, flags.json)
	case "path":
		fmt.Fprintln(env.Stdout, store.Path())
		return nil
	case "clear":
		if !flags.yes {
			return fmt.Errorf("%w: clearing %d entries needs --yes", ErrConfirmRequired, store.Len())
		}
		store.Clear()
		if !flags.common.quiet {
			fmt.Fprintln(env.Stdout, "History cleared")
		}
		return nil
	case "show", "open", "copy", "delete", "rm":
	default:
		return fmt.Errorf("%w: unknown history command %q", ErrUsage, sub)
	}

	if len(rest) != 1 {
		return fmt.Errorf("%w: history %s takes one position", ErrUsage, sub)
	}
	index, entry, err := lookupEntry(store, rest[0])
	if err != nil {
		return err
	}

	switch sub {
	case "show":
		return historyShow(env.Stdout, entry, flags.json)
	case "copy":
		if err := env.Clipboard.Copy(ctx, entry.Content); err != nil {
			return fmt.Errorf("%w%s", err, hints.ForClipboard())
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Copied %q to clipboard\n", entry.Title)
		}
		return nil
	case "delete", "rm":
		store.DeleteAt(index)
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Deleted %q\n", entry.Title)
		}
		return nil
	default: // open
		renderer, err := newRenderer(cfg, flags.pipeline.assetPath, env, logger, nil)
		if err != nil {
			return err
		}
		opts := buildRenderOptions(cfg, flags.pipeline, flags.changed)
		page, err := renderer.Render(ctx, entry.Content, opts)
		if err != nil {
			return withRenderHints(err)
		}
		if flags.noOpen {
			fmt.Fprint(env.Stdout, page)
			return nil
		}
		path, err := env.Opener.Open(ctx, page)
		if err != nil {
			return fmt.Errorf("%w%s", err, hints.ForBrowserOpen())
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Opened %s\n", path)
		}
		return nil
	}
}

// lookupEntry resolves a 1-based position argument.
func lookupEntry(store *history.Store, arg string) (int, history.Entry, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return 0, history.Entry{}, fmt.Errorf("%w: position %q is not a number", ErrUsage, arg)
	}
	entry, ok := store.Get(pos - 1)
	if !ok {
		return 0, history.Entry{}, fmt.Errorf("%w: %d%s", papyrus.ErrHistoryIndex, pos, hints.ForHistoryIndex(store.Len()))
	}
	return pos - 1, entry, nil
}

// historyList prints one line per entry, newest first.
func historyList(w io.Writer, store *history.Store, asJSON bool) error {
	entries := store.Entries()
	if asJSON {
		return writeJSON(w, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "History is empty")
		return nil
	}
	width := len(strconv.Itoa(len(entries)))
	for i, e := range entries {
		fmt.Fprintf(w, "%*d  %s  %s\n", width, i+1, e.Timestamp, truncate(e.Title, listTitleWidth))
	}
	return nil
}

// historyShow prints an entry's details followed by its raw content.
func historyShow(w io.Writer, e history.Entry, asJSON bool) error {
	if asJSON {
		return writeJSON(w, e)
	}
	fmt.Fprintf(w, "Title:     %s\n", e.Title)
	fmt.Fprintf(w, "Timestamp: %s\n", e.Timestamp)
	if e.ID != "" {
		fmt.Fprintf(w, "ID:        %s\n", e.ID)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.TrimRight(e.Content, "\n"))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
