package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-papyrus/internal/dateutil"
	"github.com/alnah/go-papyrus/internal/fileutil"
)

// MaxEntries caps the stored list; older entries fall off the tail.
const MaxEntries = 50

// filePerm keeps history private: it holds whatever was pasted.
const filePerm = 0o600

// Store is the history list backed by a JSON file.
// The mutex only guards in-process sharing; concurrent writers in other
// processes are not coordinated and the last one wins.
type Store struct {
	mu      sync.Mutex
	path    string
	entries []Entry

	logger          *slog.Logger
	now             func() time.Time
	timestampFormat string
	newID           func() string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for swallowed persistence errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTimestampFormat sets the dateutil format (or preset name) used for
// entry timestamps. Invalid formats fall back to the default when used.
func WithTimestampFormat(format string) Option {
	return func(s *Store) {
		if format != "" {
			s.timestampFormat = format
		}
	}
}

// New creates a Store on path and loads it. An empty path means DefaultPath.
func New(path string, opts ...Option) *Store {
	if path == "" {
		path = DefaultPath()
	}

	s := &Store{
		path:            path,
		logger:          slog.New(slog.DiscardHandler),
		now:             time.Now,
		timestampFormat: dateutil.DefaultHistoryFormat,
		newID:           uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Load()
	return s
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory list with the file contents and returns a
// copy. It never fails: unreadable or malformed files give an empty list.
func (s *Store) Load() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = s.read()
	return s.snapshot()
}

func (s *Store) read() []Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("history file not found", "path", s.path)
		} else {
			s.logger.Warn("reading history", "path", s.path, "error", err)
		}
		return []Entry{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("history file is not a JSON array, starting empty", "path", s.path, "error", err)
		return []Entry{}
	}

	// The cap applies to stored items, before malformed ones are dropped.
	if len(items) > MaxEntries {
		items = items[:MaxEntries]
	}

	entries := make([]Entry, 0, len(items))
	dropped := 0
	for _, raw := range items {
		var item storedEntry
		if err := json.Unmarshal(raw, &item); err != nil {
			dropped++
			continue
		}
		e, ok := item.entry()
		if !ok {
			dropped++
			continue
		}
		entries = append(entries, e)
	}
	if dropped > 0 {
		s.logger.Warn("dropped malformed history items", "path", s.path, "count", dropped)
	}
	return entries
}

// Save writes the first MaxEntries entries to the backing file atomically.
// Errors are logged and swallowed.
func (s *Store) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.save()
}

func (s *Store) save() {
	entries := s.entries
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		s.logger.Error("encoding history", "error", err)
		return
	}

	if err := fileutil.WriteFileAtomic(s.path, buf.Bytes(), filePerm); err != nil {
		s.logger.Error("writing history", "path", s.path, "error", err)
		return
	}
	s.logger.Debug("history saved", "path", s.path, "entries", len(entries))
}

// InsertIfNew adds (title, content) at the head and persists. The title is
// trimmed before it is compared and stored. It returns false without
// changes when the trimmed title is empty or the pair is already stored.
func (s *Store) InsertIfNew(title, content string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.Title == title && e.Content == content {
			return false
		}
	}

	entry := Entry{
		ID:        s.newID(),
		Title:     title,
		Timestamp: s.timestamp(),
		Content:   content,
	}
	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}

	s.save()
	return true
}

func (s *Store) timestamp() string {
	now := s.now()
	ts, err := dateutil.Format(s.timestampFormat, now)
	if err != nil {
		s.logger.Warn("invalid history timestamp format, using default", "format", s.timestampFormat, "error", err)
		ts, _ = dateutil.Format(dateutil.DefaultHistoryFormat, now)
	}
	return ts
}

// DeleteAt removes the entry at index and persists. Out-of-range indexes
// are ignored.
func (s *Store) DeleteAt(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return
	}
	s.entries = append(s.entries[:index:index], s.entries[index+1:]...)
	s.save()
}

// Clear empties the list and persists.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []Entry{}
	s.save()
}

// Entries returns a copy of the list, newest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// Get returns the entry at index.
func (s *Store) Get(index int) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[index], true
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func (s *Store) snapshot() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
