package history

// Entry is one saved conversion.
type Entry struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
}

// storedEntry decodes an item leniently: pointer fields tell a missing key
// from an empty string.
type storedEntry struct {
	ID        string  `json:"id"`
	Title     *string `json:"title"`
	Timestamp string  `json:"timestamp"`
	Content   *string `json:"content"`
}

func (s storedEntry) entry() (Entry, bool) {
	if s.Title == nil || s.Content == nil {
		return Entry{}, false
	}
	return Entry{ID: s.ID, Title: *s.Title, Timestamp: s.Timestamp, Content: *s.Content}, true
}
