// Package history keeps a bounded, deduplicated list of titled conversions
// in a single JSON file.
//
// The file is a JSON array of {id, title, timestamp, content} objects,
// newest first. Reading is permissive: a missing, unreadable or malformed
// file is an empty history. Only the first MaxEntries stored items are
// considered, and among them any item whose title or content is missing,
// null or not a string is dropped. Every mutation rewrites the whole file.
// Write failures are logged and swallowed; the in-memory list stays
// authoritative for the running process.
package history
