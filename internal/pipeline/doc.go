// Package pipeline implements the string transforms papyrus applies to
// pasted text before it is handed to a browser.
//
// Stages, in the order the renderer runs them:
//   - Markdown to HTML conversion via Goldmark (optional)
//   - Best-effort tag balancing via golang.org/x/net/html (optional)
//   - Relative path rewriting for files rendered from disk
//   - Copy-safe sanitizing of invisible code points and selection rules
//   - Escaped source view for copying HTML out of a PDF (optional)
//   - Themed wrapper document for bare fragments
//   - Repeated print header/footer bands (optional)
//
// Every stage is a pure string transform. Marker detection is
// case-insensitive: a lowercased copy is searched and the index is applied
// to the original string.
package pipeline
