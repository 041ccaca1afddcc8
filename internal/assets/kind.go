package assets

import (
	"fmt"
	"path"
)

// kind describes one asset family: its directory, file extension, and the
// error reported when a name is missing.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// file returns the slash-separated path of name relative to an asset root.
func (k kind) file(name string) string {
	return path.Join(k.dir, name+k.ext)
}

func (k kind) missing(name string) error {
	return fmt.Errorf("%w: %q", k.notFound, name)
}
