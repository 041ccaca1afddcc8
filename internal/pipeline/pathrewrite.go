package pipeline

import (
	"errors"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths turns relative img[src] and a[href] values into
// absolute file:// URLs under sourceDir. The rendered document is opened
// from the temp directory, where those relative paths would not resolve.
//
// Only tags carrying such a value are re-serialized; every other byte of
// htmlContent is kept as is. An empty sourceDir, or a page without relative
// references, returns htmlContent unchanged.
//
// URLs, anchors, absolute paths and paths escaping sourceDir are left as
// they are. Media elements, srcset, script[src] and CSS url() are not
// touched.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	base, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	changed := false
	pos, copied := 0, 0

	z := html.NewTokenizer(strings.NewReader(htmlContent))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return "", z.Err()
		}
		size := len(z.Raw())

		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			tok := z.Token()
			if rewriteTag(&tok, base) {
				out.WriteString(htmlContent[copied:pos])
				out.WriteString(tok.String())
				copied = pos + size
				changed = true
			}
		}
		pos += size
	}

	if !changed {
		return htmlContent, nil
	}
	out.WriteString(htmlContent[copied:])
	return out.String(), nil
}

// rewriteTag rewrites the path attribute of img and a tags in place and
// reports whether anything changed.
func rewriteTag(tok *html.Token, base string) bool {
	var key string
	switch tok.DataAtom {
	case atom.Img:
		key = "src"
	case atom.A:
		key = "href"
	default:
		return false
	}

	changed := false
	for i := range tok.Attr {
		if tok.Attr[i].Key != key || !isRelativePath(tok.Attr[i].Val) {
			continue
		}
		abs := filepath.Join(base, tok.Attr[i].Val)
		if !isPathUnderDir(abs, base) {
			continue
		}
		tok.Attr[i].Val = pathToFileURL(abs)
		changed = true
	}
	return changed
}

// isRelativePath reports whether path is a local relative reference.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	for _, scheme := range []string{"http:", "https:", "file:", "data:", "mailto:"} {
		if strings.HasPrefix(strings.ToLower(path), scheme) {
			return false
		}
	}
	return !filepath.IsAbs(path)
}

// isPathUnderDir reports whether absPath stays inside dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
