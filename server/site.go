package server

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/f5xs-0000a/rusty-website/common"
)

// mimeTypes maps file extensions for the static site. Anything unlisted is
// served as an opaque byte stream.
var mimeTypes = map[string]string{
	".html":  "text/html",
	".css":   "text/css",
	".js":    "text/javascript",
	".txt":   "text/plain",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".woff2": "font/woff2",
	".pdf":   "application/pdf",
}

const defaultMimeType = "application/octet-stream"

// Site is the content provider for the plain-site host: a request path maps
// straight onto a file under Dir.
type Site struct {
	Dir string
}

// Get resolves a request path to a file response. "/" serves index.html.
// Paths escaping the document root and missing files both signal
// common.ErrNotFound.
func (s *Site) Get(path string) (common.Response, error) {
	path, _, _ = strings.Cut(path, "?")

	rel := strings.TrimPrefix(path, "/")
	if rel == "" {
		rel = "index.html"
	}

	rel = filepath.Clean(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") || filepath.IsAbs(rel) {
		return common.Response{}, common.ErrNotFound
	}

	content, err := os.ReadFile(filepath.Join(s.Dir, rel))
	if err != nil {
		return common.Response{}, common.ErrNotFound
	}

	mime, ok := mimeTypes[strings.ToLower(filepath.Ext(rel))]
	if !ok {
		mime = defaultMimeType
	}

	return common.Response{
		Status:   common.Status200,
		MimeType: mime,
		Content:  content,
	}, nil
}
