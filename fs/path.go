// Package fs provides file-based storage for extracted pages.
package fs

import (
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/distill"
)

// hashLen is the number of content hash characters kept in file names.
const hashLen = 8

// FragmentPath converts a page URL and content hash to a relative file path
// of the form <host>/<path>.<hash>.html.
// Example: https://example.com/docs/api?v=2 with hash 3f2a... → example.com/docs/api.3f2a1b9c.html
//
// The root path and paths ending in a slash map to "index". The query and
// fragment are dropped; the hash keeps distinct content apart.
func FragmentPath(rawURL, hash string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", distill.Errorf(distill.EINVALID, "invalid page URL %q: %v", rawURL, err)
	}

	host := sanitizeSegment(strings.ToLower(u.Hostname()))
	if host == "" {
		host = "_"
	}

	p := u.Path
	if p == "" || strings.HasSuffix(p, "/") {
		p += "index"
	}

	segments := strings.Split(strings.TrimPrefix(p, "/"), "/")
	for i, seg := range segments {
		if seg == ".." {
			return "", distill.Errorf(distill.EINVALID, "path traversal in %q", rawURL)
		}
		segments[i] = sanitizeSegment(seg)
	}

	name := path.Join(append([]string{host}, segments...)...)
	if len(hash) > hashLen {
		hash = hash[:hashLen]
	}
	if hash != "" {
		name += "." + hash
	}
	return name + ".html", nil
}

// MarkdownPath returns the path of the Markdown sidecar for an HTML path.
func MarkdownPath(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, ".html") + ".md"
}

// sanitizeSegment replaces characters that are unsafe in file names.
func sanitizeSegment(s string) string {
	if s == "" || s == "." {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, strings.ContainsRune(`<>:"\|?*`, r):
			return '_'
		default:
			return r
		}
	}, s)
}
