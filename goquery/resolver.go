package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// URLAttributes are the attributes that carry a URL reference.
var URLAttributes = []string{"href", "src", "cite", "poster", "action", "data", "longdesc"}

var urlAttrSelector = "[" + strings.Join(URLAttributes, "],[") + "]"

// ResolveReferences rewrites relative URL attributes below root (root
// included) to absolute form using base. Values that already carry a
// scheme are left unchanged. Values that cannot be parsed as URLs are
// passed through verbatim and returned, in document order. A nil or
// non-absolute base leaves relative values in place and reports them.
func ResolveReferences(root *html.Node, base *url.URL) []string {
	if base != nil && !base.IsAbs() {
		base = nil
	}

	var unresolved []string
	goquery.NewDocumentFromNode(root).Find(urlAttrSelector).AddBack().Each(func(_ int, sel *goquery.Selection) {
		for _, key := range URLAttributes {
			val, exists := sel.Attr(key)
			if !exists {
				continue
			}
			resolved, ok := resolveReference(base, val)
			if !ok {
				unresolved = append(unresolved, val)
				continue
			}
			if resolved != val {
				sel.SetAttr(key, resolved)
			}
		}
	})
	return unresolved
}

// resolveReference resolves raw against base following RFC 3986.
// It returns false when raw cannot be parsed or no base is available for a
// relative value.
func resolveReference(base *url.URL, raw string) (string, bool) {
	ref, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw, false
	}
	if ref.IsAbs() {
		return raw, true
	}
	if base == nil {
		return raw, false
	}
	return base.ResolveReference(ref).String(), true
}

// documentBase returns the base URL for references in doc: the <base href>
// of the head resolved against sourceURL, or sourceURL itself. Returns nil
// when neither yields an absolute URL.
func documentBase(doc *goquery.Document, sourceURL string) *url.URL {
	src, err := url.Parse(strings.TrimSpace(sourceURL))
	if err != nil || !src.IsAbs() {
		src = nil
	}

	href, exists := doc.Find("head base[href]").First().Attr("href")
	if !exists {
		return src
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return src
	}
	switch {
	case ref.IsAbs():
		return ref
	case src != nil:
		return src.ResolveReference(ref)
	default:
		return nil
	}
}
