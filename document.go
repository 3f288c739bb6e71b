package distill

import (
	"bytes"
	"time"

	"golang.org/x/net/html"
)

// Document is a parsed page owned exclusively by one pipeline invocation.
// The tree is mutated in place by processing and must not be shared
// between concurrent invocations.
type Document struct {
	// Root is the top of the parsed tree (usually an html.DocumentNode).
	Root *html.Node

	// URL is the address the document was retrieved from, after redirects.
	URL string

	// Encoding is the declared or detected character encoding of the source
	// bytes. The tree itself always holds UTF-8 text.
	Encoding string
}

// HasElements reports whether the document contains at least one element node.
func (d *Document) HasElements() bool {
	if d == nil || d.Root == nil {
		return false
	}
	var found bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode {
			found = true
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.Root)
	return found
}

// Fragment is the output of the extraction pipeline: the page's main content
// wrapped in a minimal HTML shell carrying provenance metadata.
type Fragment struct {
	// Root is the complete output document (doctype, html, head and body).
	Root *html.Node

	// Content is the sanitized content element, the sole child of body.
	Content *html.Node

	SourceURL   string
	Title       string
	RetrievedAt time.Time

	// Unresolved lists reference values that could not be parsed as URLs
	// and were passed through verbatim.
	Unresolved []string
}

// HTML serializes the fragment's document to well-formed HTML text.
func (f *Fragment) HTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, f.Root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ContentHTML serializes only the content element. Unlike HTML it does not
// depend on the retrieval time, so equal content yields equal text.
func (f *Fragment) ContentHTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, f.Content); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Parser turns raw page bytes into a Document.
type Parser interface {
	// Parse decodes data using the encoding hint (typically the
	// Content-Type header value, may be empty) and returns the parsed tree.
	Parse(data []byte, contentType string) (*Document, error)
}

// Processor reduces a Document to its main content.
type Processor interface {
	// Process locates, sanitizes, resolves, normalizes and wraps the main
	// content of doc. The sourceURL becomes the base for reference
	// resolution and the provenance recorded in the fragment.
	// Returns EEXTRACT only if doc has no element nodes.
	Process(doc *Document, sourceURL string) (*Fragment, error)
}
