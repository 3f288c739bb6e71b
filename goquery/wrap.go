package goquery

import (
	"time"

	"golang.org/x/net/html"
)

// Meta names under which provenance is recorded in the output head.
const (
	MetaSourceURL   = "source-url"
	MetaRetrievedAt = "retrieved-at"
)

// Wrap builds the output document around a sanitized fragment:
// a doctype, a head carrying the title and provenance metadata, and a body
// whose sole child is content. content must be detached.
func Wrap(content *html.Node, sourceURL, title string, retrievedAt time.Time) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := newElement("html")
	head := newElement("head")
	body := newElement("body")

	head.AppendChild(newElement("meta", html.Attribute{Key: "charset", Val: "utf-8"}))
	titleEl := newElement("title")
	titleEl.AppendChild(newText(title))
	head.AppendChild(titleEl)
	head.AppendChild(newElement("meta",
		html.Attribute{Key: "name", Val: MetaSourceURL},
		html.Attribute{Key: "content", Val: sourceURL},
	))
	head.AppendChild(newElement("meta",
		html.Attribute{Key: "name", Val: MetaRetrievedAt},
		html.Attribute{Key: "content", Val: retrievedAt.UTC().Format(time.RFC3339)},
	))

	body.AppendChild(content)
	root.AppendChild(head)
	root.AppendChild(body)
	doc.AppendChild(root)
	return doc
}
