package goquery_test

import (
	"bytes"
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/distill"
	"github.com/fwojciec/distill/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// parse parses a UTF-8 HTML string into a Document.
func parse(t *testing.T, s string) *distill.Document {
	t.Helper()

	doc, err := goquery.NewParser().Parse([]byte(s), "text/html; charset=utf-8")
	require.NoError(t, err)
	return doc
}

// find returns the first node below root matching selector.
func find(t *testing.T, root *html.Node, selector string) *html.Node {
	t.Helper()

	sel := gq.NewDocumentFromNode(root).Find(selector).First()
	require.Equal(t, 1, sel.Length(), "no match for %q", selector)
	return sel.Get(0)
}

// inner renders the children of n.
func inner(t *testing.T, n *html.Node) string {
	t.Helper()

	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		require.NoError(t, html.Render(&buf, c))
	}
	return buf.String()
}

// element builds a detached element with key/value attribute pairs.
func element(tag string, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

// walk calls fn for every node below n.
func walk(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		fn(c)
		walk(c, fn)
	}
}

// textOf returns the concatenated text below n.
func textOf(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}
