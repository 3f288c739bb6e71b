package goquery

import (
	"strings"
	"unicode"

	"github.com/fwojciec/distill"
	"golang.org/x/net/html"
)

// Normalizer collapses whitespace in text nodes.
type Normalizer struct {
	allow distill.AllowList
}

// NewNormalizer creates a Normalizer. Text below tags whose allow-list
// entry sets PreserveWhitespace is left untouched.
func NewNormalizer(allow distill.AllowList) *Normalizer {
	return &Normalizer{allow: allow}
}

// Normalize rewrites the text below root in place. Adjacent text siblings
// are merged and whitespace runs collapse to a single space. A text node is
// trimmed on the left when it is the first child of its parent and on the
// right when it is the last; elsewhere one separating space survives. Text
// nodes left empty are removed.
func (z *Normalizer) Normalize(root *html.Node) {
	z.walk(root, false)
}

func (z *Normalizer) walk(n *html.Node, preserve bool) {
	if n.Type == html.ElementNode {
		if e, ok := z.allow.Entry(n.Data); ok && e.PreserveWhitespace {
			preserve = true
		}
	}

	if !preserve {
		mergeText(n)
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.ElementNode:
			z.walk(c, preserve)
		case html.TextNode:
			if !preserve {
				normalizeText(c)
			}
		}
		c = next
	}
}

// mergeText joins runs of adjacent text children of n into one node.
func mergeText(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			continue
		}
		for next := c.NextSibling; next != nil && next.Type == html.TextNode; next = c.NextSibling {
			c.Data += next.Data
			n.RemoveChild(next)
		}
	}
}

// normalizeText collapses and trims a single text node, removing it when
// nothing is left.
func normalizeText(t *html.Node) {
	data := collapseSpace(t.Data)
	if t.PrevSibling == nil {
		data = strings.TrimLeft(data, " ")
	}
	if t.NextSibling == nil {
		data = strings.TrimRight(data, " ")
	}

	if data == "" {
		t.Parent.RemoveChild(t)
		return
	}
	t.Data = data
}

// collapseSpace replaces every run of whitespace in s with a single space.
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		}
		b.WriteRune(r)
		space = false
	}
	return b.String()
}
