// Package goquery implements the content extraction pipeline on top of
// goquery and golang.org/x/net/html: locating the main content of a page,
// sanitizing it against an allow-list, resolving references and
// normalizing whitespace.
package goquery

import (
	"strings"

	"github.com/fwojciec/distill"
	"golang.org/x/net/html"
)

// Classifier decides whether an element is structural or promotional noise.
// It only looks at the element's own tag and attributes, never at its
// position or content. Classifier is safe for concurrent use.
type Classifier struct {
	tags     map[string]bool
	attrs    map[string]bool
	patterns []string
	tokens   map[string]bool
}

// NewClassifier creates a Classifier from a clutter signature.
func NewClassifier(sig distill.ClutterSignature) *Classifier {
	c := &Classifier{
		tags:   make(map[string]bool, len(sig.Tags)),
		attrs:  make(map[string]bool, len(sig.Attributes)),
		tokens: make(map[string]bool, len(sig.Tokens)),
	}
	for _, t := range sig.Tags {
		c.tags[strings.ToLower(t)] = true
	}
	for _, a := range sig.Attributes {
		c.attrs[strings.ToLower(a)] = true
	}
	for _, p := range sig.Patterns {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			c.patterns = append(c.patterns, p)
		}
	}
	for _, t := range sig.Tokens {
		c.tokens[strings.ToLower(t)] = true
	}
	return c
}

// IsClutter reports whether n is clutter. Non-element nodes never are.
func (c *Classifier) IsClutter(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}

	if c.tags[strings.ToLower(n.Data)] {
		return true
	}

	for _, attr := range n.Attr {
		if attr.Namespace != "" || !c.attrs[strings.ToLower(attr.Key)] {
			continue
		}
		val := strings.ToLower(attr.Val)
		for _, p := range c.patterns {
			if strings.Contains(val, p) {
				return true
			}
		}
		for _, tok := range strings.Fields(val) {
			if c.tokens[tok] {
				return true
			}
		}
	}

	return false
}
