package goquery

import (
	"strings"

	"github.com/fwojciec/distill"
	"golang.org/x/net/html"
)

// ContainerTag is the element that holds a sanitized fragment.
const ContainerTag = "div"

// Sanitizer rewrites a subtree against an allow-list. Clutter is removed
// together with its content, tags outside the allow-list are unwrapped
// (their children kept in place), and attributes not permitted for a tag
// are dropped. Sanitizer is safe for concurrent use.
type Sanitizer struct {
	allow      distill.AllowList
	classifier *Classifier
}

// NewSanitizer creates a Sanitizer.
func NewSanitizer(allow distill.AllowList, classifier *Classifier) *Sanitizer {
	return &Sanitizer{allow: allow, classifier: classifier}
}

// Sanitize returns a detached ContainerTag element holding a sanitized copy
// of root. The root itself is never treated as clutter: it is kept if
// allow-listed and unwrapped otherwise. The input tree is not modified.
// Child and attribute order mirror the input, so equal input produces
// byte-identical output.
func (s *Sanitizer) Sanitize(root *html.Node) *html.Node {
	container := newElement(ContainerTag)

	var nodes []*html.Node
	if root.Type == html.ElementNode {
		nodes = s.element(root)
	} else {
		nodes = s.children(root)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container
}

// clean returns the detached replacement nodes for n.
func (s *Sanitizer) clean(n *html.Node) []*html.Node {
	switch n.Type {
	case html.TextNode:
		return []*html.Node{newText(n.Data)}
	case html.ElementNode:
		if s.classifier.IsClutter(n) {
			return nil
		}
		return s.element(n)
	default:
		// Comments, doctypes and raw nodes never reach the output.
		return nil
	}
}

// children cleans every child of n in order.
func (s *Sanitizer) children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, s.clean(c)...)
	}
	return out
}

// element sanitizes an element that is known not to be clutter.
func (s *Sanitizer) element(n *html.Node) []*html.Node {
	kids := s.children(n)

	tag := strings.ToLower(n.Data)
	entry, ok := s.allow.Entry(tag)
	if !ok {
		return kids
	}

	el := newElement(tag, s.attributes(tag, n.Attr)...)
	for _, k := range kids {
		el.AppendChild(k)
	}

	if !entry.KeepEmpty && !hasContent(el) {
		return nil
	}
	return []*html.Node{el}
}

// attributes keeps the attributes permitted on tag, in input order.
func (s *Sanitizer) attributes(tag string, attrs []html.Attribute) []html.Attribute {
	var out []html.Attribute
	seen := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if a.Namespace != "" || seen[key] || !s.allow.AllowsAttr(tag, key) {
			continue
		}
		seen[key] = true
		out = append(out, html.Attribute{Key: key, Val: a.Val})
	}
	return out
}

// hasContent reports whether an already sanitized element holds text or a
// surviving element. Surviving children are either kept-empty tags or
// themselves have content, so direct children suffice.
func hasContent(el *html.Node) bool {
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			return true
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return true
			}
		}
	}
	return false
}
