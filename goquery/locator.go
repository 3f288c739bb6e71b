package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/distill"
	"golang.org/x/net/html"
)

// Locator finds the element holding a page's main content by scoring every
// non-clutter element on text density.
type Locator struct {
	classifier *Classifier
	scoring    distill.Scoring
}

// NewLocator creates a Locator.
func NewLocator(classifier *Classifier, scoring distill.Scoring) *Locator {
	return &Locator{classifier: classifier, scoring: scoring}
}

// unrendered elements never display their content, so nothing below them
// is a candidate even though the classifier only flags the element itself.
var unrendered = map[string]bool{
	"head": true, "script": true, "style": true, "template": true,
	"noscript": true,
}

// Candidate is a scored element.
type Candidate struct {
	Node  *html.Node
	Score float64
}

// nodeStats summarizes the subtree below an element.
type nodeStats struct {
	text    int // visible characters outside clutter
	clutter int // characters inside clutter subtrees
	links   int // non-clutter <a> descendants
}

// Locate returns the content root of the tree below root. It prefers the
// highest scoring candidate; between equal scores the deepest one wins.
// When no candidate reaches the minimum score it falls back to the body
// element, or to the first element if there is no body. Locate returns nil
// only when root holds no element at all.
func (l *Locator) Locate(root *html.Node) *html.Node {
	var best *Candidate
	candidates := l.Candidates(root)
	for i := range candidates {
		c := &candidates[i]
		switch {
		case best == nil || c.Score > best.Score:
			best = c
		case c.Score == best.Score && isAncestor(best.Node, c.Node):
			best = c
		}
	}

	if best == nil || best.Score < l.scoring.MinScore {
		return fallbackRoot(root)
	}
	return best.Node
}

// Candidates returns every element the classifier does not flag, with its
// score, in document order. Descendants of a flagged element are still
// candidates unless the element is never rendered (head, script...).
func (l *Locator) Candidates(root *html.Node) []Candidate {
	var candidates []Candidate

	var measure func(n *html.Node) nodeStats
	measure = func(n *html.Node) nodeStats {
		var s nodeStats
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				s.text += visibleLen(c.Data)
			case html.ElementNode:
				if l.classifier.IsClutter(c) {
					// The clutter element itself is no candidate and its text
					// counts against n, but its descendants are still scored.
					s.clutter += clutterLen(c)
					if !unrendered[strings.ToLower(c.Data)] {
						measure(c)
					}
					continue
				}
				idx := len(candidates)
				candidates = append(candidates, Candidate{Node: c})
				cs := measure(c)
				candidates[idx].Score = l.score(c, cs)

				s.text += cs.text
				s.clutter += cs.clutter
				s.links += cs.links
				if isTag(c, "a") {
					s.links++
				}
			}
		}
		return s
	}

	if root.Type == html.ElementNode {
		if l.classifier.IsClutter(root) {
			if !unrendered[strings.ToLower(root.Data)] {
				measure(root)
			}
			return candidates
		}
		candidates = append(candidates, Candidate{Node: root})
		candidates[0].Score = l.score(root, measure(root))
		return candidates
	}
	measure(root)
	return candidates
}

// score computes the density score of an element from its subtree stats.
func (l *Locator) score(n *html.Node, s nodeStats) float64 {
	score := float64(s.text) - l.scoring.ClutterPenalty*float64(s.clutter)

	allowed := int(float64(s.text) * l.scoring.LinkDensity)
	if extra := s.links - allowed; extra > 0 {
		score -= l.scoring.LinkPenalty * float64(extra)
	}

	// Empty containers get no bonus so a bare <main> cannot beat the
	// body fallback.
	if s.text > 0 && l.isContainer(n) {
		score += l.scoring.ContainerBonus
	}
	return score
}

// isContainer reports whether n carries a content container signal.
func (l *Locator) isContainer(n *html.Node) bool {
	tag := strings.ToLower(n.Data)
	for _, t := range l.scoring.ContainerTags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if key != "class" && key != "id" {
			continue
		}
		val := strings.ToLower(attr.Val)
		for _, p := range l.scoring.ContainerPatterns {
			if strings.Contains(val, strings.ToLower(p)) {
				return true
			}
		}
	}
	return false
}

// fallbackRoot returns the body element below root, or the first element.
func fallbackRoot(root *html.Node) *html.Node {
	if isTag(root, "body") {
		return root
	}
	if body := goquery.NewDocumentFromNode(root).Find("body").First(); body.Length() > 0 {
		return body.Get(0)
	}
	return firstElement(root)
}

// firstElement returns n if it is an element, otherwise its first element
// descendant in document order.
func firstElement(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if el := firstElement(c); el != nil {
			return el
		}
	}
	return nil
}

// isAncestor reports whether a is a proper ancestor of n.
func isAncestor(a, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}

// visibleLen counts the characters of s with whitespace runs collapsed and
// the ends trimmed.
func visibleLen(s string) int {
	n := 0
	for i, f := range strings.Fields(s) {
		if i > 0 {
			n++
		}
		n += utf8.RuneCountInString(f)
	}
	return n
}

// clutterLen counts the visible characters anywhere below n.
func clutterLen(n *html.Node) int {
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			total += visibleLen(c.Data)
		case html.ElementNode:
			total += clutterLen(c)
		}
	}
	return total
}
