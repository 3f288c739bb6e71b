package distill

import "strings"

// AllowListEntry lists the attributes permitted on an allowed tag.
// An empty Attributes slice keeps the tag but strips every attribute.
type AllowListEntry struct {
	Attributes []string

	// KeepEmpty lets the element survive without any text-bearing
	// descendant (e.g. img, br).
	KeepEmpty bool

	// PreserveWhitespace exempts the element's text from whitespace
	// collapsing (e.g. pre).
	PreserveWhitespace bool
}

// AllowList maps lowercase tag names to their entries. Tags absent from the
// list are unwrapped during sanitization.
type AllowList map[string]AllowListEntry

// Entry returns the entry for tag and whether the tag is allowed.
func (l AllowList) Entry(tag string) (AllowListEntry, bool) {
	e, ok := l[strings.ToLower(tag)]
	return e, ok
}

// Allows reports whether tag survives sanitization.
func (l AllowList) Allows(tag string) bool {
	_, ok := l.Entry(tag)
	return ok
}

// AllowsAttr reports whether attr is permitted on tag.
func (l AllowList) AllowsAttr(tag, attr string) bool {
	e, ok := l.Entry(tag)
	if !ok {
		return false
	}
	for _, a := range e.Attributes {
		if strings.EqualFold(a, attr) {
			return true
		}
	}
	return false
}

// DefaultAllowList returns the tags kept in extracted fragments.
func DefaultAllowList() AllowList {
	bare := AllowListEntry{}
	cite := AllowListEntry{Attributes: []string{"cite"}}
	cell := AllowListEntry{Attributes: []string{"colspan", "rowspan"}}

	return AllowList{
		"p":          bare,
		"h1":         bare,
		"h2":         bare,
		"h3":         bare,
		"h4":         bare,
		"h5":         bare,
		"h6":         bare,
		"blockquote": cite,
		"q":          cite,
		"del":        cite,
		"ins":        cite,
		"pre":        {PreserveWhitespace: true},
		"code":       bare,
		"kbd":        bare,
		"samp":       bare,
		"var":        bare,
		"em":         bare,
		"strong":     bare,
		"b":          bare,
		"i":          bare,
		"u":          bare,
		"s":          bare,
		"sub":        bare,
		"sup":        bare,
		"small":      bare,
		"mark":       bare,
		"cite":       bare,
		"abbr":       {Attributes: []string{"title"}},
		"time":       {Attributes: []string{"datetime"}},
		"ul":         bare,
		"ol":         {Attributes: []string{"start"}},
		"li":         bare,
		"dl":         bare,
		"dt":         bare,
		"dd":         bare,
		"a":          {Attributes: []string{"href", "title"}},
		"img":        {Attributes: []string{"src", "alt", "title", "width", "height"}, KeepEmpty: true},
		"figure":     bare,
		"figcaption": bare,
		"table":      bare,
		"caption":    bare,
		"thead":      bare,
		"tbody":      bare,
		"tfoot":      bare,
		"tr":         bare,
		"th":         {Attributes: []string{"colspan", "rowspan", "scope"}},
		"td":         cell,
		"br":         {KeepEmpty: true},
		"hr":         {KeepEmpty: true},
	}
}
