package distill

// ClutterSignature describes markup that is structural or promotional noise.
// It is plain data so the heuristics can be tuned without code changes.
type ClutterSignature struct {
	// Tags are element names that are always clutter.
	Tags []string

	// Attributes are the attribute names inspected by Patterns and Tokens.
	Attributes []string

	// Patterns match as case-insensitive substrings of an attribute value.
	// Matching is deliberately permissive: "comment" also flags an article
	// container named "comments-about-x".
	Patterns []string

	// Tokens match whole whitespace-separated words of an attribute value,
	// for markers too short to use as substrings (e.g. "ad").
	Tokens []string
}

// DefaultClutterSignature returns the built-in clutter rules.
func DefaultClutterSignature() ClutterSignature {
	return ClutterSignature{
		Tags: []string{
			"script", "style", "nav", "header", "footer", "aside", "form",
			"iframe", "noscript", "template", "svg", "canvas", "object",
			"embed", "button", "input", "select", "textarea", "dialog",
			"menu", "head", "link", "meta",
		},
		Attributes: []string{"class", "id", "role"},
		Patterns: []string{
			"advert", "adsbygoogle", "ad-slot", "ad-container", "banner",
			"sidebar", "popup",
			"cookie", "social", "share", "comment", "related", "breadcrumb",
			"menu", "sponsor", "promo", "newsletter", "navigation",
		},
		Tokens: []string{"ad", "ads", "contentinfo", "complementary", "search"},
	}
}
