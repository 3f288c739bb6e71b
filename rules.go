package distill

// Scoring holds the constants of the content density heuristic.
// The values may be tuned freely as long as noisy nodes keep scoring below
// equally long prose and link farms stay penalized.
type Scoring struct {
	// ClutterPenalty is subtracted per character found inside clutter
	// descendants of a candidate.
	ClutterPenalty float64

	// LinkDensity is the number of links per text character tolerated
	// before LinkPenalty applies to each extra link.
	LinkDensity float64
	LinkPenalty float64

	// ContainerBonus is added once when the candidate looks like a content
	// container by tag (ContainerTags) or by class/id substring
	// (ContainerPatterns).
	ContainerBonus    float64
	ContainerTags     []string
	ContainerPatterns []string

	// MinScore is the lowest score accepted for a candidate; below it the
	// body element is used instead.
	MinScore float64
}

// DefaultScoring returns the built-in scoring constants.
func DefaultScoring() Scoring {
	return Scoring{
		ClutterPenalty:    0.5,
		LinkDensity:       1.0 / 50,
		LinkPenalty:       20,
		ContainerBonus:    25,
		ContainerTags:     []string{"article", "main"},
		ContainerPatterns: []string{"content", "article", "post", "entry", "main"},
		MinScore:          10,
	}
}

// Rules bundles the configuration of the extraction pipeline.
type Rules struct {
	AllowList AllowList
	Clutter   ClutterSignature
	Scoring   Scoring
}

// DefaultRules returns the built-in extraction rules.
func DefaultRules() Rules {
	return Rules{
		AllowList: DefaultAllowList(),
		Clutter:   DefaultClutterSignature(),
		Scoring:   DefaultScoring(),
	}
}
