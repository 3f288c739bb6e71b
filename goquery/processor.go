package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/distill"
)

// Ensure Processor implements distill.Processor at compile time.
var _ distill.Processor = (*Processor)(nil)

// Processor runs the extraction pipeline: locate, sanitize, resolve
// references, normalize whitespace, wrap. Processor holds no per-document
// state and is safe for concurrent use, provided each Document is owned by a
// single call.
type Processor struct {
	rules      distill.Rules
	now        func() time.Time
	locator    *Locator
	sanitizer  *Sanitizer
	normalizer *Normalizer
}

// Option configures a Processor.
type Option func(*Processor)

// WithRules sets the allow-list, clutter signature and scoring constants.
// Defaults to distill.DefaultRules() if not specified.
func WithRules(rules distill.Rules) Option {
	return func(p *Processor) {
		p.rules = rules
	}
}

// WithClock sets the function used to timestamp fragments.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		p.now = now
	}
}

// NewProcessor creates a new Processor.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		rules: distill.DefaultRules(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	classifier := NewClassifier(p.rules.Clutter)
	p.locator = NewLocator(classifier, p.rules.Scoring)
	p.sanitizer = NewSanitizer(p.rules.AllowList, classifier)
	p.normalizer = NewNormalizer(p.rules.AllowList)
	return p
}

// Process reduces doc to its main content. The fragment is built from
// copies, so doc itself is left unmodified.
func (p *Processor) Process(doc *distill.Document, sourceURL string) (*distill.Fragment, error) {
	if !doc.HasElements() {
		return nil, distill.Errorf(distill.EEXTRACT, "no element structure in document from %s", sourceURL)
	}

	dq := goquery.NewDocumentFromNode(doc.Root)
	title := collapseSpace(strings.TrimSpace(dq.Find("head title").First().Text()))
	base := documentBase(dq, sourceURL)

	root := p.locator.Locate(doc.Root)
	content := p.sanitizer.Sanitize(root)
	unresolved := ResolveReferences(content, base)
	p.normalizer.Normalize(content)

	retrievedAt := p.now().UTC()
	return &distill.Fragment{
		Root:        Wrap(content, sourceURL, title, retrievedAt),
		Content:     content,
		SourceURL:   sourceURL,
		Title:       title,
		RetrievedAt: retrievedAt,
		Unresolved:  unresolved,
	}, nil
}
