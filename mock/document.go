package mock

import "github.com/fwojciec/distill"

// Compile-time interface verification.
var (
	_ distill.Parser    = (*Parser)(nil)
	_ distill.Processor = (*Processor)(nil)
)

// Parser is a mock implementation of distill.Parser.
type Parser struct {
	ParseFn func(data []byte, contentType string) (*distill.Document, error)
}

func (p *Parser) Parse(data []byte, contentType string) (*distill.Document, error) {
	return p.ParseFn(data, contentType)
}

// Processor is a mock implementation of distill.Processor.
type Processor struct {
	ProcessFn func(doc *distill.Document, sourceURL string) (*distill.Fragment, error)
}

func (p *Processor) Process(doc *distill.Document, sourceURL string) (*distill.Fragment, error) {
	return p.ProcessFn(doc, sourceURL)
}
