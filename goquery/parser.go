package goquery

import (
	"bytes"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/distill"
	"golang.org/x/net/html/charset"
)

// Ensure Parser implements distill.Parser at compile time.
var _ distill.Parser = (*Parser)(nil)

// Parser decodes page bytes to UTF-8 and parses them into a tree.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse detects the encoding from the content type, a byte order mark or
// a <meta charset> declaration, decodes data and parses it.
func (p *Parser) Parse(data []byte, contentType string) (*distill.Document, error) {
	enc, name, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// Fall back to the raw bytes when they are valid UTF-8 already.
		if !utf8.Valid(data) {
			return nil, distill.Errorf(distill.EINVALID, "failed to decode %s content: %v", name, err)
		}
		decoded = data
		name = "utf-8"
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded))
	if err != nil {
		return nil, distill.Errorf(distill.EINVALID, "failed to parse HTML: %v", err)
	}

	return &distill.Document{
		Root:     doc.Get(0),
		Encoding: name,
	}, nil
}
