package goquery_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/fwojciec/distill"
	"github.com/fwojciec/distill/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var fixedClock = func() time.Time {
	return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
}

func TestProcessor_Process(t *testing.T) {
	t.Parallel()

	t.Run("extracts the article from a cluttered page", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head><title>Example</title></head><body><nav>Menu</nav><article><p>Hello   world.</p><a href="/x">link</a></article><footer>©</footer></body></html>`)
		p := goquery.NewProcessor(goquery.WithClock(fixedClock))

		frag, err := p.Process(doc, "https://ex.com/page")

		require.NoError(t, err)
		assert.Equal(t, `<p>Hello world.</p><a href="https://ex.com/x">link</a>`, inner(t, frag.Content))
		assert.Equal(t, "Example", frag.Title)
		assert.Equal(t, "https://ex.com/page", frag.SourceURL)
		assert.Equal(t, fixedClock(), frag.RetrievedAt)
		assert.Empty(t, frag.Unresolved)

		out, err := frag.HTML()
		require.NoError(t, err)
		assert.Equal(t, `<!DOCTYPE html><html><head>`+
			`<meta charset="utf-8"/>`+
			`<title>Example</title>`+
			`<meta name="source-url" content="https://ex.com/page"/>`+
			`<meta name="retrieved-at" content="2024-05-06T07:08:09Z"/>`+
			`</head><body><div><p>Hello world.</p><a href="https://ex.com/x">link</a></div></body></html>`, out)
	})

	t.Run("falls back to the body of a page without text", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><div><img src="/pic.png" onerror="alert(1)"></div></body></html>`)

		frag, err := goquery.NewProcessor().Process(doc, "https://ex.com/gallery/")

		require.NoError(t, err)
		assert.Equal(t, `<img src="https://ex.com/pic.png"/>`, inner(t, frag.Content))
	})

	t.Run("fails on a nil document", func(t *testing.T) {
		t.Parallel()

		frag, err := goquery.NewProcessor().Process(nil, "https://ex.com/")

		assert.Nil(t, frag)
		assert.Equal(t, distill.EEXTRACT, distill.ErrorCode(err))
	})

	t.Run("fails on a document without elements", func(t *testing.T) {
		t.Parallel()

		doc := &distill.Document{Root: &html.Node{Type: html.DocumentNode}}
		doc.Root.AppendChild(&html.Node{Type: html.CommentNode, Data: "nothing"})

		_, err := goquery.NewProcessor().Process(doc, "https://ex.com/")

		assert.Equal(t, distill.EEXTRACT, distill.ErrorCode(err))
	})

	t.Run("resolves against the document base element", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head><base href="/docs/v2/"></head><body><article><p>Long enough paragraph text here.</p><img src="a.png"></article></body></html>`)

		frag, err := goquery.NewProcessor().Process(doc, "https://ex.com/page")

		require.NoError(t, err)
		assert.Equal(t, "https://ex.com/docs/v2/a.png", find(t, frag.Content, "img").Attr[0].Val)
	})

	t.Run("reports unresolvable references", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><article><p>Long enough paragraph text here.</p><a href="%zz">bad</a></article></body></html>`)

		frag, err := goquery.NewProcessor().Process(doc, "https://ex.com/page")

		require.NoError(t, err)
		assert.Equal(t, []string{"%zz"}, frag.Unresolved)
		assert.Equal(t, "%zz", find(t, frag.Content, "a").Attr[0].Val)
	})

	t.Run("keeps relative references without a usable source URL", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><article><p>Long enough paragraph text here.</p><a href="/x">x</a></article></body></html>`)

		frag, err := goquery.NewProcessor().Process(doc, "")

		require.NoError(t, err)
		assert.Equal(t, []string{"/x"}, frag.Unresolved)
	})

	t.Run("leaves the input document unmodified", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><nav>n</nav><main><p>Some   text <b>bold</b></p><!-- c --></main></body></html>`)
		var before bytes.Buffer
		require.NoError(t, html.Render(&before, doc.Root))

		_, err := goquery.NewProcessor().Process(doc, "https://ex.com/")
		require.NoError(t, err)

		var after bytes.Buffer
		require.NoError(t, html.Render(&after, doc.Root))
		assert.Equal(t, before.String(), after.String())
	})

	t.Run("applies custom rules", func(t *testing.T) {
		t.Parallel()

		rules := distill.DefaultRules()
		rules.AllowList["article"] = distill.AllowListEntry{}
		doc := parse(t, `<html><body><article><p>Hello world, again.</p></article></body></html>`)

		frag, err := goquery.NewProcessor(goquery.WithRules(rules)).Process(doc, "https://ex.com/")

		require.NoError(t, err)
		assert.Equal(t, `<article><p>Hello world, again.</p></article>`, inner(t, frag.Content))
	})
}

func TestProcessor_Output(t *testing.T) {
	t.Parallel()

	const page = `<html><head><title> A
		Title </title></head><body>
		<header><h1>Site</h1></header>
		<div id="main-content" class="post">
			<h1>Headline</h1>
			<p>First   paragraph with <a href="/one" onclick="x()">a link</a>
			and <em>emphasis</em>.</p>
			<div class="social-share"><a href="/share">Share</a></div>
			<pre>  keep
   this  </pre>
			<p><span>  </span></p>
			<table><tr><td colspan="2">cell</td></tr></table>
		</div>
		<aside>Related stuff</aside>
	</body></html>`

	frag, err := goquery.NewProcessor().Process(parse(t, page), "https://ex.com/blog/post")
	require.NoError(t, err)

	t.Run("collapses the title", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "A Title", frag.Title)
	})

	t.Run("contains only allow-listed tags and attributes", func(t *testing.T) {
		t.Parallel()

		allow := distill.DefaultAllowList()
		walk(frag.Content, func(n *html.Node) {
			if n.Type != html.ElementNode {
				return
			}
			assert.True(t, allow.Allows(n.Data), "tag %q", n.Data)
			for _, a := range n.Attr {
				assert.True(t, allow.AllowsAttr(n.Data, a.Key), "attribute %q on %q", a.Key, n.Data)
			}
		})
	})

	t.Run("drops clutter", func(t *testing.T) {
		t.Parallel()

		text := textOf(frag.Content)
		assert.Contains(t, text, "Headline")
		assert.NotContains(t, text, "Site")
		assert.NotContains(t, text, "Share")
		assert.NotContains(t, text, "Related")
	})

	t.Run("bounds whitespace outside preformatted text", func(t *testing.T) {
		t.Parallel()

		walk(frag.Content, func(n *html.Node) {
			if n.Type != html.TextNode || n.Parent.Data == "pre" {
				return
			}
			assert.NotEmpty(t, n.Data)
			assert.NotContains(t, n.Data, "  ")
			assert.NotContains(t, n.Data, "\n")
			assert.NotContains(t, n.Data, "\t")
		})
		assert.Equal(t, "  keep\n   this  ", textOf(find(t, frag.Content, "pre")))
	})

	t.Run("makes every reference absolute", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://ex.com/one", find(t, frag.Content, "a").Attr[0].Val)
	})

	t.Run("unwraps the located container", func(t *testing.T) {
		t.Parallel()

		require.NotNil(t, frag.Content.FirstChild)
		assert.Equal(t, "h1", frag.Content.FirstChild.Data)
	})
}
