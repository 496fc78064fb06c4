// internal/document/serializer.go
package document

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"regexp"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/farskid/farzadyz.me/internal/content"
)

// SyntaxStyle is the chroma style used for code blocks; WriteSyntaxCSS emits it.
const SyntaxStyle = "dracula"

var (
	markdownRenderer = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			emoji.Emoji,
			highlighting.NewHighlighting(
				highlighting.WithStyle(SyntaxStyle),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(newPostLinkTransformer(), 100),
			),
		),
		goldmark.WithRendererOptions(
			// Component tags travel as raw HTML; fragments are sanitized after splitting.
			html.WithUnsafe(),
		),
	)
	htmlSanitizer = newSanitizer()
)

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// chroma and footnote markup are class-driven
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[\w\- ]+$`)).
		OnElements("span", "pre", "code", "div", "sup", "section", "li", "a", "hr", "ol")
	return p
}

// Options tunes serialization.
type Options struct {
	// Unsafe skips sanitizing HTML fragments, allowing arbitrary raw HTML in posts.
	Unsafe bool
}

// Serializer compiles post bodies against a fixed component set.
type Serializer struct {
	components ComponentSet
	opts       Options
}

// NewSerializer returns a Serializer accepting the given components.
func NewSerializer(components ComponentSet, opts Options) *Serializer {
	return &Serializer{components: components, opts: opts}
}

// Serialize compiles the body of post. Equal bodies compiled against equal
// component sets and options always yield equal documents.
func (s *Serializer) Serialize(post content.Post) (*Document, error) {
	fail := func(component string, err error) error {
		return &SerializationError{Slug: post.Slug, File: post.FileName, Component: component, Err: err}
	}

	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(isolateComponentTags(post.Body)), &buf); err != nil {
		return nil, fail("", fmt.Errorf("%w: %v", ErrMalformed, err))
	}

	sp := &splitter{components: s.components}
	if !s.opts.Unsafe {
		sp.sanitize = htmlSanitizer.Sanitize
	}
	nodes, used, err := sp.split(buf.String())
	if err != nil {
		var ee *embedError
		if errors.As(err, &ee) {
			return nil, fail(ee.component, ee.err)
		}
		return nil, fail("", err)
	}

	return &Document{
		Slug:       post.Slug,
		Digest:     s.digest(post.Body),
		Components: used,
		Nodes:      nodes,
	}, nil
}

// digest fingerprints everything a document depends on.
func (s *Serializer) digest(body string) string {
	h := sha256.New()
	io.WriteString(h, body)
	for _, name := range s.components.Names() {
		fmt.Fprintf(h, "\x00%s", name)
		for _, prop := range s.components[name] {
			fmt.Fprintf(h, ":%s", prop)
		}
	}
	fmt.Fprintf(h, "\x00unsafe=%t", s.opts.Unsafe)
	return hex.EncodeToString(h.Sum(nil))
}

// WriteSyntaxCSS writes the stylesheet matching the classes emitted for code blocks.
func WriteSyntaxCSS(w io.Writer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	return formatter.WriteCSS(w, styles.Get(SyntaxStyle))
}
