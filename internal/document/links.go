// internal/document/links.go
package document

import (
	"net/url"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/farskid/farzadyz.me/internal/content"
)

// postLinkTransformer rewrites links between post source files, such as
// "./why-xstate.mdx#guards", into their published "/blog/why-xstate#guards" form.
type postLinkTransformer struct{}

func newPostLinkTransformer() parser.ASTTransformer {
	return &postLinkTransformer{}
}

func (t *postLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		if dest, ok := PostLink(string(link.Destination)); ok {
			link.Destination = []byte(dest)
		}
		return ast.WalkContinue, nil
	})
}

// PostLink maps a relative link to a post source file onto the post's URL path.
// It reports false for anything else, including absolute and rooted URLs.
func PostLink(dest string) (string, bool) {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" || strings.HasPrefix(u.Path, "/") {
		return "", false
	}
	if !content.IsPostFile(u.Path) {
		return "", false
	}
	slug := content.SlugFromFileName(u.Path)
	if slug == "" {
		return "", false
	}
	out := "/blog/" + slug
	if u.Fragment != "" {
		out += "#" + u.Fragment
	}
	return out, true
}
