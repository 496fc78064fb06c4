// internal/content/parse.go
package content

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"github.com/verkaro/editml-go"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/farskid/farzadyz.me/internal/util"
)

// frontMatterFormat is the only accepted header: a YAML block between "---" lines.
var frontMatterFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// frontMatter mirrors the header keys of a post source document.
// Dates are kept as strings so that every accepted layout goes through util.ParseDate.
type frontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	PublishedAt string   `yaml:"publishedAt"`
	UpdatedAt   string   `yaml:"updatedAt"`
	Draft       bool     `yaml:"draft"`
	OriginalURL string   `yaml:"originalURL"`
	Image       string   `yaml:"image"`
}

// parsePost turns the raw bytes of fileName into a Post.
func parsePost(fileName string, raw []byte, includeBody bool) (Post, error) {
	if !utf8.Valid(raw) {
		return Post{}, errors.New("content is not valid UTF-8")
	}

	var fm frontMatter
	body, err := frontmatter.MustParse(bytes.NewReader(raw), &fm, frontMatterFormat)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return Post{}, errors.New("missing front matter block")
		}
		return Post{}, fmt.Errorf("failed to parse front matter: %w", err)
	}

	post := Post{
		Slug:        SlugFromFileName(fileName),
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		FileName:    fileName,
		Tags:        cleanTags(fm.Tags),
		Draft:       fm.Draft,
		OriginalURL: strings.TrimSpace(fm.OriginalURL),
		Image:       strings.TrimSpace(fm.Image),
	}
	if post.Slug == "" {
		return Post{}, errors.New("file name does not produce a slug")
	}
	if post.Title == "" {
		return Post{}, errors.New("front matter is missing required field \"title\"")
	}
	if strings.TrimSpace(fm.PublishedAt) == "" {
		return Post{}, errors.New("front matter is missing required field \"publishedAt\"")
	}
	if post.PublishedAt, err = util.ParseDate(fm.PublishedAt); err != nil {
		return Post{}, fmt.Errorf("invalid publishedAt: %w", err)
	}
	if strings.TrimSpace(fm.UpdatedAt) != "" {
		if post.UpdatedAt, err = util.ParseDate(fm.UpdatedAt); err != nil {
			return Post{}, fmt.Errorf("invalid updatedAt: %w", err)
		}
	}
	if post.OriginalURL != "" && !isAbsoluteHTTP(post.OriginalURL) {
		return Post{}, fmt.Errorf("originalURL %q is not an absolute http(s) URL", post.OriginalURL)
	}

	if includeBody {
		clean, err := cleanBody(string(body))
		if err != nil {
			return Post{}, err
		}
		post.Body = clean
	}
	return post, nil
}

// cleanBody resolves EditML review marks left in a draft, returning the
// accepted text as plain markdown. Code blocks and code spans are masked
// first, so their braces never read as marks.
func cleanBody(raw string) (string, error) {
	masked, restore, err := maskCode(raw)
	if err != nil {
		return "", err
	}
	nodes, parseIssues := editml.Parse(masked)
	if len(parseIssues) > 0 && parseIssues[0].Severity == editml.SeverityError {
		return "", fmt.Errorf("editml parsing error: %s", parseIssues[0].Message)
	}
	clean, transformIssues := editml.TransformCleanView(nodes)
	if len(transformIssues) > 0 && transformIssues[0].Severity == editml.SeverityError {
		return "", fmt.Errorf("editml transformation error: %s", transformIssues[0].Message)
	}
	return strings.TrimSpace(restore.Replace(clean)) + "\n", nil
}

// Code placeholders are built from private-use runes that carry no EditML meaning.
const (
	maskOpen  = '\uE000'
	maskClose = '\uE001'
)

var codeParser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// maskCode replaces every code block and code span of src with a placeholder.
// The returned replacer puts the original code back.
func maskCode(src string) (string, *strings.Replacer, error) {
	if strings.ContainsRune(src, maskOpen) || strings.ContainsRune(src, maskClose) {
		return "", nil, fmt.Errorf("body contains reserved character %U", maskOpen)
	}

	source := []byte(src)
	var spans [][2]int
	doc := codeParser.Parse(text.NewReader(source))
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if lines := n.Lines(); lines.Len() > 0 {
				spans = append(spans, [2]int{lines.At(0).Start, lines.At(lines.Len() - 1).Stop})
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			first, last := n.FirstChild(), n.LastChild()
			if first == nil {
				return ast.WalkSkipChildren, nil
			}
			start, ok1 := first.(*ast.Text)
			stop, ok2 := last.(*ast.Text)
			if ok1 && ok2 {
				spans = append(spans, [2]int{start.Segment.Start, stop.Segment.Stop})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })

	var b strings.Builder
	var pairs []string
	pos := 0
	for _, sp := range spans {
		if sp[0] < pos || sp[0] >= sp[1] {
			continue
		}
		placeholder := fmt.Sprintf("%c%d%c", maskOpen, len(pairs)/2, maskClose)
		pairs = append(pairs, placeholder, src[sp[0]:sp[1]])
		b.WriteString(src[pos:sp[0]])
		b.WriteString(placeholder)
		pos = sp[1]
	}
	b.WriteString(src[pos:])
	return b.String(), strings.NewReplacer(pairs...), nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func isAbsoluteHTTP(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
