// internal/document/blocks.go
package document

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// tagLine matches a line holding nothing but one component tag. Four or more
// leading spaces would make it indented code once isolated, so those stay put.
var tagLine = regexp.MustCompile(`^ {0,3}</?[A-Z][A-Za-z0-9]*(?:\s[^>]*)?/?>\s*$`)

var blockParser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// isolateComponentTags surrounds every line made of a single component tag
// with blank lines. A tag glued to the text around it would otherwise open a
// raw HTML block that swallows the markdown up to the next blank line.
// Lines inside code blocks are left untouched.
func isolateComponentTags(src string) string {
	if !strings.Contains(src, "<") {
		return src
	}

	lines := strings.SplitAfter(src, "\n")
	starts := make([]int, len(lines))
	off := 0
	for i, l := range lines {
		starts[i] = off
		off += len(l)
	}
	lineOf := func(pos int) int {
		return sort.Search(len(starts), func(i int) bool { return starts[i] > pos }) - 1
	}

	inCode := make(map[int]bool)
	doc := blockParser.Parse(text.NewReader([]byte(src)))
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			segs := n.Lines()
			for i := 0; i < segs.Len(); i++ {
				inCode[lineOf(segs.At(i).Start)] = true
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	var b strings.Builder
	b.Grow(len(src) + 64)
	blank := true
	for i, l := range lines {
		if inCode[i] || !tagLine.MatchString(strings.TrimRight(l, "\r\n")) {
			b.WriteString(l)
			blank = strings.TrimSpace(l) == ""
			continue
		}
		if !blank {
			b.WriteString("\n")
		}
		b.WriteString(l)
		if !strings.HasSuffix(l, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
		blank = true
	}
	return b.String()
}
