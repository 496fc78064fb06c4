// internal/document/embed.go
package document

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// ComponentSet maps each embeddable component name to the props it requires.
type ComponentSet map[string][]string

// Names returns the component names in sorted order.
func (cs ComponentSet) Names() []string {
	names := make([]string, 0, len(cs))
	for name := range cs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// componentTag matches the opening of a tag whose name starts upper-case.
// Plain HTML elements are lower-case and pass through untouched.
var componentTag = regexp.MustCompile(`^</?([A-Z][A-Za-z0-9]*)`)

// embedError ties a splitting failure to the component that caused it.
type embedError struct {
	component string
	err       error
}

func (e *embedError) Error() string { return e.err.Error() }
func (e *embedError) Unwrap() error { return e.err }

type frame struct {
	node Node
	buf  strings.Builder
}

// splitter turns rendered HTML into a tree of fragments and component nodes.
type splitter struct {
	components ComponentSet
	sanitize   func(string) string
	stack      []*frame
	used       map[string]bool
}

func (s *splitter) top() *frame {
	return s.stack[len(s.stack)-1]
}

// flush closes the pending HTML fragment of f.
func (s *splitter) flush(f *frame) {
	if f.buf.Len() == 0 {
		return
	}
	fragment := f.buf.String()
	f.buf.Reset()
	if s.sanitize != nil {
		fragment = s.sanitize(fragment)
	}
	if fragment != "" {
		f.node.Children = append(f.node.Children, Node{HTML: fragment})
	}
}

func (s *splitter) split(src string) ([]Node, []string, error) {
	s.stack = []*frame{{}}
	s.used = make(map[string]bool)

	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, nil, z.Err()
		}
		raw := z.Raw()
		name := ""
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken || tt == html.EndTagToken {
			if m := componentTag.FindSubmatch(raw); m != nil {
				name = string(m[1])
			}
		}
		if name == "" {
			s.top().buf.Write(raw)
			continue
		}
		if err := s.component(z, tt, name, raw); err != nil {
			return nil, nil, &embedError{component: name, err: err}
		}
	}

	if len(s.stack) > 1 {
		open := s.top().node.Component
		return nil, nil, &embedError{component: open, err: fmt.Errorf("%w: <%s> is never closed", ErrMalformed, open)}
	}
	root := s.stack[0]
	s.flush(root)

	used := make([]string, 0, len(s.used))
	for name := range s.used {
		used = append(used, name)
	}
	sort.Strings(used)
	return root.node.Children, used, nil
}

// component handles one component tag token.
func (s *splitter) component(z *html.Tokenizer, tt html.TokenType, name string, raw []byte) error {
	required, known := s.components[name]
	if !known {
		return fmt.Errorf("%w %q", ErrUnknownComponent, name)
	}
	s.used[name] = true

	if tt == html.EndTagToken {
		if len(s.stack) == 1 {
			return fmt.Errorf("%w: closing </%s> without a matching opening tag", ErrMalformed, name)
		}
		f := s.top()
		if f.node.Component != name {
			return fmt.Errorf("%w: closing </%s> while <%s> is open", ErrMalformed, name, f.node.Component)
		}
		s.flush(f)
		s.stack = s.stack[:len(s.stack)-1]
		parent := s.top()
		parent.node.Children = append(parent.node.Children, f.node)
		return nil
	}

	if key, ok := expressionProp(string(raw)); ok {
		return fmt.Errorf("%w: expression prop %q is not supported, use a quoted string", ErrMalformed, key)
	}
	props := readProps(z)
	for _, key := range required {
		if _, ok := props[key]; !ok {
			return fmt.Errorf("%w: missing required prop %q", ErrMalformed, key)
		}
	}

	parent := s.top()
	s.flush(parent)
	node := Node{Component: name, Props: props}
	if tt == html.SelfClosingTagToken {
		parent.node.Children = append(parent.node.Children, node)
		return nil
	}
	s.stack = append(s.stack, &frame{node: node})
	return nil
}

var (
	quotedValue = regexp.MustCompile(`"[^"]*"|'[^']*'`)
	propBefore  = regexp.MustCompile(`([A-Za-z_:][-A-Za-z0-9_:.]*)\s*=\s*$`)
)

// expressionProp reports the first JSX expression prop in the raw text of a
// tag, such as id={123} or {...rest}. Braces inside quoted values are text.
func expressionProp(tag string) (string, bool) {
	bare := quotedValue.ReplaceAllStringFunc(tag, func(q string) string {
		return strings.Repeat("_", len(q))
	})
	i := strings.IndexByte(bare, '{')
	if i < 0 {
		return "", false
	}
	if m := propBefore.FindStringSubmatch(bare[:i]); m != nil {
		return strings.ToLower(m[1]), true
	}
	return "{", true
}

// readProps collects the attributes of the current tag. Keys are lower-cased
// by the tokenizer.
func readProps(z *html.Tokenizer) map[string]string {
	_, hasAttr := z.TagName()
	var props map[string]string
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if props == nil {
			props = make(map[string]string)
		}
		props[string(key)] = string(val)
	}
	return props
}
