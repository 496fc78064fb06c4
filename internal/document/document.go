// internal/document/document.go
package document

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Document is the compiled, renderer-ready form of a post body. Markdown has
// already been turned into HTML; what remains is a tree of HTML fragments
// and embedded component invocations.
type Document struct {
	Slug       string   `json:"slug"`
	Digest     string   `json:"digest"`
	Components []string `json:"components,omitempty"` // distinct names used, sorted
	Nodes      []Node   `json:"nodes"`
}

// Node is either an HTML fragment or a component invocation wrapping children.
type Node struct {
	HTML      string            `json:"html,omitempty"`
	Component string            `json:"component,omitempty"`
	Props     map[string]string `json:"props,omitempty"`
	Children  []Node            `json:"children,omitempty"`
}

// IsComponent reports whether n invokes an embedded component.
func (n Node) IsComponent() bool {
	return n.Component != ""
}

// Binder resolves a component invocation into something renderable.
type Binder interface {
	Bind(name string, props map[string]string, children templ.Component) (templ.Component, error)
}

// Encode writes d as JSON. Map keys are emitted sorted, so equal documents
// encode to equal bytes.
func (d *Document) Encode(w io.Writer) error {
	return json.NewEncoder(w).Encode(d)
}

// Decode reads a Document previously written by Encode.
func Decode(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &d, nil
}

// Component returns d as a templ.Component whose embedded components are
// bound through b at render time.
func (d *Document) Component(b Binder) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return renderNodes(ctx, w, d.Nodes, b)
	})
}

// Render writes the document body to w.
func (d *Document) Render(ctx context.Context, w io.Writer, b Binder) error {
	return d.Component(b).Render(ctx, w)
}

func renderNodes(ctx context.Context, w io.Writer, nodes []Node, b Binder) error {
	for _, n := range nodes {
		n := n
		if !n.IsComponent() {
			if _, err := io.WriteString(w, n.HTML); err != nil {
				return err
			}
			continue
		}
		children := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return renderNodes(ctx, w, n.Children, b)
		})
		c, err := b.Bind(n.Component, n.Props, children)
		if err != nil {
			return fmt.Errorf("component <%s>: %w", n.Component, err)
		}
		if err := c.Render(ctx, w); err != nil {
			return fmt.Errorf("component <%s>: %w", n.Component, err)
		}
	}
	return nil
}
