// internal/components/components.go
package components

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"

	"github.com/a-h/templ"

	"github.com/farskid/farzadyz.me/internal/document"
)

// Component is an element posts may embed by name, e.g. <YouTube id="..." />.
type Component struct {
	Name     string
	Required []string // lower-case prop names that must be present
	New      func(props map[string]string, children templ.Component) (templ.Component, error)
}

// Registry holds the embeddable components of the site.
type Registry struct {
	byName map[string]Component
}

// NewRegistry returns a registry of the given components.
func NewRegistry(cs ...Component) *Registry {
	r := &Registry{byName: make(map[string]Component, len(cs))}
	for _, c := range cs {
		r.byName[c.Name] = c
	}
	return r
}

// Default returns the components available to every post.
func Default() *Registry {
	return NewRegistry(
		Component{Name: "Callout", New: newCallout},
		Component{Name: "YouTube", Required: []string{"id"}, New: newYouTube},
		Component{Name: "Tweet", Required: []string{"id"}, New: newTweet},
		Component{Name: "Gist", Required: []string{"id"}, New: newGist},
		Component{Name: "Figure", Required: []string{"src"}, New: newFigure},
		Component{Name: "Kbd", New: newKbd},
	)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set describes the registry to the serializer.
func (r *Registry) Set() document.ComponentSet {
	set := make(document.ComponentSet, len(r.byName))
	for name, c := range r.byName {
		set[name] = append([]string(nil), c.Required...)
	}
	return set
}

// Bind implements document.Binder.
func (r *Registry) Bind(name string, props map[string]string, children templ.Component) (templ.Component, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", document.ErrUnknownComponent, name)
	}
	for _, key := range c.Required {
		if props[key] == "" {
			return nil, fmt.Errorf("missing required prop %q", key)
		}
	}
	if children == nil {
		children = templ.NopComponent
	}
	return c.New(props, children)
}

var calloutKinds = map[string]string{
	"info":    "ℹ️",
	"tip":     "💡",
	"warning": "⚠️",
	"danger":  "🚨",
}

func newCallout(props map[string]string, children templ.Component) (templ.Component, error) {
	kind := props["type"]
	if kind == "" {
		kind = "info"
	}
	icon, ok := calloutKinds[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported callout type %q", kind)
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<aside class="callout callout-%s" role="note"><span class="callout-icon" aria-hidden="true">%s</span><div class="callout-body">`, kind, icon)
		if err := children.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></aside>`)
		return err
	}), nil
}

func newYouTube(props map[string]string, _ templ.Component) (templ.Component, error) {
	src := "https://www.youtube-nocookie.com/embed/" + url.PathEscape(props["id"])
	title := props["title"]
	if title == "" {
		title = "YouTube video"
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="embed embed-youtube"><iframe src="%s" title="%s" loading="lazy" frameborder="0" allow="accelerometer; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe></div>`,
			templ.EscapeString(src), templ.EscapeString(title))
		return err
	}), nil
}

func newTweet(props map[string]string, children templ.Component) (templ.Component, error) {
	href := "https://twitter.com/i/status/" + url.PathEscape(props["id"])
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		io.WriteString(w, `<blockquote class="twitter-tweet">`)
		if err := children.Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<a href="%s">%s</a></blockquote>`, templ.EscapeString(href), templ.EscapeString(href))
		return err
	}), nil
}

func newGist(props map[string]string, _ templ.Component) (templ.Component, error) {
	src := "https://gist.github.com/" + props["id"] + ".js"
	if file := props["file"]; file != "" {
		src += "?file=" + url.QueryEscape(file)
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="embed embed-gist"><script src="%s"></script></div>`, templ.EscapeString(src))
		return err
	}), nil
}

func newFigure(props map[string]string, _ templ.Component) (templ.Component, error) {
	caption := props["caption"]
	alt := props["alt"]
	if alt == "" {
		alt = caption
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<figure><img src="%s" alt="%s" loading="lazy"/>`, templ.EscapeString(props["src"]), templ.EscapeString(alt))
		if caption != "" {
			fmt.Fprintf(w, `<figcaption>%s</figcaption>`, templ.EscapeString(caption))
		}
		_, err := io.WriteString(w, `</figure>`)
		return err
	}), nil
}

func newKbd(_ map[string]string, children templ.Component) (templ.Component, error) {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		io.WriteString(w, `<kbd>`)
		if err := children.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</kbd>`)
		return err
	}), nil
}
