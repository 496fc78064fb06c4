package components

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/farskid/farzadyz.me/internal/content"
	"github.com/farskid/farzadyz.me/internal/document"
)

func renderBound(t *testing.T, r *Registry, name string, props map[string]string, children templ.Component) string {
	t.Helper()
	c, err := r.Bind(name, props, children)
	if err != nil {
		t.Fatalf("Bind(%s) failed: %v", name, err)
	}
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render(%s) failed: %v", name, err)
	}
	return buf.String()
}

func TestDefaultSet(t *testing.T) {
	set := Default().Set()
	want := []string{"Callout", "Figure", "Gist", "Kbd", "Tweet", "YouTube"}
	if got := set.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(set["YouTube"], []string{"id"}) {
		t.Errorf("YouTube requires %v", set["YouTube"])
	}
}

func TestBindUnknown(t *testing.T) {
	_, err := Default().Bind("Marquee", nil, nil)
	if !errors.Is(err, document.ErrUnknownComponent) {
		t.Errorf("expected ErrUnknownComponent, got %v", err)
	}
}

func TestBindMissingProp(t *testing.T) {
	if _, err := Default().Bind("YouTube", map[string]string{}, nil); err == nil {
		t.Error("expected error for missing id")
	}
}

func TestComponentsRender(t *testing.T) {
	r := Default()
	text := templ.Raw("hello <b>there</b>")

	tests := []struct {
		name  string
		props map[string]string
		want  []string
	}{
		{"Callout", nil, []string{`class="callout callout-info"`, "hello <b>there</b>"}},
		{"Callout", map[string]string{"type": "warning"}, []string{"callout-warning"}},
		{"YouTube", map[string]string{"id": "abc"}, []string{`src="https://www.youtube-nocookie.com/embed/abc"`, `title="YouTube video"`}},
		{"Tweet", map[string]string{"id": "123"}, []string{`class="twitter-tweet"`, "https://twitter.com/i/status/123", "hello"}},
		{"Gist", map[string]string{"id": "farskid/abc", "file": "a b.js"}, []string{"https://gist.github.com/farskid/abc.js?file=a+b.js"}},
		{"Figure", map[string]string{"src": "/img/a.png", "caption": `"Quoted"`}, []string{`alt="&#34;Quoted&#34;"`, "<figcaption>&#34;Quoted&#34;</figcaption>"}},
		{"Kbd", nil, []string{"<kbd>hello <b>there</b></kbd>"}},
	}
	for _, tt := range tests {
		got := renderBound(t, r, tt.name, tt.props, text)
		for _, want := range tt.want {
			if !strings.Contains(got, want) {
				t.Errorf("%s output %q missing %q", tt.name, got, want)
			}
		}
	}
}

func TestCalloutRejectsUnknownType(t *testing.T) {
	if _, err := Default().Bind("Callout", map[string]string{"type": "shout"}, nil); err == nil {
		t.Error("expected error for unknown callout type")
	}
}

func TestRegistryRendersSerializedDocument(t *testing.T) {
	r := Default()
	post := content.Post{
		Slug:     "embeds",
		FileName: "embeds.mdx",
		Body:     "Watch this:\n\n<YouTube id=\"xyz\" />\n\n<Callout type=\"tip\">\n\nPress <Kbd>Esc</Kbd>.\n\n</Callout>\n",
	}
	doc, err := document.NewSerializer(r.Set(), document.Options{}).Serialize(post)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	var buf bytes.Buffer
	if err := doc.Render(context.Background(), &buf, r); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"embed-youtube", "callout-tip", "<kbd>Esc</kbd>"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered document %q missing %q", out, want)
		}
	}
}
