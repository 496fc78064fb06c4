package content

import "testing"

func TestSlugFromFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello-world.mdx", "hello-world"},
		{"Hello World.md", "hello-world"},
		{"posts/nested/Why_XState.mdx", "why-xstate"},
		{"Crème Brûlée!!.md", "creme-brulee"},
		{"--edge--case--.md", "edge-case"},
		{"2021-recap.md", "2021-recap"},
	}
	for _, tt := range tests {
		if got := SlugFromFileName(tt.input); got != tt.expected {
			t.Errorf("SlugFromFileName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSlugifyIsIdempotent(t *testing.T) {
	for _, s := range []string{"Hello World", "Ünïcödé Tïtle", "a--b"} {
		once := Slugify(s)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify(Slugify(%q)) = %q, want %q", s, twice, once)
		}
	}
}

func TestIsPostFile(t *testing.T) {
	for name, want := range map[string]bool{"a.md": true, "a.MDX": true, "a.txt": false, "md": false} {
		if got := IsPostFile(name); got != want {
			t.Errorf("IsPostFile(%q) = %v, want %v", name, got, want)
		}
	}
}
