// internal/builder/templates.go
package builder

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/farskid/farzadyz.me/internal/util"
)

//go:embed templates/default/*.html
var defaultTheme embed.FS

// DefaultTemplate names the theme compiled into the binary.
const DefaultTemplate = "default"

// Templates holds one template set per page kind. Each set shares the
// layout and partials and defines its own "content" block.
type Templates struct {
	post  *template.Template
	index *template.Template
}

var templateFuncs = template.FuncMap{
	"formatDate": util.FormatDate,
	"isoDate":    util.ISODate,
	"trimAt": func(s string) string {
		return strings.TrimPrefix(s, "@")
	},
}

// LoadTemplates parses the theme templateName. A directory of that name under
// templateDir wins; otherwise the built-in default theme is used.
func LoadTemplates(templateDir, templateName string) (*Templates, error) {
	path := filepath.Join(templateDir, templateName)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return parseTheme(os.DirFS(path))
	}
	if templateName != DefaultTemplate {
		return nil, fmt.Errorf("template %q not found in %s", templateName, templateDir)
	}
	return DefaultTemplates()
}

// DefaultTemplates returns the built-in theme.
func DefaultTemplates() (*Templates, error) {
	sub, err := fs.Sub(defaultTheme, "templates/default")
	if err != nil {
		return nil, err
	}
	return parseTheme(sub)
}

// DefaultThemeFS exposes the built-in theme files, e.g. for scaffolding.
func DefaultThemeFS() fs.FS {
	sub, _ := fs.Sub(defaultTheme, "templates/default")
	return sub
}

// parseTheme expects layout.html, header.html, footer.html, post.html and index.html.
func parseTheme(fsys fs.FS) (*Templates, error) {
	shared, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(fsys, "layout.html", "header.html", "footer.html")
	if err != nil {
		return nil, err
	}

	post, err := shared.Clone()
	if err != nil {
		return nil, err
	}
	if _, err := post.ParseFS(fsys, "post.html"); err != nil {
		return nil, err
	}

	index, err := shared.Clone()
	if err != nil {
		return nil, err
	}
	if _, err := index.ParseFS(fsys, "index.html"); err != nil {
		return nil, err
	}
	return &Templates{post: post, index: index}, nil
}
