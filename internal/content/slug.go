// internal/content/slug.go
package content

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// postExts are the file extensions treated as post sources.
var postExts = map[string]bool{".md": true, ".mdx": true}

// IsPostFile reports whether name has a post source extension.
func IsPostFile(name string) bool {
	return postExts[strings.ToLower(filepath.Ext(name))]
}

// SlugFromFileName derives the permanent slug of a post from its file name.
func SlugFromFileName(name string) string {
	base := filepath.Base(name)
	return Slugify(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Slugify lower-cases s, folds accented letters to their base form and
// collapses every run of other characters into a single hyphen.
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))

	var b strings.Builder
	prev := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
