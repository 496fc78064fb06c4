// internal/builder/manifest.go
package builder

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"
)

// manifestEntry records one generated post page.
type manifestEntry struct {
	Slug   string `json:"slug"`
	Path   string `json:"path"`
	Digest string `json:"digest"`
	Draft  bool   `json:"draft"`
}

// Manifest is written to manifest.json at the root of the output directory.
type Manifest struct {
	BuildID     string          `json:"buildId"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Pages       []manifestEntry `json:"pages"`
}

func writeManifest(outputDir, buildID string, generatedAt time.Time, pages []manifestEntry) error {
	if pages == nil {
		pages = []manifestEntry{}
	}
	data, err := json.MarshalIndent(Manifest{
		BuildID:     buildID,
		GeneratedAt: generatedAt,
		Pages:       pages,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, "manifest.json"), append(data, '\n'), 0644)
}

// ReadManifest loads the manifest written by a previous build.
func ReadManifest(outputDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, "manifest.json"))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// pruneStalePages removes pages listed in previous that the current build no
// longer produces, such as those of deleted or renamed posts. Emptied page
// directories go with them.
func pruneStalePages(outputDir string, previous *Manifest, current []manifestEntry) error {
	if previous == nil {
		return nil
	}
	keep := make(map[string]bool, len(current))
	for _, e := range current {
		keep[e.Path] = true
	}
	for _, e := range previous.Pages {
		rel := filepath.FromSlash(e.Path)
		if keep[e.Path] || !filepath.IsLocal(rel) {
			continue
		}
		page := filepath.Join(outputDir, rel)
		if err := os.Remove(page); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		log.Printf("component=builder action=prune path=%s", e.Path)
		// Remove fails on a non-empty directory, which is what we want.
		os.Remove(filepath.Dir(page))
	}
	return nil
}

// previousManifest returns the manifest of the last build in outputDir, or nil
// when there is none.
func previousManifest(outputDir string) *Manifest {
	m, err := ReadManifest(outputDir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("component=builder action=read_manifest err=%q", err)
		}
		return nil
	}
	return m
}
