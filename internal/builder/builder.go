// internal/builder/builder.go
package builder

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/farskid/farzadyz.me/internal/components"
	"github.com/farskid/farzadyz.me/internal/config"
	"github.com/farskid/farzadyz.me/internal/content"
	"github.com/farskid/farzadyz.me/internal/document"
	"github.com/farskid/farzadyz.me/internal/seo"
)

// BuildOptions controls a site build.
type BuildOptions struct {
	// CleanDestination empties the output directory first. Without it, pages of
	// posts that no longer exist are pruned using the previous manifest.
	CleanDestination bool
	Unsafe           bool // skip HTML sanitizing
	Debug            bool
	Drafts           bool // publish posts marked as drafts
}

// Result summarizes a finished build.
type Result struct {
	BuildID string
	Pages   int   // post pages written
	Drafts  int   // draft posts left out
	Bytes   int64 // total bytes of generated pages and feeds
}

// builtPost is the outcome of one post's pipeline.
type builtPost struct {
	post   content.Post
	digest string
	bytes  int
}

// BuildSite runs every post through store, serializer, metadata composer and
// renderer, then writes the listing, feeds, stylesheet, static assets and manifest.
// The first failing post aborts the build.
func BuildSite(ctx context.Context, outputDir, staticDir string, site config.SiteConfig, tmpl *Templates, opts BuildOptions) (Result, error) {
	if err := site.Validate(); err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return Result{}, err
	}

	var previous *Manifest
	if opts.CleanDestination {
		fmt.Println("Cleaning destination directory...")
		entries, err := os.ReadDir(outputDir)
		if err != nil {
			return Result{}, err
		}
		for _, entry := range entries {
			if err := os.RemoveAll(filepath.Join(outputDir, entry.Name())); err != nil {
				return Result{}, err
			}
		}
	} else {
		previous = previousManifest(outputDir)
	}

	result := Result{BuildID: ulid.Make().String()}
	store := content.NewStore(site.ContentDir)
	slugs, err := store.Slugs()
	if err != nil {
		return Result{}, err
	}

	registry := components.Default()
	serializer := document.NewSerializer(registry.Set(), document.Options{Unsafe: opts.Unsafe})
	renderer := NewRenderer(site, tmpl, registry)
	if opts.Debug {
		log.Printf("component=builder action=start content_dir=%s posts=%d components=%v", store.Dir(), len(slugs), registry.Names())
	}

	built := make([]*builtPost, len(slugs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, slug := range slugs {
		i, slug := i, slug
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			post, err := store.Resolve(slug)
			if err != nil {
				return err
			}
			if post.Draft && !opts.Drafts {
				if opts.Debug {
					log.Printf("component=builder action=skip_draft slug=%s", slug)
				}
				return nil
			}
			page, doc, err := buildPost(gctx, post, serializer, renderer, site)
			if err != nil {
				return err
			}
			if err := writePage(outputDir, page); err != nil {
				return fmt.Errorf("failed to write page %s: %w", page.Path, err)
			}
			if opts.Debug {
				log.Printf("component=builder action=rendered slug=%s digest=%s components=%v", slug, doc.Digest[:12], doc.Components)
			}
			post.Body = ""
			built[i] = &builtPost{post: post, digest: doc.Digest, bytes: len(page.HTML)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var published []content.Post
	var manifest []manifestEntry
	for i, b := range built {
		if b == nil {
			result.Drafts++
			continue
		}
		result.Pages++
		result.Bytes += int64(b.bytes)
		published = append(published, b.post)
		manifest = append(manifest, manifestEntry{
			Slug:   slugs[i],
			Path:   PostPath(slugs[i]),
			Digest: b.digest,
			Draft:  b.post.Draft,
		})
	}

	index, err := renderer.RenderIndex(ctx, published)
	if err != nil {
		return Result{}, fmt.Errorf("failed to render blog index: %w", err)
	}
	if err := writePage(outputDir, index); err != nil {
		return Result{}, err
	}
	result.Bytes += int64(len(index.HTML))

	n, err := writeFeeds(outputDir, site, published)
	if err != nil {
		return Result{}, err
	}
	result.Bytes += n

	if err := writeSyntaxCSS(outputDir); err != nil {
		return Result{}, err
	}
	if err := copyStaticAssets(staticDir, outputDir); err != nil {
		return Result{}, err
	}
	if err := pruneStalePages(outputDir, previous, manifest); err != nil {
		return Result{}, fmt.Errorf("failed to prune stale pages: %w", err)
	}
	if err := writeManifest(outputDir, result.BuildID, time.Now().UTC(), manifest); err != nil {
		return Result{}, err
	}

	log.Printf("component=builder action=built build_id=%s pages=%d drafts_skipped=%d", result.BuildID, result.Pages, result.Drafts)
	return result, nil
}

// buildPost is the per-post pipeline: serialize, compose metadata, render.
func buildPost(ctx context.Context, post content.Post, serializer *document.Serializer, renderer *Renderer, site config.SiteConfig) (Page, *document.Document, error) {
	doc, err := serializer.Serialize(post)
	if err != nil {
		return Page{}, nil, err
	}
	meta := seo.Compose(post, site)
	page, err := renderer.Render(ctx, post, doc, meta)
	if err != nil {
		return Page{}, nil, fmt.Errorf("failed to render page %s: %w", post.FileName, err)
	}
	return page, doc, nil
}

// RenderPost resolves slug from the site's content and renders its page
// without writing anything.
func RenderPost(ctx context.Context, site config.SiteConfig, tmpl *Templates, slug string, opts BuildOptions) (Page, error) {
	post, err := content.NewStore(site.ContentDir).Resolve(slug)
	if err != nil {
		return Page{}, err
	}
	registry := components.Default()
	serializer := document.NewSerializer(registry.Set(), document.Options{Unsafe: opts.Unsafe})
	page, _, err := buildPost(ctx, post, serializer, NewRenderer(site, tmpl, registry), site)
	return page, err
}

// writePage writes page under outputDir, creating parent directories.
func writePage(outputDir string, page Page) error {
	outPath := filepath.Join(outputDir, filepath.FromSlash(page.Path))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(outPath, page.HTML, 0644)
}
