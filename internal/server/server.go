// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/farskid/farzadyz.me/internal/builder"
)

// BuildFunc rebuilds the site into the served directory.
type BuildFunc func(builder.BuildOptions) error

// Options configures the development server.
type Options struct {
	Port      int
	OutputDir string   // directory of built files to serve
	Watch     []string // files and directories that trigger a rebuild
}

// NewHandler routes /ws to the live-reload hub and everything else to the
// files under outputDir.
func NewHandler(outputDir string, hub *Hub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/ws", hub.serveWs)

	fileServer := http.FileServer(http.Dir(outputDir))
	r.Handle("/*", liveReloadWrapper(fileServer))
	return r
}

// Run builds the site, serves it and rebuilds on every change below
// srv.Watch until ctx is cancelled. Drafts are always included.
func Run(ctx context.Context, srv Options, buildFunc BuildFunc, opts builder.BuildOptions) error {
	opts.CleanDestination = true
	opts.Drafts = true
	if err := buildFunc(opts); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	watcher, err := newWatcher(srv.Watch)
	if err != nil {
		return err
	}
	defer watcher.Close()

	hub := newHub()
	// Rebuilds keep the output directory; pages of removed posts are pruned.
	opts.CleanDestination = false
	go debounce(ctx, watcher.Events, watcher.Errors, debounceDuration, watchNewDirs(watcher), func(name string) {
		log.Printf("component=server action=rebuild changed=%s", name)
		if err := buildFunc(opts); err != nil {
			log.Printf("component=server action=rebuild_failed err=%q", err)
			return
		}
		hub.broadcast([]byte("reload"))
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", srv.Port),
		Handler:           NewHandler(srv.OutputDir, hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("Serving site on http://localhost:%d\n", srv.Port)
		fmt.Println("Press Ctrl+C to stop")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("component=server action=shutdown")
	hub.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
