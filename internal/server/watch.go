// internal/server/watch.go
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDuration = 500 * time.Millisecond

// newWatcher watches every directory under the given paths. Files are watched
// through their parent directory, which survives editors that save by swapping files.
// Missing paths are skipped.
func newWatcher(paths []string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	watched := make(map[string]bool)
	addWatch := func(dir string) {
		dir = filepath.Clean(dir)
		if watched[dir] {
			return
		}
		if err := watcher.Add(dir); err != nil {
			log.Printf("component=server action=watch_failed dir=%s err=%q", dir, err)
			return
		}
		watched[dir] = true
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("could not stat path %s: %w", path, err)
		}
		if !info.IsDir() {
			addWatch(filepath.Dir(path))
			continue
		}
		if err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				addWatch(p)
			}
			return nil
		}); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
	}
	log.Printf("component=server action=watching dirs=%d", len(watched))
	return watcher, nil
}

// debounce calls fn once events have been quiet for delay, passing the last
// changed path. onEvent, when set, sees every relevant event as it arrives.
// It returns when ctx is done or events is closed.
func debounce(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, delay time.Duration, onEvent func(fsnotify.Event), fn func(name string)) {
	timer := time.NewTimer(delay)
	timer.Stop()
	var pending string

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if onEvent != nil {
				onEvent(event)
			}
			pending = event.Name
			timer.Reset(delay)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Printf("component=server action=watch_error err=%q", err)
		case <-timer.C:
			fn(pending)
		}
	}
}

// watchNewDirs adds directories created under a watched tree.
func watchNewDirs(watcher *fsnotify.Watcher) func(fsnotify.Event) {
	return func(event fsnotify.Event) {
		if !event.Has(fsnotify.Create) {
			return
		}
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watcher.Add(event.Name); err != nil {
				log.Printf("component=server action=watch_failed dir=%s err=%q", event.Name, err)
			}
		}
	}
}
