// Package watch re-runs a handler whenever rule files under a directory
// change. Bursts of events are coalesced into one call.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lewiesnyder/RulePort/internal/logging"
)

// DefaultDebounce is the quiet period after the last change before the
// handler runs.
const DefaultDebounce = 500 * time.Millisecond

// Handler is called with the sorted set of paths that changed since the
// previous call.
type Handler func(ctx context.Context, changed []string) error

// Options configures Watch.
type Options struct {
	// Dir is watched recursively. New subdirectories are picked up.
	Dir string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	Logger   *slog.Logger
	Handler  Handler
}

// Watch blocks until ctx is cancelled. Handler errors are logged and do not
// stop the watcher.
func Watch(ctx context.Context, opts Options) error {
	if opts.Handler == nil {
		return errors.New("watch: handler is required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, opts.Dir); err != nil {
		return err
	}
	logger.Info("watching for changes", logging.Path(opts.Dir))

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	schedule := func(path string) {
		pending[path] = struct{}{}
		if timer == nil {
			timer = time.NewTimer(opts.Debounce)
			fire = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(opts.Debounce)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher stopped")
			return nil

		case <-fire:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)

			logger.Debug("change detected", logging.Count(len(changed)))
			if err := opts.Handler(ctx, changed); err != nil {
				logger.Error("handler failed", logging.Err(err))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("watch new directory failed", logging.Path(ev.Name), logging.Err(addErr))
					}
					schedule(ev.Name)
					continue
				}
			}

			if !relevant(ev) {
				continue
			}
			logger.Log(ctx, logging.LevelTrace, "file event", logging.Path(ev.Name), slog.String("op", ev.Op.String()))
			schedule(ev.Name)

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", logging.Err(watchErr))
		}
	}
}

// relevant reports whether ev touches a markdown file. Removing or renaming
// a directory also counts, since a cursor rule lives in its own folder.
func relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if strings.HasSuffix(ev.Name, ".md") {
		return true
	}
	return ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && filepath.Ext(ev.Name) == ""
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
