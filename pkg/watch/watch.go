// Package watch runs a callback when files in a set of directories change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/macropower/trackhue/pkg/log"
)

// DefaultDelay is the quiet period after the last event before the callback
// runs.
const DefaultDelay = 200 * time.Millisecond

// Watcher debounces file system events.
type Watcher struct {
	watcher *fsnotify.Watcher
	filter  func(path string) bool
	delay   time.Duration
}

// Opt configures a [Watcher].
type Opt func(*Watcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Opt {
	return func(w *Watcher) {
		w.delay = d
	}
}

// WithFilter sets a predicate that selects which paths trigger the callback.
func WithFilter(filter func(path string) bool) Opt {
	return func(w *Watcher) {
		w.filter = filter
	}
}

// New creates a [Watcher] for the given directories.
func New(dirs []string, opts ...Opt) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher: fw,
		filter:  func(string) bool { return true },
		delay:   DefaultDelay,
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, dir := range dirs {
		err := fw.Add(dir)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("watch %q: %w", dir, err), fw.Close())
		}
	}

	return w, nil
}

// Run calls fn once per burst of matching events, until ctx is done or the
// watcher is closed.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context)) {
	logger := log.WithContext(ctx)

	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Ignore events that are not related to file content changes.
			if evt.Has(fsnotify.Chmod) || !w.filter(evt.Name) {
				continue
			}

			logger.DebugContext(ctx, "file event", slog.String("event", evt.String()))

			fire = time.After(w.delay)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			logger.ErrorContext(ctx, "watch files", slog.Any("err", err))

		case <-fire:
			fire = nil

			fn(ctx)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() {
	err := w.watcher.Close()
	if err != nil {
		slog.Error("close watcher", slog.Any("err", err))
	}
}
