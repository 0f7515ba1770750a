// Package watch notifies callers when a category document changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of events from a single save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches the directory containing one document and reports changes
// to that file only. Editors that replace the file by rename are handled
// because the directory, not the file, is watched.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	log      *slog.Logger
}

// New starts watching path. Events that happen after New returns are
// delivered by Run. A nil logger discards messages.
func New(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch.New: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch.New: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch.New: add %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{watcher: fw, path: abs, debounce: debounce, log: logger}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Run calls onChange once per burst of writes, creates or renames of the
// watched file. It blocks until ctx is cancelled or the underlying watcher
// fails, and always closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("document event", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "path", w.path, "err", err)

		case <-fire:
			fire = nil
			onChange()
		}
	}
}
