package templatesync

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 500 * time.Millisecond

// Watch runs an fsnotify watcher over the named template's source tree and
// re-propagates on every change, debounced, until ctx is cancelled. Each
// propagation pass is itself content-addressed, so bursts of events collapse
// into at most one round of writes.
//
// New subdirectories created at runtime are added to the watch list.
func (s *Synchronizer) Watch(ctx context.Context, templateName string) error {
	src := filepath.Join(s.templatesDir, templateName)
	absSrc, err := s.fs.Abs(src)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, absSrc); err != nil {
		return err
	}

	s.logger.Info("watching template source", slog.String("template", templateName), slog.String("path", src))

	var debounce *time.Timer
	var debounceCh <-chan time.Time

	schedule := func() {
		if debounce == nil {
			debounce = time.NewTimer(debounceInterval)
			debounceCh = debounce.C
		} else {
			debounce.Reset(debounceInterval)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			s.logger.Info("watcher stopped")
			return nil

		case <-debounceCh:
			updated, err := s.Propagate(templateName)
			if err != nil {
				s.logger.Warn("propagation failed", slog.String("error", err.Error()))
				continue
			}
			s.logger.Info("propagated after change", slog.Int("updated", updated))

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				// A new directory needs its own watch entry.
				if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
					s.logger.Debug("watch add skipped", slog.String("path", ev.Name), slog.String("error", addErr.Error()))
				}
			}
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
// Non-directory paths are ignored.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
