package theme

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a theme file whenever it changes on disk.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching path. The directory is watched rather than
// the file so that editors which replace the file on save are followed.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &Watcher{path: abs, watcher: w}, nil
}

// Run calls fn with the reloaded theme (or the load error) after every
// write, create or rename of the file, until ctx is done or Close is
// called. fn runs on the calling goroutine.
func (w *Watcher) Run(ctx context.Context, fn func(*Theme, error)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			t, err := Load(w.path)
			if err != nil {
				slogger().Warn("theme: reload failed", "path", w.path, "err", err)
			} else {
				slogger().Info("theme: reloaded", "path", w.path, "name", t.Name)
			}
			fn(t, err)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slogger().Warn("theme: watch error", "path", w.path, "err", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Watch is NewWatcher followed by Run; it blocks until ctx is done.
func Watch(ctx context.Context, path string, fn func(*Theme, error)) error {
	w, err := NewWatcher(path)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Run(ctx, fn)
}
