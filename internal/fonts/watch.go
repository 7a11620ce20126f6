package fonts

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch resets the loader whenever a file under its directory is created,
// written, removed or renamed, until ctx is done. Watching is skipped, with a
// log line, when the directory is missing or fsnotify is unavailable.
func (l *Loader) Watch(ctx context.Context) {
	if l.dir == "" {
		return
	}
	if _, err := os.Stat(l.dir); err != nil {
		slog.Info("font directory unavailable, not watching", "dir", l.dir, "error", err)
		return
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Info("fsnotify unavailable, font directory not watched", "error", err)
		return
	}

	_ = filepath.WalkDir(l.dir, func(p string, d fs.DirEntry, err error) error {
		if err == nil && d.IsDir() {
			if addErr := fsw.Add(p); addErr != nil {
				slog.Debug("cannot watch font dir", "path", p, "error", addErr)
			}
		}
		return nil
	})

	go l.watch(ctx, fsw)
}

func (l *Loader) watch(ctx context.Context, fsw *fsnotify.Watcher) {
	defer fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					_ = fsw.Add(event.Name)
				}
			}
			slog.Debug("font directory changed", "path", event.Name, "op", event.Op.String())
			l.Reset()
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("font watcher error", "error", err)
		}
	}
}
