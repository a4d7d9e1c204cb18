package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchFile calls fn every time the file at path is written or replaced,
// until ctx is done. The parent directory is watched so that editors
// saving through a rename are noticed. Errors from fn are logged and do
// not stop the watch.
func watchFile(ctx context.Context, path string, logger *slog.Logger, fn func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	name := filepath.Clean(path)
	if err := w.Add(filepath.Dir(name)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	logger.Info("watching query file", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Info("query file changed", "path", path, "op", ev.Op.String())
			if err := fn(); err != nil {
				logger.Error("query failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
