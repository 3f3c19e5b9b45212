package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce groups the bursts of events editors produce on save.
const watchDebounce = 100 * time.Millisecond

// Watch lints changed stylesheets until ctx is cancelled, calling onResult
// for each file linted. Directories in the patterns are watched recursively;
// for files and globs, their directories are watched.
//
// Fix write-backs trigger another event, which finds nothing to change.
func (r *Runner) Watch(ctx context.Context, onResult func(FileResult)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	roots, err := r.watchRoots()
	if err != nil {
		return err
	}
	dirs, err := watchDirs(roots, append(append([]string(nil), DefaultIgnore...), r.opts.Ignore...))
	if err != nil {
		return fmt.Errorf("failed to scan watch directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	r.log.Info("watching for changes", slog.Int("directories", len(dirs)))

	pending := make(map[string]bool)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if event.Op&fsnotify.Create != 0 {
					_ = watcher.Add(event.Name)
				}
				continue
			}
			if !isStylesheet(event.Name) || ignored(event.Name, r.opts.Ignore) || ignored(event.Name, DefaultIgnore) {
				continue
			}
			pending[filepath.Clean(event.Name)] = true
			timer.Reset(watchDebounce)

		case <-timer.C:
			for path := range pending {
				res, err := r.LintFile(path)
				if err != nil {
					r.log.Warn("lint failed", slog.String("path", path), slog.Any("error", err))
					continue
				}
				onResult(res)
			}
			clear(pending)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("watcher error", slog.Any("error", err))
		}
	}
}

// watchRoots returns the directories to watch for the configured patterns.
func (r *Runner) watchRoots() ([]string, error) {
	var roots []string
	for _, p := range r.opts.Patterns {
		if p == StdinPath {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			roots = append(roots, p)
			continue
		}
		files, err := ExpandPatterns([]string{p}, r.opts.Ignore)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			roots = append(roots, filepath.Dir(f))
		}
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("nothing to watch")
	}
	return roots, nil
}
