package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ZaguanLabs/i18nsync"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const defaultDebounce = 300 * time.Millisecond

// watcher reports batches of changed files under a root directory. Hidden
// directories and the skip paths are not watched.
type watcher struct {
	root     string
	skip     []string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
}

func newWatcher(root string, skip []string, debounce time.Duration, logger *slog.Logger) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &watcher{
		root:     root,
		debounce: debounce,
		fsw:      fsw,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
	}
	for _, p := range skip {
		if p != "" {
			w.skip = append(w.skip, filepath.Clean(p))
		}
	}
	if err := w.addRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *watcher) Close() error {
	return w.fsw.Close()
}

func (w *watcher) ignored(path string) bool {
	path = filepath.Clean(path)
	for _, skip := range w.skip {
		if path == skip || strings.HasPrefix(path, skip+string(filepath.Separator)) {
			return true
		}
	}
	base := filepath.Base(path)
	return path != filepath.Clean(w.root) && strings.HasPrefix(base, ".")
}

func (w *watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

// Run blocks until ctx is done, calling onChange with the sorted paths that
// changed once no event has arrived for the debounce delay. Calls are
// sequential.
func (w *watcher) Run(ctx context.Context, onChange func(ctx context.Context, paths []string)) error {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	quiet := true
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(event) {
				quiet = false
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			// One idle tick after the last event.
			if !quiet {
				quiet = true
				continue
			}
			if paths := w.flush(); len(paths) > 0 {
				onChange(ctx, paths)
			}
		}
	}
}

// handle records a relevant event and reports whether it was recorded.
func (w *watcher) handle(event fsnotify.Event) bool {
	if w.ignored(event.Name) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			}
		}
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}

	w.pendingMu.Lock()
	w.pending[event.Name] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("File change detected", "path", event.Name, "op", event.Op.String())
	return true
}

func (w *watcher) flush() []string {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]fsnotify.Op)
	sort.Strings(paths)
	return paths
}

func newWatchCommand(o *options, stdout, stderr io.Writer) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [TARGET] [ROOT]",
		Short: "Synchronize dictionaries whenever the markup changes",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, rootArg := positional(args)
			ctx := cmd.Context()

			logger := newLogger(stderr, o)
			cfg, err := loadConfig(o, cmd.Flags(), logger, rootArg)
			if err != nil {
				return err
			}

			// The first run reports a missing root.
			if err := syncOnce(ctx, cmd, o, target, rootArg, stdout, stderr); err != nil {
				return err
			}
			root := i18nsync.NormalizeRoot(cfg.Root, cfg.LocalesDir)

			// Files the run itself writes must not trigger another run.
			skip := []string{filepath.Join(root, cfg.LocalesDir), cfg.Cache.File, cfg.Metrics.Textfile}
			w, err := newWatcher(root, skip, debounce, logger)
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer w.Close()

			logger.Info("Watching for changes", "root", root)
			return w.Run(ctx, func(ctx context.Context, paths []string) {
				logger.Info("Markup changed", "files", len(paths))
				if err := syncOnce(ctx, cmd, o, target, rootArg, stdout, stderr); err != nil {
					logger.Error("Sync failed", "error", err)
				}
			})
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "Quiet period before re-running after a change")

	return cmd
}
