package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"mvvmgen/internal/config"
)

// Watch regenerates on manifest changes until interrupted.
type Watch struct {
	Input `embed:""`

	Debounce time.Duration `help:"Wait this long after the last change before regenerating." default:"200ms"`
}

// Run is called by Kong when the watch command is executed.
func (w *Watch) Run(cfg *config.Config, logger *zap.Logger, runID RunID) error {
	w.apply(cfg)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &runner{cfg: cfg, logger: logger, runID: runID, in: &w.Input, stdout: os.Stdout, stderr: os.Stderr}
	return w.watch(ctx, r)
}

func (w *Watch) watch(ctx context.Context, r *runner) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files instead of writing them, so the
	// directories are watched and events filtered by name.
	tracked := map[string]bool{}
	dirs := map[string]bool{}
	for _, m := range w.Manifests {
		abs, err := filepath.Abs(m)
		if err != nil {
			return err
		}
		tracked[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	regenerate := func() {
		if _, err := r.run(ctx); err != nil {
			r.logger.Error("generation failed", zap.Error(err))
		}
	}
	regenerate()
	r.logger.Info("watching manifests", zap.Int("files", len(tracked)))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !tracked[filepath.Clean(ev.Name)] || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			r.logger.Debug("manifest changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			pending = time.After(w.Debounce)
		case <-pending:
			pending = nil
			regenerate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watch error", zap.Error(err))
		}
	}
}
