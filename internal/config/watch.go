package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dgallion1/formgest/internal/layout"
	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events a single editor save produces.
const reloadDelay = 200 * time.Millisecond

// WatchLayoutOptions reloads the layout options file whenever it changes
// and passes the result to apply. A file that fails to parse is logged and
// the previous options stay in effect. It returns once the watcher is
// running; the watch ends when ctx is done.
//
// The parent directory is watched rather than the file, so editors that
// save by rename keep being tracked.
func (c Config) WatchLayoutOptions(ctx context.Context, log *slog.Logger, apply func(layout.Options)) error {
	if c.LayoutOptionsFile == "" {
		return nil
	}
	target, err := filepath.Abs(c.LayoutOptionsFile)
	if err != nil {
		return fmt.Errorf("resolving layout options path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	go func() {
		defer w.Close()
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(reloadDelay)
				} else {
					timer.Reset(reloadDelay)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				opts, err := c.LayoutOptions()
				if err != nil {
					log.Warn("layout options reload failed, keeping previous", "path", target, "error", err)
					continue
				}
				apply(opts)
				log.Info("layout options reloaded", "path", target, "keywords", len(opts.Keywords))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("layout options watcher error", "error", err)
			}
		}
	}()
	return nil
}
