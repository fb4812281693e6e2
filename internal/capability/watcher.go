package capability

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// GrantsWatcher monitors the grants file and reloads the FileChecker when it
// changes. Revocations affect future handle creations only; handles already
// issued stay usable.
type GrantsWatcher struct {
	checker      *FileChecker
	watcher      *fsnotify.Watcher
	stopChan     chan struct{}
	reloadChan   chan struct{}
	debounceTime time.Duration
}

// NewGrantsWatcher creates a watcher for the checker's grants file.
func NewGrantsWatcher(checker *FileChecker) (*GrantsWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &GrantsWatcher{
		checker:      checker,
		watcher:      watcher,
		stopChan:     make(chan struct{}),
		reloadChan:   make(chan struct{}, 1),
		debounceTime: time.Second,
	}, nil
}

// Start begins monitoring the grants file.
func (gw *GrantsWatcher) Start(ctx context.Context) error {
	// Watch the directory containing the grants file (more reliable than
	// watching the file directly; editors replace files on save).
	grantsDir := filepath.Dir(gw.checker.Path())
	if err := gw.watcher.Add(grantsDir); err != nil {
		return fmt.Errorf("failed to watch grants directory %s: %w", grantsDir, err)
	}

	slog.Info("Starting grants watcher", "grants_path", gw.checker.Path())

	go gw.watchLoop(ctx)
	go gw.reloadLoop(ctx)

	return nil
}

// Stop stops the grants watcher.
func (gw *GrantsWatcher) Stop() error {
	close(gw.stopChan)
	return gw.watcher.Close()
}

func (gw *GrantsWatcher) watchLoop(ctx context.Context) {
	grantsFile := filepath.Base(gw.checker.Path())

	for {
		select {
		case <-ctx.Done():
			return
		case <-gw.stopChan:
			return
		case event, ok := <-gw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != grantsFile {
				continue
			}
			switch {
			case event.Op&fsnotify.Write == fsnotify.Write,
				event.Op&fsnotify.Create == fsnotify.Create,
				event.Op&fsnotify.Rename == fsnotify.Rename:
				slog.Debug("Grants file change detected", "file", event.Name, "op", event.Op)
				gw.triggerReload()
			case event.Op&fsnotify.Remove == fsnotify.Remove:
				slog.Warn("Grants file removed; keeping last loaded grants", "file", event.Name)
			}
		case err, ok := <-gw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Grants watcher error", "error", err)
		}
	}
}

func (gw *GrantsWatcher) reloadLoop(ctx context.Context) {
	var reloadTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			return
		case <-gw.stopChan:
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			return
		case <-gw.reloadChan:
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			reloadTimer = time.AfterFunc(gw.debounceTime, func() {
				if err := gw.checker.Reload(); err != nil {
					slog.Error("Failed to reload grants", "error", err)
					return
				}
				slog.Info("Grants reloaded", "grants_path", gw.checker.Path())
			})
		}
	}
}

func (gw *GrantsWatcher) triggerReload() {
	select {
	case gw.reloadChan <- struct{}{}:
	default:
		// Reload already pending
	}
}
