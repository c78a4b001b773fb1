package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/coursesite/internal/logger"
	"github.com/MrSnakeDoc/coursesite/internal/utils"
)

const defaultDebounce = 500 * time.Millisecond

// watcher reports debounced changes anywhere below a directory.
type watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   logger.Logger
}

func newWatcher(root string, debounce time.Duration, log logger.Logger) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &watcher{fs: fw, debounce: debounce, logger: log}
	if err := w.addTree(root); err != nil {
		utils.Close(fw)
		return nil, err
	}
	log.Info("watching site definition", logger.String("dir", root), logger.Duration("debounce", debounce))
	return w, nil
}

// addTree watches root and every directory below it; fsnotify is not
// recursive.
func (w *watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && ignored(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

// watchCreated adds a newly created directory tree. Files are a no-op, and
// paths already removed again are skipped.
func (w *watcher) watchCreated(name string) {
	if err := w.addTree(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		w.logger.Warn("failed to watch new path, changes below it will be missed",
			logger.String("path", name), logger.Error(err))
	}
}

// run forwards one signal per burst of events to out, after the debounce
// period has passed without new events. It closes the fsnotify watcher on
// exit.
func (w *watcher) run(ctx context.Context, stop <-chan struct{}, out chan<- struct{}) {
	defer utils.MustClose(w.fs, w.logger, "fs watcher")

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ignored(filepath.Base(event.Name)) || event.Op == fsnotify.Chmod {
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				w.watchCreated(event.Name)
			}
			w.logger.Debug("site file changed", logger.String("file", event.Name), logger.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case <-timer.C:
			select {
			case out <- struct{}{}:
			default:
				// a reload is already pending
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", logger.Error(err))
		}
	}
}

// ignored matches hidden files and editor temporaries.
func ignored(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") || strings.HasSuffix(name, ".swp")
}
