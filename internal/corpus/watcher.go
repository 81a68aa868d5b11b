package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// WatcherConfig configures corpus reloading on filesystem changes.
type WatcherConfig struct {
	Root       string
	Categories []Category

	// Debounce coalesces bursts of events into one reload. Defaults to 500ms.
	Debounce time.Duration

	// OnReload is called after each swap with the new corpus.
	OnReload func(*Corpus)
}

// Watcher reloads the corpus into a Holder whenever files under the root change.
type Watcher struct {
	cfg    WatcherConfig
	holder *Holder
	logger *slog.Logger
	fsw    *fsnotify.Watcher
}

// NewWatcher registers fsnotify watches on the root and its category directories.
func NewWatcher(cfg WatcherConfig, holder *Holder, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("corpus: creating watcher: %w", err)
	}
	if err := fsw.Add(cfg.Root); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("corpus: watching %s: %w", cfg.Root, err)
	}

	w := &Watcher{cfg: cfg, holder: holder, logger: logger, fsw: fsw}
	for _, cat := range cfg.Categories {
		w.addCategoryDir(filepath.Join(cfg.Root, string(cat)))
	}
	return w, nil
}

// Run processes events until ctx is cancelled, then closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	timer := time.NewTimer(w.cfg.Debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == filepath.Clean(w.cfg.Root) {
				w.addCategoryDir(event.Name)
			}
			if !pending {
				pending = true
			} else {
				timer.Stop()
			}
			timer.Reset(w.cfg.Debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("corpus watcher error", "error", err)

		case <-timer.C:
			pending = false
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	c := Load(w.cfg.Root, w.cfg.Categories, w.logger)
	w.holder.Store(c)
	w.logger.Info("knowledge base reloaded", "documents", c.Len())
	if w.cfg.OnReload != nil {
		w.cfg.OnReload(c)
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (w *Watcher) addCategoryDir(dir string) {
	if !Category(filepath.Base(dir)).Valid() {
		return
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.fsw.Add(dir); err != nil {
		w.logger.Warn("cannot watch category directory", "path", dir, "error", err)
	}
}
