package content

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a directory must stay quiet before a reload.
const DefaultDebounce = 150 * time.Millisecond

// Source hands out the current Library. Reloads swap the pointer, so a
// reader keeps a consistent snapshot for as long as it holds it.
type Source struct {
	lib atomic.Pointer[Library]
}

// NewSource returns a Source serving lib.
func NewSource(lib *Library) *Source {
	s := &Source{}
	s.lib.Store(lib)
	return s
}

// Library returns the current snapshot.
func (s *Source) Library() *Library { return s.lib.Load() }

// Store replaces the current snapshot.
func (s *Source) Store(lib *Library) { s.lib.Store(lib) }

// Watcher reloads a content directory into a Source when files change.
// A reload that fails keeps the previous snapshot.
type Watcher struct {
	dir      string
	include  []string
	source   *Source
	logger   *zap.Logger
	debounce time.Duration
	onReload func(*Library)

	watcher *fsnotify.Watcher
	done    chan struct{}
	once    sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithOnReload registers a callback run after each successful reload.
func WithOnReload(fn func(*Library)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// Watch starts watching dir and every subdirectory beneath it.
func Watch(dir string, include []string, source *Source, logger *zap.Logger, opts ...WatcherOption) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		dir:      dir,
		include:  include,
		source:   source,
		logger:   logger,
		debounce: DefaultDebounce,
		watcher:  fw,
		done:     make(chan struct{}),
	}
	for _, o := range opts {
		o(w)
	}

	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(p)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, err
	}

	go w.loop()
	return w, nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	var (
		dirty bool
		last  time.Time
	)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				w.addIfDir(event.Name)
			}
			if !relevant(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				dirty = true
				last = time.Now()
			}

		case <-ticker.C:
			if dirty && time.Since(last) >= w.debounce {
				dirty = false
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("content watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) addIfDir(p string) {
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		if err := w.watcher.Add(p); err != nil && !errors.Is(err, fsnotify.ErrClosed) {
			w.logger.Warn("watching new directory", zap.String("dir", p), zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	lib, err := Load(w.dir, w.include)
	if err != nil {
		w.logger.Error("content reload failed, keeping previous content", zap.String("dir", w.dir), zap.Error(err))
		return
	}
	w.source.Store(lib)
	w.logger.Info("content reloaded", zap.String("dir", w.dir), zap.Int("sections", lib.Registry.Len()))
	if w.onReload != nil {
		w.onReload(lib)
	}
}

func relevant(name string) bool {
	base := strings.ToLower(filepath.Base(name))
	if strings.HasSuffix(base, ".md") {
		return true
	}
	for _, r := range registryFiles {
		if base == r {
			return true
		}
	}
	return false
}
