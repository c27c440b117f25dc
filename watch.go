package animator

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce drops repeat events for the same file inside this window;
// editors often emit several writes per save.
const watchDebounce = 100 * time.Millisecond

// ManifestWatcher reports edits to manifest files. It watches the parent
// directory of each path so atomic-rename saves are seen. Events are
// delivered on a buffered channel; frame loops poll it with Drain.
type ManifestWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	events  chan string
	errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewManifestWatcher starts watching the given manifest files.
func NewManifestWatcher(paths ...string) (*ManifestWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
		dirs[dir] = true
	}

	mw := &ManifestWatcher{
		watcher: w,
		files:   files,
		events:  make(chan string, 16),
		errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go mw.run()
	return mw, nil
}

// Events returns the channel of changed manifest paths.
func (w *ManifestWatcher) Events() <-chan string { return w.events }

// Errors returns the channel of watcher errors.
func (w *ManifestWatcher) Errors() <-chan error { return w.errors }

// Drain empties the pending events without blocking and reports whether
// any manifest changed.
func (w *ManifestWatcher) Drain() bool {
	changed := false
	for {
		select {
		case _, ok := <-w.events:
			if !ok {
				return changed
			}
			changed = true
		default:
			return changed
		}
	}
}

// ReloadInto drains pending events and, if any arrived, reloads the
// manifest at path into dst. Sessions using dst pick up the new clips on
// their next change check. On a load error dst is left untouched.
func (w *ManifestWatcher) ReloadInto(path string, dst *ClipSet) (bool, error) {
	if !w.Drain() {
		return false, nil
	}
	m, err := LoadManifest(path)
	if err != nil {
		return false, err
	}
	if err := m.ApplyTo(dst); err != nil {
		return false, err
	}
	l := Logger()
	l.Debug().Str("path", path).Int("clips", dst.Len()).Msg("manifest reloaded")
	return true, nil
}

// Close stops the watcher goroutine. Safe to call more than once.
func (w *ManifestWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.events)
		close(w.errors)
	})
	return err
}

func (w *ManifestWatcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] || !isManifestFile(name) {
				continue
			}
			now := time.Now()
			if t, ok := last[name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[name] = now
			select {
			case w.events <- name:
			case <-w.closeCh:
				return
			default:
				// Buffer full: a reload is already pending.
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isManifestFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
