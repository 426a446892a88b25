package watch

import (
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 500 * time.Millisecond

// FileWatcher coalesces writes to a set of env files into single change
// notifications. It watches the parent directories rather than the files, so
// files created later or replaced by an editor's rename-on-save are seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	files    map[string]bool
	dirs     map[string]bool
	onChange chan string
	mu       sync.Mutex
	timer    *time.Timer
	done     chan struct{}
	closed   bool
}

// NewFileWatcher returns a watcher; a non-positive debounce selects
// DefaultDebounce.
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FileWatcher{
		watcher:  fsw,
		debounce: debounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		onChange: make(chan string, 1),
		done:     make(chan struct{}),
	}, nil
}

func (w *FileWatcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if w.files[absPath] {
		return nil
	}

	dir := filepath.Dir(absPath)
	if !w.dirs[dir] {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	w.files[absPath] = true
	return nil
}

// Start begins delivering notifications. Each value is the path of the last
// file that changed within the debounce window.
func (w *FileWatcher) Start() <-chan string {
	go w.run()
	return w.onChange
}

func (w *FileWatcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Clean(event.Name)
			w.mu.Lock()
			watched := w.files[name]
			w.mu.Unlock()
			if watched {
				w.trigger(name)
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *FileWatcher) trigger(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.onChange <- path:
		default:
		}
	})
}

func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

// Files returns the absolute paths being watched, sorted.
func (w *FileWatcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}
