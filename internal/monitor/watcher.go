package monitor

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"goterm/pkg/logger"
)

const debounceDelay = 100 * time.Millisecond

// Watcher observes the recycle bin directory and invokes a callback after
// changes settle, so gauges and listings stay current without polling.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	onChange func()
	stopCh   chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher over dir. onChange runs debounced on any
// create, write, rename or remove inside the directory.
func NewWatcher(dir string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  fw,
		dir:      dir,
		onChange: onChange,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	go w.run()
	return nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error().Err(err).Msg("recycle bin watcher error")
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, w.onChange)
}

// Stop halts the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
}
