// Package tail notices growth of the Codex TUI log so the pipeline can
// re-scan. The log is append-only; truncation (rotation) also counts as a
// change.
package tail

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type Watcher struct {
	path         string
	size         int64 // last observed size
	mu           sync.Mutex
	pollInterval time.Duration
	onChange     func()
	stop         chan struct{}
	wg           sync.WaitGroup
}

// defaultPollInterval stands in for non-positive intervals;
// time.NewTicker panics on them.
const defaultPollInterval = time.Second

func New(path string, pollInterval time.Duration, onChange func()) *Watcher {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Watcher{
		path:         path,
		size:         -1,
		pollInterval: pollInterval,
		onChange:     onChange,
		stop:         make(chan struct{}),
	}
}

// Start begins watching with fsnotify + polling fallback. A failed
// fsnotify setup just leaves the poller on its own.
func (w *Watcher) Start() {
	// Watch the directory; the log file itself may be rotated out from
	// under a file-level watch.
	fsw, err := fsnotify.NewWatcher()
	if err == nil {
		if addErr := fsw.Add(filepath.Dir(w.path)); addErr != nil {
			fsw.Close()
			fsw = nil
		}
	} else {
		fsw = nil
	}

	if fsw != nil {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for {
				select {
				case event, ok := <-fsw.Events:
					if !ok {
						return
					}
					if event.Name == w.path &&
						(event.Op&fsnotify.Write != 0 || event.Op&fsnotify.Create != 0) {
						w.check()
					}
				case _, ok := <-fsw.Errors:
					if !ok {
						return
					}
				case <-w.stop:
					fsw.Close()
					return
				}
			}
		}()
	}

	// Polling fallback (always runs as safety net)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.check()
			case <-w.stop:
				return
			}
		}
	}()
}

// Stop signals goroutines to exit and waits for them to finish.
func (w *Watcher) Stop() {
	close(w.stop)
	w.wg.Wait()
}

func (w *Watcher) check() {
	info, err := os.Stat(w.path)
	if err != nil {
		return
	}

	w.mu.Lock()
	changed := info.Size() != w.size
	w.size = info.Size()
	w.mu.Unlock()

	if changed {
		w.onChange()
	}
}
