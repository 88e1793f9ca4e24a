package state

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatcherIface is what the TUI consumes: a stream of events and a way to
// stop it.
type WatcherIface interface {
	Events() <-chan Event
	Close()
}

// Watcher watches the events directory for new event files.
type Watcher struct {
	events chan Event
	Errors chan error
	done   chan struct{}
	fw     *fsnotify.Watcher
	store  *Store
}

var _ WatcherIface = (*Watcher)(nil)

// NewWatcher creates and starts a file watcher on the store's directory.
func NewWatcher(store *Store) (*Watcher, error) {
	if err := os.MkdirAll(store.Dir(), 0o755); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(store.Dir()); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		events: make(chan Event, 16),
		Errors: make(chan error, 4),
		done:   make(chan struct{}),
		fw:     fw,
		store:  store,
	}
	go w.loop()
	return w, nil
}

// Events returns the channel on which events are delivered. It is closed
// once the watcher stops.
func (w *Watcher) Events() <-chan Event { return w.events }

func (w *Watcher) loop() {
	defer close(w.events)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			// Writes land as a rename of the .tmp file, which shows up as Create.
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			ev, err := readFile(event.Name)
			if err != nil {
				continue
			}
			select {
			case w.events <- ev:
			default:
				// The consumer refreshes on any event, so a dropped one is harmless.
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() {
	close(w.done)
	w.fw.Close()
}
