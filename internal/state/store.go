package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Event is written by the hook subcommand whenever tmux reports a session
// lifecycle change, and read by the TUI to trigger a refresh.
type Event struct {
	Kind    string    `json:"kind"` // tmux hook name, e.g. "session-closed"
	Session string    `json:"session,omitempty"`
	At      time.Time `json:"at"`
}

// serverFile holds events that carry no session name.
const serverFile = "_server"

// Store manages event files in a directory, one file per session holding
// the most recent event for it.
type Store struct {
	dir string
}

// NewStore creates a new Store for the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory where event files are stored.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the event file path for a given session name.
func (s *Store) Path(session string) string {
	return filepath.Join(s.dir, fileName(session)+".json")
}

// fileName maps a session name onto a safe file name. tmux allows almost
// any character in a session name, including path separators.
func fileName(session string) string {
	if session == "" {
		return serverFile
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, session)
}

// Write atomically writes ev as the latest event for its session.
func (s *Store) Write(ev Event) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	// Write to temp file then rename for atomicity.
	tmp := s.Path(ev.Session) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, s.Path(ev.Session)); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func readFile(path string) (Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Event{}, err
	}
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return ev, nil
}

// ReadAll loads every event file, oldest first. Unreadable files are skipped.
func (s *Store) ReadAll() ([]Event, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		ev, err := readFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		events = append(events, ev)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].At.Before(events[j].At) })
	return events, nil
}

// Prune removes event files last written before cutoff and returns how many
// were removed.
func (s *Store) Prune(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !os.IsNotExist(err) {
			return n, fmt.Errorf("remove %s: %w", e.Name(), err)
		}
		n++
	}
	return n, nil
}
