package tui

import (
	"sync"

	"github.com/shnupta/sessioner/internal/session"
)

// fakeHost is a test double for Host. Calls may arrive from command
// goroutines, so everything is guarded.
type fakeHost struct {
	mu sync.Mutex

	granted     bool
	snap        session.Snapshot
	discoverErr error
	switchErr   error

	discovers  int
	switched   []string
	created    int
	deleted    []string
	deletedAll int
}

var _ Host = (*fakeHost)(nil)

func (f *fakeHost) CheckAccess() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.granted
}

func (f *fakeHost) Discover() (session.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discovers++
	return f.snap, f.discoverErr
}

func (f *fakeHost) Switch(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.switched = append(f.switched, name)
	return f.switchErr
}

func (f *fakeHost) Create() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	return nil
}

func (f *fakeHost) DeleteDead(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, name)
	dead := f.snap.Dead[:0:0]
	for _, d := range f.snap.Dead {
		if d.Name != name {
			dead = append(dead, d)
		}
	}
	f.snap.Dead = dead
	return nil
}

func (f *fakeHost) DeleteAllDead() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedAll++
	f.snap.Dead = nil
	return nil
}

func (f *fakeHost) setSnapshot(s session.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = s
}

func (f *fakeHost) calls() (switched, deleted []string, created, deletedAll int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.switched...), append([]string(nil), f.deleted...), f.created, f.deletedAll
}
