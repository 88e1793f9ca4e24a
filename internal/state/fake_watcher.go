package state

// FakeWatcher is a WatcherIface implementation for tests.
// Push events via Send() to simulate file system events.
type FakeWatcher struct {
	ch chan Event
}

// compile-time check
var _ WatcherIface = (*FakeWatcher)(nil)

// NewFakeWatcher creates a FakeWatcher with a buffered channel.
func NewFakeWatcher() *FakeWatcher {
	return &FakeWatcher{ch: make(chan Event, 16)}
}

// Events returns the channel on which events are delivered.
func (f *FakeWatcher) Events() <-chan Event { return f.ch }

// Close closes the events channel.
func (f *FakeWatcher) Close() { close(f.ch) }

// Send pushes an event into the events channel.
func (f *FakeWatcher) Send(ev Event) { f.ch <- ev }
