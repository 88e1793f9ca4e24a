package hook

import (
	"fmt"
	"time"

	"github.com/shnupta/sessioner/internal/state"
)

// Hook names sessioner registers with tmux.
const (
	SessionCreated = "session-created"
	SessionClosed  = "session-closed"
	SessionRenamed = "session-renamed"
	ClientAttached = "client-attached"
	ClientDetached = "client-detached"
)

// Events lists every hook Install registers, in registration order.
var Events = []string{SessionCreated, SessionClosed, SessionRenamed, ClientAttached, ClientDetached}

// Exiter records that a session has gone away.
type Exiter interface {
	MarkExited(name string, at time.Time) error
}

// Run processes a tmux hook invocation: it records the event for any
// running UI to pick up and, when a session closed, marks it exited so it
// stays resurrectable.
func Run(kind, session string, store *state.Store, graves Exiter) error {
	return process(kind, session, time.Now(), store.Write, graves.MarkExited)
}

func process(kind, session string, at time.Time, write func(state.Event) error, markExited func(string, time.Time) error) error {
	if kind == "" {
		return fmt.Errorf("missing hook name")
	}

	if kind == SessionClosed && session != "" {
		if err := markExited(session, at); err != nil {
			return err
		}
	}

	return write(state.Event{Kind: kind, Session: session, At: at})
}
