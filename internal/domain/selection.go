package domain

import (
	"github.com/shnupta/sessioner/internal/session"
)

// Action is a navigation or activation command from the user.
type Action int

const (
	ActionMoveUp Action = iota
	ActionMoveDown
	ActionActivate
	ActionDeleteOne
	ActionDeleteAll
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionMoveUp:
		return "move_up"
	case ActionMoveDown:
		return "move_down"
	case ActionActivate:
		return "activate"
	case ActionDeleteOne:
		return "delete_one"
	case ActionDeleteAll:
		return "delete_all"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// EffectKind names a side effect for the host to carry out.
type EffectKind int

const (
	EffectSwitch EffectKind = iota
	EffectDeleteDead
	EffectDeleteAllDead
	EffectClose
)

// Effect is a fire-and-forget request to the host.
// An EffectSwitch with Create set asks for a brand new session; Name is
// empty in that case.
type Effect struct {
	Kind   EffectKind
	Name   string
	Create bool
}

// Selector holds the selected entry index.
type Selector struct {
	Index int
}

// Clamp pulls the index back into [0, count). With no entries it pins to 0.
func (s *Selector) Clamp(count int) {
	if count <= 0 {
		s.Index = 0
		return
	}
	if s.Index >= count {
		s.Index = count - 1
	}
	if s.Index < 0 {
		s.Index = 0
	}
}

// Apply runs one action against the current entries and returns the effects
// it produces. Navigation never produces effects. With no entries only
// ActionQuit does anything. An index that no longer resolves to a session
// produces no effect.
func (s *Selector) Apply(a Action, entries []Entry, snap session.Snapshot) []Effect {
	count := len(entries)
	if count == 0 {
		s.Index = 0
		if a == ActionQuit {
			return []Effect{{Kind: EffectClose}}
		}
		return nil
	}

	switch a {
	case ActionMoveUp:
		if s.Index > 0 {
			s.Index--
		}
		return nil

	case ActionMoveDown:
		if s.Index < count-1 {
			s.Index++
		}
		return nil

	case ActionActivate:
		return s.activate(entries, snap)

	case ActionDeleteOne:
		if name, ok := s.deadName(entries, snap); ok {
			return []Effect{{Kind: EffectDeleteDead, Name: name}}
		}
		return nil

	case ActionDeleteAll:
		return []Effect{{Kind: EffectDeleteAllDead}}

	case ActionQuit:
		return []Effect{{Kind: EffectClose}}
	}
	return nil
}

func (s *Selector) activate(entries []Entry, snap session.Snapshot) []Effect {
	e, ok := s.selected(entries)
	if !ok {
		return nil
	}
	closeUI := Effect{Kind: EffectClose}

	switch e.Kind {
	case KindNewSession:
		return []Effect{{Kind: EffectSwitch, Create: true}, closeUI}
	case KindLive:
		if e.Index >= len(snap.Live) {
			return nil
		}
		l := snap.Live[e.Index]
		if l.IsCurrent {
			return []Effect{closeUI}
		}
		return []Effect{{Kind: EffectSwitch, Name: l.Name}, closeUI}
	case KindDead:
		if e.Index >= len(snap.Dead) {
			return nil
		}
		return []Effect{{Kind: EffectSwitch, Name: snap.Dead[e.Index].Name}, closeUI}
	}
	return nil
}

func (s *Selector) deadName(entries []Entry, snap session.Snapshot) (string, bool) {
	e, ok := s.selected(entries)
	if !ok || e.Kind != KindDead || e.Index >= len(snap.Dead) {
		return "", false
	}
	return snap.Dead[e.Index].Name, true
}

func (s *Selector) selected(entries []Entry) (Entry, bool) {
	if s.Index < 0 || s.Index >= len(entries) {
		return Entry{}, false
	}
	return entries[s.Index], true
}
