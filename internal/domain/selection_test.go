package domain

import (
	"reflect"
	"testing"
	"time"

	"github.com/shnupta/sessioner/internal/session"
)

func TestApply_DeleteOneDead(t *testing.T) {
	snap := session.Snapshot{Dead: []session.Dead{{Name: "old-proj", Age: 130 * time.Second}}}
	entries := DeriveEntries(snap.Live, snap.Dead, false)

	var sel Selector
	got := sel.Apply(ActionDeleteOne, entries, snap)

	want := []Effect{{Kind: EffectDeleteDead, Name: "old-proj"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("effects = %+v, want %+v", got, want)
	}
}

func TestApply_DeleteAllIgnoresSelection(t *testing.T) {
	snap := session.Snapshot{
		Live: []session.Live{{Name: "work"}},
		Dead: []session.Dead{{Name: "a"}, {Name: "b"}},
	}
	entries := DeriveEntries(snap.Live, snap.Dead, true)
	want := []Effect{{Kind: EffectDeleteAllDead}}

	for i := range entries {
		sel := Selector{Index: i}
		if got := sel.Apply(ActionDeleteAll, entries, snap); !reflect.DeepEqual(got, want) {
			t.Errorf("index %d: effects = %+v, want %+v", i, got, want)
		}
		if sel.Index != i {
			t.Errorf("index moved to %d", sel.Index)
		}
	}
}

func TestApply_DeleteOneIgnoredOnNonDead(t *testing.T) {
	snap := session.Snapshot{Live: []session.Live{{Name: "work"}}}
	entries := DeriveEntries(snap.Live, snap.Dead, true)

	for i := range entries {
		sel := Selector{Index: i}
		if got := sel.Apply(ActionDeleteOne, entries, snap); got != nil {
			t.Errorf("index %d: expected no effects, got %+v", i, got)
		}
	}
}

func TestApply_Activate(t *testing.T) {
	snap := session.Snapshot{
		Live: []session.Live{
			{Name: "here", IsCurrent: true},
			{Name: "there"},
		},
		Dead: []session.Dead{{Name: "gone"}},
	}
	entries := DeriveEntries(snap.Live, snap.Dead, true)
	closeUI := Effect{Kind: EffectClose}

	tests := []struct {
		name  string
		index int
		want  []Effect
	}{
		{"new session", 0, []Effect{{Kind: EffectSwitch, Create: true}, closeUI}},
		{"current session", 1, []Effect{closeUI}},
		{"other live session", 2, []Effect{{Kind: EffectSwitch, Name: "there"}, closeUI}},
		{"dead session", 3, []Effect{{Kind: EffectSwitch, Name: "gone"}, closeUI}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Selector{Index: tt.index}
			got := sel.Apply(ActionActivate, entries, snap)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("effects = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestApply_StaleIndexIsNoop(t *testing.T) {
	snap := session.Snapshot{Dead: []session.Dead{{Name: "a"}, {Name: "b"}}}
	entries := DeriveEntries(snap.Live, snap.Dead, false)

	// The host removed "b" but no new entries were derived yet.
	shrunk := session.Snapshot{Dead: snap.Dead[:1]}
	sel := Selector{Index: 1}

	if got := sel.Apply(ActionDeleteOne, entries, shrunk); got != nil {
		t.Errorf("delete: expected no effects, got %+v", got)
	}
	if got := sel.Apply(ActionActivate, entries, shrunk); got != nil {
		t.Errorf("activate: expected no effects, got %+v", got)
	}

	sel.Index = 5
	if got := sel.Apply(ActionActivate, entries, snap); got != nil {
		t.Errorf("out of range activate: expected no effects, got %+v", got)
	}
}

func TestApply_NavigationBounds(t *testing.T) {
	entries := blocks(1, 1, 1)
	var sel Selector

	actions := []Action{
		ActionMoveUp, ActionMoveDown, ActionMoveDown, ActionMoveDown,
		ActionMoveDown, ActionMoveUp, ActionMoveUp, ActionMoveUp, ActionMoveDown,
	}
	wantIdx := []int{0, 1, 2, 2, 2, 1, 0, 0, 1}

	for i, a := range actions {
		if got := sel.Apply(a, entries, session.Snapshot{}); got != nil {
			t.Errorf("step %d: navigation produced effects %+v", i, got)
		}
		if sel.Index != wantIdx[i] {
			t.Errorf("step %d (%s): index = %d, want %d", i, a, sel.Index, wantIdx[i])
		}
		if sel.Index < 0 || sel.Index >= len(entries) {
			t.Fatalf("step %d: index %d out of range", i, sel.Index)
		}
	}
}

func TestApply_NoEntries(t *testing.T) {
	for _, a := range []Action{ActionMoveUp, ActionMoveDown, ActionActivate, ActionDeleteOne, ActionDeleteAll} {
		sel := Selector{Index: 3}
		if got := sel.Apply(a, nil, session.Snapshot{}); got != nil {
			t.Errorf("%s: expected no effects, got %+v", a, got)
		}
		if sel.Index != 0 {
			t.Errorf("%s: index = %d, want 0", a, sel.Index)
		}
	}

	var sel Selector
	got := sel.Apply(ActionQuit, nil, session.Snapshot{})
	if !reflect.DeepEqual(got, []Effect{{Kind: EffectClose}}) {
		t.Errorf("quit effects = %+v", got)
	}
}

func TestApply_Quit(t *testing.T) {
	sel := Selector{Index: 1}
	got := sel.Apply(ActionQuit, blocks(1, 1), session.Snapshot{})
	if !reflect.DeepEqual(got, []Effect{{Kind: EffectClose}}) {
		t.Errorf("effects = %+v", got)
	}
}

func TestSelectorClamp(t *testing.T) {
	tests := []struct {
		name  string
		index int
		count int
		want  int
	}{
		{"in range", 2, 5, 2},
		{"past end", 7, 5, 4},
		{"at end", 5, 5, 4},
		{"negative", -1, 5, 0},
		{"empty", 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Selector{Index: tt.index}
			sel.Clamp(tt.count)
			if sel.Index != tt.want {
				t.Errorf("Clamp(%d) from %d = %d, want %d", tt.count, tt.index, sel.Index, tt.want)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	if ActionDeleteAll.String() != "delete_all" {
		t.Errorf("got %q", ActionDeleteAll.String())
	}
	if Action(99).String() != "unknown" {
		t.Errorf("got %q", Action(99).String())
	}
}
