package session

import (
	"reflect"
	"testing"
)

func TestPaneTitlesSortsTabsAndSkipsPlugins(t *testing.T) {
	s := Live{
		Name: "work",
		Tabs: map[int][]Pane{
			3: {{Title: "logs"}},
			0: {{Title: "editor"}, {Title: "sessioner", IsPlugin: true}, {Title: "shell"}},
			1: {{Title: "server"}},
		},
	}
	got := s.PaneTitles()
	want := []string{"editor", "shell", "server", "logs"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PaneTitles() = %v, want %v", got, want)
	}
}

func TestPaneTitlesEmpty(t *testing.T) {
	if got := (Live{}).PaneTitles(); len(got) != 0 {
		t.Errorf("PaneTitles() on session without tabs = %v, want empty", got)
	}
	onlyPlugins := Live{Tabs: map[int][]Pane{0: {{Title: "p", IsPlugin: true}}}}
	if got := onlyPlugins.PaneTitles(); len(got) != 0 {
		t.Errorf("PaneTitles() with only plugin panes = %v, want empty", got)
	}
}

func TestPaneTitlesNotCached(t *testing.T) {
	s := Live{Tabs: map[int][]Pane{0: {{Title: "a"}}}}
	_ = s.PaneTitles()
	s.Tabs[0] = append(s.Tabs[0], Pane{Title: "b"})
	if got := s.PaneTitles(); len(got) != 2 {
		t.Errorf("PaneTitles() = %v, want both panes after tab change", got)
	}
}

func TestSnapshotCurrent(t *testing.T) {
	snap := Snapshot{Live: []Live{{Name: "a"}, {Name: "b", IsCurrent: true}}}
	cur, ok := snap.Current()
	if !ok || cur.Name != "b" {
		t.Errorf("Current() = %q, %v; want b, true", cur.Name, ok)
	}
	if _, ok := (Snapshot{}).Current(); ok {
		t.Error("Current() on empty snapshot should report false")
	}
}
