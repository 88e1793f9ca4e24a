package session

import (
	"sort"
	"time"
)

// Pane is a single pane inside a live session's tab.
type Pane struct {
	Title string
	// IsPlugin marks panes that host sessioner itself; they never show up as
	// pane titles.
	IsPlugin bool
}

// Live represents a running tmux session.
type Live struct {
	// Identity
	Name string
	Key  string // "<server pid>/<session id>", stable across renames

	// Context
	Dir              string
	IsCurrent        bool // the session hosting this UI
	ConnectedClients int

	// Tabs maps tab (window) index to its panes in source order.
	Tabs map[int][]Pane
}

// PaneTitles returns the titles of all non-plugin panes, ordered by tab index
// and then by position within the tab. It is recomputed on every call.
func (s Live) PaneTitles() []string {
	tabs := make([]int, 0, len(s.Tabs))
	for idx := range s.Tabs {
		tabs = append(tabs, idx)
	}
	sort.Ints(tabs)

	var titles []string
	for _, idx := range tabs {
		for _, p := range s.Tabs[idx] {
			if p.IsPlugin {
				continue
			}
			titles = append(titles, p.Title)
		}
	}
	return titles
}

// Dead represents an exited session that can be resurrected.
type Dead struct {
	Name string
	Age  time.Duration // time since exit
}

// Snapshot is the full session list as reported by the host.
// It always replaces the previous snapshot wholesale.
type Snapshot struct {
	Live []Live
	Dead []Dead
}

// Current returns the session hosting the UI, if any.
func (s Snapshot) Current() (Live, bool) {
	for _, l := range s.Live {
		if l.IsCurrent {
			return l, true
		}
	}
	return Live{}, false
}
