package session

import (
	"time"

	"github.com/shnupta/sessioner/internal/graveyard"
	"github.com/shnupta/sessioner/internal/tmux"
)

// buildLive assembles live sessions from tmux's session and pane listings.
// Panes whose foreground command is self are treated as plugin panes.
func buildLive(sessions []tmux.Session, panes []tmux.Pane, current, self string) []Live {
	if len(sessions) == 0 {
		return nil
	}

	tabs := make(map[string]map[int][]Pane, len(sessions))
	for _, p := range panes {
		byTab, ok := tabs[p.SessionName]
		if !ok {
			byTab = make(map[int][]Pane)
			tabs[p.SessionName] = byTab
		}
		byTab[p.WindowIndex] = append(byTab[p.WindowIndex], Pane{
			Title:    p.Title,
			IsPlugin: self != "" && p.CurrentCmd == self,
		})
	}

	live := make([]Live, 0, len(sessions))
	for _, s := range sessions {
		live = append(live, Live{
			Name:             s.Name,
			Key:              s.Key(),
			Dir:              s.Path,
			IsCurrent:        s.Name == current,
			ConnectedClients: s.Attached,
			Tabs:             tabs[s.Name],
		})
	}
	return live
}

// buildDead converts exited registry records to dead sessions aged against now.
func buildDead(graves []*graveyard.Grave, now time.Time) []Dead {
	if len(graves) == 0 {
		return nil
	}
	dead := make([]Dead, 0, len(graves))
	for _, g := range graves {
		if g.ExitedAt == nil {
			continue
		}
		age := now.Sub(*g.ExitedAt)
		if age < 0 {
			age = 0
		}
		dead = append(dead, Dead{Name: g.Name, Age: age})
	}
	return dead
}

func sightings(live []Live) []graveyard.Sighting {
	out := make([]graveyard.Sighting, len(live))
	for i, l := range live {
		out[i] = graveyard.Sighting{Name: l.Name, Key: l.Key, Dir: l.Dir}
	}
	return out
}
