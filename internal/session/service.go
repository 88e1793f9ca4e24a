package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shnupta/sessioner/internal/graveyard"
	"github.com/shnupta/sessioner/internal/tmux"
)

// Registry is the subset of the graveyard the service needs.
type Registry interface {
	Record(live []graveyard.Sighting, seenAt time.Time) error
	ListExited() ([]*graveyard.Grave, error)
	Get(name string) (*graveyard.Grave, error)
	Delete(name string) error
	DeleteAllExited() (int, error)
}

var _ Registry = (*graveyard.DB)(nil)

// Service answers session queries and carries out session commands against
// tmux and the exited-session registry.
type Service struct {
	tmux   tmux.ClientIface
	graves Registry
	log    *slog.Logger
	self   string // command name of sessioner's own panes
	now    func() time.Time
}

// NewService wires a Service. self is the foreground command name under which
// sessioner panes appear in tmux; those panes are hidden from pane titles.
func NewService(client tmux.ClientIface, graves Registry, log *slog.Logger, self string) *Service {
	return &Service{
		tmux:   client,
		graves: graves,
		log:    log.With("component", "session"),
		self:   self,
		now:    time.Now,
	}
}

// CheckAccess reports whether sessioner may read and change session state:
// it must run inside a tmux client attached to a reachable server.
func (s *Service) CheckAccess() bool {
	ok := s.tmux.InsideTmux() && s.tmux.ServerRunning()
	s.log.Debug("access_check", slog.Bool("granted", ok))
	return ok
}

// Discover returns the current live and exited sessions. Live sessions are
// recorded in the registry as a side effect, which is how sessions that
// vanish without a hook firing end up resurrectable.
func (s *Service) Discover() (Snapshot, error) {
	now := s.now()

	var live []Live
	if s.tmux.ServerRunning() {
		sessions, err := s.tmux.ListSessions()
		if err != nil {
			return Snapshot{}, err
		}
		panes, err := s.tmux.ListPanes()
		if err != nil {
			return Snapshot{}, err
		}
		current, _ := s.tmux.CurrentSession()
		live = buildLive(sessions, panes, current, s.self)
	}

	if err := s.graves.Record(sightings(live), now); err != nil {
		// Recording is best effort; exited sessions still list below.
		s.log.Warn("record_failed", slog.String("error", err.Error()))
	}

	graves, err := s.graves.ListExited()
	if err != nil {
		return Snapshot{}, fmt.Errorf("list exited sessions: %w", err)
	}

	snap := Snapshot{Live: live, Dead: buildDead(graves, now)}
	current := ""
	if cur, ok := snap.Current(); ok {
		current = cur.Name
	}
	s.log.Debug("discovered",
		slog.Int("live", len(snap.Live)),
		slog.Int("dead", len(snap.Dead)),
		slog.String("current", current))
	return snap, nil
}

// Switch moves the client to the named session, resurrecting it first when
// it only exists in the registry.
func (s *Service) Switch(name string) error {
	if !s.tmux.HasSession(name) {
		dir := ""
		g, err := s.graves.Get(name)
		switch {
		case err == nil:
			dir = g.Dir
		case !errors.Is(err, graveyard.ErrNotFound):
			return err
		}
		if _, err := s.tmux.NewSession(name, dir); err != nil {
			return err
		}
		s.log.Info("resurrected", slog.String("session", name), slog.String("dir", dir))
	}
	if err := s.tmux.SwitchClient(name); err != nil {
		return err
	}
	s.log.Info("switched", slog.String("session", name))
	return nil
}

// Create starts a new session with a tmux-chosen name and switches to it.
func (s *Service) Create() error {
	name, err := s.tmux.NewSession("", "")
	if err != nil {
		return err
	}
	s.log.Info("created", slog.String("session", name))
	return s.tmux.SwitchClient(name)
}

// DeleteDead forgets one exited session. Unknown names are ignored; the
// next snapshot is the source of truth.
func (s *Service) DeleteDead(name string) error {
	err := s.graves.Delete(name)
	if errors.Is(err, graveyard.ErrNotFound) {
		s.log.Debug("delete_stale", slog.String("session", name))
		return nil
	}
	if err != nil {
		return err
	}
	s.log.Info("deleted", slog.String("session", name))
	return nil
}

// DeleteAllDead forgets every exited session.
func (s *Service) DeleteAllDead() error {
	n, err := s.graves.DeleteAllExited()
	if err != nil {
		return err
	}
	s.log.Info("deleted_all", slog.Int("count", n))
	return nil
}
