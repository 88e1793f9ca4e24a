package session

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shnupta/sessioner/internal/graveyard"
	"github.com/shnupta/sessioner/internal/tmux"
	"github.com/shnupta/sessioner/internal/tmux/tmuxtest"
)

func newTestService(t *testing.T, mock *tmuxtest.MockClient) (*Service, *graveyard.DB) {
	t.Helper()
	db, err := graveyard.Open(filepath.Join(t.TempDir(), "graves.db"))
	if err != nil {
		t.Fatalf("graveyard.Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(mock, db, log, "sessioner"), db
}

func TestDiscoverLiveAndDead(t *testing.T) {
	mock := &tmuxtest.MockClient{
		Running: true,
		Sessions: []tmux.Session{
			{Name: "work", ID: "$0", ServerPID: 1, Attached: 1, Path: "/w"},
			{Name: "gone", ID: "$1", ServerPID: 1, Path: "/g"},
		},
		Panes: []tmux.Pane{
			{SessionName: "work", Title: "vim"},
			{SessionName: "gone", Title: "bash"},
		},
		CurrentSessionVal: "work",
	}
	svc, _ := newTestService(t, mock)
	t0 := time.Now()
	svc.now = func() time.Time { return t0 }

	snap, err := svc.Discover()
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(snap.Live) != 2 || len(snap.Dead) != 0 {
		t.Fatalf("first Discover() = %d live, %d dead; want 2, 0", len(snap.Live), len(snap.Dead))
	}
	if !snap.Live[0].IsCurrent {
		t.Error("work should be the current session")
	}

	// "gone" exits without a hook firing.
	mock.Sessions = mock.Sessions[:1]
	svc.now = func() time.Time { return t0.Add(2 * time.Minute) }

	snap, err = svc.Discover()
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(snap.Dead) != 1 || snap.Dead[0].Name != "gone" {
		t.Fatalf("Dead = %+v, want [gone]", snap.Dead)
	}
	if snap.Dead[0].Age != 2*time.Minute {
		t.Errorf("Age = %v, want 2m (since last sighting)", snap.Dead[0].Age)
	}
}

func TestDiscoverNoServer(t *testing.T) {
	svc, _ := newTestService(t, &tmuxtest.MockClient{Running: false})
	snap, err := svc.Discover()
	if err != nil {
		t.Fatalf("Discover() without server error: %v", err)
	}
	if len(snap.Live) != 0 {
		t.Errorf("Live = %v, want empty", snap.Live)
	}
}

func TestDiscoverListError(t *testing.T) {
	svc, _ := newTestService(t, &tmuxtest.MockClient{Running: true, ListSessionsErr: errors.New("boom")})
	if _, err := svc.Discover(); err == nil {
		t.Error("Discover() should surface list-sessions errors")
	}
}

func TestSwitchLive(t *testing.T) {
	mock := &tmuxtest.MockClient{Sessions: []tmux.Session{{Name: "work"}}}
	svc, _ := newTestService(t, mock)

	if err := svc.Switch("work"); err != nil {
		t.Fatalf("Switch() error: %v", err)
	}
	if len(mock.NewSessions) != 0 {
		t.Errorf("live switch should not create sessions, got %v", mock.NewSessions)
	}
	if len(mock.SwitchedTo) != 1 || mock.SwitchedTo[0] != "work" {
		t.Errorf("SwitchedTo = %v, want [work]", mock.SwitchedTo)
	}
}

func TestSwitchResurrectsInRecordedDir(t *testing.T) {
	mock := &tmuxtest.MockClient{}
	svc, db := newTestService(t, mock)
	now := time.Now()
	_ = db.Record([]graveyard.Sighting{{Name: "old-proj", Key: "1/$4", Dir: "/src/old"}}, now)
	_ = db.MarkExited("old-proj", now)

	if err := svc.Switch("old-proj"); err != nil {
		t.Fatalf("Switch() error: %v", err)
	}
	if len(mock.NewSessions) != 1 || mock.NewSessions[0] != "old-proj@/src/old" {
		t.Errorf("NewSessions = %v, want [old-proj@/src/old]", mock.NewSessions)
	}
	if len(mock.SwitchedTo) != 1 || mock.SwitchedTo[0] != "old-proj" {
		t.Errorf("SwitchedTo = %v, want [old-proj]", mock.SwitchedTo)
	}
}

func TestSwitchCreateFailure(t *testing.T) {
	mock := &tmuxtest.MockClient{NewSessionErr: errors.New("duplicate")}
	svc, _ := newTestService(t, mock)
	if err := svc.Switch("x"); err == nil {
		t.Error("Switch() should fail when the session cannot be recreated")
	}
	if len(mock.SwitchedTo) != 0 {
		t.Errorf("no switch expected after failed creation, got %v", mock.SwitchedTo)
	}
}

func TestCreate(t *testing.T) {
	mock := &tmuxtest.MockClient{NewSessionName: "3"}
	svc, _ := newTestService(t, mock)
	if err := svc.Create(); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if len(mock.SwitchedTo) != 1 || mock.SwitchedTo[0] != "3" {
		t.Errorf("SwitchedTo = %v, want [3]", mock.SwitchedTo)
	}
}

func TestDeleteDeadStaleIsNoop(t *testing.T) {
	svc, _ := newTestService(t, &tmuxtest.MockClient{})
	if err := svc.DeleteDead("never-existed"); err != nil {
		t.Errorf("DeleteDead(stale) error: %v, want nil", err)
	}
}

func TestDeleteDeadAndAll(t *testing.T) {
	svc, db := newTestService(t, &tmuxtest.MockClient{})
	now := time.Now()
	_ = db.Record([]graveyard.Sighting{{Name: "a", Key: "1/$0"}, {Name: "b", Key: "1/$1"}, {Name: "c", Key: "1/$2"}}, now)
	_ = db.Record(nil, now)

	if err := svc.DeleteDead("a"); err != nil {
		t.Fatalf("DeleteDead() error: %v", err)
	}
	exited, _ := db.ListExited()
	if len(exited) != 2 {
		t.Fatalf("after DeleteDead, %d exited left, want 2", len(exited))
	}
	if err := svc.DeleteAllDead(); err != nil {
		t.Fatalf("DeleteAllDead() error: %v", err)
	}
	exited, _ = db.ListExited()
	if len(exited) != 0 {
		t.Errorf("after DeleteAllDead, %d exited left, want 0", len(exited))
	}
}

func TestCheckAccess(t *testing.T) {
	tests := []struct {
		name    string
		inside  bool
		running bool
		want    bool
	}{
		{"inside and running", true, true, true},
		{"outside tmux", false, true, false},
		{"no server", true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t, &tmuxtest.MockClient{Inside: tt.inside, Running: tt.running})
			if got := svc.CheckAccess(); got != tt.want {
				t.Errorf("CheckAccess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscoverLogsCurrentSession(t *testing.T) {
	mock := &tmuxtest.MockClient{
		Running:           true,
		Sessions:          []tmux.Session{{Name: "work", ID: "$0", ServerPID: 1}},
		CurrentSessionVal: "work",
	}
	db, err := graveyard.Open(filepath.Join(t.TempDir(), "graves.db"))
	if err != nil {
		t.Fatalf("graveyard.Open() error: %v", err)
	}
	defer db.Close()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewService(mock, db, log, "sessioner")

	if _, err := svc.Discover(); err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"current":"work"`) {
		t.Errorf("discovery log should name the current session:\n%s", buf.String())
	}
}
