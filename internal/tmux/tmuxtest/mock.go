// Package tmuxtest provides test doubles for the tmux package.
// Import this package only from _test.go files.
package tmuxtest

import "github.com/shnupta/sessioner/internal/tmux"

// MockClient is a test double for tmux.ClientIface.
// Set fields before calling methods to control return values.
type MockClient struct {
	Sessions        []tmux.Session
	ListSessionsErr error

	Panes        []tmux.Pane
	ListPanesErr error

	CurrentSessionVal string
	CurrentSessionErr error

	Inside  bool
	Running bool

	NewSessionName string
	NewSessionErr  error

	SwitchClientErr error
	SetHookErr      error

	// Track calls for assertions.
	SwitchedTo  []string
	NewSessions []string // "name@dir"
	Hooks       map[string]string
}

// Compile-time check that MockClient satisfies tmux.ClientIface.
var _ tmux.ClientIface = (*MockClient)(nil)

func (m *MockClient) ListSessions() ([]tmux.Session, error) {
	return m.Sessions, m.ListSessionsErr
}

func (m *MockClient) ListPanes() ([]tmux.Pane, error) {
	return m.Panes, m.ListPanesErr
}

func (m *MockClient) CurrentSession() (string, error) {
	return m.CurrentSessionVal, m.CurrentSessionErr
}

func (m *MockClient) InsideTmux() bool { return m.Inside }

func (m *MockClient) ServerRunning() bool { return m.Running }

func (m *MockClient) HasSession(name string) bool {
	for _, s := range m.Sessions {
		if s.Name == name {
			return true
		}
	}
	return false
}

func (m *MockClient) SwitchClient(name string) error {
	m.SwitchedTo = append(m.SwitchedTo, name)
	return m.SwitchClientErr
}

func (m *MockClient) NewSession(name, dir string) (string, error) {
	m.NewSessions = append(m.NewSessions, name+"@"+dir)
	if m.NewSessionErr != nil {
		return "", m.NewSessionErr
	}
	if name != "" {
		return name, nil
	}
	return m.NewSessionName, nil
}

func (m *MockClient) SetHook(event, cmd string) error {
	if m.Hooks == nil {
		m.Hooks = make(map[string]string)
	}
	m.Hooks[event] = cmd
	return m.SetHookErr
}
