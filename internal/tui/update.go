package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shnupta/sessioner/internal/domain"
	"github.com/shnupta/sessioner/internal/session"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case permissionMsg:
		return m.updatePermission(bool(msg))

	case snapshotMsg:
		// Accepted in every mode so the list is current the moment access
		// is granted.
		m.snap = session.Snapshot(msg)
		m.err = nil
		m.relayout()
		return m, nil

	case stateEventMsg:
		m.log.Debug("hook_event", slog.String("kind", msg.Kind), slog.String("session", msg.Session))
		if m.mode != ModeBrowse {
			return m, waitForStateEvent(m.watcher)
		}
		return m, tea.Batch(discoverSessions(m.host), waitForStateEvent(m.watcher))

	case refreshMsg:
		if m.mode != ModeBrowse {
			return m, tea.Batch(checkAccess(m.host), tickRefresh(m.refresh))
		}
		return m, tea.Batch(discoverSessions(m.host), tickRefresh(m.refresh))

	case errMsg:
		m.err = msg.err
		m.log.Warn("host_call_failed", slog.String("error", msg.err.Error()))
		return m, nil

	case spinner.TickMsg:
		if m.mode != ModeWaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updatePermission(granted bool) (tea.Model, tea.Cmd) {
	m.log.Info("permission", slog.Bool("granted", granted))
	if !granted {
		if m.mode == ModeWaiting {
			return m, nil
		}
		// The tick chain stopped when browsing began.
		m.mode = ModeWaiting
		return m, m.spinner.Tick
	}
	wasWaiting := m.mode == ModeWaiting
	m.mode = ModeBrowse
	m.relayout()
	if wasWaiting {
		return m, discoverSessions(m.host)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeBrowse {
		if key.Matches(msg, keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	a, ok := keys.actionFor(msg)
	if !ok {
		return m, nil
	}
	effects := m.sel.Apply(a, m.entries, m.snap)
	m.relayout()
	m.log.Debug("action", slog.String("action", a.String()), slog.Int("index", m.sel.Index), slog.Int("effects", len(effects)))
	return m.runEffects(effects)
}

// runEffects turns selector effects into commands against the host. Host
// calls are fire-and-forget: their outcome only shows up through the next
// snapshot. When the UI closes, pending calls run before the quit.
func (m Model) runEffects(effects []domain.Effect) (tea.Model, tea.Cmd) {
	var (
		cmds    []tea.Cmd
		closeUI bool
	)
	for _, e := range effects {
		switch e.Kind {
		case domain.EffectSwitch:
			cmds = append(cmds, switchSession(m.host, e))
		case domain.EffectDeleteDead:
			cmds = append(cmds, deleteDead(m.host, e.Name))
		case domain.EffectDeleteAllDead:
			cmds = append(cmds, deleteAllDead(m.host))
		case domain.EffectClose:
			closeUI = true
		}
	}

	if closeUI {
		m.quitting = true
		return m, tea.Sequence(append(cmds, tea.Quit)...)
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func switchSession(h Host, e domain.Effect) tea.Cmd {
	return func() tea.Msg {
		var err error
		if e.Create {
			err = h.Create()
		} else {
			err = h.Switch(e.Name)
		}
		if err != nil {
			return errMsg{err}
		}
		return nil
	}
}

// deleteDead removes one exited session and rediscovers, since the host
// is the only source of truth for the list.
func deleteDead(h Host, name string) tea.Cmd {
	return func() tea.Msg {
		if err := h.DeleteDead(name); err != nil {
			return errMsg{err}
		}
		return discoverSessions(h)()
	}
}

func deleteAllDead(h Host) tea.Cmd {
	return func() tea.Msg {
		if err := h.DeleteAllDead(); err != nil {
			return errMsg{err}
		}
		return discoverSessions(h)()
	}
}
