package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shnupta/sessioner/internal/config"
	"github.com/shnupta/sessioner/internal/domain"
	"github.com/shnupta/sessioner/internal/logging"
	"github.com/shnupta/sessioner/internal/session"
	"github.com/shnupta/sessioner/internal/state"
)

// Host carries out the session queries and commands the UI issues.
// *session.Service is the production implementation.
type Host interface {
	CheckAccess() bool
	Discover() (session.Snapshot, error)
	Switch(name string) error
	Create() error
	DeleteDead(name string) error
	DeleteAllDead() error
}

var _ Host = (*session.Service)(nil)

// msg types used by the BubbleTea event loop.

type permissionMsg bool

type snapshotMsg session.Snapshot

type stateEventMsg state.Event

type refreshMsg time.Time

type errMsg struct{ err error }

// Options configures a Model.
type Options struct {
	IncludeNewSession bool
	RefreshInterval   time.Duration
	Logger            *slog.Logger
}

// OptionsFrom builds Options from the loaded config.
func OptionsFrom(cfg config.Config, log *slog.Logger) Options {
	return Options{
		IncludeNewSession: cfg.IncludeNewSessionEntry,
		RefreshInterval:   cfg.RefreshInterval,
		Logger:            log,
	}
}

// Model is the root BubbleTea model. It is the single owner of the UI
// state: the latest snapshot, the selection, the scroll offset and the
// permission flag.
type Model struct {
	// Dimensions
	width  int
	height int

	mode Mode

	// Session list
	snap       session.Snapshot
	entries    []domain.Entry
	sel        domain.Selector
	vp         domain.Viewport
	lines      []domain.VisibleLine // visible lines from the last relayout
	includeNew bool

	host     Host
	watcher  state.WatcherIface
	refresh  time.Duration
	log      *slog.Logger
	spinner  spinner.Model
	help     help.Model
	err      error
	quitting bool
}

// New returns an initialised Model waiting for the access check.
func New(host Host, w state.WatcherIface, opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleWaiting

	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = styleHelpKey
	h.Styles.ShortDesc = styleHelpDesc
	h.Styles.ShortSeparator = styleHelpDesc

	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = config.DefaultRefreshInterval
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	m := Model{
		mode:       ModeWaiting,
		includeNew: opts.IncludeNewSession,
		host:       host,
		watcher:    w,
		refresh:    opts.RefreshInterval,
		log:        opts.Logger.With("component", "tui"),
		spinner:    sp,
		help:       h,
	}
	m.relayout()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		checkAccess(m.host),
		tickRefresh(m.refresh),
		waitForStateEvent(m.watcher),
		m.spinner.Tick,
	)
}

// checkAccess asks the host whether sessioner may read and change sessions.
func checkAccess(h Host) tea.Cmd {
	return func() tea.Msg {
		return permissionMsg(h.CheckAccess())
	}
}

// discoverSessions triggers async session discovery.
func discoverSessions(h Host) tea.Cmd {
	return func() tea.Msg {
		snap, err := h.Discover()
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg(snap)
	}
}

// tickRefresh returns a command that fires after d.
func tickRefresh(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// waitForStateEvent waits for the next hook event from fsnotify.
func waitForStateEvent(w state.WatcherIface) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-w.Events()
		if !ok {
			return nil
		}
		return stateEventMsg(ev)
	}
}

// bodyRows is the height available to the session list: everything but
// the header and footer lines.
func (m Model) bodyRows() int {
	if m.height <= 2 {
		return 0
	}
	return m.height - 2
}

// relayout rederives entries from the snapshot, clamps the selection and
// recomputes the scroll offset and visible lines. It runs after every
// state change so View stays a pure read.
func (m *Model) relayout() {
	m.entries = domain.DeriveEntries(m.snap.Live, m.snap.Dead, m.includeNew)
	m.sel.Clamp(len(m.entries))
	m.lines = m.vp.Compute(m.entries, m.sel.Index, m.bodyRows())
}
