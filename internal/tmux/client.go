package tmux

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Session represents a tmux session as reported by list-sessions.
type Session struct {
	Name      string // e.g. "work"
	ID        string // e.g. "$2"
	ServerPID int
	Attached  int // number of attached clients
	Path      string
}

// Key returns an identifier that survives renames but not server restarts.
func (s Session) Key() string {
	return strconv.Itoa(s.ServerPID) + "/" + s.ID
}

// Pane represents a tmux pane with the metadata sessioner cares about.
type Pane struct {
	ID          string // e.g. "%12"
	SessionName string
	WindowIndex int
	PaneIndex   int
	Title       string
	CurrentCmd  string
	CurrentPath string
}

const (
	sessionFormat = "#{session_name}\t#{session_id}\t#{pid}\t#{session_attached}\t#{session_path}"
	paneFormat    = "#{pane_id}\t#{session_name}\t#{window_index}\t#{pane_index}\t#{pane_title}\t#{pane_current_command}\t#{pane_current_path}"
)

// ListSessions returns all sessions on the current tmux server.
func ListSessions() ([]Session, error) {
	out, err := exec.Command("tmux", "list-sessions", "-F", sessionFormat).Output()
	if err != nil {
		return nil, fmt.Errorf("tmux list-sessions: %w", err)
	}
	return parseLines(string(out), parseSessionLine), nil
}

// ListPanes returns all panes across all tmux sessions.
func ListPanes() ([]Pane, error) {
	out, err := exec.Command("tmux", "list-panes", "-a", "-F", paneFormat).Output()
	if err != nil {
		return nil, fmt.Errorf("tmux list-panes: %w", err)
	}
	return parseLines(string(out), parsePaneLine), nil
}

func parseLines[T any](out string, parse func(string) (T, bool)) []T {
	var items []T
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		if item, ok := parse(line); ok {
			items = append(items, item)
		}
	}
	return items
}

func parseSessionLine(line string) (Session, bool) {
	f := strings.Split(line, "\t")
	if len(f) < 5 {
		return Session{}, false
	}
	pid, _ := strconv.Atoi(f[2])
	attached, _ := strconv.Atoi(f[3])
	return Session{
		Name:      f[0],
		ID:        f[1],
		ServerPID: pid,
		Attached:  attached,
		Path:      f[4],
	}, true
}

func parsePaneLine(line string) (Pane, bool) {
	f := strings.Split(line, "\t")
	if len(f) < 7 {
		return Pane{}, false
	}
	wIdx, _ := strconv.Atoi(f[2])
	pIdx, _ := strconv.Atoi(f[3])
	return Pane{
		ID:          f[0],
		SessionName: f[1],
		WindowIndex: wIdx,
		PaneIndex:   pIdx,
		Title:       f[4],
		CurrentCmd:  f[5],
		CurrentPath: f[6],
	}, true
}

// CurrentSession returns the name of the session the calling client is attached to.
func CurrentSession() (string, error) {
	out, err := exec.Command("tmux", "display-message", "-p", "#{session_name}").Output()
	if err != nil {
		return "", fmt.Errorf("not inside tmux: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// InsideTmux reports whether the process runs inside a tmux client.
func InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// ServerRunning reports whether a tmux server answers on the default socket.
func ServerRunning() bool {
	return exec.Command("tmux", "has-session").Run() == nil
}

// HasSession reports whether a session with exactly this name exists.
func HasSession(name string) bool {
	return exec.Command("tmux", "has-session", "-t", "="+name).Run() == nil
}

// SwitchClient moves the current client to the named session.
func SwitchClient(name string) error {
	if err := exec.Command("tmux", "switch-client", "-t", "="+name).Run(); err != nil {
		return fmt.Errorf("tmux switch-client: %w", err)
	}
	return nil
}

// NewSession creates a detached session in dir and returns its name.
// An empty name lets tmux pick one.
func NewSession(name, dir string) (string, error) {
	args := []string{"new-session", "-d", "-P", "-F", "#{session_name}"}
	if name != "" {
		args = append(args, "-s", name)
	}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	out, err := exec.Command("tmux", args...).Output()
	if err != nil {
		return "", fmt.Errorf("tmux new-session: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Quote single-quotes s so it survives both sh and tmux's command parser.
// Strings made only of safe characters are returned unchanged.
func Quote(s string) string {
	if s != "" && strings.Trim(s, safeChars) == "" {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

const safeChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@%+=:,./-_"

// RunShell returns the tmux command that runs cmd in the background.
func RunShell(cmd string) string {
	return "run-shell -b " + Quote(cmd)
}

// SetHook registers a global hook that runs cmd in the background.
func SetHook(event, cmd string) error {
	if err := exec.Command("tmux", "set-hook", "-g", event, RunShell(cmd)).Run(); err != nil {
		return fmt.Errorf("tmux set-hook %s: %w", event, err)
	}
	return nil
}
