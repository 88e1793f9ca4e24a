package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shnupta/sessioner/internal/state"
	"github.com/shnupta/sessioner/internal/tui"
)

var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetVersionInfo sets build metadata from ldflags.
func SetVersionInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

const long = `sessioner lists running and exited tmux sessions and switches between them.

Run it inside tmux, typically from a popup:
  bind s display-popup -E sessioner

Exited sessions are remembered so they can be resurrected in their old
working directory. Run 'sessioner install' once so tmux reports session
changes as they happen.

Key bindings:
  ↑/k  ↓/j     Navigate
  enter        Attach (resurrects exited sessions)
  d            Forget the selected exited session
  D            Forget all exited sessions
  q/esc        Quit`

// NewRootCmd builds the sessioner command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sessioner",
		Short:         "Browse, switch to and resurrect tmux sessions",
		Long:          long,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}
	root.PersistentFlags().String("config", "", "Path to config file (default: ~/.sessioner/config.yaml)")

	root.AddCommand(
		versionCmd(),
		hookCmd(),
		installCmd(),
		listCmd(),
		pruneCmd(),
		configCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func runTUI(cmd *cobra.Command, args []string) error {
	if os.Getenv("TMUX") == "" {
		return fmt.Errorf("sessioner must be run inside a tmux session")
	}

	c, err := loadComponents(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	// Start the event watcher (best-effort; the refresh tick still works
	// without hooks).
	var watcher state.WatcherIface
	if w, err := state.NewWatcher(c.events); err != nil {
		c.log.Warn("watcher_unavailable", slog.String("error", err.Error()))
	} else {
		watcher = w
		defer w.Close()
	}

	model := tui.New(c.svc, watcher, tui.OptionsFrom(c.cfg, c.log))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		c.log.Error("tui_fatal", slog.String("error", err.Error()))
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sessioner %s\n  commit: %s\n  built:  %s\n", buildVersion, buildCommit, buildDate)
		},
	}
}

// selfPath returns the resolved path of the running binary.
func selfPath() (string, error) {
	self, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("finding executable path: %w", err)
	}
	// Resolve any symlinks to get the real path
	self, err = filepath.EvalSymlinks(self)
	if err != nil {
		return "", fmt.Errorf("resolving executable path: %w", err)
	}
	return self, nil
}
