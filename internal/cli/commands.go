package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shnupta/sessioner/internal/config"
	"github.com/shnupta/sessioner/internal/domain"
	"github.com/shnupta/sessioner/internal/hook"
	"github.com/shnupta/sessioner/internal/session"
	"github.com/shnupta/sessioner/internal/state"
	"github.com/shnupta/sessioner/internal/tmux"
)

// --- hook ---

func hookCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "hook <event> [session]",
		Short:  "Handle a tmux hook event (called by tmux, not directly)",
		Args:   cobra.RangeArgs(1, 2),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadComponents(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			var name string
			if len(args) == 2 {
				name = args[1]
			}
			if err := hook.Run(args[0], name, c.events, c.graves); err != nil {
				c.log.Error("hook_failed", slog.String("event", args[0]), slog.String("session", name), slog.String("error", err.Error()))
				return err
			}
			c.log.Debug("hook", slog.String("event", args[0]), slog.String("session", name))
			return nil
		},
	}
}

// --- install ---

func installCmd() *cobra.Command {
	var persist bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Register tmux hooks so session changes show up immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadComponents(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			self, err := selfPath()
			if err != nil {
				return err
			}
			if err := hook.Install(self, tmux.SetHook); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "hooks installed on the running tmux server\n")
			if persist {
				if err := hook.WriteConf(c.cfg.TmuxConfFile(), self); err != nil {
					return fmt.Errorf("write tmux config: %w", err)
				}
				fmt.Fprintf(out, "hooks written → %s\n", c.cfg.TmuxConfFile())
			}
			fmt.Fprintf(out, "using sessioner at: %s\n", self)
			return nil
		},
	}
	cmd.Flags().BoolVar(&persist, "persist", false, "Also write the hooks into the tmux config file")
	return cmd
}

// --- list ---

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List running and exited sessions",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadComponents(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			snap, err := c.svc.Discover()
			if err != nil {
				return err
			}
			events, err := c.events.ReadAll()
			if err != nil {
				c.log.Warn("read_events", slog.String("error", err.Error()))
			}
			printSessions(cmd.OutOrStdout(), snap, events, time.Now())
			return nil
		},
	}
}

// printSessions writes snap as an aligned table, with the latest hook event
// seen for each session. Widths are measured in terminal cells so wide
// session names line up.
func printSessions(w io.Writer, snap session.Snapshot, events []state.Event, now time.Time) {
	if len(snap.Live) == 0 && len(snap.Dead) == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return
	}

	latest := make(map[string]state.Event, len(events))
	for _, ev := range events {
		if prev, ok := latest[ev.Session]; !ok || ev.At.After(prev.At) {
			latest[ev.Session] = ev
		}
	}
	lastEvent := func(name string) string {
		ev, ok := latest[name]
		if !ok {
			return "-"
		}
		return ev.Kind + " " + domain.FormatAge(now.Sub(ev.At))
	}

	rows := [][4]string{{"NAME", "STATUS", "DETAIL", "LAST EVENT"}}
	for _, l := range snap.Live {
		status := "running"
		switch {
		case l.IsCurrent:
			status = "attached"
		case l.ConnectedClients > 0:
			status = "connected"
		}
		rows = append(rows, [4]string{l.Name, status, fmt.Sprintf("%d panes", len(l.PaneTitles())), lastEvent(l.Name)})
	}
	for _, d := range snap.Dead {
		rows = append(rows, [4]string{d.Name, "exited", domain.FormatAge(d.Age), lastEvent(d.Name)})
	}

	var widths [3]int
	for _, r := range rows {
		for i := range widths {
			if n := runewidth.StringWidth(r[i]); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			runewidth.FillRight(r[0], widths[0]),
			runewidth.FillRight(r[1], widths[1]),
			runewidth.FillRight(r[2], widths[2]),
			r[3])
	}
}

// --- config ---

func configCmd() *cobra.Command {
	var initFile bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(cmd)
			cfg := loadConfig(cmd)
			out := cmd.OutOrStdout()

			if initFile {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config already exists: %s", path)
				}
				if err := config.SaveTo(path, cfg); err != nil {
					return fmt.Errorf("write config: %w", err)
				}
				fmt.Fprintf(out, "config written → %s\n", path)
				return nil
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "# %s\n%s", path, data)
			return nil
		},
	}
	cmd.Flags().BoolVar(&initFile, "init", false, "Write the defaults to the config file if it doesn't exist")
	return cmd
}

// --- prune ---

func pruneCmd() *cobra.Command {
	var eventsOlderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Forget every exited session and clear old hook events",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadComponents(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			n, err := c.graves.DeleteAllExited()
			if err != nil {
				return err
			}
			removed, err := c.events.Prune(time.Now().Add(-eventsOlderThan))
			if err != nil {
				return err
			}
			c.log.Info("pruned", slog.Int("sessions", n), slog.Int("events", removed))
			fmt.Fprintf(cmd.OutOrStdout(), "forgot %d exited sessions, removed %d old events\n", n, removed)
			return nil
		},
	}
	cmd.Flags().DurationVar(&eventsOlderThan, "events-older-than", 7*24*time.Hour, "Remove hook event files older than this")
	return cmd
}
