package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shnupta/sessioner/internal/config"
	"github.com/shnupta/sessioner/internal/graveyard"
	"github.com/shnupta/sessioner/internal/logging"
	"github.com/shnupta/sessioner/internal/session"
	"github.com/shnupta/sessioner/internal/state"
	"github.com/shnupta/sessioner/internal/tmux"
)

// components are the long-lived pieces every command needs.
type components struct {
	cfg    config.Config
	log    *slog.Logger
	graves *graveyard.DB
	events *state.Store
	svc    *session.Service

	logFile io.Closer
}

// configPath is the --config flag, or the default location.
func configPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return config.Expand(p)
	}
	return config.Path()
}

func loadConfig(cmd *cobra.Command) config.Config {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return config.LoadFrom(config.Expand(p))
	}
	return config.Load()
}

func loadComponents(cmd *cobra.Command) (*components, error) {
	cfg := loadConfig(cmd)

	log, logFile := logging.Open(cfg.LogFile(), cfg.LogLevel)
	log = log.With("command", cmd.Name())

	graves, err := graveyard.Open(cfg.DatabaseFile())
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("open registry: %w", err)
	}

	return &components{
		cfg:     cfg,
		log:     log,
		graves:  graves,
		events:  state.NewStore(cfg.EventsDirectory()),
		svc:     session.NewService(&tmux.Client{}, graves, log, selfName()),
		logFile: logFile,
	}, nil
}

func (c *components) Close() {
	if err := c.graves.Close(); err != nil {
		c.log.Warn("close_registry", slog.String("error", err.Error()))
	}
	c.logFile.Close()
}

// selfName is the command name tmux reports for panes running sessioner.
func selfName() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Base(exe)
	}
	return "sessioner"
}
