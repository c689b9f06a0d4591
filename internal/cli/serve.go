package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pmateos/devtrack/internal/config"
	"github.com/pmateos/devtrack/internal/db"
	"github.com/pmateos/devtrack/internal/platform"
	"github.com/pmateos/devtrack/internal/web"
)

var (
	colorBanner = color.New(color.FgCyan, color.Bold)
	colorMuted  = color.New(color.FgWhite, color.Faint)
)

func (a *App) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the devtrack HTTP API server.

Configuration is read from the config file, then overridden by
environment variables. DEVTRACK_JWT_SECRET must be set one way
or the other.

Example:
  devtrack serve --config ~/.config/devtrack/config.toml`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runServe()
		},
	}
}

func (a *App) runServe() error {
	path := a.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store, err := db.New(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = store.Close() }()

	github := platform.NewGitHubClient(cfg.Sync.GitHubToken, cfg.FetchTimeout())
	leetcode := platform.NewLeetCodeClient(cfg.FetchTimeout())
	syncer := platform.NewSyncer(store, github, leetcode)

	srv := web.NewServer(store, syncer, cfg, logger)

	colorBanner.Println("devtrack")
	colorMuted.Printf("database: %s\n", cfg.Storage.DBPath)
	colorMuted.Printf("listening on %s\n", cfg.Server.Addr)

	return srv.Start()
}
