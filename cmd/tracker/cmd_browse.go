package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/justsurfingit/Job-Application-Tracker/internal/autosave"
	"github.com/justsurfingit/Job-Application-Tracker/internal/config"
	"github.com/justsurfingit/Job-Application-Tracker/internal/tui"
)

// Interactive browser.
type cmdBrowse struct {
	global *cmdGlobal
}

func (c *cmdBrowse) command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "browse"
	cmd.Short = "Open the interactive browser"
	cmd.Args = cobra.NoArgs
	cmd.RunE = c.run

	return cmd
}

func (c *cmdBrowse) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStore(ctx, c.global.cfg.Autosave)
	if err != nil {
		return err
	}
	c.global.log.Info("starting browser",
		zap.String("server", c.global.cfg.ServerURL),
		zap.String("autosave", c.global.cfg.Autosave.Backend))

	ui := tui.New(c.global.api, autosave.New(store, c.global.log), c.global.log)
	return ui.Run(ctx)
}

// openStore returns the configured autosave backend.
func openStore(ctx context.Context, cfg config.AutosaveConfig) (autosave.Store, error) {
	switch cfg.Backend {
	case "redis":
		store := autosave.NewRedisStore(autosave.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), "job-tracker:")
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return store, nil
	case "memory":
		return autosave.NewMemoryStore(), nil
	default:
		return autosave.NewFileStore(cfg.Path)
	}
}
