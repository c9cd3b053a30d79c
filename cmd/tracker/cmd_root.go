package main

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/justsurfingit/Job-Application-Tracker/internal/client"
	"github.com/justsurfingit/Job-Application-Tracker/internal/config"
	"github.com/justsurfingit/Job-Application-Tracker/internal/logger"
)

// cmdGlobal carries the state shared by every subcommand.
type cmdGlobal struct {
	flagServer  string
	flagTimeout time.Duration

	cfg *config.ClientConfig
	log *zap.Logger
	api *client.Client
}

func (c *cmdGlobal) command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "tracker"
	cmd.Short = "Track job applications"
	cmd.Long = "Browse, add and delete job applications stored on a tracker server.\n\nRunning without a subcommand opens the interactive browser."
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cmd.PersistentFlags().StringVar(&c.flagServer, "server", "", "Tracker server URL (overrides TRACKER_SERVER_URL)")
	cmd.PersistentFlags().DurationVar(&c.flagTimeout, "timeout", 0, "HTTP client timeout (overrides TRACKER_HTTP_TIMEOUT)")
	cmd.PersistentPreRunE = c.preRun
	cmd.PersistentPostRun = func(*cobra.Command, []string) {
		if c.log != nil {
			_ = c.log.Sync()
		}
	}

	browseCmd := cmdBrowse{global: c}
	cmd.AddCommand(browseCmd.command())

	listCmd := cmdList{global: c}
	cmd.AddCommand(listCmd.command())

	summaryCmd := cmdSummary{global: c}
	cmd.AddCommand(summaryCmd.command())

	addCmd := cmdAdd{global: c}
	cmd.AddCommand(addCmd.command())

	deleteCmd := cmdDelete{global: c}
	cmd.AddCommand(deleteCmd.command())

	historyCmd := cmdHistory{global: c}
	cmd.AddCommand(historyCmd.command())

	cmd.Args = cobra.NoArgs
	cmd.RunE = browseCmd.run

	return cmd
}

func (c *cmdGlobal) preRun(cmd *cobra.Command, _ []string) error {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("server") {
		cfg.ServerURL = c.flagServer
	}
	if cmd.Flags().Changed("timeout") {
		cfg.HTTPTimeout = c.flagTimeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.NewFileLogger(cfg.Env, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	c.cfg = cfg
	c.log = log
	c.api = client.New(cfg.ServerURL, cfg.HTTPTimeout)
	return nil
}
