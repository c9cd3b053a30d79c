package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/justsurfingit/Job-Application-Tracker/internal/browser"
	"github.com/justsurfingit/Job-Application-Tracker/internal/models"
)

// Add an application.
type cmdAdd struct {
	global *cmdGlobal

	flagCompany string
	flagRole    string
	flagDate    string
	flagStatus  string
	flagURL     string
	flagNotes   string
}

func (c *cmdAdd) command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "add"
	cmd.Short = "Add a job application"
	cmd.Long = "Add a job application.\n\nKnown statuses: " + strings.Join(models.Statuses, ", ")
	cmd.Args = cobra.NoArgs
	cmd.RunE = c.run

	cmd.Flags().StringVar(&c.flagCompany, "company", "", "Company name")
	cmd.Flags().StringVar(&c.flagRole, "role", "", "Job role")
	cmd.Flags().StringVar(&c.flagDate, "date", time.Now().Format("2006-01-02"), "Date applied (YYYY-MM-DD)")
	cmd.Flags().StringVar(&c.flagStatus, "status", models.StatusWaiting, "Application status")
	cmd.Flags().StringVar(&c.flagURL, "url", "", "Job posting URL")
	cmd.Flags().StringVar(&c.flagNotes, "notes", "", "Notes")

	return cmd
}

func (c *cmdAdd) run(cmd *cobra.Command, _ []string) error {
	req := browser.FormValues{
		"company_name": c.flagCompany,
		"job_role":     c.flagRole,
		"applied_date": c.flagDate,
		"status":       c.flagStatus,
		"url":          c.flagURL,
		"notes":        c.flagNotes,
	}.Request()
	req.Normalize()
	if missing := req.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	result, err := c.global.api.AddApplication(cmd.Context(), req)
	if err != nil {
		return err
	}
	if !result.Success {
		return errors.New(result.Message)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return nil
}
