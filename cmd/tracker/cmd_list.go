package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/justsurfingit/Job-Application-Tracker/internal/browser"
)

// List applications.
type cmdList struct {
	global *cmdGlobal

	flagSort   string
	flagOrder  string
	flagStatus string
	flagSearch string
}

func (c *cmdList) command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "list"
	cmd.Aliases = []string{"ls"}
	cmd.Short = "List job applications"
	cmd.Args = cobra.NoArgs
	cmd.RunE = c.run

	cmd.Flags().StringVar(&c.flagSort, "sort", "applied_date", "Sort column (company_name, job_role, applied_date, status, last_updated)")
	cmd.Flags().StringVar(&c.flagOrder, "order", "desc", "Sort order (asc or desc)")
	cmd.Flags().StringVar(&c.flagStatus, "status", browser.FilterAll, "Only show applications with this status")
	cmd.Flags().StringVar(&c.flagSearch, "search", "", "Only show applications matching this text")

	return cmd
}

func (c *cmdList) run(cmd *cobra.Command, _ []string) error {
	apps, err := c.global.api.ListApplications(cmd.Context(), c.flagSort, c.flagOrder)
	if err != nil {
		return err
	}

	grid := browser.BuildGrid(browser.Filter(apps, c.flagStatus, c.flagSearch))
	return renderGrid(cmd.OutOrStdout(), grid)
}

func renderGrid(w io.Writer, grid browser.Grid) error {
	if grid.Empty != nil {
		_, err := fmt.Fprintf(w, "%s\n%s\n", grid.Empty.Title, grid.Empty.Message)
		return err
	}

	rows := make([][]string, 0, len(grid.Cards))
	for _, card := range grid.Cards {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(card.ID), 10),
			card.Company,
			card.Role,
			card.Status,
			card.AppliedDate,
			card.LastUpdated,
			card.URL,
			card.Notes,
		})
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Company", "Role", "Status", "Applied", "Last Updated", "URL", "Notes")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// Summary counts.
type cmdSummary struct {
	global *cmdGlobal
}

func (c *cmdSummary) command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "summary"
	cmd.Short = "Show application counts per status"
	cmd.Args = cobra.NoArgs
	cmd.RunE = c.run

	return cmd
}

func (c *cmdSummary) run(cmd *cobra.Command, _ []string) error {
	counts, err := c.global.api.Summary(cmd.Context())
	if err != nil {
		return err
	}

	summary := browser.BuildSummary(counts, browser.FilterAll)
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Status", "Count")
	for _, slot := range summary.Slots {
		if err := table.Append([]string{slot.Label, strconv.FormatInt(slot.Count, 10)}); err != nil {
			return err
		}
	}
	return table.Render()
}

// Status history of one application.
type cmdHistory struct {
	global *cmdGlobal
}

func (c *cmdHistory) command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "history <id>"
	cmd.Short = "Show the status changes of an application"
	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = c.run

	return cmd
}

func (c *cmdHistory) run(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	app, err := c.global.api.GetApplication(cmd.Context(), id)
	if err != nil {
		return err
	}
	history, err := c.global.api.History(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s - %s (%s)\n", app.CompanyName, app.JobRole, app.Status)

	table := tablewriter.NewWriter(out)
	table.Header("Changed", "From", "To")
	for _, h := range history {
		from := h.OldStatus
		if from == "" {
			from = "-"
		}
		if err := table.Append([]string{h.ChangedAt.Format(browser.LastUpdatedLayout), from, h.NewStatus}); err != nil {
			return err
		}
	}
	return table.Render()
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid application id %q", arg)
	}
	return uint(id), nil
}
