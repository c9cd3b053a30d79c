package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lxc/incus/v6/shared/ask"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/justsurfingit/Job-Application-Tracker/internal/browser"
)

// Delete an application.
type cmdDelete struct {
	global *cmdGlobal

	flagYes bool
}

func (c *cmdDelete) command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "delete <id>"
	cmd.Aliases = []string{"rm"}
	cmd.Short = "Delete a job application"
	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = c.run

	cmd.Flags().BoolVarP(&c.flagYes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func (c *cmdDelete) run(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var confirm browser.Confirmer = promptConfirmer{in: cmd.InOrStdin(), log: c.global.log}
	if c.flagYes {
		confirm = yesConfirmer{}
	}

	ctrl := browser.NewController(c.global.api, discardView{}, confirm, browser.NewNotifier(), c.global.log)
	err = ctrl.DeleteApplication(cmd.Context(), id)
	if errors.Is(err, browser.ErrNotConfirmed) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
		return nil
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Application deleted successfully!")
	return nil
}

// promptConfirmer asks on the terminal.
type promptConfirmer struct {
	in  io.Reader
	log *zap.Logger
}

func (p promptConfirmer) Confirm(_ context.Context, message string) bool {
	asker := ask.NewAsker(bufio.NewReader(p.in))

	ok, err := asker.AskBool(message+" (yes/no) [default=no]: ", "no")
	if err != nil {
		p.log.Debug("Confirmation not answered", zap.Error(err))
		return false
	}
	return ok
}

type yesConfirmer struct{}

func (yesConfirmer) Confirm(context.Context, string) bool { return true }

// discardView drops list updates; the command prints its own result.
type discardView struct{}

func (discardView) ShowSummary(browser.Summary) {}
func (discardView) MarkActive(string)           {}
func (discardView) ShowGrid(browser.Grid)       {}
func (discardView) Navigate(string)             {}
