// Package removecmd implements the `todo remove` command.
package removecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/service"
)

// Command implements `todo remove`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	id uint
}

// New creates the remove command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "remove",
		Short: "Remove an activity",
		Long: "Remove an activity.\n\n" +
			"--id matches the stored activity id, or the 1-based list position\n" +
			"when the config sets `addressing: position`.",
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	c.cmd.Flags().UintVar(&c.id, "id", 0, "Activity to remove (required)")
	_ = c.cmd.MarkFlagRequired("id")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := service.New(c.ctx.File)
	if err != nil {
		return err
	}

	removed, err := svc.Remove(cmd.Context(), c.id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed: %s\n", removed.Name)
	return nil
}
