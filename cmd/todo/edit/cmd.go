// Package editcmd implements the `todo edit` command.
package editcmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/service"
)

// Command implements `todo edit`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	id        uint
	name      string
	priority  uint8
	completed bool
}

// New creates the edit command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "edit",
		Short: "Edit an activity",
		Long: "Edit an activity. Only the flags given are changed.\n\n" +
			"--id matches the stored activity id, or the 1-based list position\n" +
			"when the config sets `addressing: position`.",
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	f := c.cmd.Flags()
	f.UintVar(&c.id, "id", 0, "Activity to edit (required)")
	f.StringVar(&c.name, "name", "", "New name")
	f.Uint8Var(&c.priority, "priority", 0, "New priority (0-255)")
	f.Var(shared.NewBoolValue(&c.completed, false), "completed", "New completion status (true|false)")

	_ = c.cmd.MarkFlagRequired("id")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	var patch models.Patch
	f := cmd.Flags()
	if f.Changed("name") {
		patch.Name = &c.name
	}
	if f.Changed("priority") {
		patch.Priority = &c.priority
	}
	if f.Changed("completed") {
		patch.Completed = &c.completed
	}
	if patch.Empty() {
		return errors.New("nothing to change: pass at least one of --name, --priority, --completed")
	}

	svc, err := service.New(c.ctx.File)
	if err != nil {
		return err
	}
	if _, err := svc.Edit(cmd.Context(), c.id, patch); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated activity. ID: %d\n", c.id)
	return nil
}
