// Package addcmd implements the `todo add` command.
package addcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/service"
)

// Command implements `todo add`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	id        uint
	name      string
	priority  uint8
	completed bool
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "add",
		Short: "Add an activity",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.UintVar(&c.id, "id", 0, "Activity ID (required)")
	f.StringVar(&c.name, "name", "", "Name of the activity (required)")
	f.Uint8Var(&c.priority, "priority", 1, "Priority of the activity (0-255)")
	f.Var(shared.NewBoolValue(&c.completed, false), "completed", "Whether the activity is done (true|false)")

	_ = c.cmd.MarkFlagRequired("id")
	_ = c.cmd.MarkFlagRequired("name")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := service.New(c.ctx.File)
	if err != nil {
		return err
	}

	a := models.Activity{
		ID:        c.id,
		Name:      c.name,
		Priority:  c.priority,
		Completed: c.completed,
	}
	if err := svc.Add(cmd.Context(), a); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", a.Name)
	return nil
}
