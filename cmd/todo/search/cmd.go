// Package searchcmd implements the `todo search` command.
package searchcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/service"
)

// Command implements `todo search`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	id        uint
	name      string
	priority  uint8
	completed bool
	format    string
}

// New creates the search command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "search",
		Short: "Search activities; all given criteria must match",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.UintVar(&c.id, "id", 0, "Match the stored activity id")
	f.StringVar(&c.name, "name", "", "Match names containing this text (case-insensitive)")
	f.Uint8Var(&c.priority, "priority", 0, "Match this priority")
	f.Var(shared.NewBoolValue(&c.completed, false), "completed", "Match this completion status (true|false)")
	f.StringVar(&c.format, "format", shared.FormatTable, "Output format: table | json")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	if err := shared.CheckFormat(c.format); err != nil {
		return err
	}

	var filter models.Filter
	f := cmd.Flags()
	if f.Changed("id") {
		filter.ID = &c.id
	}
	if f.Changed("name") {
		filter.Name = &c.name
	}
	if f.Changed("priority") {
		filter.Priority = &c.priority
	}
	if f.Changed("completed") {
		filter.Completed = &c.completed
	}

	svc, err := service.New(c.ctx.File)
	if err != nil {
		return err
	}

	rows, total, err := svc.Search(cmd.Context(), filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if c.format == shared.FormatJSON {
		return shared.WriteJSON(out, rows)
	}
	if total == 0 {
		fmt.Fprintln(out, "No activities found.")
		return nil
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "No matching activities found.")
		return nil
	}

	shared.WriteTable(out, rows, false)
	fmt.Fprintf(out, "Found %d matching activities.\n", len(rows))
	return nil
}
