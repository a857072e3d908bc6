// Package listcmd implements the `todo list` command.
package listcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/service"
)

// Command implements `todo list`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	sort    string
	reverse bool
	format  string
}

// New creates the list command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "list",
		Short: "List all activities",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.sort, "sort", "", "Sort by: id | name | priority | completed (default from config, else id)")
	f.Var(shared.NewBoolValue(&c.reverse, false), "reverse", "Reverse the sort order (true|false)")
	f.Lookup("reverse").NoOptDefVal = "true"
	f.StringVar(&c.format, "format", shared.FormatTable, "Output format: table | json")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	if err := shared.CheckFormat(c.format); err != nil {
		return err
	}

	svc, err := service.New(c.ctx.File)
	if err != nil {
		return err
	}

	key := svc.Config.SortKey()
	if c.sort != "" {
		if key, err = models.ParseSortKey(c.sort); err != nil {
			return err
		}
	}
	reverse := svc.Config.List.Reverse
	if cmd.Flags().Changed("reverse") {
		reverse = c.reverse
	}

	rows, err := svc.List(cmd.Context(), key, reverse)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if c.format == shared.FormatJSON {
		return shared.WriteJSON(out, rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "Empty records.")
		return nil
	}
	shared.WriteTable(out, rows, svc.Config.ByPosition())
	return nil
}
