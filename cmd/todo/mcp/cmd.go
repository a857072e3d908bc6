// Package mcpcmd implements the `todo mcp` command.
package mcpcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/todo/cmd/todo/shared"
	internalmcp "github.com/go-ports/todo/internal/mcp"
	"github.com/go-ports/todo/internal/service"
)

// Command implements `todo mcp`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the mcp command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "mcp",
		Short: "Serve the activity list over MCP (stdio transport)",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := service.New(c.ctx.File)
	if err != nil {
		return err
	}
	return internalmcp.Serve(cmd.Context(), svc)
}
