// Package uninstallcmd implements the `todo uninstall` command group.
package uninstallcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	setupcmd "github.com/go-ports/todo/cmd/todo/setup"
	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/setup"
)

// Command implements `todo uninstall`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the uninstall command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the todo MCP server from a coding agent",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newAgentCmd("claude-code", ".claude", true, func(dir string, project bool) (setup.Result, error) {
			return setup.UninstallClaudeCode(dir, project)
		}),
		newAgentCmd("cursor", ".cursor", true, func(dir string, _ bool) (setup.Result, error) {
			return setup.UninstallCursor(dir)
		}),
		newAgentCmd("codex", ".codex", true, func(dir string, _ bool) (setup.Result, error) {
			return setup.UninstallCodex(dir)
		}),
		newAgentCmd("opencode", "", false, func(_ string, project bool) (setup.Result, error) {
			return setup.UninstallOpencode(project)
		}),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

//revive:disable:flag-parameter
func newAgentCmd(agent, dotDir string, hasConfigDir bool, fn func(dir string, project bool) (setup.Result, error)) *cobra.Command {
	var configDir string
	var project bool
	cmd := &cobra.Command{
		Use:   agent,
		Short: fmt.Sprintf("Remove the MCP server from %s", agent),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := ""
			if hasConfigDir {
				dir = setupcmd.ResolveConfigDir(dotDir, configDir, project)
			}
			res, err := fn(dir, project)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	if hasConfigDir {
		cmd.Flags().StringVar(&configDir, "config-dir", "", "Path to "+dotDir+" directory")
	}
	cmd.Flags().BoolVar(&project, "project", false, "Remove from current project instead of globally")
	return cmd
}

//revive:enable:flag-parameter
