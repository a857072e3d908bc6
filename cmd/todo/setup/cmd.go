// Package setupcmd implements the `todo setup` command group.
package setupcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/setup"
)

// Command implements `todo setup`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the setup command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "setup",
		Short: "Register the todo MCP server with a coding agent",
		Long: "Register `todo mcp` with a coding agent.\n\n" +
			"When --file is given it is pinned in the registered command.",
		RunE: func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newSetupClaudeCode(ctx),
		newSetupCursor(ctx),
		newSetupCodex(ctx),
		newSetupOpencode(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func entry(ctx *shared.Context) (setup.Entry, error) {
	if ctx.File == "" {
		return setup.NewEntry(""), nil
	}
	abs, err := filepath.Abs(ctx.File)
	if err != nil {
		return setup.Entry{}, err
	}
	return setup.NewEntry(abs), nil
}

func report(cmd *cobra.Command, res setup.Result, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}

// ---------------------------------------------------------------------------
// setup claude-code
// ---------------------------------------------------------------------------

func newSetupClaudeCode(ctx *shared.Context) *cobra.Command {
	var configDir string
	var project bool
	cmd := &cobra.Command{
		Use:   "claude-code",
		Short: "Register the MCP server in Claude Code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := entry(ctx)
			if err != nil {
				return err
			}
			res, err := setup.SetupClaudeCode(ResolveConfigDir(".claude", configDir, project), project, e)
			return report(cmd, res, err)
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "Path to .claude directory")
	cmd.Flags().BoolVar(&project, "project", false, "Install in current project instead of globally")
	return cmd
}

// ---------------------------------------------------------------------------
// setup cursor
// ---------------------------------------------------------------------------

func newSetupCursor(ctx *shared.Context) *cobra.Command {
	var configDir string
	var project bool
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Register the MCP server in Cursor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := entry(ctx)
			if err != nil {
				return err
			}
			res, err := setup.SetupCursor(ResolveConfigDir(".cursor", configDir, project), e)
			return report(cmd, res, err)
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "Path to .cursor directory")
	cmd.Flags().BoolVar(&project, "project", false, "Install in current project instead of globally")
	return cmd
}

// ---------------------------------------------------------------------------
// setup codex
// ---------------------------------------------------------------------------

func newSetupCodex(ctx *shared.Context) *cobra.Command {
	var configDir string
	var project bool
	cmd := &cobra.Command{
		Use:   "codex",
		Short: "Register the MCP server in Codex config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := entry(ctx)
			if err != nil {
				return err
			}
			res, err := setup.SetupCodex(ResolveConfigDir(".codex", configDir, project), e)
			return report(cmd, res, err)
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "Path to .codex directory")
	cmd.Flags().BoolVar(&project, "project", false, "Install in current project instead of globally")
	return cmd
}

// ---------------------------------------------------------------------------
// setup opencode
// ---------------------------------------------------------------------------

func newSetupOpencode(ctx *shared.Context) *cobra.Command {
	var project bool
	cmd := &cobra.Command{
		Use:   "opencode",
		Short: "Register the MCP server in OpenCode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := entry(ctx)
			if err != nil {
				return err
			}
			res, err := setup.SetupOpencode(project, e)
			return report(cmd, res, err)
		},
	}
	cmd.Flags().BoolVar(&project, "project", false, "Install in current project instead of globally")
	return cmd
}

// ResolveConfigDir picks the agent directory: an explicit --config-dir, the
// dot directory in the working directory for --project, else the one in home.
//
//revive:disable:flag-parameter
func ResolveConfigDir(dotDir, configDir string, project bool) string {
	if configDir != "" {
		return configDir
	}
	if project {
		cwd, _ := os.Getwd()
		return filepath.Join(cwd, dotDir)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, dotDir)
}

//revive:enable:flag-parameter
