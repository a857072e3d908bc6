// Package configcmd implements the `todo config` command group.
package configcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/config"
)

const configTemplate = `# todo configuration

# Where activities are stored. Overridden by --file and TODO_FILE.
# file: ~/.todo/todo.json

# How remove/edit interpret --id:
#   id       - match the stored id field
#   position - 1-based position in the file (as shown by "todo list")
addressing: id

# Defaults for "todo list".
list:
  sort: id          # id | name | priority | completed
  reverse: false

# Defaults for "todo export".
export:
  redact: false     # mask secrets in names (also: --redact)
  # redact_patterns:
  #   - '(?i)pin \d{4}'
`

// Command implements `todo config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Args:  cobra.NoArgs,
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(
		newConfigInit(),
		newSetFile(),
		newClearFile(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	cfgPath, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	file, source := config.ResolveFile(c.ctx.File, cfg)

	data := map[string]any{
		"config_path": cfgPath,
		"file":        file,
		"file_source": source,
		"addressing":  cfg.Addressing,
		"list": map[string]any{
			"sort":    string(cfg.SortKey()),
			"reverse": cfg.List.Reverse,
		},
		"export": map[string]any{
			"redact":          cfg.Export.Redact,
			"redact_patterns": cfg.Export.RedactPatterns,
		},
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, err := config.Path()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfgPath); err == nil && !force {
				fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, []byte(configTemplate), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", cfgPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}

// ---------------------------------------------------------------------------
// config set-file
// ---------------------------------------------------------------------------

func newSetFile() *cobra.Command {
	return &cobra.Command{
		Use:   "set-file <path>",
		Short: "Persist the activity file location (used when TODO_FILE is unset)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.SetPersistedFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Persisted activity file: %s\n", resolved)
			fmt.Fprintln(out, "Override anytime with --file or TODO_FILE.")
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// config clear-file
// ---------------------------------------------------------------------------

func newClearFile() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-file",
		Short: "Remove the persisted activity file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			changed, err := config.ClearPersistedFile()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if changed {
				fmt.Fprintln(out, "Cleared persisted activity file setting.")
			} else {
				fmt.Fprintln(out, "No persisted activity file setting was found.")
			}
			return nil
		},
	}
}
