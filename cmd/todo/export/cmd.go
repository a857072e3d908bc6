// Package exportcmd implements the `todo export` command.
package exportcmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/atomicfile"
	"github.com/go-ports/todo/internal/markdown"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/redaction"
	"github.com/go-ports/todo/internal/service"
)

// Command implements `todo export`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	output  string
	sort    string
	reverse bool
	redact  bool
}

// New creates the export command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "export",
		Short: "Export the list as a markdown checklist",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVarP(&c.output, "output", "o", "", "Write to this file instead of stdout")
	f.StringVar(&c.sort, "sort", "", "Sort by: id | name | priority | completed (default from config, else id)")
	f.Var(shared.NewBoolValue(&c.reverse, false), "reverse", "Reverse the sort order (true|false)")
	f.Lookup("reverse").NoOptDefVal = "true"
	f.Var(shared.NewBoolValue(&c.redact, false), "redact", "Mask secrets in names (true|false, default from config)")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := service.New(c.ctx.File)
	if err != nil {
		return err
	}
	if c.output != "" {
		abs, err := filepath.Abs(c.output)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if abs == svc.FilePath {
			return fmt.Errorf("export: --output %s is the activity file", c.output)
		}
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

	redact := svc.Config.Export.Redact
	if cmd.Flags().Changed("redact") {
		redact = c.redact
	}
	if redact {
		extra, err := redaction.Compile(svc.Config.Export.RedactPatterns)
		if err != nil {
			return err
		}
		for i := range rows {
			rows[i].Name = redaction.Redact(rows[i].Name, extra)
		}
	}

	doc, err := markdown.Render(markdown.NewFrontMatter(svc.FilePath, rows, key, reverse, time.Now()), rows)
	if err != nil {
		return err
	}

	if c.output == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
		return err
	}
	if err := atomicfile.WriteFile(c.output, []byte(doc), 0); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	slog.Debug("exported activities", "path", c.output, "count", len(rows))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d activities to %s\n", len(rows), c.output)
	return nil
}
