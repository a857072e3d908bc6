// Package rootcmd wires the root cobra.Command for the todo CLI binary.
package rootcmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	addcmd "github.com/go-ports/todo/cmd/todo/add"
	configcmd "github.com/go-ports/todo/cmd/todo/config"
	editcmd "github.com/go-ports/todo/cmd/todo/edit"
	exportcmd "github.com/go-ports/todo/cmd/todo/export"
	initcmd "github.com/go-ports/todo/cmd/todo/init"
	listcmd "github.com/go-ports/todo/cmd/todo/list"
	mcpcmd "github.com/go-ports/todo/cmd/todo/mcp"
	removecmd "github.com/go-ports/todo/cmd/todo/remove"
	searchcmd "github.com/go-ports/todo/cmd/todo/search"
	setupcmd "github.com/go-ports/todo/cmd/todo/setup"
	"github.com/go-ports/todo/cmd/todo/shared"
	uninstallcmd "github.com/go-ports/todo/cmd/todo/uninstall"
	"github.com/go-ports/todo/internal/buildinfo"
)

// New creates and returns the root cobra.Command for the todo CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "todo",
		Short:         "Simple to-do list kept in a JSON file",
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if ctx.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.ErrOrStderr(), "No subcommand given.")
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(
		&ctx.File, "file", "",
		"Activity file (default: $TODO_FILE env → persisted config → ~/.todo/todo.json)",
	)
	pf.BoolVarP(&ctx.Verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		initcmd.New(ctx).Cmd(),
		addcmd.New(ctx).Cmd(),
		listcmd.New(ctx).Cmd(),
		removecmd.New(ctx).Cmd(),
		editcmd.New(ctx).Cmd(),
		searchcmd.New(ctx).Cmd(),
		exportcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
		setupcmd.New(ctx).Cmd(),
		uninstallcmd.New(ctx).Cmd(),
	)

	return root
}
