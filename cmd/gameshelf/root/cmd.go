// Package rootcmd wires the root cobra.Command for the gameshelf CLI binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	addcmd "github.com/go-ports/gameshelf/cmd/gameshelf/add"
	configcmd "github.com/go-ports/gameshelf/cmd/gameshelf/config"
	deletecmd "github.com/go-ports/gameshelf/cmd/gameshelf/delete"
	gamecmd "github.com/go-ports/gameshelf/cmd/gameshelf/game"
	idcmd "github.com/go-ports/gameshelf/cmd/gameshelf/id"
	importcmd "github.com/go-ports/gameshelf/cmd/gameshelf/import"
	initcmd "github.com/go-ports/gameshelf/cmd/gameshelf/init"
	listcmd "github.com/go-ports/gameshelf/cmd/gameshelf/list"
	mcpcmd "github.com/go-ports/gameshelf/cmd/gameshelf/mcp"
	movecmd "github.com/go-ports/gameshelf/cmd/gameshelf/move"
	renamecmd "github.com/go-ports/gameshelf/cmd/gameshelf/rename"
	setupcmd "github.com/go-ports/gameshelf/cmd/gameshelf/setup"
	"github.com/go-ports/gameshelf/cmd/gameshelf/shared"
	versioncmd "github.com/go-ports/gameshelf/cmd/gameshelf/version"
	watchcmd "github.com/go-ports/gameshelf/cmd/gameshelf/watch"
)

// New creates and returns the root cobra.Command for the gameshelf CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "gameshelf",
		Short:         "gameshelf: organise your game library into categories",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	root.PersistentFlags().StringVar(
		&ctx.Home, "home", "",
		"Override library home directory (default: $GAMESHELF_HOME env → persisted config → ~/.gameshelf)",
	)

	root.AddCommand(
		initcmd.New(ctx).Cmd(),
		listcmd.New(ctx).Cmd(),
		addcmd.New(ctx).Cmd(),
		renamecmd.New(ctx).Cmd(),
		deletecmd.New(ctx).Cmd(),
		movecmd.New(ctx).Cmd(),
		gamecmd.New(ctx).Cmd(),
		importcmd.New(ctx).Cmd(),
		idcmd.New().Cmd(),
		configcmd.New(ctx).Cmd(),
		watchcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
		setupcmd.New(ctx).Cmd(),
		versioncmd.New().Cmd(),
	)

	return root
}
