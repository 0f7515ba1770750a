// Package setupcmd implements the `gameshelf setup` command group.
package setupcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/gameshelf/cmd/gameshelf/shared"
	"github.com/go-ports/gameshelf/internal/config"
	"github.com/go-ports/gameshelf/internal/setup"
)

// Command implements `gameshelf setup`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the setup command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "setup",
		Short: "Register the gameshelf MCP server with an MCP client",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newInstall(ctx),
		newUninstall(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// ---------------------------------------------------------------------------
// setup install
// ---------------------------------------------------------------------------

func newInstall(ctx *shared.Context) *cobra.Command {
	var force, pinHome bool
	cmd := &cobra.Command{
		Use:   "install <client-config.json>",
		Short: "Add the gameshelf server to a client's mcpServers config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			home := ""
			if pinHome {
				home = ctx.Home
				if home == "" {
					home = config.GetLibraryHome()
				}
			}
			res, err := setup.Install(args[0], home, force)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing gameshelf entry")
	cmd.Flags().BoolVar(&pinHome, "pin-home", false, "Pin the current library home via GAMESHELF_HOME")
	return cmd
}

// ---------------------------------------------------------------------------
// setup uninstall
// ---------------------------------------------------------------------------

func newUninstall() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <client-config.json>",
		Short: "Remove the gameshelf server from a client's mcpServers config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := setup.Uninstall(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}
