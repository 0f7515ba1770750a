// Package addcmd implements the `gameshelf add` command.
package addcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/gameshelf/cmd/gameshelf/shared"
)

// Command implements `gameshelf add`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "add <name>",
		Short: "Append a new empty category",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	svc, err := c.ctx.Open(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	cat, err := svc.AddCategory(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added category: %s (id: %s)\n", cat.Name, cat.ID)
	return nil
}
