// Package deletecmd implements the `gameshelf delete` command.
package deletecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/gameshelf/cmd/gameshelf/shared"
)

// Command implements `gameshelf delete`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the delete command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category by ID",
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

	deleted, err := svc.DeleteCategory(args[0])
	if err != nil {
		return err
	}
	if deleted {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", args[0])
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "No category found for %s\n", args[0])
	}
	return nil
}
