// Package movecmd implements the `gameshelf move` command.
package movecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/gameshelf/cmd/gameshelf/shared"
	"github.com/go-ports/gameshelf/internal/category"
)

// Command implements `gameshelf move`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the move command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:       "move <category-id> up|down",
		Short:     "Move a category one position up or down",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE:      c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	dir, err := category.ParseDirection(args[1])
	if err != nil {
		return err
	}

	svc, err := c.ctx.Open(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	moved, err := svc.MoveCategory(args[0], dir)
	if err != nil {
		return err
	}
	if moved {
		fmt.Fprintf(cmd.OutOrStdout(), "Moved category %s %s\n", args[0], dir)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Category %s is already at the %s\n", args[0], edge(dir))
	}
	return nil
}

func edge(d category.Direction) string {
	if d == category.Up {
		return "top"
	}
	return "bottom"
}
