// Package idcmd implements the `gameshelf id` command.
package idcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/gameshelf/internal/ident"
)

// Command implements `gameshelf id`.
type Command struct {
	cmd *cobra.Command
}

// New creates the id command.
func New() *Command {
	c := &Command{}
	c.cmd = &cobra.Command{
		Use:   "id <name>",
		Short: "Print the nine-digit id derived from a category or game name",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (*Command) run(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), ident.NineDigit(args[0]))
	return nil
}
