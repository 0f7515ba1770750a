// Package importcmd implements the `gameshelf import` command.
package importcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-ports/gameshelf/cmd/gameshelf/shared"
)

// Command implements `gameshelf import`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the import command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the category document with the contents of a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", args[0], err)
	}

	svc, err := c.ctx.Open(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	doc, err := svc.Import(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d categories\n", len(doc))
	return nil
}
