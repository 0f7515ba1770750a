// Package initcmd implements the `gameshelf init` command.
package initcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/gameshelf/cmd/gameshelf/shared"
)

// Command implements `gameshelf init`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the init command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize the library home with an empty category document",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Open(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	created, err := svc.Init()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	out := cmd.OutOrStdout()
	if created {
		fmt.Fprintf(out, "Library initialized at %s\n", svc.Home)
	} else {
		fmt.Fprintf(out, "Library already initialized at %s\n", svc.Home)
	}
	return nil
}
