// Package listcmd implements the `gameshelf list` command.
package listcmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-ports/gameshelf/cmd/gameshelf/shared"
)

// Command implements `gameshelf list`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	asJSON bool
}

// New creates the list command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "list",
		Short: "List categories in display order",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().BoolVar(&c.asJSON, "json", false, "Print the raw category document")
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

	out := cmd.OutOrStdout()
	if c.asJSON {
		data, err := svc.Export()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	doc := svc.List()
	if len(doc) == 0 {
		fmt.Fprintln(out, "No categories.")
		return nil
	}
	for i, cat := range doc {
		fmt.Fprintf(out, "%d. %s  (id: %s, %d games)\n", i+1, cat.Name, cat.ID, len(cat.Games))
		if len(cat.Games) > 0 {
			fmt.Fprintf(out, "   %s\n", strings.Join(cat.Games, ", "))
		}
	}
	return nil
}
