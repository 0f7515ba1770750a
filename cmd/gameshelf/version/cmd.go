// Package versioncmd implements the `gameshelf version` command.
package versioncmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/gameshelf/internal/buildinfo"
)

// Command implements `gameshelf version`.
type Command struct {
	cmd *cobra.Command
}

// New creates the version command.
func New() *Command {
	c := &Command{}
	c.cmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			return nil
		},
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }
