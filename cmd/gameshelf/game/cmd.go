// Package gamecmd implements the `gameshelf game` command group.
package gamecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/gameshelf/cmd/gameshelf/shared"
	"github.com/go-ports/gameshelf/internal/category"
)

// Command implements `gameshelf game`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the game command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "game",
		Short: "Manage the games inside categories",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newAdd(ctx),
		newRemove(ctx),
		newPurge(ctx),
		newMove(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// ---------------------------------------------------------------------------
// game add
// ---------------------------------------------------------------------------

func newAdd(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "add <category-id> <game-id>",
		Short: "Append a game to a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Open(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			added, err := svc.AddGame(args[0], args[1])
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintf(cmd.OutOrStdout(), "Added game %s to category %s\n", args[1], args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Game %s is already in category %s\n", args[1], args[0])
			}
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// game remove
// ---------------------------------------------------------------------------

func newRemove(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <category-id> <game-id>",
		Short: "Remove a game from one category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Open(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			removed, err := svc.RemoveGame(args[0], args[1])
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed game %s from category %s\n", args[1], args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Game %s was not in category %s\n", args[1], args[0])
			}
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// game purge
// ---------------------------------------------------------------------------

func newPurge(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "purge <game-id>",
		Short: "Remove a game from every category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Open(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			n, err := svc.PurgeGame(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed game %s from %d categories\n", args[0], n)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// game move
// ---------------------------------------------------------------------------

func newMove(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "move <category-id> <game-id> up|down",
		Short: "Move a game one position up or down inside a category",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := category.ParseDirection(args[2])
			if err != nil {
				return err
			}
			svc, err := ctx.Open(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			moved, err := svc.MoveGame(args[0], args[1], dir)
			if err != nil {
				return err
			}
			if moved {
				fmt.Fprintf(cmd.OutOrStdout(), "Moved game %s %s\n", args[1], dir)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Game %s did not move\n", args[1])
			}
			return nil
		},
	}
}
