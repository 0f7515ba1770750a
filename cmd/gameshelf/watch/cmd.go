// Package watchcmd implements the `gameshelf watch` command.
package watchcmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-ports/gameshelf/cmd/gameshelf/shared"
	"github.com/go-ports/gameshelf/internal/models"
	"github.com/go-ports/gameshelf/internal/watch"
)

// Command implements `gameshelf watch`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	debounce time.Duration
}

// New creates the watch command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "watch",
		Short: "Print the category list every time the document changes",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().DurationVar(&c.debounce, "debounce", watch.DefaultDebounce, "Quiet period before re-reading after a change")
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

	if !svc.Watchable() {
		return errors.New("watch: only the file storage backend can be watched")
	}

	w, err := watch.New(svc.DocumentPath, c.debounce, svc.Logger())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", w.Path())
	printSummary(out, svc.List())
	return w.Run(cmd.Context(), func() {
		fmt.Fprintf(out, "--- changed %s ---\n", time.Now().Format(time.TimeOnly))
		printSummary(out, svc.List())
	})
}

func printSummary(out io.Writer, doc models.Document) {
	if len(doc) == 0 {
		fmt.Fprintln(out, "No categories.")
		return
	}
	for i, cat := range doc {
		fmt.Fprintf(out, "%d. %s (%d games)\n", i+1, cat.Name, len(cat.Games))
	}
}
