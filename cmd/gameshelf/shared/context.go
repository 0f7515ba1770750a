// Package shared holds the context passed to all CLI commands.
package shared

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/gameshelf/internal/service"
)

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// Home overrides the library home directory.
	// When empty, resolution falls through to GAMESHELF_HOME env → persisted config → ~/.gameshelf.
	Home string
}

// Open builds a Service for the selected library home. Logs go to the
// command's stderr.
func (c *Context) Open(cmd *cobra.Command) (*service.Service, error) {
	return service.NewWithOptions(c.Home, service.Options{LogOutput: cmd.ErrOrStderr()})
}
