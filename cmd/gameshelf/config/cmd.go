// Package configcmd implements the `gameshelf config` command group.
package configcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/gameshelf/cmd/gameshelf/shared"
	"github.com/go-ports/gameshelf/internal/config"
	"github.com/go-ports/gameshelf/internal/db"
)

const configTemplate = `# gameshelf library configuration

# Where the category document is kept.
storage:
  backend: file                 # file | sqlite
  document: categories.json     # file name (file) or document key (sqlite)
  database: library.db          # sqlite file, only used by the sqlite backend

# Diagnostic logging, written to stderr.
log:
  level: warn                   # debug | info | warn | error
  format: text                  # text | json
`

// Command implements `gameshelf config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(
		newConfigInit(ctx),
		newSetHome(),
		newClearHome(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	home, source := config.ResolveLibraryHome()
	if c.ctx.Home != "" {
		home = c.ctx.Home
		source = "flag"
	}
	cfg, err := config.Load(filepath.Join(home, "config.yaml"))
	if err != nil {
		return err
	}
	storage := map[string]any{
		"backend":  cfg.Storage.Backend,
		"document": cfg.Storage.Document,
		"database": cfg.Storage.Database,
	}
	if cfg.Storage.Backend == "sqlite" {
		keys, err := storedDocuments(filepath.Join(home, cfg.Storage.Database))
		if err != nil {
			return err
		}
		storage["stored_documents"] = keys
	}
	data := map[string]any{
		"storage": storage,
		"log": map[string]any{
			"level":  cfg.Log.Level,
			"format": cfg.Log.Format,
		},
		"library_home":        home,
		"library_home_source": source,
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// storedDocuments lists the document keys held in the sqlite database at
// path. A database that does not exist yet is not created.
func storedDocuments(path string) ([]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return []string{}, nil
	}
	d, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return d.ListKeys()
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit(ctx *shared.Context) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter config.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			home := ctx.Home
			if home == "" {
				home = config.GetLibraryHome()
			}
			cfgPath := filepath.Join(home, "config.yaml")
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfgPath); err == nil && !force {
				fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			if err := os.MkdirAll(home, 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, []byte(configTemplate), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", cfgPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}

// ---------------------------------------------------------------------------
// config set-home
// ---------------------------------------------------------------------------

func newSetHome() *cobra.Command {
	return &cobra.Command{
		Use:   "set-home <path>",
		Short: "Persist library home location (used when GAMESHELF_HOME is unset)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.SetPersistedLibraryHome(args[0])
			if err != nil {
				return err
			}
			if err := os.MkdirAll(resolved, 0o755); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Persisted library home: %s\n", resolved)
			fmt.Fprintln(out, "Override anytime with GAMESHELF_HOME.")
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// config clear-home
// ---------------------------------------------------------------------------

func newClearHome() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-home",
		Short: "Remove persisted library home location from global config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			changed, err := config.ClearPersistedLibraryHome()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if changed {
				fmt.Fprintln(out, "Cleared persisted library home setting.")
			} else {
				fmt.Fprintln(out, "No persisted library home setting was found.")
			}
			return nil
		},
	}
}
