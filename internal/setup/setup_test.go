package setup_test

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/gameshelf/internal/checkers"
	"github.com/go-ports/gameshelf/internal/setup"
)

func TestInstall_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("first install creates the file with a gameshelf entry", func(c *qt.C) {
		path := filepath.Join(t.TempDir(), "client", "mcp.json")

		res, err := setup.Install(path, "/srv/games", false)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Changed, qt.IsTrue)
		c.Assert(res.Message, qt.Contains, "Installed")

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.gameshelf.command"), "gameshelf")
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.gameshelf.args"), []any{"mcp"})
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.gameshelf.env.GAMESHELF_HOME"), "/srv/games")
	})

	c.Run("second install is idempotent", func(c *qt.C) {
		path := filepath.Join(t.TempDir(), "mcp.json")

		_, err := setup.Install(path, "", false)
		c.Assert(err, qt.IsNil)
		res, err := setup.Install(path, "", false)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Changed, qt.IsFalse)
		c.Assert(res.Message, qt.Contains, "Already installed")
	})

	c.Run("force replaces an existing entry", func(c *qt.C) {
		path := filepath.Join(t.TempDir(), "mcp.json")

		_, err := setup.Install(path, "/old", false)
		c.Assert(err, qt.IsNil)
		res, err := setup.Install(path, "/new", true)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Changed, qt.IsTrue)

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.gameshelf.env.GAMESHELF_HOME"), "/new")
	})

	c.Run("other servers and keys are preserved", func(c *qt.C) {
		path := filepath.Join(t.TempDir(), "mcp.json")
		existing := `{"theme":"dark","mcpServers":{"other":{"command":"other"}}}`
		c.Assert(os.WriteFile(path, []byte(existing), 0o600), qt.IsNil)

		_, err := setup.Install(path, "", false)
		c.Assert(err, qt.IsNil)

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.theme"), "dark")
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.other.command"), "other")
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.gameshelf.type"), "stdio")
	})
}

func TestInstall_FailurePath(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "mcp.json")
	c.Assert(os.WriteFile(path, []byte("not json"), 0o600), qt.IsNil)

	_, err := setup.Install(path, "", false)
	c.Assert(err, qt.IsNotNil)

	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "not json")
}

func TestUninstall_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("missing file is a no-op", func(c *qt.C) {
		res, err := setup.Uninstall(filepath.Join(t.TempDir(), "mcp.json"))
		c.Assert(err, qt.IsNil)
		c.Assert(res.Changed, qt.IsFalse)
	})

	c.Run("file left empty is removed", func(c *qt.C) {
		path := filepath.Join(t.TempDir(), "mcp.json")
		_, err := setup.Install(path, "", false)
		c.Assert(err, qt.IsNil)

		res, err := setup.Uninstall(path)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Changed, qt.IsTrue)

		_, err = os.Stat(path)
		c.Assert(os.IsNotExist(err), qt.IsTrue)
	})

	c.Run("other servers survive", func(c *qt.C) {
		path := filepath.Join(t.TempDir(), "mcp.json")
		existing := `{"mcpServers":{"other":{"command":"other"}}}`
		c.Assert(os.WriteFile(path, []byte(existing), 0o600), qt.IsNil)
		_, err := setup.Install(path, "", false)
		c.Assert(err, qt.IsNil)

		res, err := setup.Uninstall(path)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Changed, qt.IsTrue)

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.other.command"), "other")
	})

	c.Run("not installed leaves the file alone", func(c *qt.C) {
		path := filepath.Join(t.TempDir(), "mcp.json")
		c.Assert(os.WriteFile(path, []byte(`{"mcpServers":{}}`), 0o600), qt.IsNil)

		res, err := setup.Uninstall(path)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Changed, qt.IsFalse)
		c.Assert(res.Message, qt.Contains, "Not installed")
	})
}
