package service_test

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/gameshelf/internal/category"
	"github.com/go-ports/gameshelf/internal/ident"
	"github.com/go-ports/gameshelf/internal/service"
)

// newService returns a Service rooted at a fresh temp dir, optionally
// writing configYAML first. Logs are captured in the returned buffer.
func newService(c *qt.C, configYAML string) (*service.Service, *bytes.Buffer) {
	c.TB.Helper()
	home := c.TB.TempDir()
	if configYAML != "" {
		c.Assert(os.WriteFile(filepath.Join(home, "config.yaml"), []byte(configYAML), 0o600), qt.IsNil)
	}
	var logs bytes.Buffer
	svc, err := service.NewWithOptions(home, service.Options{LogOutput: &logs})
	c.Assert(err, qt.IsNil)
	c.TB.Cleanup(func() { _ = svc.Close() })
	return svc, &logs
}

func TestNew_FileBackend(t *testing.T) {
	c := qt.New(t)

	svc, _ := newService(c, "")
	c.Assert(svc.DocumentPath, qt.Equals, filepath.Join(svc.Home, "categories.json"))
	c.Assert(svc.Watchable(), qt.IsTrue)
	c.Assert(svc.Logger(), qt.IsNotNil)
}

func TestNew_FailurePath(t *testing.T) {
	c := qt.New(t)

	home := t.TempDir()
	c.Assert(os.WriteFile(filepath.Join(home, "config.yaml"), []byte("storage:\n  backend: s3\n"), 0o600), qt.IsNil)
	_, err := service.New(home)
	c.Assert(err, qt.ErrorIs, service.ErrUnsupportedBackend)

	home = t.TempDir()
	c.Assert(os.WriteFile(filepath.Join(home, "config.yaml"), []byte("log:\n  format: xml\n"), 0o600), qt.IsNil)
	_, err = service.New(home)
	c.Assert(err, qt.ErrorMatches, `service.New: logger: .*`)
}

func TestInit(t *testing.T) {
	c := qt.New(t)

	svc, _ := newService(c, "")
	created, err := svc.Init()
	c.Assert(err, qt.IsNil)
	c.Assert(created, qt.IsTrue)

	data, err := os.ReadFile(svc.DocumentPath)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "[]")

	created, err = svc.Init()
	c.Assert(err, qt.IsNil)
	c.Assert(created, qt.IsFalse)
}

func TestLifecycle(t *testing.T) {
	c := qt.New(t)

	backends := []struct {
		name string
		yaml string
	}{
		{"file", ""},
		{"sqlite", "storage:\n  backend: sqlite\n"},
	}

	for _, b := range backends {
		c.Run(b.name, func(c *qt.C) {
			svc, _ := newService(c, b.yaml)

			rpg, err := svc.AddCategory("RPG")
			c.Assert(err, qt.IsNil)
			c.Assert(rpg.ID, qt.Equals, ident.NineDigit("RPG"))
			puzzle, err := svc.AddCategory("Puzzle")
			c.Assert(err, qt.IsNil)

			added, err := svc.AddGame(rpg.ID, "g1")
			c.Assert(err, qt.IsNil)
			c.Assert(added, qt.IsTrue)
			_, err = svc.AddGame(rpg.ID, "g2")
			c.Assert(err, qt.IsNil)
			_, err = svc.AddGame(puzzle.ID, "g2")
			c.Assert(err, qt.IsNil)

			moved, err := svc.MoveGame(rpg.ID, "g2", category.Up)
			c.Assert(err, qt.IsNil)
			c.Assert(moved, qt.IsTrue)

			moved, err = svc.MoveCategory(puzzle.ID, category.Up)
			c.Assert(err, qt.IsNil)
			c.Assert(moved, qt.IsTrue)

			c.Assert(svc.RenameCategory(puzzle.ID, "Logic"), qt.IsNil)

			doc := svc.List()
			c.Assert(doc, qt.HasLen, 2)
			c.Assert(doc[0].Name, qt.Equals, "Logic")
			c.Assert(doc[1].Games, qt.DeepEquals, []string{"g2", "g1"})

			touched, err := svc.PurgeGame("g2")
			c.Assert(err, qt.IsNil)
			c.Assert(touched, qt.Equals, 2)

			removed, err := svc.RemoveGame(rpg.ID, "g1")
			c.Assert(err, qt.IsNil)
			c.Assert(removed, qt.IsTrue)

			deleted, err := svc.DeleteCategory(puzzle.ID)
			c.Assert(err, qt.IsNil)
			c.Assert(deleted, qt.IsTrue)

			doc = svc.List()
			c.Assert(doc, qt.HasLen, 1)
			c.Assert(doc[0].Games, qt.HasLen, 0)
		})
	}
}

func TestSQLiteBackend_PersistsAcrossServices(t *testing.T) {
	c := qt.New(t)

	home := t.TempDir()
	c.Assert(os.WriteFile(filepath.Join(home, "config.yaml"), []byte("storage:\n  backend: sqlite\n"), 0o600), qt.IsNil)

	svc, err := service.New(home)
	c.Assert(err, qt.IsNil)
	c.Assert(svc.Watchable(), qt.IsFalse)
	_, err = svc.AddCategory("Shooters")
	c.Assert(err, qt.IsNil)
	c.Assert(svc.Close(), qt.IsNil)

	svc2, err := service.New(home)
	c.Assert(err, qt.IsNil)
	defer svc2.Close()
	doc := svc2.List()
	c.Assert(doc, qt.HasLen, 1)
	c.Assert(doc[0].Name, qt.Equals, "Shooters")

	_, err = os.Stat(filepath.Join(home, "library.db"))
	c.Assert(err, qt.IsNil)
}

func TestImportExport(t *testing.T) {
	c := qt.New(t)

	svc, _ := newService(c, "")
	doc, err := svc.Import([]byte(`[{"id":"123456789","name":"Favorites","games":["gameId1","gameId2"]},{"id":"987654321","name":"Empty"}]`))
	c.Assert(err, qt.IsNil)
	c.Assert(doc, qt.HasLen, 2)
	c.Assert(doc[1].Games, qt.DeepEquals, []string{})

	out, err := svc.Export()
	c.Assert(err, qt.IsNil)
	c.Assert(string(out), qt.Contains, "\"name\": \"Favorites\"")
	c.Assert(string(out), qt.Contains, "\"games\": []")

	_, err = svc.Import([]byte("{broken"))
	c.Assert(err, qt.ErrorMatches, "Import: parse: .*")
	c.Assert(svc.List(), qt.HasLen, 2)
}

func TestValidation_FailurePath(t *testing.T) {
	c := qt.New(t)

	svc, _ := newService(c, "")
	_, err := svc.AddCategory("")
	c.Assert(err, qt.ErrorMatches, "AddCategory: name is required")

	err = svc.RenameCategory("123", "")
	c.Assert(err, qt.ErrorMatches, "RenameCategory: name is required")

	err = svc.RenameCategory("123", "x")
	c.Assert(err, qt.ErrorIs, category.ErrCategoryNotFound)
}

func TestConcurrentCallsAreSerialized(t *testing.T) {
	c := qt.New(t)

	svc, _ := newService(c, "")
	cat, err := svc.AddCategory("Bulk")
	c.Assert(err, qt.IsNil)

	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.AddGame(cat.ID, ident.NineDigit(string(rune('a'+i))))
		}()
	}
	wg.Wait()

	c.Assert(svc.List()[0].Games, qt.HasLen, n)
}
