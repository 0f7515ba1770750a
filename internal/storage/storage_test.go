package storage_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/gameshelf/internal/storage"
)

func TestFile_RoundTrip(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "categories.json")
	var b storage.File

	_, err := b.ReadDocument(path)
	c.Assert(errors.Is(err, fs.ErrNotExist), qt.IsTrue)

	c.Assert(b.WriteDocument(path, []byte("[]")), qt.IsNil)
	got, err := b.ReadDocument(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(got), qt.Equals, "[]")

	c.Assert(b.WriteDocument(path, []byte(`[{"id":"1"}]`)), qt.IsNil)
	raw, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(raw), qt.Equals, `[{"id":"1"}]`)
}

func TestFile_WriteToMissingDirectoryFails(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "missing", "categories.json")
	err := storage.File{}.WriteDocument(path, []byte("[]"))
	c.Assert(err, qt.IsNotNil)
}

func TestMemory_HappyPath(t *testing.T) {
	c := qt.New(t)

	m := storage.NewMemory()
	_, err := m.ReadDocument("doc")
	c.Assert(errors.Is(err, fs.ErrNotExist), qt.IsTrue)

	m.Seed("doc", []byte("seeded"))
	c.Assert(m.Writes(), qt.Equals, 0)

	c.Assert(m.WriteDocument("doc", []byte("written")), qt.IsNil)
	c.Assert(m.Writes(), qt.Equals, 1)

	got, err := m.ReadDocument("doc")
	c.Assert(err, qt.IsNil)
	c.Assert(string(got), qt.Equals, "written")

	// Returned slices are copies.
	got[0] = 'X'
	again, _ := m.ReadDocument("doc")
	c.Assert(string(again), qt.Equals, "written")
}

func TestMemory_WriteErr(t *testing.T) {
	c := qt.New(t)

	boom := errors.New("disk full")
	m := storage.NewMemory()
	m.WriteErr = boom
	c.Assert(m.WriteDocument("doc", []byte("[]")), qt.ErrorIs, boom)
	c.Assert(m.Writes(), qt.Equals, 0)
}
