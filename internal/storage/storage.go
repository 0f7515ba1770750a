// Package storage provides the document I/O backends used by the category store.
package storage

import (
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// Backend reads and writes whole documents addressed by path.
type Backend interface {
	ReadDocument(path string) ([]byte, error)
	WriteDocument(path string, data []byte) error
}

// ---------------------------------------------------------------------------
// File
// ---------------------------------------------------------------------------

// File stores each document as a regular file on the OS filesystem.
type File struct{}

// ReadDocument returns the file contents at path.
func (File) ReadDocument(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteDocument overwrites the file at path with data.
func (File) WriteDocument(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644) // #nosec G306 -- category documents hold no secrets
}

// ---------------------------------------------------------------------------
// Memory
// ---------------------------------------------------------------------------

// Memory keeps documents in a map. It is meant for tests.
type Memory struct {
	mu     sync.Mutex
	docs   map[string][]byte
	writes int

	// WriteErr, when set, is returned by every WriteDocument call.
	WriteErr error
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

// Seed stores data at path without counting it as a write.
func (m *Memory) Seed(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[path] = append([]byte(nil), data...)
}

// ReadDocument returns a copy of the stored bytes, or an error wrapping
// fs.ErrNotExist when nothing has been stored at path.
func (m *Memory) ReadDocument(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[path]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", path, fs.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

// WriteDocument stores a copy of data at path.
func (m *Memory) WriteDocument(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.docs[path] = append([]byte(nil), data...)
	m.writes++
	return nil
}

// Writes reports how many successful writes have been made.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
