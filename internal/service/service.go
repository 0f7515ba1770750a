// Package service implements the library Service that wires together
// configuration, storage backend, logging and the category store for one
// library home.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-ports/gameshelf/internal/category"
	"github.com/go-ports/gameshelf/internal/config"
	"github.com/go-ports/gameshelf/internal/db"
	"github.com/go-ports/gameshelf/internal/logging"
	"github.com/go-ports/gameshelf/internal/models"
	"github.com/go-ports/gameshelf/internal/storage"
)

// ErrUnsupportedBackend is returned when config names an unknown storage backend.
var ErrUnsupportedBackend = errors.New("unsupported storage backend")

// Options tweak how New builds a Service.
type Options struct {
	// LogOutput receives diagnostic logs. Defaults to os.Stderr.
	LogOutput io.Writer
	// Logger, when set, is used as-is and LogOutput is ignored.
	Logger *slog.Logger
}

// Service owns the category document of one library home.
//
// The store itself does not serialize calls; Service does, so concurrent
// callers such as MCP handlers cannot interleave a read-modify-write cycle.
type Service struct {
	Home         string
	Config       *config.Config
	DocumentPath string

	store   *category.Store
	backend storage.Backend
	closer  io.Closer
	log     *slog.Logger
	mu      sync.Mutex
}

// New initialises a Service rooted at home.
// If home is empty it is resolved via config.GetLibraryHome.
func New(home string) (*Service, error) {
	return NewWithOptions(home, Options{})
}

// NewWithOptions is New with explicit logging options.
func NewWithOptions(home string, opts Options) (*Service, error) {
	if home == "" {
		home = config.GetLibraryHome()
	}
	if err := os.MkdirAll(home, 0o755); err != nil {
		return nil, fmt.Errorf("service.New: create library home: %w", err)
	}

	cfg, err := config.Load(filepath.Join(home, "config.yaml"))
	if err != nil {
		return nil, fmt.Errorf("service.New: load config: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		out := opts.LogOutput
		if out == nil {
			out = os.Stderr
		}
		logger, err = logging.New(out, cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return nil, fmt.Errorf("service.New: logger: %w", err)
		}
	}

	s := &Service{
		Home:   home,
		Config: cfg,
		log:    logger,
	}

	switch cfg.Storage.Backend {
	case "file":
		s.backend = storage.File{}
		s.DocumentPath = filepath.Join(home, cfg.Storage.Document)
	case "sqlite":
		d, err := db.Open(filepath.Join(home, cfg.Storage.Database))
		if err != nil {
			return nil, fmt.Errorf("service.New: open db: %w", err)
		}
		s.backend = d
		s.closer = d
		s.DocumentPath = cfg.Storage.Document
	default:
		return nil, fmt.Errorf("service.New: %w: %q", ErrUnsupportedBackend, cfg.Storage.Backend)
	}

	s.store = category.New(s.backend, logger)
	return s, nil
}

// Close releases all resources held by the service.
func (s *Service) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// Logger returns the logger injected into the store.
func (s *Service) Logger() *slog.Logger { return s.log }

// Watchable reports whether the document is a plain file that can be watched.
func (s *Service) Watchable() bool {
	_, ok := s.backend.(storage.File)
	return ok
}

// ---------------------------------------------------------------------------
// Document
// ---------------------------------------------------------------------------

// Init writes an empty document when none exists yet.
// Returns true if a document was created.
func (s *Service) Init() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.backend.ReadDocument(s.DocumentPath)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("Init: %w", err)
	}
	if err := s.store.UpdateCategoryData(s.DocumentPath, models.Document{}); err != nil {
		return false, fmt.Errorf("Init: %w", err)
	}
	return true, nil
}

// List returns the current document.
func (s *Service) List() models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetCategoryData(s.DocumentPath)
}

// Export returns the document in its on-disk encoding.
func (s *Service) Export() ([]byte, error) {
	return category.Encode(s.List())
}

// Import parses data as a category document and replaces the stored one.
func (s *Service) Import(data []byte) (models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("Import: parse: %w", err)
	}
	doc = doc.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.UpdateCategoryData(s.DocumentPath, doc); err != nil {
		return nil, fmt.Errorf("Import: %w", err)
	}
	return doc, nil
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

// AddCategory creates a category named name.
func (s *Service) AddCategory(name string) (models.Category, error) {
	if name == "" {
		return models.Category{}, errors.New("AddCategory: name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.AddNewCategory(s.DocumentPath, name)
}

// RenameCategory renames the category with the given id.
func (s *Service) RenameCategory(id, name string) error {
	if name == "" {
		return errors.New("RenameCategory: name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.RenameCategory(s.DocumentPath, id, name)
}

// DeleteCategory removes the category with the given id.
func (s *Service) DeleteCategory(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.DeleteCategory(s.DocumentPath, id)
}

// MoveCategory swaps a category with its neighbour.
func (s *Service) MoveCategory(id string, dir category.Direction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.MoveCategory(s.DocumentPath, id, dir)
}

// ---------------------------------------------------------------------------
// Games
// ---------------------------------------------------------------------------

// AddGame adds gameID to a category.
func (s *Service) AddGame(categoryID, gameID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.AddGameToCategory(s.DocumentPath, categoryID, gameID)
}

// RemoveGame removes gameID from one category.
func (s *Service) RemoveGame(categoryID, gameID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.DeleteGameFromCategory(s.DocumentPath, categoryID, gameID)
}

// PurgeGame removes gameID from every category.
func (s *Service) PurgeGame(gameID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.DeleteGameFromAllCategories(s.DocumentPath, gameID)
}

// MoveGame swaps gameID with its neighbour inside a category.
func (s *Service) MoveGame(categoryID, gameID string, dir category.Direction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.MoveGame(s.DocumentPath, categoryID, gameID, dir)
}
