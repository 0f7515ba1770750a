// Package category implements the file-backed category store.
//
// Every mutation loads the whole document, transforms it in memory and
// rewrites it. The store keeps no cache and takes no locks: two overlapping
// calls against the same path race and the later write wins. Callers that
// need ordering must wait for each call to return before issuing the next.
package category

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-ports/gameshelf/internal/ident"
	"github.com/go-ports/gameshelf/internal/models"
	"github.com/go-ports/gameshelf/internal/storage"
)

var (
	// ErrCategoryNotFound is returned when no category has the requested id.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrGameNotFound is returned when a category does not contain the requested game.
	ErrGameNotFound = errors.New("game not found in category")
	// ErrInvalidDirection is returned for a Direction other than Up or Down.
	ErrInvalidDirection = errors.New("invalid direction")
)

// ---------------------------------------------------------------------------
// Direction
// ---------------------------------------------------------------------------

// Direction selects which neighbour an element is swapped with.
type Direction int

const (
	Up Direction = iota + 1
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection accepts "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("%w: %q (want up or down)", ErrInvalidDirection, s)
}

// neighbour returns the index adjacent to i in direction d within a sequence
// of length n. ok is false when i is already at that edge.
func neighbour(i, n int, d Direction) (j int, ok bool) {
	if d == Up {
		j = i - 1
	} else {
		j = i + 1
	}
	return j, j >= 0 && j < n
}

// ---------------------------------------------------------------------------
// Store
// ---------------------------------------------------------------------------

// Store performs read-modify-write operations on category documents held by
// a storage.Backend.
type Store struct {
	backend storage.Backend
	log     *slog.Logger
}

// New returns a Store over backend. A nil logger discards all messages.
func New(backend storage.Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{backend: backend, log: logger}
}

// GetCategoryData reads and parses the document at path.
// Any read or parse failure is logged and yields an empty document.
func (s *Store) GetCategoryData(path string) models.Document {
	data, err := s.backend.ReadDocument(path)
	if err != nil {
		s.log.Error("read category document", "path", path, "err", err)
		return models.Document{}
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Error("parse category document", "path", path, "err", err)
		return models.Document{}
	}
	return doc.Normalize()
}

// UpdateCategoryData serializes doc with two-space indentation and
// overwrites path. Failures are logged and returned.
func (s *Store) UpdateCategoryData(path string, doc models.Document) error {
	data, err := Encode(doc)
	if err != nil {
		s.log.Error("encode category document", "path", path, "err", err)
		return fmt.Errorf("UpdateCategoryData: encode: %w", err)
	}
	if err := s.backend.WriteDocument(path, data); err != nil {
		s.log.Error("write category document", "path", path, "err", err)
		return fmt.Errorf("UpdateCategoryData: %w", err)
	}
	s.log.Info("category data updated", "path", path, "categories", len(doc))
	return nil
}

// Encode renders doc the way it is stored on disk: indented by two spaces,
// HTML characters unescaped, no trailing newline, nil slices as [].
func Encode(doc models.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc.Clone().Normalize()); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// AddNewCategory appends a category named name with no games.
// The id is derived from name; an existing category with the same name
// produces a duplicate id.
func (s *Store) AddNewCategory(path, name string) (models.Category, error) {
	doc := s.GetCategoryData(path)
	cat := models.Category{
		ID:    ident.NineDigit(name),
		Name:  name,
		Games: make([]string, 0),
	}
	doc = append(doc, cat)
	if err := s.UpdateCategoryData(path, doc); err != nil {
		return models.Category{}, fmt.Errorf("AddNewCategory: %w", err)
	}
	return cat, nil
}

// DeleteCategory removes every category whose id matches. The document is
// rewritten even when nothing matched. Returns true if a category was removed.
func (s *Store) DeleteCategory(path, categoryID string) (bool, error) {
	doc := s.GetCategoryData(path)
	kept := make(models.Document, 0, len(doc))
	for _, c := range doc {
		if c.ID != categoryID {
			kept = append(kept, c)
		}
	}
	if err := s.UpdateCategoryData(path, kept); err != nil {
		return false, fmt.Errorf("DeleteCategory: %w", err)
	}
	return len(kept) < len(doc), nil
}

// RenameCategory sets the name of the category with the given id.
func (s *Store) RenameCategory(path, categoryID, newName string) error {
	doc := s.GetCategoryData(path)
	cat, err := s.lookup(doc, "RenameCategory", categoryID)
	if err != nil {
		return err
	}
	cat.Name = newName
	if err := s.UpdateCategoryData(path, doc); err != nil {
		return fmt.Errorf("RenameCategory: %w", err)
	}
	return nil
}

// AddGameToCategory appends gameID to the category's games. When the game is
// already a member a warning is logged, nothing is written and false is returned.
func (s *Store) AddGameToCategory(path, categoryID, gameID string) (bool, error) {
	doc := s.GetCategoryData(path)
	cat, err := s.lookup(doc, "AddGameToCategory", categoryID)
	if err != nil {
		return false, err
	}
	if cat.HasGame(gameID) {
		s.log.Warn("game already in category", "game", gameID, "category", categoryID)
		return false, nil
	}
	cat.Games = append(cat.Games, gameID)
	if err := s.UpdateCategoryData(path, doc); err != nil {
		return false, fmt.Errorf("AddGameToCategory: %w", err)
	}
	return true, nil
}

// DeleteGameFromCategory removes all occurrences of gameID from one category
// and rewrites the document. Returns true if anything was removed.
func (s *Store) DeleteGameFromCategory(path, categoryID, gameID string) (bool, error) {
	doc := s.GetCategoryData(path)
	cat, err := s.lookup(doc, "DeleteGameFromCategory", categoryID)
	if err != nil {
		return false, err
	}
	removed := cat.RemoveGame(gameID)
	if err := s.UpdateCategoryData(path, doc); err != nil {
		return false, fmt.Errorf("DeleteGameFromCategory: %w", err)
	}
	return removed > 0, nil
}

// DeleteGameFromAllCategories removes gameID from every category with a
// single write. Returns the number of categories that referenced it.
func (s *Store) DeleteGameFromAllCategories(path, gameID string) (int, error) {
	doc := s.GetCategoryData(path)
	touched := 0
	for i := range doc {
		if doc[i].RemoveGame(gameID) > 0 {
			touched++
		}
	}
	if err := s.UpdateCategoryData(path, doc); err != nil {
		return 0, fmt.Errorf("DeleteGameFromAllCategories: %w", err)
	}
	return touched, nil
}

// MoveCategoryUp swaps the category with its predecessor.
func (s *Store) MoveCategoryUp(path, categoryID string) (bool, error) {
	return s.MoveCategory(path, categoryID, Up)
}

// MoveCategoryDown swaps the category with its successor.
func (s *Store) MoveCategoryDown(path, categoryID string) (bool, error) {
	return s.MoveCategory(path, categoryID, Down)
}

// MoveCategory swaps the category with its neighbour in direction dir.
// A category already at that edge is left in place without a write and
// false is returned.
func (s *Store) MoveCategory(path, categoryID string, dir Direction) (bool, error) {
	if dir != Up && dir != Down {
		return false, fmt.Errorf("MoveCategory: %w: %s", ErrInvalidDirection, dir)
	}
	doc := s.GetCategoryData(path)
	i := doc.IndexOf(categoryID)
	if i < 0 {
		s.log.Warn("category not found", "op", "MoveCategory", "category", categoryID)
		return false, fmt.Errorf("MoveCategory %s: %w", categoryID, ErrCategoryNotFound)
	}
	j, ok := neighbour(i, len(doc), dir)
	if !ok {
		s.log.Info("category already at edge", "category", categoryID, "direction", dir.String())
		return false, nil
	}
	doc[i], doc[j] = doc[j], doc[i]
	if err := s.UpdateCategoryData(path, doc); err != nil {
		return false, fmt.Errorf("MoveCategory: %w", err)
	}
	return true, nil
}

// MoveGameUp swaps gameID with the game before it in the category.
func (s *Store) MoveGameUp(path, categoryID, gameID string) (bool, error) {
	return s.MoveGame(path, categoryID, gameID, Up)
}

// MoveGameDown swaps gameID with the game after it in the category.
func (s *Store) MoveGameDown(path, categoryID, gameID string) (bool, error) {
	return s.MoveGame(path, categoryID, gameID, Down)
}

// MoveGame swaps the first occurrence of gameID with its neighbour in
// direction dir inside one category.
func (s *Store) MoveGame(path, categoryID, gameID string, dir Direction) (bool, error) {
	if dir != Up && dir != Down {
		return false, fmt.Errorf("MoveGame: %w: %s", ErrInvalidDirection, dir)
	}
	doc := s.GetCategoryData(path)
	cat, err := s.lookup(doc, "MoveGame", categoryID)
	if err != nil {
		return false, err
	}
	i := cat.IndexOfGame(gameID)
	if i < 0 {
		s.log.Warn("game not found", "op", "MoveGame", "category", categoryID, "game", gameID)
		return false, fmt.Errorf("MoveGame %s in %s: %w", gameID, categoryID, ErrGameNotFound)
	}
	j, ok := neighbour(i, len(cat.Games), dir)
	if !ok {
		s.log.Info("game already at edge", "category", categoryID, "game", gameID, "direction", dir.String())
		return false, nil
	}
	cat.Games[i], cat.Games[j] = cat.Games[j], cat.Games[i]
	if err := s.UpdateCategoryData(path, doc); err != nil {
		return false, fmt.Errorf("MoveGame: %w", err)
	}
	return true, nil
}

// lookup finds categoryID in doc, logging and returning ErrCategoryNotFound
// when it is absent.
func (s *Store) lookup(doc models.Document, op, categoryID string) (*models.Category, error) {
	cat, ok := doc.Find(categoryID)
	if !ok {
		s.log.Warn("category not found", "op", op, "category", categoryID)
		return nil, fmt.Errorf("%s %s: %w", op, categoryID, ErrCategoryNotFound)
	}
	return cat, nil
}
