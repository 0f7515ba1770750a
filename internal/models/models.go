// Package models defines the category document types shared by every layer.
package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Category is one user-defined grouping of games.
//
// Keys other than id, name and games are kept in Extra and written back
// after the known fields, so records written by other tools survive a
// rewrite.
type Category struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Games []string `json:"games"`

	Extra map[string]json.RawMessage `json:"-"`
}

// categoryFields is Category without its methods.
type categoryFields Category

// UnmarshalJSON decodes the known fields and stashes the rest in Extra.
func (c *Category) UnmarshalJSON(data []byte) error {
	var known categoryFields
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	delete(raw, "id")
	delete(raw, "name")
	delete(raw, "games")
	known.Extra = nil
	if len(raw) > 0 {
		known.Extra = raw
	}
	*c = Category(known)
	return nil
}

// MarshalJSON writes id, name and games followed by Extra in key order.
// HTML characters are not escaped.
func (c Category) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(categoryFields(c)); err != nil {
		return nil, err
	}
	out := append([]byte(nil), bytes.TrimRight(buf.Bytes(), "\n")...)
	if len(c.Extra) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(c.Extra))
	for k := range c.Extra {
		if k != "id" && k != "name" && k != "games" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out = out[:len(out)-1] // drop the closing brace
	for _, k := range keys {
		buf.Reset()
		if err := enc.Encode(k); err != nil {
			return nil, err
		}
		out = append(out, ',')
		out = append(out, bytes.TrimRight(buf.Bytes(), "\n")...)
		out = append(out, ':')
		out = append(out, c.Extra[k]...)
	}
	return append(out, '}'), nil
}

// Document is the full, ordered category list as persisted on disk.
// Order is user-visible and never sorted.
type Document []Category

// IndexOf returns the position of the first category with the given id, or -1.
func (d Document) IndexOf(id string) int {
	for i := range d {
		if d[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns a pointer into d for the category with the given id.
// The second result is false when no category matches.
func (d Document) Find(id string) (*Category, bool) {
	i := d.IndexOf(id)
	if i < 0 {
		return nil, false
	}
	return &d[i], true
}

// IndexOfGame returns the position of gameID in c.Games, or -1.
func (c *Category) IndexOfGame(gameID string) int {
	for i, g := range c.Games {
		if g == gameID {
			return i
		}
	}
	return -1
}

// HasGame reports whether gameID is a member of c.
func (c *Category) HasGame(gameID string) bool {
	return c.IndexOfGame(gameID) >= 0
}

// RemoveGame drops every occurrence of gameID from c.Games and reports
// how many entries were removed.
func (c *Category) RemoveGame(gameID string) int {
	kept := make([]string, 0, len(c.Games))
	for _, g := range c.Games {
		if g != gameID {
			kept = append(kept, g)
		}
	}
	removed := len(c.Games) - len(kept)
	c.Games = kept
	return removed
}

// Normalize replaces nil slices with empty ones so the document always
// serializes as arrays rather than null.
func (d Document) Normalize() Document {
	if d == nil {
		return Document{}
	}
	for i := range d {
		if d[i].Games == nil {
			d[i].Games = make([]string, 0)
		}
	}
	return d
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for i, c := range d {
		out[i] = Category{ID: c.ID, Name: c.Name}
		if c.Games != nil {
			out[i].Games = append(make([]string, 0, len(c.Games)), c.Games...)
		}
		if c.Extra != nil {
			out[i].Extra = make(map[string]json.RawMessage, len(c.Extra))
			for k, v := range c.Extra {
				out[i].Extra[k] = append(json.RawMessage(nil), v...)
			}
		}
	}
	return out
}
