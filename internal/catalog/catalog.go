// internal/catalog/catalog.go
//
// Read-only game catalog for the Skill Issue daily puzzle.
// Responsibilities:
//   - Load the candidate-answer list from an environment-provided JSON file
//     or fall back to the embedded default catalog.
//   - Preserve load order (the scheduler indexes into it) and expose an
//     ID → entry lookup for guess resolution.
//
// Constraints:
//   • Entries are immutable after load; nothing in the engine mutates them.
//   • IDs must be unique and non-empty; duplicates are rejected at load.
//
// Environment variables:
//   CATALOG_FILE=/path/to/catalog.json

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cozygrove/skill-issue/assets"
)

// Entry is one candidate answer in the catalog.
// CriticScore is optional; a nil pointer means "no score on record".
type Entry struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	ReleaseYear   int      `json:"releaseYear"`
	GenreTags     []string `json:"genreTags"`
	Vibe          string   `json:"vibe"`
	Platforms     []string `json:"platforms"`
	AgeRating     int      `json:"ageRating"`
	IsMultiplayer bool     `json:"isMultiplayer"`
	CriticScore   *int     `json:"criticScore,omitempty"`
}

// Catalog holds the ordered answer list plus an ID index.
type Catalog struct {
	entries []Entry
	byID    map[string]*Entry
}

// Load reads the catalog from path, or from the embedded default when path
// is empty. The returned Catalog is ready for lookups.
func Load(path string) (*Catalog, error) {
	var raw []byte
	var err error
	if path != "" {
		raw, err = os.ReadFile(path)
	} else {
		raw, err = assets.CatalogJSON()
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a JSON catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c := &Catalog{entries: entries, byID: make(map[string]*Entry, len(entries))}
	for i := range c.entries {
		e := &c.entries[i]
		if e.ID == "" || e.Title == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id or title", i)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("catalog entry %q: duplicate id", e.ID)
		}
		c.byID[e.ID] = e
	}
	if len(c.entries) == 0 {
		return nil, errors.New("catalog is empty")
	}
	return c, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// At returns the entry at index i (caller guarantees 0 <= i < Len()).
func (c *Catalog) At(i int) *Entry { return &c.entries[i] }

// ByID looks up an entry by its identifier.
func (c *Catalog) ByID(id string) (*Entry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Entries returns the ordered entry slice. Callers must treat it as read-only.
func (c *Catalog) Entries() []Entry { return c.entries }
