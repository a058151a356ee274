// internal/lifeline/lifeline.go
//
// Lifeline (hint) menu for the daily puzzle.
// Responsibilities:
//   - Define the fixed, ordered list of purchasable hints, each with a point
//     cost and a pure reveal function over the answer entry.
//   - Lookup by key for purchase handling.
//
// The menu is identical every day. Purchase rules (score check, once per
// day, locked after a win) live in the game engine, not here.

package lifeline

import (
	"strings"
	"unicode/utf8"

	"github.com/cozygrove/skill-issue/internal/catalog"
)

// Value is the revealed payload of a purchased lifeline.
// Concrete types are JSON-friendly: string, int, bool or []string.
type Value any

// Definition is one entry in the hint menu.
type Definition struct {
	Key    string
	Label  string
	Cost   int
	Reveal func(*catalog.Entry) Value
}

// defs is the canonical menu, cheapest utility first. Order is part of the
// contract: clients render the menu in this order.
var defs = []Definition{
	{
		Key:   "age_rating",
		Label: "Age rating",
		Cost:  100,
		Reveal: func(e *catalog.Entry) Value {
			return e.AgeRating
		},
	},
	{
		Key:   "release_year",
		Label: "Release year",
		Cost:  150,
		Reveal: func(e *catalog.Entry) Value {
			return e.ReleaseYear
		},
	},
	{
		Key:   "platforms",
		Label: "Platforms",
		Cost:  150,
		Reveal: func(e *catalog.Entry) Value {
			return append([]string(nil), e.Platforms...)
		},
	},
	{
		Key:   "genre_tags",
		Label: "Genres",
		Cost:  200,
		Reveal: func(e *catalog.Entry) Value {
			return append([]string(nil), e.GenreTags...)
		},
	},
	{
		Key:   "vibe",
		Label: "The vibe",
		Cost:  250,
		Reveal: func(e *catalog.Entry) Value {
			return e.Vibe
		},
	},
	{
		Key:   "first_letter",
		Label: "First letter",
		Cost:  300,
		Reveal: func(e *catalog.Entry) Value {
			r, _ := utf8.DecodeRuneInString(e.Title)
			if r == utf8.RuneError {
				return ""
			}
			return strings.ToUpper(string(r))
		},
	},
}

// Definitions returns the ordered hint menu.
// The slice is shared; callers must not modify it.
func Definitions() []Definition { return defs }

// Find returns the definition for key, if it exists.
func Find(key string) (Definition, bool) {
	for _, d := range defs {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}
