// internal/game/types.go
//
// Core type definitions for the daily puzzle engine.
// Defines:
//   - GuessRecord: one scored guess (proximity 1 = exact-match win sentinel).
//   - DayState: the complete persisted record of one calendar date's play.
//
// DayState is the unit of persistence (JSON document keyed by YYYY-MM-DD).
// It is created lazily with defaults on first visit and never deleted.

package game

import (
	"github.com/cozygrove/skill-issue/internal/lifeline"
	"github.com/cozygrove/skill-issue/internal/proximity"
)

const (
	// InitialScore is the day's starting point budget.
	InitialScore = 1000
	// GuessCost is deducted from the score for every wrong guess.
	GuessCost = 25
)

// GuessRecord is one scored guess, append-only within a day.
type GuessRecord struct {
	GameID    string `json:"gameId"`
	Proximity int    `json:"proximity"`
}

// DayState holds everything played on a single date.
// Invariants (enforced by the engine):
//   - Won is true iff some guess carries the exact-match proximity.
//   - Score only decreases, floored at 0.
//   - LifelinesUsed and LifelinesRevealed always share the same key set.
//   - Once Won, no further guesses or purchases are accepted.
type DayState struct {
	Guesses           []GuessRecord             `json:"guesses"`
	Score             int                       `json:"score"`
	LifelinesUsed     []string                  `json:"lifelinesUsed"`
	LifelinesRevealed map[string]lifeline.Value `json:"lifelinesRevealed"`
	Won               bool                      `json:"won"`
}

// NewDayState returns a fresh all-defaults state for an unvisited date.
func NewDayState() *DayState {
	return &DayState{
		Guesses:           []GuessRecord{},
		Score:             InitialScore,
		LifelinesUsed:     []string{},
		LifelinesRevealed: map[string]lifeline.Value{},
	}
}

// Played reports whether any guess has been made.
func (s *DayState) Played() bool { return len(s.Guesses) > 0 }

// LifelineUsed reports whether key has already been purchased today.
func (s *DayState) LifelineUsed(key string) bool {
	for _, k := range s.LifelinesUsed {
		if k == key {
			return true
		}
	}
	return false
}

// Clone returns a deep copy; stores hand copies out so callers never alias
// persisted state.
func (s *DayState) Clone() *DayState {
	c := &DayState{
		Guesses:           append([]GuessRecord{}, s.Guesses...),
		Score:             s.Score,
		LifelinesUsed:     append([]string{}, s.LifelinesUsed...),
		LifelinesRevealed: make(map[string]lifeline.Value, len(s.LifelinesRevealed)),
		Won:               s.Won,
	}
	for k, v := range s.LifelinesRevealed {
		// Slice-typed reveals (platforms, genres) get their own backing
		// array so the copies cannot alias.
		if vs, ok := v.([]string); ok {
			c.LifelinesRevealed[k] = append([]string(nil), vs...)
			continue
		}
		c.LifelinesRevealed[k] = v
	}
	return c
}

// hasWinningGuess reports whether any recorded guess carries the
// exact-match proximity.
func (s *DayState) hasWinningGuess() bool {
	for _, g := range s.Guesses {
		if g.Proximity == proximity.ExactMatch {
			return true
		}
	}
	return false
}

// Valid checks the persisted shape. A record that fails is treated as
// absent: corrupted record = fresh state.
func (s *DayState) Valid() bool {
	if s.Score < 0 {
		return false
	}
	if s.Won != s.hasWinningGuess() {
		return false
	}
	if len(s.LifelinesUsed) != len(s.LifelinesRevealed) {
		return false
	}
	for _, k := range s.LifelinesUsed {
		if _, ok := s.LifelinesRevealed[k]; !ok {
			return false
		}
	}
	return true
}

// Normalize repairs nil collections after JSON decoding.
func (s *DayState) Normalize() {
	if s.Guesses == nil {
		s.Guesses = []GuessRecord{}
	}
	if s.LifelinesUsed == nil {
		s.LifelinesUsed = []string{}
	}
	if s.LifelinesRevealed == nil {
		s.LifelinesRevealed = map[string]lifeline.Value{}
	}
}
