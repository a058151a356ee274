// internal/game/engine.go
//
// State transitions for a single day's play.
// Responsibilities:
//   - Apply guesses: score via the proximity package, flip Won on the
//     exact-match sentinel, charge the flat guess cost otherwise.
//   - Purchase lifelines: enforce the purchase rule (not won, not already
//     used, enough score) and record the revealed value.
//
// Every rejection is a typed error and a strict no-op: the state is left
// untouched so callers can persist unconditionally after a nil error.
package game

import (
	"errors"

	"github.com/cozygrove/skill-issue/internal/catalog"
	"github.com/cozygrove/skill-issue/internal/lifeline"
	"github.com/cozygrove/skill-issue/internal/proximity"
)

var (
	// ErrDayWon rejects any mutation after the day is solved.
	ErrDayWon = errors.New("day already won")
	// ErrLifelineUsed rejects a repeat purchase of the same lifeline.
	ErrLifelineUsed = errors.New("lifeline already used")
	// ErrInsufficientScore rejects a purchase the player cannot afford.
	ErrInsufficientScore = errors.New("insufficient score")
)

// ApplyGuess scores guess against answer and appends the record.
// A wrong guess costs GuessCost (floored at 0); the exact match sets Won.
// Returns ErrDayWon without mutating anything if the day is already solved.
func (s *DayState) ApplyGuess(guess, answer *catalog.Entry) (GuessRecord, error) {
	if s.Won {
		return GuessRecord{}, ErrDayWon
	}
	rec := GuessRecord{GameID: guess.ID, Proximity: proximity.Distance(guess, answer)}
	s.Guesses = append(s.Guesses, rec)
	if rec.Proximity == proximity.ExactMatch {
		s.Won = true
	} else {
		s.spend(GuessCost)
	}
	return rec, nil
}

// PurchaseLifeline buys def and records its reveal over the answer.
// The purchase is irreversible; a second attempt for the same key returns
// ErrLifelineUsed and changes nothing.
func (s *DayState) PurchaseLifeline(def lifeline.Definition, answer *catalog.Entry) (lifeline.Value, error) {
	if s.Won {
		return nil, ErrDayWon
	}
	if s.LifelineUsed(def.Key) {
		return nil, ErrLifelineUsed
	}
	if s.Score < def.Cost {
		return nil, ErrInsufficientScore
	}
	s.spend(def.Cost)
	v := def.Reveal(answer)
	s.LifelinesUsed = append(s.LifelinesUsed, def.Key)
	s.LifelinesRevealed[def.Key] = v
	return v, nil
}

// spend deducts points, floored at 0.
func (s *DayState) spend(cost int) {
	s.Score -= cost
	if s.Score < 0 {
		s.Score = 0
	}
}

// Status reports a coarse string representation of the day's state.
func (s *DayState) Status() string {
	if s.Won {
		return "won"
	}
	return "playing"
}
