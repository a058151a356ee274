// internal/schedule/schedule.go
//
// Epoch scheduler for the daily puzzle.
// Responsibilities:
//   - Map a calendar date to a deterministic catalog index, a sequential
//     puzzle number, and a playability verdict, all relative to the launch
//     date ("day 0") and a fixed timezone for "today".
//   - Enumerate the archive window [launch, today), newest first.
//
// Notes:
//   - "now" is injected via a constructor func so date-dependent behavior is
//     testable without touching the system clock.
//   - Day offsets are computed from calendar fields normalized to UTC
//     midnights, so daylight-saving shifts in the display timezone can never
//     produce fractional days.
//   - Malformed or out-of-window dates are ordinary verdicts (not playable),
//     not errors: archive/future navigation is a normal user action.

package schedule

import (
	"fmt"
	"time"

	"github.com/cozygrove/skill-issue/internal/catalog"
)

// DateLayout is the canonical YYYY-MM-DD key format.
const DateLayout = "2006-01-02"

// Scheduler derives puzzle assignments from the launch epoch.
type Scheduler struct {
	epoch time.Time // launch date as a UTC midnight
	loc   *time.Location
	now   func() time.Time
}

// New builds a Scheduler. launchDate is YYYY-MM-DD, loc is the fixed
// timezone that defines the shared day boundary, now supplies wall time
// (time.Now in production).
func New(launchDate string, loc *time.Location, now func() time.Time) (*Scheduler, error) {
	epoch, err := time.ParseInLocation(DateLayout, launchDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse launch date %q: %w", launchDate, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Scheduler{epoch: epoch, loc: loc, now: now}, nil
}

// LaunchDate returns the epoch as a date key.
func (s *Scheduler) LaunchDate() string { return s.epoch.Format(DateLayout) }

// Today returns the current date key in the scheduler's fixed timezone.
// Every player sees the same day boundary regardless of device timezone.
func (s *Scheduler) Today() string {
	return s.now().In(s.loc).Format(DateLayout)
}

// parseCivil normalizes a date key to a UTC midnight.
func parseCivil(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.UTC)
}

// DaysSinceEpoch returns the whole-day offset of date from the launch date.
// Launch day is 0; earlier dates are negative.
func (s *Scheduler) DaysSinceEpoch(date string) (int, error) {
	d, err := parseCivil(date)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", date, err)
	}
	// Both values are UTC midnights, so the division is exact.
	return int(d.Sub(s.epoch) / (24 * time.Hour)), nil
}

// PuzzleIndex maps date to a stable index into a catalog of size n.
// The double modulo keeps the index non-negative for pre-launch dates.
// Callers must guard n > 0.
func (s *Scheduler) PuzzleIndex(date string, n int) (int, error) {
	days, err := s.DaysSinceEpoch(date)
	if err != nil {
		return 0, err
	}
	return ((days % n) + n) % n, nil
}

// PuzzleNumber returns the 1-based sequential puzzle number for display.
// Launch day is puzzle #1. Never used for indexing.
func (s *Scheduler) PuzzleNumber(date string) (int, error) {
	days, err := s.DaysSinceEpoch(date)
	if err != nil {
		return 0, err
	}
	return days + 1, nil
}

// IsPlayable reports whether date falls inside [launch, today].
// Malformed dates are simply not playable.
func (s *Scheduler) IsPlayable(date string) bool {
	if _, err := parseCivil(date); err != nil {
		return false
	}
	// YYYY-MM-DD compares lexicographically in chronological order.
	return date >= s.LaunchDate() && date <= s.Today()
}

// ArchiveDates lists every past playable date, newest first.
// Today is excluded: it belongs to the current puzzle view.
func (s *Scheduler) ArchiveDates() []string {
	today, err := parseCivil(s.Today())
	if err != nil {
		return nil
	}
	var out []string
	for d := today.AddDate(0, 0, -1); !d.Before(s.epoch); d = d.AddDate(0, 0, -1) {
		out = append(out, d.Format(DateLayout))
	}
	return out
}

// DisplayDate renders a date key for presentation ("February 22, 2026").
// Malformed input is returned unchanged.
func DisplayDate(date string) string {
	d, err := parseCivil(date)
	if err != nil {
		return date
	}
	return d.Format("January 2, 2006")
}

// Assignment is the derived puzzle for one date. It is recomputed on every
// request and never persisted: it is a pure function of date and catalog.
type Assignment struct {
	Date         string
	PuzzleNumber int
	Answer       *catalog.Entry
	Playable     bool
	IsToday      bool
}

// Assignment resolves the puzzle for date against cat.
// The answer is well-defined even for unplayable dates; callers decide
// whether to expose it.
func (s *Scheduler) Assignment(date string, cat *catalog.Catalog) (Assignment, error) {
	if cat == nil || cat.Len() == 0 {
		return Assignment{}, fmt.Errorf("assignment for %s: empty catalog", date)
	}
	idx, err := s.PuzzleIndex(date, cat.Len())
	if err != nil {
		return Assignment{}, err
	}
	num, err := s.PuzzleNumber(date)
	if err != nil {
		return Assignment{}, err
	}
	return Assignment{
		Date:         date,
		PuzzleNumber: num,
		Answer:       cat.At(idx),
		Playable:     s.IsPlayable(date),
		IsToday:      date == s.Today(),
	}, nil
}
