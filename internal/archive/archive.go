// internal/archive/archive.go
//
// Archive builder: joins the scheduler's past-date window with each date's
// persisted day state to produce the archive summary list. Pure composition
// of the scheduler and the store; holds no state of its own.

package archive

import (
	"context"

	"github.com/cozygrove/skill-issue/internal/schedule"
	"github.com/cozygrove/skill-issue/internal/store"
)

// Entry summarizes one past playable date for the archive view.
type Entry struct {
	Date         string `json:"date"`
	PuzzleNumber int    `json:"puzzleNumber"`
	DisplayDate  string `json:"displayDate"`
	Won          bool   `json:"won"`
	Played       bool   `json:"played"`
	Score        int    `json:"score"`
}

// Builder derives the archive for one owner.
type Builder struct {
	sched *schedule.Scheduler
	store store.Store
}

// New wires a Builder from its two collaborators.
func New(sched *schedule.Scheduler, st store.Store) *Builder {
	return &Builder{sched: sched, store: st}
}

// Build lists every past playable date, newest first, joined with that
// date's state. Unplayed dates appear with default state.
func (b *Builder) Build(ctx context.Context, ownerID string) ([]Entry, error) {
	dates := b.sched.ArchiveDates()
	out := make([]Entry, 0, len(dates))
	for _, date := range dates {
		st, err := b.store.Load(ctx, ownerID, date)
		if err != nil {
			return nil, err
		}
		num, err := b.sched.PuzzleNumber(date)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{
			Date:         date,
			PuzzleNumber: num,
			DisplayDate:  schedule.DisplayDate(date),
			Won:          st.Won,
			Played:       st.Played(),
			Score:        st.Score,
		})
	}
	return out, nil
}
