// internal/store/sqlite.go
//
// SQLite implementation of the day-state Store interface.
// Each (owner, date) pair maps to one row holding the DayState as a JSON
// document, matching the persisted layout the web client reads.
//
// Error policy:
//   - Missing row → fresh default state.
//   - Row that fails to decode or fails shape validation → fresh default
//     state with a warning log; the player restarts the day rather than
//     being blocked on a corrupt record.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cozygrove/skill-issue/internal/game"
)

// Schema creates the day_states table. Applied by the server's migration
// runner and reusable from tests.
const Schema = `
CREATE TABLE IF NOT EXISTS day_states (
    owner_id   TEXT NOT NULL,
    date       TEXT NOT NULL,
    state      TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (owner_id, date)
);`

// SQLite persists day states as JSON blobs in a day_states table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open database handle.
func NewSQLite(db *sql.DB) *SQLite { return &SQLite{db: db} }

// Load reads and decodes the state for (ownerID, date).
// Corrupt or missing records come back as a fresh DayState, never an error.
func (s *SQLite) Load(ctx context.Context, ownerID, date string) (*game.DayState, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM day_states WHERE owner_id=? AND date=?`,
		ownerID, date,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return game.NewDayState(), nil
	}
	if err != nil {
		return nil, err
	}

	var st game.DayState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		log.Warn().Err(err).Str("date", date).Msg("corrupt day state, starting fresh")
		return game.NewDayState(), nil
	}
	st.Normalize()
	if !st.Valid() {
		log.Warn().Str("date", date).Msg("invalid day state shape, starting fresh")
		return game.NewDayState(), nil
	}
	return &st, nil
}

// Save upserts the JSON-encoded state for (ownerID, date).
func (s *SQLite) Save(ctx context.Context, ownerID, date string, st *game.DayState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO day_states (owner_id, date, state, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(owner_id, date) DO UPDATE SET
            state = excluded.state,
            updated_at = excluded.updated_at`,
		ownerID, date, string(raw), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
