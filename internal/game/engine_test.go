package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cozygrove/skill-issue/internal/catalog"
	"github.com/cozygrove/skill-issue/internal/lifeline"
	"github.com/cozygrove/skill-issue/internal/proximity"
)

func testEntry(id string, year int) *catalog.Entry {
	return &catalog.Entry{
		ID:          id,
		Title:       "Game " + id,
		ReleaseYear: year,
		GenreTags:   []string{"farming"},
		Platforms:   []string{"pc"},
		AgeRating:   7,
	}
}

func mustDef(t *testing.T, key string) lifeline.Definition {
	t.Helper()
	def, ok := lifeline.Find(key)
	require.True(t, ok, key)
	return def
}

func TestNewDayStateDefaults(t *testing.T) {
	st := NewDayState()
	assert.Empty(t, st.Guesses)
	assert.Equal(t, InitialScore, st.Score)
	assert.Empty(t, st.LifelinesUsed)
	assert.Empty(t, st.LifelinesRevealed)
	assert.False(t, st.Won)
	assert.False(t, st.Played())
	assert.Equal(t, "playing", st.Status())
}

func TestWrongGuessChargesAndRecords(t *testing.T) {
	answer := testEntry("answer", 2020)
	guess := testEntry("guess", 2018)
	st := NewDayState()

	rec, err := st.ApplyGuess(guess, answer)
	require.NoError(t, err)
	assert.Greater(t, rec.Proximity, proximity.ExactMatch)
	assert.Equal(t, InitialScore-GuessCost, st.Score)
	assert.False(t, st.Won)
	require.Len(t, st.Guesses, 1)
	assert.Equal(t, "guess", st.Guesses[0].GameID)
	assert.True(t, st.Played())
}

func TestCorrectGuessWinsAndLocks(t *testing.T) {
	answer := testEntry("answer", 2020)
	st := NewDayState()

	rec, err := st.ApplyGuess(answer, answer)
	require.NoError(t, err)
	assert.Equal(t, proximity.ExactMatch, rec.Proximity)
	assert.True(t, st.Won)
	assert.Equal(t, InitialScore, st.Score, "a winning guess costs nothing")
	assert.Equal(t, "won", st.Status())

	// Any further guess is a strict no-op.
	before := st.Clone()
	_, err = st.ApplyGuess(testEntry("late", 2019), answer)
	assert.ErrorIs(t, err, ErrDayWon)
	assert.Equal(t, before, st.Clone())
}

func TestScoreFloorsAtZero(t *testing.T) {
	answer := testEntry("answer", 2020)
	st := NewDayState()
	st.Score = 10

	_, err := st.ApplyGuess(testEntry("wrong", 1999), answer)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Score)
}

func TestPurchaseLifeline(t *testing.T) {
	answer := testEntry("answer", 2020)
	st := NewDayState()
	def := mustDef(t, "release_year")

	v, err := st.PurchaseLifeline(def, answer)
	require.NoError(t, err)
	assert.Equal(t, 2020, v)
	assert.Equal(t, InitialScore-def.Cost, st.Score)
	assert.Equal(t, []string{"release_year"}, st.LifelinesUsed)
	assert.Equal(t, 2020, st.LifelinesRevealed["release_year"])
	assert.True(t, st.Valid())
}

func TestPurchaseSameLifelineTwice(t *testing.T) {
	answer := testEntry("answer", 2020)
	st := NewDayState()
	def := mustDef(t, "vibe")

	_, err := st.PurchaseLifeline(def, answer)
	require.NoError(t, err)

	before := st.Clone()
	_, err = st.PurchaseLifeline(def, answer)
	assert.ErrorIs(t, err, ErrLifelineUsed)
	assert.Equal(t, before, st.Clone(), "second attempt must change nothing")
}

func TestPurchaseWithInsufficientScore(t *testing.T) {
	answer := testEntry("answer", 2020)
	st := NewDayState()
	st.Score = 100
	def := mustDef(t, "release_year") // costs 150

	before := st.Clone()
	_, err := st.PurchaseLifeline(def, answer)
	assert.ErrorIs(t, err, ErrInsufficientScore)
	assert.Equal(t, 100, st.Score)
	assert.Equal(t, before, st.Clone())
}

func TestPurchaseAfterWin(t *testing.T) {
	answer := testEntry("answer", 2020)
	st := NewDayState()
	_, err := st.ApplyGuess(answer, answer)
	require.NoError(t, err)

	_, err = st.PurchaseLifeline(mustDef(t, "vibe"), answer)
	assert.ErrorIs(t, err, ErrDayWon)
	assert.Empty(t, st.LifelinesUsed)
}

func TestScoreMonotonicAcrossSession(t *testing.T) {
	answer := testEntry("answer", 2020)
	st := NewDayState()
	last := st.Score

	check := func() {
		assert.LessOrEqual(t, st.Score, last)
		assert.GreaterOrEqual(t, st.Score, 0)
		last = st.Score
	}

	for _, id := range []string{"a", "b", "c"} {
		_, err := st.ApplyGuess(testEntry(id, 2000), answer)
		require.NoError(t, err)
		check()
	}
	for _, key := range []string{"age_rating", "release_year", "platforms", "genre_tags"} {
		_, err := st.PurchaseLifeline(mustDef(t, key), answer)
		require.NoError(t, err)
		check()
	}
	assert.True(t, st.Valid())
}

func TestValidDetectsShapeMismatch(t *testing.T) {
	st := NewDayState()
	st.LifelinesUsed = append(st.LifelinesUsed, "vibe") // no matching reveal
	assert.False(t, st.Valid())

	st = NewDayState()
	st.Score = -5
	assert.False(t, st.Valid())

	// Won must agree with the recorded guesses, both ways.
	st = NewDayState()
	st.Won = true
	assert.False(t, st.Valid(), "won with no winning guess")

	st = NewDayState()
	st.Guesses = append(st.Guesses, GuessRecord{GameID: "x", Proximity: proximity.ExactMatch})
	assert.False(t, st.Valid(), "winning guess with won unset")

	st.Won = true
	assert.True(t, st.Valid())
}

func TestValidRejectsDecodedWonMismatch(t *testing.T) {
	var st DayState
	raw := `{"guesses":[],"score":500,"lifelinesUsed":[],"lifelinesRevealed":{},"won":true}`
	require.NoError(t, json.Unmarshal([]byte(raw), &st))
	st.Normalize()
	assert.False(t, st.Valid(), "a locked day with no winning guess must read as corrupt")
}

func TestNormalizeRepairsNilCollections(t *testing.T) {
	st := &DayState{Score: 500}
	st.Normalize()
	assert.NotNil(t, st.Guesses)
	assert.NotNil(t, st.LifelinesUsed)
	assert.NotNil(t, st.LifelinesRevealed)
}

func TestCloneIsDeep(t *testing.T) {
	answer := testEntry("answer", 2020)
	st := NewDayState()
	_, err := st.ApplyGuess(testEntry("x", 2001), answer)
	require.NoError(t, err)

	_, err = st.PurchaseLifeline(mustDef(t, "platforms"), answer)
	require.NoError(t, err)

	c := st.Clone()
	c.Guesses[0].GameID = "mutated"
	c.LifelinesRevealed["fake"] = true
	assert.Equal(t, "x", st.Guesses[0].GameID)
	assert.NotContains(t, st.LifelinesRevealed, "fake")

	// Slice-typed reveals must not share a backing array with the clone.
	c.LifelinesRevealed["platforms"].([]string)[0] = "mutated"
	assert.Equal(t, "pc", st.LifelinesRevealed["platforms"].([]string)[0])
}
