package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cozygrove/skill-issue/internal/catalog"
	"github.com/cozygrove/skill-issue/internal/game"
	"github.com/cozygrove/skill-issue/internal/schedule"
	"github.com/cozygrove/skill-issue/internal/store"
)

// testClient spins up the server against the embedded catalog, a frozen
// clock, and the in-memory store. Guests only, so no database is needed.
func testClient(t *testing.T) (*httptest.Server, *http.Client, *schedule.Scheduler, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Load("")
	require.NoError(t, err)
	now, err := time.Parse(time.RFC3339, "2026-02-25T12:00:00Z")
	require.NoError(t, err)
	sched, err := schedule.New("2026-02-22", time.UTC, func() time.Time { return now })
	require.NoError(t, err)

	srv := New(nil, cat, sched, store.NewMemory())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	// Cookie jar keeps the anon identity stable across requests.
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return ts, &http.Client{Jar: jar}, sched, cat
}

func getJSON(t *testing.T, c *http.Client, url string, out any) int {
	t.Helper()
	res, err := c.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	return res.StatusCode
}

func postJSON(t *testing.T, c *http.Client, url string, body any, out any) int {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := c.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil {
		_ = json.NewDecoder(res.Body).Decode(out)
	}
	return res.StatusCode
}

func TestShowUnplayedDay(t *testing.T) {
	ts, c, _, _ := testClient(t)

	var res stateRes
	code := getJSON(t, c, ts.URL+"/puzzle/2026-02-23", &res)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2026-02-23", res.Date)
	assert.Equal(t, 2, res.PuzzleNumber)
	assert.True(t, res.Playable)
	assert.False(t, res.IsToday)
	assert.Equal(t, "playing", res.Status)
	assert.Equal(t, game.InitialScore, res.Score)
	assert.Empty(t, res.Guesses)
	assert.Nil(t, res.Answer, "answer must not leak before a win")
}

func TestShowUnplayableDates(t *testing.T) {
	ts, c, _, _ := testClient(t)

	for _, date := range []string{"2026-02-21", "2026-02-26", "not-a-date"} {
		var res stateRes
		code := getJSON(t, c, ts.URL+"/puzzle/"+date, &res)
		assert.Equal(t, http.StatusOK, code, date)
		assert.False(t, res.Playable, date)
		assert.Equal(t, "not_playable", res.Status, date)
	}
}

func TestGuessFlow(t *testing.T) {
	ts, c, sched, cat := testClient(t)
	const date = "2026-02-23"

	asg, err := sched.Assignment(date, cat)
	require.NoError(t, err)

	// Pick a wrong guess that is not the day's answer.
	var wrongID string
	for _, e := range cat.Entries() {
		if e.ID != asg.Answer.ID {
			wrongID = e.ID
			break
		}
	}

	var wrong guessRes
	code := postJSON(t, c, ts.URL+"/puzzle/"+date+"/guess", puzzleGuessReq{GameID: wrongID}, &wrong)
	require.Equal(t, http.StatusOK, code)
	assert.Greater(t, wrong.Guess.Proximity, 1)
	assert.NotEmpty(t, wrong.Guess.Title)
	assert.Equal(t, game.InitialScore-game.GuessCost, wrong.State.Score)
	assert.Equal(t, "playing", wrong.State.Status)

	// State survives across requests (same anon cookie).
	var shown stateRes
	code = getJSON(t, c, ts.URL+"/puzzle/"+date, &shown)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, shown.Guesses, 1)
	assert.Equal(t, wrongID, shown.Guesses[0].GameID)

	// Winning guess.
	var win guessRes
	code = postJSON(t, c, ts.URL+"/puzzle/"+date+"/guess", puzzleGuessReq{GameID: asg.Answer.ID}, &win)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, win.Guess.Proximity)
	assert.Equal(t, "won", win.State.Status)
	require.NotNil(t, win.State.Answer)
	assert.Equal(t, asg.Answer.ID, win.State.Answer.ID)

	// Any further guess is refused without mutation.
	code = postJSON(t, c, ts.URL+"/puzzle/"+date+"/guess", puzzleGuessReq{GameID: wrongID}, nil)
	assert.Equal(t, http.StatusConflict, code)

	code = getJSON(t, c, ts.URL+"/puzzle/"+date, &shown)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, shown.Guesses, 2)
}

func TestGuessValidation(t *testing.T) {
	ts, c, _, _ := testClient(t)

	code := postJSON(t, c, ts.URL+"/puzzle/2026-02-23/guess", puzzleGuessReq{GameID: "no-such-game"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = postJSON(t, c, ts.URL+"/puzzle/2026-02-23/guess", puzzleGuessReq{}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// Unplayable date gets the verdict body, not a mutation.
	var res stateRes
	code = postJSON(t, c, ts.URL+"/puzzle/2026-02-26/guess", puzzleGuessReq{GameID: "unpacking"}, &res)
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, res.Playable)
}

func TestLifelineFlow(t *testing.T) {
	ts, c, _, _ := testClient(t)
	const date = "2026-02-23"

	var bought lifelineRes
	code := postJSON(t, c, ts.URL+"/puzzle/"+date+"/lifeline", lifelineReq{Key: "release_year"}, &bought)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "release_year", bought.Key)
	assert.NotNil(t, bought.Revealed)
	assert.Equal(t, game.InitialScore-150, bought.State.Score)

	// Second purchase of the same key is rejected, state unchanged.
	code = postJSON(t, c, ts.URL+"/puzzle/"+date+"/lifeline", lifelineReq{Key: "release_year"}, nil)
	assert.Equal(t, http.StatusConflict, code)

	var menu struct {
		Lifelines []lifelineMenuItem `json:"lifelines"`
	}
	code = getJSON(t, c, ts.URL+"/puzzle/"+date+"/lifelines", &menu)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, menu.Lifelines)
	for _, item := range menu.Lifelines {
		if item.Key == "release_year" {
			assert.True(t, item.Used)
			assert.NotNil(t, item.Revealed)
		} else {
			assert.False(t, item.Used)
		}
	}

	code = postJSON(t, c, ts.URL+"/puzzle/"+date+"/lifeline", lifelineReq{Key: "time_machine"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestArchiveEndpoint(t *testing.T) {
	ts, c, sched, cat := testClient(t)

	// Win the puzzle for 02-23 first.
	asg, err := sched.Assignment("2026-02-23", cat)
	require.NoError(t, err)
	code := postJSON(t, c, ts.URL+"/puzzle/2026-02-23/guess", puzzleGuessReq{GameID: asg.Answer.ID}, nil)
	require.Equal(t, http.StatusOK, code)

	var res struct {
		Days []struct {
			Date   string `json:"date"`
			Won    bool   `json:"won"`
			Played bool   `json:"played"`
		} `json:"days"`
	}
	code = getJSON(t, c, ts.URL+"/archive", &res)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, res.Days, 3)
	assert.Equal(t, "2026-02-24", res.Days[0].Date)
	assert.Equal(t, "2026-02-23", res.Days[1].Date)
	assert.Equal(t, "2026-02-22", res.Days[2].Date)
	assert.True(t, res.Days[1].Won)
	assert.False(t, res.Days[0].Played)
}

func TestHealthAndRoot(t *testing.T) {
	ts, c, _, _ := testClient(t)

	var health map[string]bool
	code := getJSON(t, c, ts.URL+"/health", &health)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, health["ok"])

	var root struct {
		Service   string   `json:"service"`
		Endpoints []string `json:"endpoints"`
	}
	code = getJSON(t, c, ts.URL+"/", &root)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "skill-issue", root.Service)
	assert.NotEmpty(t, root.Endpoints)
}
