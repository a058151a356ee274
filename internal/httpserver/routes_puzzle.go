// internal/httpserver/routes_puzzle.go
//
// HTTP routes for the daily puzzle.
// Exposes:
//   - GET  /puzzle/today              → today's assignment + the caller's state
//   - GET  /puzzle/{date}             → same for any archive date
//   - GET  /puzzle/{date}/lifelines   → hint menu with used/affordable flags
//   - POST /puzzle/{date}/guess       → submit a guess (body: {"gameId": ...})
//   - POST /puzzle/{date}/lifeline    → buy a hint (body: {"key": ...})
//   - GET  /archive                   → past days joined with persisted state
//
// Every mutation is read state → engine transition → persist → respond.
// Unplayable dates get a playable:false verdict, not an error. The answer
// is only included in responses once the day is won.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/cozygrove/skill-issue/internal/archive"
	"github.com/cozygrove/skill-issue/internal/catalog"
	"github.com/cozygrove/skill-issue/internal/game"
	"github.com/cozygrove/skill-issue/internal/lifeline"
	"github.com/cozygrove/skill-issue/internal/proximity"
	"github.com/cozygrove/skill-issue/internal/schedule"
)

// puzzleServer wraps dependencies for /puzzle and /archive endpoints.
type puzzleServer struct {
	srv     *Server
	builder *archive.Builder
}

// mountPuzzle registers all puzzle routes.
func (s *Server) mountPuzzle(r chi.Router) {
	p := &puzzleServer{srv: s, builder: archive.New(s.sched, s.states)}
	r.Route("/puzzle", func(r chi.Router) {
		r.Get("/today", p.handleToday)
		r.Get("/{date}", p.handleShow)
		r.Get("/{date}/lifelines", p.handleLifelineMenu)
		r.Post("/{date}/guess", p.handleGuess)
		r.Post("/{date}/lifeline", p.handlePurchase)
	})
	r.Get("/archive", p.handleArchive)
}

// ownerID returns the authenticated user ID if logged in, otherwise the
// stable anonymous cookie identity.
func (p *puzzleServer) ownerID(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return p.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// state rendering

// guessView is one scored guess joined with catalog metadata.
type guessView struct {
	GameID    string              `json:"gameId"`
	Title     string              `json:"title"`
	Proximity int                 `json:"proximity"`
	Tier      proximity.Tier      `json:"tier"`
	Direction proximity.Direction `json:"direction"`
}

// answerView is the revealed answer, included only once the day is won.
type answerView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ReleaseYear int    `json:"releaseYear"`
}

// stateRes is the full day view returned by show/guess/lifeline handlers.
type stateRes struct {
	Date              string                    `json:"date"`
	DisplayDate       string                    `json:"displayDate"`
	PuzzleNumber      int                       `json:"puzzleNumber"`
	IsToday           bool                      `json:"isToday"`
	Playable          bool                      `json:"playable"`
	Status            string                    `json:"status"`
	Score             int                       `json:"score"`
	Guesses           []guessView               `json:"guesses"`
	LifelinesUsed     []string                  `json:"lifelinesUsed"`
	LifelinesRevealed map[string]lifeline.Value `json:"lifelinesRevealed"`
	Answer            *answerView               `json:"answer,omitempty"`
}

// renderState joins a day state with its assignment for the response body.
func (p *puzzleServer) renderState(asg schedule.Assignment, st *game.DayState) stateRes {
	res := stateRes{
		Date:              asg.Date,
		DisplayDate:       schedule.DisplayDate(asg.Date),
		PuzzleNumber:      asg.PuzzleNumber,
		IsToday:           asg.IsToday,
		Playable:          asg.Playable,
		Status:            st.Status(),
		Score:             st.Score,
		Guesses:           make([]guessView, 0, len(st.Guesses)),
		LifelinesUsed:     st.LifelinesUsed,
		LifelinesRevealed: st.LifelinesRevealed,
	}
	for _, g := range st.Guesses {
		res.Guesses = append(res.Guesses, p.guessView(g, asg.Answer))
	}
	if st.Won {
		res.Answer = &answerView{ID: asg.Answer.ID, Title: asg.Answer.Title, ReleaseYear: asg.Answer.ReleaseYear}
	}
	return res
}

// guessView decorates a guess record with title, tier and year direction.
func (p *puzzleServer) guessView(g game.GuessRecord, answer *catalog.Entry) guessView {
	v := guessView{
		GameID:    g.GameID,
		Proximity: g.Proximity,
		Tier:      proximity.TierFor(g.Proximity),
		Direction: proximity.DirSame,
	}
	if e, ok := p.srv.cat.ByID(g.GameID); ok {
		v.Title = e.Title
		v.Direction = proximity.DirectionOf(e, answer)
	}
	return v
}

// assignment resolves a date to its puzzle assignment; ok=false means the
// response was already written (unplayable verdict or catalog failure).
func (p *puzzleServer) assignment(w http.ResponseWriter, date string) (schedule.Assignment, bool) {
	if !p.srv.sched.IsPlayable(date) {
		_ = json.NewEncoder(w).Encode(stateRes{
			Date:        date,
			DisplayDate: schedule.DisplayDate(date),
			Playable:    false,
			Status:      "not_playable",
		})
		return schedule.Assignment{}, false
	}
	asg, err := p.srv.sched.Assignment(date, p.srv.cat)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("resolve assignment")
		http.Error(w, `{"error":"assignment_failed"}`, http.StatusInternalServerError)
		return schedule.Assignment{}, false
	}
	return asg, true
}

// -----------------------------------------------------------------------------
// GET /puzzle/today, GET /puzzle/{date}

// handleToday serves the current day without the client needing to know the
// server's day boundary.
func (p *puzzleServer) handleToday(w http.ResponseWriter, r *http.Request) {
	p.show(w, r, p.srv.sched.Today())
}

func (p *puzzleServer) handleShow(w http.ResponseWriter, r *http.Request) {
	p.show(w, r, strings.TrimSpace(chi.URLParam(r, "date")))
}

// show loads (or lazily defaults) the day state and renders the full view.
func (p *puzzleServer) show(w http.ResponseWriter, r *http.Request, date string) {
	asg, ok := p.assignment(w, date)
	if !ok {
		return
	}
	owner := p.ownerID(w, r)
	st, err := p.srv.states.Load(r.Context(), owner, date)
	if err != nil {
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(p.renderState(asg, st))
}

// -----------------------------------------------------------------------------
// POST /puzzle/{date}/guess

// puzzleGuessReq is the request payload for a guess.
type puzzleGuessReq struct {
	GameID string `json:"gameId"`
}

// guessRes returns the scored guess plus the updated day view.
type guessRes struct {
	Guess guessView `json:"guess"`
	State stateRes  `json:"state"`
}

// handleGuess validates and applies a guess for the given date.
// - Rejects unplayable dates and unknown catalog IDs.
// - Engine enforces the no-mutation-after-win rule.
// - Persists after every accepted mutation; bumps user stats on a win.
func (p *puzzleServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req puzzleGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	req.GameID = strings.TrimSpace(req.GameID)
	if req.GameID == "" {
		http.Error(w, `{"error":"missing_game_id"}`, http.StatusBadRequest)
		return
	}
	asg, ok := p.assignment(w, strings.TrimSpace(chi.URLParam(r, "date")))
	if !ok {
		return
	}
	guess, ok := p.srv.cat.ByID(req.GameID)
	if !ok {
		http.Error(w, `{"error":"unknown_game"}`, http.StatusBadRequest)
		return
	}

	owner := p.ownerID(w, r)
	st, err := p.srv.states.Load(r.Context(), owner, asg.Date)
	if err != nil {
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}

	rec, err := st.ApplyGuess(guess, asg.Answer)
	if err != nil {
		if errors.Is(err, game.ErrDayWon) {
			http.Error(w, `{"error":"day_won"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"guess_rejected"}`, http.StatusConflict)
		return
	}
	if err := p.srv.states.Save(r.Context(), owner, asg.Date, st); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	if st.Won {
		guessesTotal.WithLabelValues("win").Inc()
		if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
			if err := p.srv.bumpStats(me.ID, true); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	} else {
		guessesTotal.WithLabelValues("miss").Inc()
	}

	_ = json.NewEncoder(w).Encode(guessRes{
		Guess: p.guessView(rec, asg.Answer),
		State: p.renderState(asg, st),
	})
}

// -----------------------------------------------------------------------------
// POST /puzzle/{date}/lifeline

// lifelineReq is the request payload for a hint purchase.
type lifelineReq struct {
	Key string `json:"key"`
}

// lifelineRes returns the revealed value plus the updated day view.
type lifelineRes struct {
	Key      string         `json:"key"`
	Revealed lifeline.Value `json:"revealed"`
	State    stateRes       `json:"state"`
}

// handlePurchase buys a lifeline for the given date.
// Invalid purchases (won, repeat, unaffordable) are refused as no-ops with
// a reason code the client can map to a disabled affordance.
func (p *puzzleServer) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req lifelineReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	def, ok := lifeline.Find(strings.TrimSpace(req.Key))
	if !ok {
		http.Error(w, `{"error":"unknown_lifeline"}`, http.StatusBadRequest)
		return
	}
	asg, ok := p.assignment(w, strings.TrimSpace(chi.URLParam(r, "date")))
	if !ok {
		return
	}

	owner := p.ownerID(w, r)
	st, err := p.srv.states.Load(r.Context(), owner, asg.Date)
	if err != nil {
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}

	v, err := st.PurchaseLifeline(def, asg.Answer)
	switch {
	case errors.Is(err, game.ErrDayWon):
		http.Error(w, `{"error":"day_won"}`, http.StatusConflict)
		return
	case errors.Is(err, game.ErrLifelineUsed):
		http.Error(w, `{"error":"lifeline_used"}`, http.StatusConflict)
		return
	case errors.Is(err, game.ErrInsufficientScore):
		http.Error(w, `{"error":"insufficient_score"}`, http.StatusConflict)
		return
	case err != nil:
		http.Error(w, `{"error":"purchase_rejected"}`, http.StatusConflict)
		return
	}
	if err := p.srv.states.Save(r.Context(), owner, asg.Date, st); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	lifelinesTotal.WithLabelValues(def.Key).Inc()

	_ = json.NewEncoder(w).Encode(lifelineRes{
		Key:      def.Key,
		Revealed: v,
		State:    p.renderState(asg, st),
	})
}

// -----------------------------------------------------------------------------
// GET /puzzle/{date}/lifelines

// lifelineMenuItem is one row of the hint menu.
type lifelineMenuItem struct {
	Key        string         `json:"key"`
	Label      string         `json:"label"`
	Cost       int            `json:"cost"`
	Used       bool           `json:"used"`
	Affordable bool           `json:"affordable"`
	Revealed   lifeline.Value `json:"revealed,omitempty"`
}

// handleLifelineMenu lists the fixed hint menu with per-day flags.
func (p *puzzleServer) handleLifelineMenu(w http.ResponseWriter, r *http.Request) {
	asg, ok := p.assignment(w, strings.TrimSpace(chi.URLParam(r, "date")))
	if !ok {
		return
	}
	owner := p.ownerID(w, r)
	st, err := p.srv.states.Load(r.Context(), owner, asg.Date)
	if err != nil {
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return
	}
	defs := lifeline.Definitions()
	items := make([]lifelineMenuItem, 0, len(defs))
	for _, d := range defs {
		items = append(items, lifelineMenuItem{
			Key:        d.Key,
			Label:      d.Label,
			Cost:       d.Cost,
			Used:       st.LifelineUsed(d.Key),
			Affordable: st.Score >= d.Cost,
			Revealed:   st.LifelinesRevealed[d.Key],
		})
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"date": asg.Date, "lifelines": items})
}

// -----------------------------------------------------------------------------
// GET /archive

// handleArchive returns every past playable day joined with the caller's
// persisted state, newest first.
func (p *puzzleServer) handleArchive(w http.ResponseWriter, r *http.Request) {
	owner := p.ownerID(w, r)
	entries, err := p.builder.Build(r.Context(), owner)
	if err != nil {
		http.Error(w, `{"error":"archive_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"days": entries})
}
