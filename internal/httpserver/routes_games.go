// internal/httpserver/routes_games.go
//
// Game endpoints:
//   - POST   /games                      → create a game, returns {gameId, state}
//   - GET    /games/{id}                 → current snapshot
//   - POST   /games/{id}/players         → {name} join (409 once the game is over)
//   - DELETE /games/{id}/players/{name}  → leave (history is kept for a rejoin)
//   - POST   /games/{id}/guess           → {player, guess}
//   - POST   /games/{id}/reset           → new secret, cleared history
//   - GET    /games/{id}/board           → rendered boards of the live game
//
// Snapshots never carry the secret while a game is running.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/robalobadob/bullscows/internal/game"
	"github.com/robalobadob/bullscows/internal/secret"
	"github.com/robalobadob/bullscows/internal/state"
	"github.com/robalobadob/bullscows/internal/store"
)

func (s *Server) mountGames(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleNewGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Post("/players", s.handleAddPlayer)
			r.Delete("/players/{name}", s.handleRemovePlayer)
			r.Post("/guess", s.handleGuess)
			r.Post("/reset", s.handleReset)
			r.Get("/board", s.handleBoard)
		})
	})
}

func newGameID() string { return uuid.NewString() }

// newGameReq is the payload for POST /games and POST /daily/new.
// Zero dimensions fall back to the defaults (4 positions, 6 colors, 10 guesses).
type newGameReq struct {
	CodeLength   int      `json:"code_length"`
	NumOfColors  int      `json:"num_of_colors"`
	NumOfGuesses int      `json:"num_of_guesses"`
	SecretCode   string   `json:"secret_code"`
	Mode         string   `json:"mode"`
	Players      []string `json:"players"`
	Daily        bool     `json:"daily"`
}

type newGameRes struct {
	GameID string         `json:"gameId"`
	Daily  bool           `json:"daily,omitempty"`
	State  state.Snapshot `json:"state"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.createGame(w, r, req)
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request, req newGameReq) {
	cfg := state.DefaultConfig()
	if req.CodeLength > 0 {
		cfg.CodeLength = req.CodeLength
	}
	if req.NumOfColors > 0 {
		cfg.NumOfColors = req.NumOfColors
	}
	if req.NumOfGuesses > 0 {
		cfg.NumOfGuesses = req.NumOfGuesses
	}

	var gen secret.Generator = s.gen
	if req.Daily {
		gen = s.daily
	} else {
		cfg.SecretCode = req.SecretCode
	}

	mode := state.SingleBoard
	if req.Mode != "" {
		m, err := state.ParseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		mode = m
	}

	id := s.newID()
	gs, err := state.New(cfg, mode, req.Players,
		state.WithGenerator(gen),
		state.WithLogger(s.log.With().Str("game_id", id).Logger()),
	)
	switch {
	case errors.Is(err, state.ErrInvalidConfig), errors.Is(err, state.ErrEmptyPlayerName):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.log.Error().Err(err).Msg("create game")
		writeError(w, http.StatusBadGateway, "secret_unavailable")
		return
	}

	if err := s.store.Save(r.Context(), id, gs); err != nil {
		s.log.Error().Err(err).Str("game_id", id).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.metrics.gamesCreated.WithLabelValues(mode.String()).Inc()
	s.log.Info().Str("game_id", id).Str("mode", mode.String()).Bool("daily", req.Daily).Msg("game created")
	writeJSON(w, http.StatusCreated, newGameRes{GameID: id, Daily: req.Daily, State: gs.Snapshot()})
}

// withGame serializes requests on the {id} game, loads it and calls fn.
// Load failures are answered here.
func (s *Server) withGame(w http.ResponseWriter, r *http.Request, fn func(id string, gs *state.GameState)) {
	id := chi.URLParam(r, "id")
	unlock := s.locks.Lock(id)
	defer unlock()

	gs, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("game_id", id).Msg("load game")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	fn(id, gs)
}

// save persists gs and reports whether the caller may answer with success.
func (s *Server) save(w http.ResponseWriter, r *http.Request, id string, gs *state.GameState) bool {
	if err := s.store.Save(r.Context(), id, gs); err != nil {
		s.log.Error().Err(err).Str("game_id", id).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return false
	}
	return true
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	s.withGame(w, r, func(_ string, gs *state.GameState) {
		writeJSON(w, http.StatusOK, gs.Snapshot())
	})
}

type playerReq struct {
	Name string `json:"name"`
}

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	var req playerReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.withGame(w, r, func(id string, gs *state.GameState) {
		if err := gs.AddPlayer(req.Name); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, state.ErrGameOver) {
				status = http.StatusConflict
			}
			writeError(w, status, err.Error())
			return
		}
		if s.save(w, r, id, gs) {
			writeJSON(w, http.StatusOK, gs.Snapshot())
		}
	})
}

func (s *Server) handleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.withGame(w, r, func(id string, gs *state.GameState) {
		gs.RemovePlayer(name)
		if s.save(w, r, id, gs) {
			writeJSON(w, http.StatusOK, gs.Snapshot())
		}
	})
}

type guessReq struct {
	Player string `json:"player"`
	Guess  string `json:"guess"`
}

// handleGuess answers 200 with the new snapshot, 409 once the game is over
// and 400 for any rejected guess; errors use the {"error": "..."} shape.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.withGame(w, r, func(id string, gs *state.GameState) {
		res := gs.SubmitGuess(req.Player, req.Guess)
		if !res.OK() {
			if res.Error == state.MsgGameOver {
				s.metrics.guesses.WithLabelValues("game_over").Inc()
				writeJSON(w, http.StatusConflict, res)
				return
			}
			s.metrics.guesses.WithLabelValues("rejected").Inc()
			writeJSON(w, http.StatusBadRequest, res)
			return
		}
		if !s.save(w, r, id, gs) {
			return
		}
		s.metrics.guesses.WithLabelValues("accepted").Inc()
		if res.State.GameOver {
			result := "lost"
			if res.State.GameWon {
				result = "won"
			}
			s.metrics.gamesFinished.WithLabelValues(result).Inc()
		}
		writeJSON(w, http.StatusOK, res)
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.withGame(w, r, func(id string, gs *state.GameState) {
		if err := gs.Reset(); err != nil {
			s.log.Error().Err(err).Str("game_id", id).Msg("reset game")
			writeError(w, http.StatusBadGateway, "secret_unavailable")
			return
		}
		if s.save(w, r, id, gs) {
			writeJSON(w, http.StatusOK, gs.Snapshot())
		}
	})
}

type boardView struct {
	Player   string   `json:"player"`
	Rows     []string `json:"rows"`
	GameOver bool     `json:"game_over"`
	GameWon  bool     `json:"game_won"`
}

type boardRes struct {
	Status  string         `json:"status"`
	Boards  []boardView    `json:"boards"`
	Winners []string       `json:"winners"`
	State   state.Snapshot `json:"state"`
}

// handleBoard materializes the live game and renders every board.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	s.withGame(w, r, func(id string, gs *state.GameState) {
		snap := gs.Snapshot()
		res := boardRes{Status: game.StatusSetup.String(), Boards: []boardView{}, Winners: snap.Winners, State: snap}
		if gs.Mode() == state.MultiBoard && len(gs.Players()) == 0 {
			writeJSON(w, http.StatusOK, res)
			return
		}
		g, err := gs.ToGame()
		if err != nil {
			s.log.Error().Err(err).Str("game_id", id).Msg("materialize game")
			writeError(w, http.StatusInternalServerError, "replay_failed")
			return
		}
		res.Status = g.State().String()
		for _, p := range g.Players() {
			res.Boards = append(res.Boards, boardView{
				Player:   p.Name,
				Rows:     game.FormatBoard(p.Board()),
				GameOver: p.GameOver(),
				GameWon:  p.GameWon(),
			})
		}
		writeJSON(w, http.StatusOK, res)
	})
}

// decodeBody decodes a JSON body; an empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
