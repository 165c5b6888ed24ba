package state

import (
	"fmt"
	"slices"
	"strings"

	"github.com/robalobadob/bullscows/internal/game"
)

// ToGame materializes a live game by replaying the recorded guesses onto
// fresh boards. Replay stops at the first row that ends a board.
//
// SingleBoard yields one shared board owned by a player named SharedPlayerName.
// MultiBoard yields one player per listed name, each with its own board.
func (s *GameState) ToGame() (*game.Game, error) {
	if s.config.SecretCode == "" {
		return nil, ErrSecretUnavailable
	}
	var players []*game.Player
	if s.mode == SingleBoard {
		p, err := s.replay(SharedPlayerName, s.allGuesses)
		if err != nil {
			return nil, err
		}
		players = []*game.Player{p}
	} else {
		for _, name := range s.players {
			var history []PlayerGuess
			if ps, ok := s.playerStates[name]; ok {
				history = ps.Guesses
			}
			p, err := s.replay(name, history)
			if err != nil {
				return nil, err
			}
			players = append(players, p)
		}
	}

	g, err := game.New(players, "", game.WithLogger(s.log))
	if err != nil {
		return nil, err
	}
	if s.mode == SingleBoard {
		g.RestoreWinners(players[0])
		return g, nil
	}
	for _, name := range s.winners {
		if p, ok := g.PlayerByName(name); ok {
			g.RestoreWinners(p)
		}
	}
	// Boards that are won but missing from the recorded winners keep player order.
	g.RestoreWinners(players...)
	return g, nil
}

func (s *GameState) replay(name string, history []PlayerGuess) (*game.Player, error) {
	board, err := game.NewBoard(s.config.Board(), s.config.SecretCode)
	if err != nil {
		return nil, err
	}
	for i, g := range history {
		if board.GameOver() {
			break
		}
		code, err := game.ValidateCode(g.Guess, s.config.CodeLength, s.config.NumOfColors)
		if err != nil {
			return nil, fmt.Errorf("replay %s guess %d: %w", name, i+1, err)
		}
		if _, err := board.EvaluateGuess(board.CurrentRowIndex(), code); err != nil {
			return nil, fmt.Errorf("replay %s guess %d: %w", name, i+1, err)
		}
	}
	return game.NewPlayer(name, board), nil
}

// FromGame projects a live game back into a GameState. Filled rows become
// PlayerGuess records. When existing is given its players, attributions,
// timestamps, retained player states, winners and options carry over.
//
// A shared board records no per-guess authorship: rows beyond the existing
// history are attributed to nobody until the caller tags them.
func FromGame(g *game.Game, cfg GameConfig, mode Mode, existing *GameState, opts ...Option) (*GameState, error) {
	s, err := fromGame(g, cfg, mode, existing, opts)
	if err != nil {
		return nil, err
	}
	if mode == SingleBoard {
		s.syncSingleWinner()
	}
	return s, nil
}

func fromGame(g *game.Game, cfg GameConfig, mode Mode, existing *GameState, opts []Option) (*GameState, error) {
	if existing != nil {
		opts = append([]Option{inherit(existing)}, opts...)
	}
	if g == nil {
		return nil, game.ErrEmptyPlayers
	}
	s, err := newState(cfg, mode, opts)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.players = slices.Clone(existing.players)
		s.winners = slices.Clone(existing.winners)
		s.gameStarted = existing.gameStarted
		s.finished = existing.finished
	}

	if mode == SingleBoard {
		var prior []PlayerGuess
		if existing != nil {
			prior = existing.allGuesses
		}
		players := g.Players()
		s.allGuesses = s.rowsToGuesses(players[0].Board(), "", prior)
	} else {
		if existing != nil {
			for name, ps := range existing.playerStates {
				s.playerStates[name] = ps.clone()
			}
			s.allGuesses = slices.Clone(existing.allGuesses)
		}
		for _, p := range g.Players() {
			if !slices.Contains(s.players, p.Name) {
				s.players = append(s.players, p.Name)
			}
			var prior []PlayerGuess
			if ps, ok := s.playerStates[p.Name]; ok {
				prior = ps.Guesses
			}
			ps := NewPlayerState(p.Name, cfg.NumOfGuesses)
			ps.Guesses = s.rowsToGuesses(p.Board(), p.Name, prior)
			ps.refresh(cfg)
			s.playerStates[p.Name] = ps
			if len(ps.Guesses) > len(prior) {
				s.allGuesses = append(s.allGuesses, ps.Guesses[len(prior):]...)
			}
		}
		for _, w := range g.Winners() {
			if !slices.Contains(s.winners, w.Name) {
				s.winners = append(s.winners, w.Name)
			}
		}
	}
	s.gameStarted = s.gameStarted || len(s.allGuesses) > 0
	s.settle()
	return s, nil
}

// rowsToGuesses converts the filled rows of b into guess records. Records at
// indexes covered by prior keep their author and timestamp.
func (s *GameState) rowsToGuesses(b *game.Board, author string, prior []PlayerGuess) []PlayerGuess {
	out := []PlayerGuess{}
	for i, row := range b.Rows() {
		if !row.Filled {
			continue
		}
		pg := PlayerGuess{
			Guess:     row.Guess.String(),
			Bulls:     row.Bulls,
			Cows:      row.Cows,
			Player:    author,
			Timestamp: s.now(),
		}
		if i < len(prior) && prior[i].Guess == pg.Guess {
			pg.Player = prior[i].Player
			pg.Timestamp = prior[i].Timestamp
		}
		out = append(out, pg)
	}
	return out
}

// syncSingleWinner records the author of the winning shared-board guess.
func (s *GameState) syncSingleWinner() {
	if len(s.winners) > 0 {
		return
	}
	for _, g := range s.allGuesses {
		if g.Bulls != s.config.CodeLength {
			continue
		}
		name := g.Player
		if name == "" {
			name = SharedPlayerName
		}
		s.winners = []string{name}
		return
	}
}

func inherit(from *GameState) Option {
	return func(s *GameState) {
		s.log = from.log
		s.gen = from.gen
		s.now = from.now
	}
}

// SubmitGuess plays guess for player and folds the outcome back into s.
// Failures never escape as errors; they are reported in Result.Error and
// leave s unchanged. The player name is trimmed like AddPlayer does; the
// guess is validated exactly as given.
func (s *GameState) SubmitGuess(player, guess string) Result {
	res, err := s.submit(strings.TrimSpace(player), guess)
	if err != nil {
		s.log.Debug().Err(err).Str("player", player).Str("guess", guess).Msg("guess rejected")
		return Result{Error: err.Error()}
	}
	return res
}

func (s *GameState) submit(player, guess string) (Result, error) {
	if s.GameOver() {
		return Result{}, ErrGameOver
	}
	if player == "" {
		return Result{}, ErrEmptyPlayerName
	}
	if _, err := game.ValidateCode(guess, s.config.CodeLength, s.config.NumOfColors); err != nil {
		return Result{}, err
	}

	// Work on a copy so a failed submission leaves s untouched.
	work := s.clone()
	target := SharedPlayerName
	if s.mode == MultiBoard {
		if err := work.AddPlayer(player); err != nil {
			return Result{}, err
		}
		if work.playerStates[player].GameOver {
			return Result{}, fmt.Errorf("%s %w", player, ErrPlayerFinished)
		}
		target = player
	}

	g, err := work.ToGame()
	if err != nil {
		return Result{}, err
	}
	p, ok := g.PlayerByName(target)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", game.ErrUnknownPlayer, target)
	}
	if err := g.SubmitGuess(p, guess); err != nil {
		return Result{}, err
	}

	next, err := fromGame(g, work.config, work.mode, work, nil)
	if err != nil {
		return Result{}, err
	}
	if s.mode == SingleBoard {
		if n := len(next.allGuesses); n > len(work.allGuesses) {
			next.allGuesses[n-1].Player = player
		}
		next.syncSingleWinner()
	}

	s.players = next.players
	s.playerStates = next.playerStates
	s.allGuesses = next.allGuesses
	s.winners = next.winners
	s.gameStarted = true
	s.settle()

	last := s.allGuesses[len(s.allGuesses)-1]
	s.log.Info().
		Str("player", player).
		Str("guess", last.Guess).
		Int("bulls", last.Bulls).
		Int("cows", last.Cows).
		Msg("guess submitted")
	if s.GameOver() {
		s.log.Info().Bool("won", s.GameWon()).Strs("winners", s.winners).Msg("game finished")
	}

	snap := s.Snapshot()
	return Result{State: &snap}, nil
}

func (s *GameState) clone() *GameState {
	c := *s
	c.players = slices.Clone(s.players)
	c.allGuesses = slices.Clone(s.allGuesses)
	c.winners = slices.Clone(s.winners)
	c.playerStates = make(map[string]*PlayerState, len(s.playerStates))
	for k, v := range s.playerStates {
		c.playerStates[k] = v.clone()
	}
	return &c
}
