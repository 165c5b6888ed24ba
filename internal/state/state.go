// internal/state/state.go
//
// GameState is the persistence-facing form of a game: configuration, mode,
// players and the ordered guess history. A live game.Game is rebuilt from it
// per request (ToGame), mutated, and folded back (FromGame / SubmitGuess).
//
// Notes:
//   - SingleBoard: the flat guess list is authoritative.
//   - MultiBoard: per-player states are authoritative for each board; the
//     flat list keeps the global submission order.
//   - game over / won, current row and remaining guesses are computed on read.
//     Once a game has been over it stays over until Reset, even if the
//     player list changes afterwards.
//   - GameState has no internal locking; callers serialize access per instance.

package state

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/bullscows/internal/game"
	"github.com/robalobadob/bullscows/internal/secret"
)

// SharedPlayerName names the pseudo-player that owns the board in SingleBoard mode.
const SharedPlayerName = "Shared"

type GameState struct {
	config       GameConfig
	mode         Mode
	players      []string
	playerStates map[string]*PlayerState
	allGuesses   []PlayerGuess
	winners      []string
	gameStarted  bool
	finished     bool

	log zerolog.Logger
	gen secret.Generator
	now func() time.Time
}

// Option configures a GameState.
type Option func(*GameState)

// WithLogger routes state and game events to l. The default discards them.
func WithLogger(l zerolog.Logger) Option {
	return func(s *GameState) { s.log = l }
}

// WithGenerator sets the secret source used at construction and by Reset.
func WithGenerator(g secret.Generator) Option {
	return func(s *GameState) { s.gen = g }
}

// WithClock sets the time source for guess timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *GameState) { s.now = now }
}

func newState(cfg GameConfig, mode Mode, opts []Option) (*GameState, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}
	s := &GameState{
		config:       cfg,
		mode:         mode,
		players:      []string{},
		playerStates: make(map[string]*PlayerState),
		allGuesses:   []PlayerGuess{},
		winners:      []string{},
		log:          zerolog.Nop(),
		gen:          secret.Local{},
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// New builds a fresh game state, generating a secret when cfg has none.
// players are registered in order, duplicates ignored.
func New(cfg GameConfig, mode Mode, players []string, opts ...Option) (*GameState, error) {
	s, err := newState(cfg, mode, opts)
	if err != nil {
		return nil, err
	}
	if s.config.SecretCode == "" {
		code, err := s.config.GenerateSecretCode(s.gen)
		if err != nil {
			return nil, err
		}
		s.config.SecretCode = code
	}
	for _, name := range players {
		if err := s.AddPlayer(name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Config returns the configuration including the secret code.
// Callers must not expose it to players while the game is running.
func (s *GameState) Config() GameConfig { return s.config }
func (s *GameState) Mode() Mode { return s.mode }
func (s *GameState) GameStarted() bool { return s.gameStarted }
func (s *GameState) Players() []string { return slices.Clone(s.players) }
func (s *GameState) Winners() []string { return slices.Clone(s.winners) }
func (s *GameState) AllGuesses() []PlayerGuess { return slices.Clone(s.allGuesses) }

// PlayerState returns a copy of the named player's state (MultiBoard only).
func (s *GameState) PlayerState(name string) (*PlayerState, bool) {
	ps, ok := s.playerStates[name]
	if !ok {
		return nil, false
	}
	return ps.clone(), true
}

// PlayerStates returns copies of every per-player state, including retained
// states of removed players.
func (s *GameState) PlayerStates() map[string]*PlayerState {
	out := make(map[string]*PlayerState, len(s.playerStates))
	for k, v := range s.playerStates {
		out[k] = v.clone()
	}
	return out
}

// GameOver reports whether no further guesses can be made.
// SingleBoard: the shared history is full or contains a winning guess.
// MultiBoard: every listed player's board is over (and there is at least one).
// The result is sticky: a game that was over stays over until Reset.
func (s *GameState) GameOver() bool {
	return s.finished || s.overNow()
}

func (s *GameState) overNow() bool {
	if s.mode == SingleBoard {
		return len(s.allGuesses) >= s.config.NumOfGuesses || s.anyWinningGuess()
	}
	active := s.activeStates()
	if len(active) == 0 {
		return false
	}
	for _, ps := range active {
		if !ps.GameOver {
			return false
		}
	}
	return true
}

// GameWon reports whether someone has cracked the code.
func (s *GameState) GameWon() bool {
	if s.mode == SingleBoard {
		return s.anyWinningGuess()
	}
	if len(s.winners) > 0 {
		return true
	}
	for _, ps := range s.activeStates() {
		if ps.GameWon {
			return true
		}
	}
	return false
}

// CurrentRow is the next row to be played, or game.RowsFull.
// In MultiBoard mode it is the row of the least advanced player still playing.
func (s *GameState) CurrentRow() int {
	if s.mode == SingleBoard {
		if len(s.allGuesses) >= s.config.NumOfGuesses {
			return game.RowsFull
		}
		return len(s.allGuesses)
	}
	if s.GameOver() {
		return game.RowsFull
	}
	if ps := s.leastAdvanced(); ps != nil {
		return ps.CurrentRow
	}
	return game.RowsFull
}

// RemainingGuesses counts guesses still available (0 once the game is over).
func (s *GameState) RemainingGuesses() int {
	if s.mode == SingleBoard {
		if s.GameOver() {
			return 0
		}
		return max(s.config.NumOfGuesses-len(s.allGuesses), 0)
	}
	if s.GameOver() {
		return 0
	}
	if ps := s.leastAdvanced(); ps != nil {
		return ps.RemainingGuesses
	}
	return 0
}

// AddPlayer registers name. It is idempotent; in MultiBoard mode it also
// creates the player's state unless one is retained from an earlier removal.
// New players cannot join a game that is over.
func (s *GameState) AddPlayer(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyPlayerName
	}
	if !slices.Contains(s.players, name) {
		if s.GameOver() {
			return fmt.Errorf("%w: %s cannot join", ErrGameOver, name)
		}
		s.players = append(s.players, name)
		s.log.Debug().Str("player", name).Msg("player added")
	}
	if s.mode == MultiBoard {
		if _, ok := s.playerStates[name]; !ok {
			s.playerStates[name] = NewPlayerState(name, s.config.NumOfGuesses)
		}
	}
	return nil
}

// RemovePlayer drops name from the player list. Its PlayerState is retained
// so that a later AddPlayer resumes the same board. Removing the last player
// still playing ends the game.
func (s *GameState) RemovePlayer(name string) {
	i := slices.Index(s.players, name)
	if i < 0 {
		return
	}
	s.players = slices.Delete(s.players, i, i+1)
	s.settle()
	s.log.Debug().Str("player", name).Msg("player removed")
}

// Reset draws a new secret and clears the history, the winners and the
// started flag. In MultiBoard mode every listed player gets a fresh state;
// retained states of removed players are dropped.
func (s *GameState) Reset() error {
	cfg := s.config
	cfg.SecretCode = ""
	code, err := cfg.GenerateSecretCode(s.gen)
	if err != nil {
		return err
	}
	s.config.SecretCode = code
	s.allGuesses = []PlayerGuess{}
	s.winners = []string{}
	s.gameStarted = false
	s.finished = false
	s.playerStates = make(map[string]*PlayerState)
	if s.mode == MultiBoard {
		for _, name := range s.players {
			s.playerStates[name] = NewPlayerState(name, s.config.NumOfGuesses)
		}
	}
	s.log.Info().Msg("game reset")
	return nil
}

// settle latches the finished flag once the game is over.
func (s *GameState) settle() {
	if !s.finished && s.overNow() {
		s.finished = true
	}
}

func (s *GameState) anyWinningGuess() bool {
	for _, g := range s.allGuesses {
		if g.Bulls == s.config.CodeLength {
			return true
		}
	}
	return false
}

// activeStates returns the states of listed players, in player order.
func (s *GameState) activeStates() []*PlayerState {
	out := make([]*PlayerState, 0, len(s.players))
	for _, name := range s.players {
		if ps, ok := s.playerStates[name]; ok {
			out = append(out, ps)
		}
	}
	return out
}

func (s *GameState) leastAdvanced() *PlayerState {
	var least *PlayerState
	for _, ps := range s.activeStates() {
		if ps.GameOver {
			continue
		}
		if least == nil || len(ps.Guesses) < len(least.Guesses) {
			least = ps
		}
	}
	return least
}
