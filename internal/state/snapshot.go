package state

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the JSON projection of a GameState.
// The secret code (top level and inside Config) is only present once the game is over.
type Snapshot struct {
	Config           GameConfig              `json:"config"`
	Mode             Mode                    `json:"mode"`
	Players          []string                `json:"players"`
	Guesses          []PlayerGuess           `json:"guesses"`
	PlayersData      map[string]*PlayerState `json:"players_data,omitempty"`
	Winners          []string                `json:"winners"`
	GameStarted      bool                    `json:"game_started"`
	GameOver         bool                    `json:"game_over"`
	GameWon          bool                    `json:"game_won"`
	CurrentRow       int                     `json:"current_row"`
	RemainingGuesses int                     `json:"remaining_guesses"`
	SecretCode       string                  `json:"secret_code,omitempty"`
}

// Snapshot captures the current state, hiding the secret while the game runs.
func (s *GameState) Snapshot() Snapshot {
	over := s.GameOver()
	cfg := s.config
	if !over {
		cfg.SecretCode = ""
	}
	snap := Snapshot{
		Config:           cfg,
		Mode:             s.mode,
		Players:          nonNil(s.players),
		Guesses:          nonNil(s.allGuesses),
		Winners:          nonNil(s.winners),
		GameStarted:      s.gameStarted,
		GameOver:         over,
		GameWon:          s.GameWon(),
		CurrentRow:       s.CurrentRow(),
		RemainingGuesses: s.RemainingGuesses(),
	}
	if over {
		snap.SecretCode = s.config.SecretCode
	}
	if s.mode == MultiBoard {
		snap.PlayersData = s.PlayerStates()
	}
	return snap
}

// FromSnapshot rebuilds a GameState. cfg, when non-nil, is authoritative and
// supplies the secret a running game's snapshot does not carry. Derived
// fields in snap are recomputed, except that game_over keeps a finished game
// finished. A board history that continues past a win or past the last row
// is rejected with ErrInvalidHistory.
func FromSnapshot(snap Snapshot, cfg *GameConfig, opts ...Option) (*GameState, error) {
	c := snap.Config
	if cfg != nil {
		c = *cfg
	}
	if c.SecretCode == "" {
		c.SecretCode = snap.SecretCode
	}
	if c.SecretCode == "" {
		return nil, ErrSecretUnavailable
	}
	s, err := newState(c, snap.Mode, opts)
	if err != nil {
		return nil, err
	}
	for _, name := range snap.Players {
		if err := s.AddPlayer(name); err != nil {
			return nil, err
		}
	}
	if s.mode == SingleBoard {
		if err := checkHistory(SharedPlayerName, snap.Guesses, c); err != nil {
			return nil, err
		}
	}
	if s.mode == MultiBoard {
		for name, ps := range snap.PlayersData {
			if ps == nil {
				continue
			}
			if err := checkHistory(name, ps.Guesses, c); err != nil {
				return nil, err
			}
			restored := ps.clone()
			if restored.Name == "" {
				restored.Name = name
			}
			if restored.Guesses == nil {
				restored.Guesses = []PlayerGuess{}
			}
			restored.refresh(c)
			s.playerStates[name] = restored
		}
	}
	s.allGuesses = append(s.allGuesses, snap.Guesses...)
	s.winners = append(s.winners, snap.Winners...)
	s.gameStarted = snap.GameStarted || len(s.allGuesses) > 0
	s.finished = snap.GameOver
	s.settle()
	return s, nil
}

// checkHistory verifies that guesses could have been played on one board.
func checkHistory(name string, guesses []PlayerGuess, cfg GameConfig) error {
	if len(guesses) > cfg.NumOfGuesses {
		return fmt.Errorf("%w: %s has %d guesses, the board has %d rows", ErrInvalidHistory, name, len(guesses), cfg.NumOfGuesses)
	}
	for i, g := range guesses {
		if g.Bulls == cfg.CodeLength && i < len(guesses)-1 {
			return fmt.Errorf("%w: %s guessed again after winning on guess %d", ErrInvalidHistory, name, i+1)
		}
	}
	return nil
}

// ToJSON encodes the snapshot.
func (s *GameState) ToJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// MarshalJSON encodes a GameState as its Snapshot.
func (s *GameState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// FromJSON decodes data produced by ToJSON. See FromSnapshot for cfg.
func FromJSON(data []byte, cfg *GameConfig, opts ...Option) (*GameState, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode game state: %w", err)
	}
	return FromSnapshot(snap, cfg, opts...)
}

// Result is the outcome of GameState.SubmitGuess: either the new snapshot or
// an error message. It encodes as the snapshot or as {"error": "..."}.
type Result struct {
	Error string
	State *Snapshot
}

func (r Result) OK() bool { return r.Error == "" }

func (r Result) MarshalJSON() ([]byte, error) {
	if r.Error != "" || r.State == nil {
		return json.Marshal(map[string]string{"error": r.Error})
	}
	return json.Marshal(r.State)
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return append([]T{}, xs...)
}
