package state

import (
	"encoding/json"
	"time"

	"github.com/robalobadob/bullscows/internal/game"
)

// PlayerGuess is one evaluated guess, in submission order.
type PlayerGuess struct {
	Guess     string    `json:"guess"`
	Bulls     int       `json:"bulls"`
	Cows      int       `json:"cows"`
	Player    string    `json:"player"`
	Timestamp time.Time `json:"timestamp"`
}

// UnmarshalJSON stamps records that arrive without a timestamp with the current time.
func (g *PlayerGuess) UnmarshalJSON(b []byte) error {
	type plain PlayerGuess
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}
	*g = PlayerGuess(p)
	return nil
}

// PlayerState is the per-player projection used in MultiBoard mode.
// Everything except Name and Guesses is derived from the guesses; see refresh.
type PlayerState struct {
	Name             string        `json:"name"`
	Guesses          []PlayerGuess `json:"guesses"`
	CurrentRow       int           `json:"current_row"`
	GameOver         bool          `json:"game_over"`
	GameWon          bool          `json:"game_won"`
	RemainingGuesses int           `json:"remaining_guesses"`
}

// NewPlayerState returns an empty state for a player with numGuesses to play.
func NewPlayerState(name string, numGuesses int) *PlayerState {
	return &PlayerState{
		Name:             name,
		Guesses:          []PlayerGuess{},
		RemainingGuesses: numGuesses,
	}
}

// refresh recomputes the derived fields from Guesses, matching what a board
// replaying those guesses would report.
func (ps *PlayerState) refresh(cfg GameConfig) {
	filled := len(ps.Guesses)
	ps.GameWon = false
	for _, g := range ps.Guesses {
		if g.Bulls == cfg.CodeLength {
			ps.GameWon = true
			break
		}
	}
	ps.GameOver = ps.GameWon || filled >= cfg.NumOfGuesses
	ps.CurrentRow = filled
	if filled >= cfg.NumOfGuesses {
		ps.CurrentRow = game.RowsFull
	}
	ps.RemainingGuesses = max(cfg.NumOfGuesses-filled, 0)
}

func (ps *PlayerState) clone() *PlayerState {
	c := *ps
	c.Guesses = append([]PlayerGuess{}, ps.Guesses...)
	return &c
}
