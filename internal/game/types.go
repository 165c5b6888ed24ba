// internal/game/types.go
//
// Core type definitions for the Bulls and Cows engine.
// Defines:
//   - Code: a validated digit sequence (secret or guess).
//   - Row: one guess attempt on a board and its bulls/cows outcome.
//   - Config: board dimensions shared by every player of a game.
//   - Status: coarse lifecycle of a Game (setup → in progress → finished).

package game

import (
	"fmt"
	"strings"
)

const (
	DefaultCodeLength = 4
	DefaultNumColors  = 6
	DefaultNumGuesses = 10

	MinCodeLength = 3
	MinNumColors  = 5
	// MaxNumColors is bounded by codes being strings of single decimal digits.
	MaxNumColors  = 9
	MinNumGuesses = 1
)

// RowsFull is returned by Board.CurrentRowIndex when every row is filled.
const RowsFull = -1

// Code is an ordered sequence of digits, each in [1, num_of_colors].
type Code []int

// String renders the code back into its digit-string form ("1234").
func (c Code) String() string {
	var b strings.Builder
	for _, d := range c {
		b.WriteByte(byte('0' + d))
	}
	return b.String()
}

// Row holds one guess attempt.
// Rows start empty (zero digits, Filled=false) and are filled by Board.EvaluateGuess.
type Row struct {
	Guess  Code `json:"guess"`
	Bulls  int  `json:"bulls"`
	Cows   int  `json:"cows"`
	Filled bool `json:"is_filled"`
}

// IsWinning reports whether the row is filled and every position is a bull.
func (r Row) IsWinning() bool {
	return r.Filled && r.Bulls == len(r.Guess)
}

// Config holds the board dimensions. All boards of a Game must share one Config.
type Config struct {
	CodeLength int
	NumColors  int
	NumGuesses int
}

// DefaultConfig returns the classic 4 positions, 6 colors, 10 guesses setup.
func DefaultConfig() Config {
	return Config{
		CodeLength: DefaultCodeLength,
		NumColors:  DefaultNumColors,
		NumGuesses: DefaultNumGuesses,
	}
}

// Validate enforces the board invariants.
func (c Config) Validate() error {
	if c.CodeLength < MinCodeLength {
		return fmt.Errorf("%w: code_length must be at least %d, got %d", ErrInvalidConfig, MinCodeLength, c.CodeLength)
	}
	if c.NumColors < MinNumColors {
		return fmt.Errorf("%w: num_of_colors must be at least %d, got %d", ErrInvalidConfig, MinNumColors, c.NumColors)
	}
	if c.NumColors > MaxNumColors {
		return fmt.Errorf("%w: num_of_colors must be at most %d, got %d", ErrInvalidConfig, MaxNumColors, c.NumColors)
	}
	if c.NumGuesses < MinNumGuesses {
		return fmt.Errorf("%w: num_of_guesses must be at least %d, got %d", ErrInvalidConfig, MinNumGuesses, c.NumGuesses)
	}
	return nil
}

// Status represents the lifecycle of a Game.
type Status int

const (
	StatusSetup Status = iota
	StatusInProgress
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusSetup:
		return "SETUP"
	case StatusInProgress:
		return "IN_PROGRESS"
	case StatusFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText lets Status render as its name in JSON payloads.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
