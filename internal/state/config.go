// internal/state/config.go
//
// Game configuration and board mode for the serializable game state.
//
// Notes:
//   - GameConfig mirrors the board invariants (game.Config.Validate) and
//     additionally checks the optional secret code.
//   - The secret is generated through a secret.Generator when absent.

package state

import (
	"fmt"
	"strings"

	"github.com/robalobadob/bullscows/internal/game"
	"github.com/robalobadob/bullscows/internal/secret"
)

// Mode selects how players share boards.
type Mode int

const (
	// SingleBoard: all players write guesses into one shared board.
	SingleBoard Mode = 1
	// MultiBoard: each player has an independent board against the same secret.
	MultiBoard Mode = 2
)

func (m Mode) String() string {
	switch m {
	case SingleBoard:
		return "SINGLE_BOARD"
	case MultiBoard:
		return "MULTI_BOARD"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) Valid() bool { return m == SingleBoard || m == MultiBoard }

// ParseMode accepts "SINGLE_BOARD"/"MULTI_BOARD" in any case, the short
// forms "single"/"multi", and the numeric forms "1"/"2".
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SINGLE_BOARD", "SINGLE", "1":
		return SingleBoard, nil
	case "MULTI_BOARD", "MULTI", "2":
		return MultiBoard, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// GameConfig is the game-wide configuration.
type GameConfig struct {
	CodeLength   int    `json:"code_length"`
	NumOfColors  int    `json:"num_of_colors"`
	NumOfGuesses int    `json:"num_of_guesses"`
	SecretCode   string `json:"secret_code,omitempty"`
}

// DefaultConfig returns 4 positions, 6 colors, 10 guesses and no secret.
func DefaultConfig() GameConfig {
	d := game.DefaultConfig()
	return GameConfig{CodeLength: d.CodeLength, NumOfColors: d.NumColors, NumOfGuesses: d.NumGuesses}
}

// Board returns the board dimensions of the configuration.
func (c GameConfig) Board() game.Config {
	return game.Config{CodeLength: c.CodeLength, NumColors: c.NumOfColors, NumGuesses: c.NumOfGuesses}
}

// Validate checks the board invariants and, when present, the secret code.
func (c GameConfig) Validate() error {
	if err := c.Board().Validate(); err != nil {
		return err
	}
	if c.SecretCode == "" {
		return nil
	}
	if len(c.SecretCode) != c.CodeLength {
		return fmt.Errorf("%w: secret_code must be %d digits long", ErrInvalidConfig, c.CodeLength)
	}
	if _, err := game.ValidateCode(c.SecretCode, c.CodeLength, c.NumOfColors); err != nil {
		return fmt.Errorf("%w: secret_code: %w", ErrInvalidConfig, err)
	}
	return nil
}

// GenerateSecretCode draws a new secret from gen and checks it against the configuration.
func (c GameConfig) GenerateSecretCode(gen secret.Generator) (string, error) {
	if gen == nil {
		gen = secret.Local{}
	}
	code, err := gen.Generate(c.CodeLength, c.NumOfColors)
	if err != nil {
		return "", fmt.Errorf("generate secret code: %w", err)
	}
	if _, err := game.ValidateCode(code, c.CodeLength, c.NumOfColors); err != nil {
		return "", fmt.Errorf("generate secret code: %w", err)
	}
	return code, nil
}
