// internal/game/board.go
//
// Board owns one grid of guess rows scored against a single secret code.
// Responsibilities:
//   - Validate the configuration and the secret code.
//   - Score guesses into rows (overwrite semantics per row index).
//   - Report win/loss: won once any row is a winning row; over once won,
//     once the last row is filled, or once an out-of-range row is attempted.
//
// Both flags are derived from the rows on every read, so they can never
// drift from the grid itself. They only ever move from false to true:
// EvaluateGuess refuses to touch a board that is already over.

package game

import "fmt"

// Board is one play surface. The zero value is not usable; call NewBoard.
type Board struct {
	cfg        Config
	secret     Code
	rows       []Row
	overflowed bool // an out-of-range row index was attempted
}

// NewBoard constructs an empty board. secret may be empty and set later
// with SetSecretCode.
func NewBoard(cfg Config, secret string) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Board{cfg: cfg}
	b.initRows()
	if secret != "" {
		if err := b.SetSecretCode(secret); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Board) initRows() {
	b.rows = make([]Row, b.cfg.NumGuesses)
	for i := range b.rows {
		b.rows[i] = Row{Guess: make(Code, b.cfg.CodeLength)}
	}
}

func (b *Board) Config() Config { return b.cfg }
func (b *Board) CodeLength() int { return b.cfg.CodeLength }
func (b *Board) NumColors() int { return b.cfg.NumColors }
func (b *Board) NumGuesses() int { return b.cfg.NumGuesses }
func (b *Board) HasSecret() bool { return len(b.secret) > 0 }

// SecretCode returns the secret as a digit string, or "" when unset.
func (b *Board) SecretCode() string { return b.secret.String() }

// SetSecretCode validates and stores the secret. Setting it again overwrites it.
func (b *Board) SetSecretCode(code string) error {
	if code == "" {
		return ErrMissingSecret
	}
	digits, err := ValidateCode(code, b.cfg.CodeLength, b.cfg.NumColors)
	if err != nil {
		return err
	}
	b.secret = digits
	return nil
}

// Rows returns a copy of the grid, in order.
func (b *Board) Rows() []Row {
	out := make([]Row, len(b.rows))
	for i, r := range b.rows {
		r.Guess = append(Code(nil), r.Guess...)
		out[i] = r
	}
	return out
}

// CurrentRowIndex is the index of the first unfilled row, or RowsFull.
func (b *Board) CurrentRowIndex() int {
	for i, r := range b.rows {
		if !r.Filled {
			return i
		}
	}
	return RowsFull
}

// FilledRows counts rows that hold an evaluated guess.
func (b *Board) FilledRows() int {
	n := 0
	for _, r := range b.rows {
		if r.Filled {
			n++
		}
	}
	return n
}

// GameWon reports whether any row is a winning row.
func (b *Board) GameWon() bool {
	for _, r := range b.rows {
		if r.IsWinning() {
			return true
		}
	}
	return false
}

// GameOver reports whether no further guesses can be evaluated.
func (b *Board) GameOver() bool {
	if b.overflowed || b.GameWon() {
		return true
	}
	return len(b.rows) > 0 && b.rows[len(b.rows)-1].Filled
}

// EvaluateGuess scores guess against the secret and writes it into row idx,
// replacing whatever the row held.
//
// Errors:
//   - ErrGameOver if the board is already over.
//   - ErrRowIndex if idx is outside [0, NumGuesses); the board is then over.
//   - ErrEmptySecret if no secret has been set.
func (b *Board) EvaluateGuess(idx int, guess Code) (Row, error) {
	if b.GameOver() {
		return Row{}, ErrGameOver
	}
	if idx < 0 || idx >= len(b.rows) {
		b.overflowed = true
		return Row{}, fmt.Errorf("%w: %d not in [0, %d)", ErrRowIndex, idx, len(b.rows))
	}
	bulls, cows, err := Score(b.secret, guess)
	if err != nil {
		return Row{}, err
	}
	row := Row{
		Guess:  append(Code(nil), guess...),
		Bulls:  bulls,
		Cows:   cows,
		Filled: true,
	}
	b.rows[idx] = row
	return row, nil
}

// Duplicate returns a fresh, empty board with the same configuration and secret.
func (b *Board) Duplicate() *Board {
	nb := &Board{cfg: b.cfg, secret: append(Code(nil), b.secret...)}
	nb.initRows()
	return nb
}
