package game

import "errors"

// Validator errors.
var (
	ErrLength = errors.New("code has the wrong number of digits")
	ErrFormat = errors.New("code must contain only digits")
	ErrRange  = errors.New("digit is out of color range")
)

// Board errors.
var (
	ErrEmptySecret   = errors.New("secret code must be set before calculating bulls and cows")
	ErrMissingSecret = errors.New("secret code cannot be empty")
	ErrRowIndex      = errors.New("row index is out of range")
	ErrGameOver      = errors.New("board is already over")
)

// Game errors.
var (
	ErrEmptyPlayers    = errors.New("players cannot be empty")
	ErrConfigMismatch  = errors.New("all players must have boards with the same configuration")
	ErrDuplicatePlayer = errors.New("player is listed more than once")
	ErrUnknownPlayer   = errors.New("player is not part of this game")
)

// ErrInvalidConfig is returned for any configuration that breaks the board invariants.
var ErrInvalidConfig = errors.New("invalid game configuration")
