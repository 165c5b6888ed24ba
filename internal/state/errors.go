package state

import (
	"errors"

	"github.com/robalobadob/bullscows/internal/game"
)

// ErrInvalidConfig is the configuration validation error shared with the game package.
var ErrInvalidConfig = game.ErrInvalidConfig

var (
	ErrInvalidMode       = errors.New("invalid game mode")
	ErrEmptyPlayerName   = errors.New("player name cannot be empty")
	ErrPlayerFinished    = errors.New("has no more guesses")
	ErrSecretUnavailable = errors.New("snapshot has no secret code and none was supplied")
	ErrInvalidHistory    = errors.New("guess history does not fit the board")
	ErrGameOver          = errors.New(MsgGameOver)
)

// MsgGameOver is the error text SubmitGuess reports once the game is over.
const MsgGameOver = "Game is already over"
