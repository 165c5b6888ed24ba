// internal/secret/secret.go
//
// Secret code sources for new games.
//
// Responsibilities:
//   - Define the Generator capability the game state uses to draw secrets.
//   - Local: cryptographically random digits, never fails for valid input.
//   - Fallback: try a primary source (usually random.org), validate what it
//     returns, and fall back to a secondary source on any failure.
//
// Digits are 1-based: every generated digit lies in [1, colors].

package secret

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/rs/zerolog"

	"github.com/robalobadob/bullscows/internal/game"
)

// Generator returns a digit string of the requested length drawn from [1, colors].
type Generator interface {
	Generate(length, colors int) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(length, colors int) (string, error)

func (f GeneratorFunc) Generate(length, colors int) (string, error) { return f(length, colors) }

// Local draws digits from crypto/rand.
type Local struct{}

func (Local) Generate(length, colors int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("secret: length must be a positive integer, got %d", length)
	}
	if colors < 1 || colors > game.MaxNumColors {
		return "", fmt.Errorf("secret: colors must be between 1 and %d, got %d", game.MaxNumColors, colors)
	}
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(colors)))
		if err != nil {
			return "", fmt.Errorf("secret: read random: %w", err)
		}
		b.WriteByte(byte('1' + n.Int64()))
	}
	return b.String(), nil
}

// RandomGuess returns a random valid code, handy for bots and demos.
func RandomGuess(length, colors int) string {
	s, err := Local{}.Generate(length, colors)
	if err != nil {
		return ""
	}
	return s
}

// Fallback uses Primary and, when it fails or returns a code that does not
// validate, Secondary.
type Fallback struct {
	Primary   Generator
	Secondary Generator
	Log       zerolog.Logger
}

// NewFallback wires primary with a Local secondary.
func NewFallback(primary Generator, log zerolog.Logger) *Fallback {
	return &Fallback{Primary: primary, Secondary: Local{}, Log: log}
}

func (f *Fallback) Generate(length, colors int) (string, error) {
	if f.Primary != nil {
		code, err := f.Primary.Generate(length, colors)
		if err == nil {
			_, err = game.ValidateCode(code, length, colors)
		}
		if err == nil {
			return code, nil
		}
		f.Log.Warn().Err(err).Msg("failed to get secret code from primary source, falling back to local generation")
	}
	secondary := f.Secondary
	if secondary == nil {
		secondary = Local{}
	}
	return secondary.Generate(length, colors)
}
