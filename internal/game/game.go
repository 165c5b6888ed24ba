// internal/game/game.go
//
// Game orchestrates several players guessing the same secret code.
// Responsibilities:
//   - Check that every player's board shares one configuration.
//   - Apply an optional secret code to every board.
//   - Route guesses to players and record winners in the order they win.
//   - Derive the overall status (SETUP / IN_PROGRESS / FINISHED).
//
// Winner order is the order of SubmitGuess calls that produced a win, never
// a timestamp. Logging goes through an injected zerolog.Logger (Nop by default).

package game

import (
	"fmt"

	"github.com/rs/zerolog"
)

type Game struct {
	players []*Player
	winners []*Player
	log     zerolog.Logger
}

// Option configures a Game at construction time.
type Option func(*Game)

// WithLogger routes game events (winners, finished players) to l.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) { g.log = l }
}

// New constructs a game. If secret is non-empty it is applied to every board.
func New(players []*Player, secret string, opts ...Option) (*Game, error) {
	if len(players) == 0 {
		return nil, ErrEmptyPlayers
	}
	seen := make(map[*Player]struct{}, len(players))
	var cfg Config
	for i, p := range players {
		if p == nil || p.Board() == nil {
			return nil, fmt.Errorf("%w: player %d is missing", ErrEmptyPlayers, i)
		}
		if _, dup := seen[p]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.Name)
		}
		seen[p] = struct{}{}
		if i == 0 {
			cfg = p.Board().Config()
		}
		if p.Board().Config() != cfg {
			return nil, fmt.Errorf("%w: %s has %+v, expected %+v", ErrConfigMismatch, p.Name, p.Board().Config(), cfg)
		}
	}

	g := &Game{
		players: append([]*Player(nil), players...),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if secret != "" {
		if err := g.SetSecretCode(secret); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// SetSecretCode applies code to every player's board.
func (g *Game) SetSecretCode(code string) error {
	for _, p := range g.players {
		if err := p.Board().SetSecretCode(code); err != nil {
			return err
		}
	}
	return nil
}

// Players returns the players in construction order.
func (g *Game) Players() []*Player { return append([]*Player(nil), g.players...) }

// Winners returns the players who have won, in the order they won.
func (g *Game) Winners() []*Player { return append([]*Player(nil), g.winners...) }

// Winner returns the first winner, or nil if nobody has won yet.
func (g *Game) Winner() *Player {
	if len(g.winners) == 0 {
		return nil
	}
	return g.winners[0]
}

// PlayerByName returns the first player with the given name.
func (g *Game) PlayerByName(name string) (*Player, bool) {
	for _, p := range g.players {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// SubmitGuess forwards guess to p and records p as a winner if the guess wins.
// Guesses from players who already won, or whose board is over, are ignored.
func (g *Game) SubmitGuess(p *Player, guess string) error {
	if p == nil {
		return ErrUnknownPlayer
	}
	if !g.has(p) {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, p.Name)
	}
	if g.hasWon(p) {
		g.log.Info().Str("player", p.Name).Msg("player already won the game")
		return nil
	}
	applied, err := p.MakeGuess(guess)
	if err != nil {
		return err
	}
	if !applied {
		g.log.Info().Str("player", p.Name).Msg("game over, guess ignored")
		return nil
	}
	switch {
	case p.GameWon():
		g.RecordWinner(p)
	case p.GameOver():
		g.log.Info().Str("player", p.Name).Msg("player has no more guesses")
	}
	return nil
}

// RecordWinner appends p to the winners if p belongs to the game, has won,
// and is not yet recorded. It reports whether p was appended.
func (g *Game) RecordWinner(p *Player) bool {
	if !g.addWinner(p) {
		return false
	}
	place := Ordinal(len(g.winners))
	g.log.Info().
		Str("player", p.Name).
		Str("place", place).
		Msgf("%s won the game in %s place", p.Name, place)
	return true
}

// RestoreWinners re-establishes a known winner order on a rebuilt game
// without logging. Players that have not won are skipped.
func (g *Game) RestoreWinners(ps ...*Player) {
	for _, p := range ps {
		g.addWinner(p)
	}
}

func (g *Game) addWinner(p *Player) bool {
	if !g.has(p) || !p.GameWon() || g.hasWon(p) {
		return false
	}
	g.winners = append(g.winners, p)
	return true
}

// State derives the lifecycle status from the players' boards.
func (g *Game) State() Status {
	allOver, anyMoved := true, false
	for _, p := range g.players {
		if !p.GameOver() {
			allOver = false
		}
		if p.Board().FilledRows() > 0 {
			anyMoved = true
		}
	}
	switch {
	case allOver:
		return StatusFinished
	case !anyMoved:
		return StatusSetup
	default:
		return StatusInProgress
	}
}

func (g *Game) has(p *Player) bool {
	for _, q := range g.players {
		if q == p {
			return true
		}
	}
	return false
}

func (g *Game) hasWon(p *Player) bool {
	for _, w := range g.winners {
		if w == p {
			return true
		}
	}
	return false
}

var ordinals = []string{"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth", "tenth"}

// Ordinal spells out a 1-based place ("first", "second", ...), falling back
// to "11th"-style suffixes past ten.
func Ordinal(n int) string {
	if n >= 1 && n <= len(ordinals) {
		return ordinals[n-1]
	}
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
