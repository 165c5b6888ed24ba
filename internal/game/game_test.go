package game

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayer(t *testing.T, name string, cfg Config, secret string) *Player {
	t.Helper()
	b, err := NewBoard(cfg, secret)
	require.NoError(t, err)
	return NewPlayer(name, b)
}

func TestPlayer_MakeGuess(t *testing.T) {
	p := newTestPlayer(t, "Alice", DefaultConfig(), "1234")

	applied, err := p.MakeGuess("5555")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.False(t, p.GameOver())

	applied, err = p.MakeGuess("1234")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, p.GameWon())
	assert.True(t, p.GameOver())

	applied, err = p.MakeGuess("5555")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 2, p.Board().FilledRows())
}

func TestPlayer_MakeGuessValidation(t *testing.T) {
	p := newTestPlayer(t, "Alice", DefaultConfig(), "1234")
	tests := []struct {
		guess   string
		wantErr error
	}{
		{"123", ErrLength},
		{"12ab", ErrFormat},
		{"1237", ErrRange},
	}
	for _, tt := range tests {
		_, err := p.MakeGuess(tt.guess)
		assert.ErrorIs(t, err, tt.wantErr, tt.guess)
	}
	assert.Equal(t, 0, p.Board().FilledRows())
}

func TestPlayer_MakeGuessWithoutSecret(t *testing.T) {
	p := newTestPlayer(t, "Alice", DefaultConfig(), "")
	_, err := p.MakeGuess("1234")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestNewGame_Errors(t *testing.T) {
	_, err := New(nil, "")
	assert.ErrorIs(t, err, ErrEmptyPlayers)

	alice := newTestPlayer(t, "Alice", DefaultConfig(), "")
	longer := DefaultConfig()
	longer.CodeLength = 5
	bob := newTestPlayer(t, "Bob", longer, "")
	_, err = New([]*Player{alice, bob}, "")
	assert.ErrorIs(t, err, ErrConfigMismatch)

	moreColors := DefaultConfig()
	moreColors.NumColors = 7
	carol := newTestPlayer(t, "Carol", moreColors, "")
	_, err = New([]*Player{alice, carol}, "")
	assert.ErrorIs(t, err, ErrConfigMismatch)

	_, err = New([]*Player{alice, alice}, "")
	assert.ErrorIs(t, err, ErrDuplicatePlayer)

	_, err = New([]*Player{alice}, "9999")
	assert.ErrorIs(t, err, ErrRange)

	_, err = New([]*Player{nil}, "")
	assert.ErrorIs(t, err, ErrEmptyPlayers)

	_, err = New([]*Player{alice, nil}, "")
	assert.ErrorIs(t, err, ErrEmptyPlayers)
}

func TestNewGame_AppliesSecret(t *testing.T) {
	players := []*Player{
		newTestPlayer(t, "Alice", DefaultConfig(), ""),
		newTestPlayer(t, "Bob", DefaultConfig(), ""),
	}
	g, err := New(players, "1234")
	require.NoError(t, err)
	for _, p := range g.Players() {
		assert.Equal(t, "1234", p.Board().SecretCode())
	}
	assert.Equal(t, StatusSetup, g.State())
}

func TestGame_SubmitGuess(t *testing.T) {
	p := newTestPlayer(t, "Alice", DefaultConfig(), "1234")
	g, err := New([]*Player{p}, "")
	require.NoError(t, err)

	require.NoError(t, g.SubmitGuess(p, "5555"))
	assert.Equal(t, StatusInProgress, g.State())
	assert.Nil(t, g.Winner())

	require.NoError(t, g.SubmitGuess(p, "1234"))
	assert.Same(t, p, g.Winner())
	assert.Equal(t, StatusFinished, g.State())

	// Already won: ignored, not an error.
	require.NoError(t, g.SubmitGuess(p, "5555"))
	assert.Len(t, g.Winners(), 1)
	assert.Equal(t, 2, p.Board().FilledRows())
}

func TestGame_SubmitGuessPropagatesErrors(t *testing.T) {
	p := newTestPlayer(t, "Alice", DefaultConfig(), "1234")
	g, err := New([]*Player{p}, "")
	require.NoError(t, err)

	assert.ErrorIs(t, g.SubmitGuess(p, "12ab"), ErrFormat)

	stranger := newTestPlayer(t, "Mallory", DefaultConfig(), "1234")
	assert.ErrorIs(t, g.SubmitGuess(stranger, "1234"), ErrUnknownPlayer)

	assert.ErrorIs(t, g.SubmitGuess(nil, "1234"), ErrUnknownPlayer)
	assert.False(t, g.RecordWinner(nil))
}

func TestGame_PlayerOutOfGuesses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumGuesses = 1
	p := newTestPlayer(t, "Alice", cfg, "1234")
	g, err := New([]*Player{p}, "")
	require.NoError(t, err)

	require.NoError(t, g.SubmitGuess(p, "5555"))
	assert.True(t, p.GameOver())
	require.NoError(t, g.SubmitGuess(p, "1234"))
	assert.False(t, p.GameWon())
	assert.Empty(t, g.Winners())
	assert.Equal(t, StatusFinished, g.State())
}

func TestGame_WinnerOrderFollowsCallOrder(t *testing.T) {
	alice := newTestPlayer(t, "Alice", DefaultConfig(), "1234")
	bob := newTestPlayer(t, "Bob", DefaultConfig(), "1234")
	g, err := New([]*Player{alice, bob}, "")
	require.NoError(t, err)

	require.NoError(t, g.SubmitGuess(bob, "1234"))
	require.NoError(t, g.SubmitGuess(alice, "1234"))

	assert.Equal(t, []*Player{bob, alice}, g.Winners())
	assert.Same(t, bob, g.Winner())
}

func TestGame_ThreePlayersAllWin(t *testing.T) {
	var players []*Player
	for _, name := range []string{"P1", "P2", "P3"} {
		players = append(players, newTestPlayer(t, name, DefaultConfig(), ""))
	}
	g, err := New(players, "1234")
	require.NoError(t, err)

	for _, p := range players {
		require.NoError(t, g.SubmitGuess(p, "1234"))
	}
	assert.Equal(t, players, g.Winners())
	assert.Equal(t, StatusFinished, g.State())
}

func TestGame_StateInProgressUntilAllFinish(t *testing.T) {
	alice := newTestPlayer(t, "Alice", DefaultConfig(), "1234")
	bob := newTestPlayer(t, "Bob", DefaultConfig(), "1234")
	g, err := New([]*Player{alice, bob}, "")
	require.NoError(t, err)

	require.NoError(t, g.SubmitGuess(alice, "1234"))
	assert.Equal(t, StatusInProgress, g.State())
	require.NoError(t, g.SubmitGuess(bob, "1234"))
	assert.Equal(t, StatusFinished, g.State())
}

func TestGame_SharedBoard(t *testing.T) {
	b, err := NewBoard(DefaultConfig(), "1234")
	require.NoError(t, err)
	alice, bob := NewPlayer("Alice", b), NewPlayer("Bob", b)
	g, err := New([]*Player{alice, bob}, "")
	require.NoError(t, err)

	require.NoError(t, g.SubmitGuess(alice, "5555"))
	require.NoError(t, g.SubmitGuess(bob, "1234"))

	assert.Equal(t, 2, b.FilledRows())
	assert.Equal(t, []*Player{bob}, g.Winners())
	// Alice shares the won board; her next guess is a no-op.
	require.NoError(t, g.SubmitGuess(alice, "1234"))
	assert.Equal(t, []*Player{bob}, g.Winners())
}

func TestGame_RecordWinner(t *testing.T) {
	alice := newTestPlayer(t, "Alice", DefaultConfig(), "1234")
	g, err := New([]*Player{alice}, "")
	require.NoError(t, err)

	assert.False(t, g.RecordWinner(alice), "has not won yet")
	_, err = alice.MakeGuess("1234")
	require.NoError(t, err)
	assert.True(t, g.RecordWinner(alice))
	assert.False(t, g.RecordWinner(alice), "already recorded")
}

func TestGame_LogsWinnerPlace(t *testing.T) {
	var buf bytes.Buffer
	alice := newTestPlayer(t, "Alice", DefaultConfig(), "1234")
	g, err := New([]*Player{alice}, "", WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)

	require.NoError(t, g.SubmitGuess(alice, "1234"))
	assert.Contains(t, buf.String(), "Alice won the game in first place")

	buf.Reset()
	require.NoError(t, g.SubmitGuess(alice, "5555"))
	assert.Contains(t, buf.String(), "already won")
}

func TestOrdinal(t *testing.T) {
	assert.Equal(t, "first", Ordinal(1))
	assert.Equal(t, "third", Ordinal(3))
	assert.Equal(t, "11th", Ordinal(11))
	assert.Equal(t, "21st", Ordinal(21))
	assert.Equal(t, "22nd", Ordinal(22))
	assert.Equal(t, "113th", Ordinal(113))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "SETUP", StatusSetup.String())
	assert.Equal(t, "IN_PROGRESS", StatusInProgress.String())
	assert.Equal(t, "FINISHED", StatusFinished.String())
}
