package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	for _, mode := range []Mode{SingleBoard, MultiBoard} {
		t.Run(mode.String(), func(t *testing.T) {
			s := newTestState(t, mode, "Alice", "Bob")
			require.True(t, s.SubmitGuess("Alice", "1324").OK())
			require.True(t, s.SubmitGuess("Bob", "5612").OK())
			if mode == MultiBoard {
				require.True(t, s.SubmitGuess("Bob", "1234").OK())
			}

			data, err := s.ToJSON()
			require.NoError(t, err)

			cfg := s.Config()
			got, err := FromJSON(data, &cfg, WithClock(fixedClock))
			require.NoError(t, err)

			assert.Equal(t, s.Mode(), got.Mode())
			assert.Equal(t, s.Config(), got.Config())
			assert.Equal(t, s.Players(), got.Players())
			assert.Equal(t, s.AllGuesses(), got.AllGuesses())
			assert.Equal(t, s.Winners(), got.Winners())
			assert.Equal(t, s.PlayerStates(), got.PlayerStates())
			assert.Equal(t, s.GameStarted(), got.GameStarted())
			assert.Equal(t, s.Snapshot(), got.Snapshot())
		})
	}
}

func TestSnapshot_HidesSecretUntilOver(t *testing.T) {
	s := newTestState(t, SingleBoard, "Alice")
	require.True(t, s.SubmitGuess("Alice", "1111").OK())

	data, err := s.ToJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret_code")
	assert.NotContains(t, string(data), "1234")

	_, err = FromJSON(data, nil)
	assert.ErrorIs(t, err, ErrSecretUnavailable)

	require.True(t, s.SubmitGuess("Alice", "1234").OK())
	data, err = s.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"secret_code":"1234"`)

	got, err := FromJSON(data, nil)
	require.NoError(t, err)
	assert.Equal(t, "1234", got.Config().SecretCode)
	assert.True(t, got.GameOver())
	assert.Equal(t, []string{"Alice"}, got.Winners())
}

func TestSnapshot_Keys(t *testing.T) {
	s := newTestState(t, MultiBoard, "Alice")
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))
	for _, k := range []string{
		"config", "mode", "players", "guesses", "players_data", "winners",
		"game_started", "game_over", "game_won", "current_row", "remaining_guesses",
	} {
		assert.Contains(t, m, k)
	}
	assert.JSONEq(t, `"MULTI_BOARD"`, string(m["mode"]))
	assert.JSONEq(t, `[]`, string(m["guesses"]))
	assert.JSONEq(t, `{"code_length":4,"num_of_colors":6,"num_of_guesses":10}`, string(m["config"]))
}

func TestFromJSON_Errors(t *testing.T) {
	_, err := FromJSON([]byte(`{`), nil)
	assert.Error(t, err)

	_, err = FromJSON([]byte(`{"mode":"TRIPLE","config":{"code_length":4,"num_of_colors":6,"num_of_guesses":10}}`), nil)
	assert.ErrorIs(t, err, ErrInvalidMode)

	cfg := DefaultConfig()
	cfg.SecretCode = "1234"
	_, err = FromJSON([]byte(`{"mode":"SINGLE_BOARD","config":{"code_length":2,"num_of_colors":6,"num_of_guesses":10}}`), &cfg)
	assert.NoError(t, err)
}

func TestFromSnapshot_RejectsHistoryPastBoardEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SecretCode = "1234"
	cfg.NumOfGuesses = 2
	win := PlayerGuess{Guess: "1234", Bulls: 4, Player: "Alice", Timestamp: fixedNow}
	miss := PlayerGuess{Guess: "5555", Player: "Alice", Timestamp: fixedNow}

	tests := []struct {
		name string
		snap Snapshot
	}{
		{
			name: "single board guess after win",
			snap: Snapshot{Config: cfg, Mode: SingleBoard, Players: []string{"Alice"}, Guesses: []PlayerGuess{win, miss}},
		},
		{
			name: "single board more guesses than rows",
			snap: Snapshot{Config: cfg, Mode: SingleBoard, Players: []string{"Alice"}, Guesses: []PlayerGuess{miss, miss, miss}},
		},
		{
			name: "multi board guess after win",
			snap: Snapshot{
				Config:      cfg,
				Mode:        MultiBoard,
				Players:     []string{"Alice"},
				Guesses:     []PlayerGuess{win, miss},
				PlayersData: map[string]*PlayerState{"Alice": {Name: "Alice", Guesses: []PlayerGuess{win, miss}}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromSnapshot(tt.snap, nil)
			assert.ErrorIs(t, err, ErrInvalidHistory)
		})
	}

	ok := Snapshot{Config: cfg, Mode: SingleBoard, Players: []string{"Alice"}, Guesses: []PlayerGuess{miss, win}}
	s, err := FromSnapshot(ok, nil)
	require.NoError(t, err)
	assert.True(t, s.GameWon())
	assert.True(t, s.GameOver())
}

func TestPlayerGuess_MissingTimestamp(t *testing.T) {
	var g PlayerGuess
	require.NoError(t, json.Unmarshal([]byte(`{"guess":"1234","bulls":4,"cows":0,"player":"Alice"}`), &g))
	assert.Equal(t, "Alice", g.Player)
	assert.False(t, g.Timestamp.IsZero())
}

func TestResult_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Result{Error: MsgGameOver})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Game is already over"}`, string(data))

	s := newTestState(t, SingleBoard, "Alice")
	res := s.SubmitGuess("Alice", "1324")
	data, err = json.Marshal(res)
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, 2, snap.Guesses[0].Bulls)
	assert.Equal(t, 2, snap.Guesses[0].Cows)
}
