package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		length  int
		colors  int
		want    Code
		wantErr error
	}{
		{name: "valid", code: "1234", length: 4, colors: 6, want: Code{1, 2, 3, 4}},
		{name: "max color", code: "6666", length: 4, colors: 6, want: Code{6, 6, 6, 6}},
		{name: "too short", code: "123", length: 4, colors: 6, wantErr: ErrLength},
		{name: "too long", code: "12345", length: 4, colors: 6, wantErr: ErrLength},
		{name: "empty", code: "", length: 4, colors: 6, wantErr: ErrLength},
		{name: "letters", code: "12ab", length: 4, colors: 6, wantErr: ErrFormat},
		{name: "sign", code: "-123", length: 4, colors: 6, wantErr: ErrFormat},
		{name: "multibyte letter", code: "12é4", length: 4, colors: 6, wantErr: ErrFormat},
		{name: "leading space", code: " 1234", length: 4, colors: 6, wantErr: ErrLength},
		{name: "above range", code: "1237", length: 4, colors: 6, wantErr: ErrRange},
		{name: "zero is out of range", code: "1230", length: 4, colors: 6, wantErr: ErrRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCode(tt.code, tt.length, tt.colors)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateCode_LengthCheckedBeforeFormat(t *testing.T) {
	_, err := ValidateCode("ab", 4, 6)
	assert.ErrorIs(t, err, ErrLength)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		secret    Code
		guess     Code
		wantBulls int
		wantCows  int
	}{
		{"all bulls", Code{1, 2, 3, 4}, Code{1, 2, 3, 4}, 4, 0},
		{"all cows", Code{1, 2, 3, 4}, Code{4, 3, 2, 1}, 0, 4},
		{"no matches", Code{1, 2, 3, 4}, Code{5, 5, 6, 6}, 0, 0},
		{"mixed", Code{1, 2, 3, 4}, Code{1, 3, 2, 5}, 1, 2},
		{"duplicate in secret", Code{1, 1, 2, 3}, Code{1, 2, 1, 1}, 1, 2},
		{"duplicate in guess", Code{1, 2, 3, 4}, Code{1, 1, 1, 1}, 1, 0},
		{"swapped pairs", Code{1, 1, 2, 2}, Code{2, 2, 1, 1}, 0, 4},
		{"two and two", Code{1, 2, 3, 4}, Code{1, 3, 2, 4}, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bulls, cows, err := Score(tt.secret, tt.guess)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBulls, bulls, "bulls")
			assert.Equal(t, tt.wantCows, cows, "cows")
		})
	}
}

func TestScore_EmptySecret(t *testing.T) {
	_, _, err := Score(nil, Code{1, 2, 3, 4})
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestScore_LengthMismatch(t *testing.T) {
	_, _, err := Score(Code{1, 2, 3, 4}, Code{1, 2, 3})
	assert.ErrorIs(t, err, ErrLength)
}

// Every code over 4 positions and 5 colors against a handful of secrets:
// bulls+cows never exceeds the length, and bulls == length only for an exact match.
func TestScore_Bounds(t *testing.T) {
	secrets := []Code{{1, 2, 3, 4}, {1, 1, 2, 2}, {5, 5, 5, 5}, {3, 1, 3, 1}}
	for _, secret := range secrets {
		forEachCode(4, 5, func(guess Code) {
			bulls, cows, err := Score(secret, guess)
			require.NoError(t, err)
			assert.LessOrEqual(t, bulls+cows, len(secret))
			assert.GreaterOrEqual(t, cows, 0)
			assert.Equal(t, secret.String() == guess.String(), bulls == len(secret), "secret %s guess %s", secret, guess)
		})
	}
}

// Cows depend only on the multiset intersection: reordering both codes with
// the same permutation leaves the score unchanged.
func TestScore_PermutationInvariant(t *testing.T) {
	secret, guess := Code{1, 1, 2, 3}, Code{1, 2, 1, 1}
	perm := []int{3, 0, 2, 1}
	ps, pg := make(Code, 4), make(Code, 4)
	for i, j := range perm {
		ps[i], pg[i] = secret[j], guess[j]
	}
	b1, c1, err := Score(secret, guess)
	require.NoError(t, err)
	b2, c2, err := Score(ps, pg)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
	assert.Equal(t, c1, c2)
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "1324", Code{1, 3, 2, 4}.String())
	assert.Equal(t, "", Code(nil).String())
}

func forEachCode(length, colors int, fn func(Code)) {
	c := make(Code, length)
	for i := range c {
		c[i] = 1
	}
	for {
		fn(append(Code(nil), c...))
		i := length - 1
		for i >= 0 && c[i] == colors {
			c[i] = 1
			i--
		}
		if i < 0 {
			return
		}
		c[i]++
	}
}
