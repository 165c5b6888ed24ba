// internal/game/code.go
//
// Code validation and Bulls and Cows scoring.
//
// Notes:
//   - Digits are 1-based: every digit must lie in [1, numColors].
//   - Scoring is duplicate aware: a position that scores a bull never
//     contributes to a cow, and each digit value can only be matched as
//     many times as it appears in both codes.

package game

import (
	"fmt"
	"unicode/utf8"
)

// ValidateCode normalizes a raw code string into digits.
//
// Validation rules, checked in order:
//   - code must have exactly length characters (ErrLength).
//   - Every character must be a decimal digit (ErrFormat).
//   - Every digit must be in [1, numColors] (ErrRange).
func ValidateCode(code string, length, numColors int) (Code, error) {
	if utf8.RuneCountInString(code) != length {
		return nil, fmt.Errorf("%w: code must be exactly %d digits long, got %q", ErrLength, length, code)
	}
	if !isDigits(code) {
		return nil, fmt.Errorf("%w: got %q", ErrFormat, code)
	}
	digits := make(Code, len(code))
	for i := 0; i < len(code); i++ {
		d := int(code[i] - '0')
		if !inColorRange(d, numColors) {
			return nil, fmt.Errorf("%w: digit %d must be between 1 and %d", ErrRange, d, numColors)
		}
		digits[i] = d
	}
	return digits, nil
}

// Score counts bulls and cows of guess against secret.
//
// Pass 1: bulls are exact positional matches; the remaining (non-bull)
// secret and guess digits are tallied per value.
// Pass 2: for each digit value, the smaller of the two tallies is a cow.
//
// This is the same quantity as Σ min(count_secret(d), count_guess(d)) − bulls.
func Score(secret, guess Code) (bulls, cows int, err error) {
	if len(secret) == 0 {
		return 0, 0, ErrEmptySecret
	}
	if len(guess) != len(secret) {
		return 0, 0, fmt.Errorf("%w: guess has %d digits, secret has %d", ErrLength, len(guess), len(secret))
	}

	var secretLeft, guessLeft [10]int
	for i := range secret {
		if guess[i] == secret[i] {
			bulls++
			continue
		}
		secretLeft[digitIdx(secret[i])]++
		guessLeft[digitIdx(guess[i])]++
	}
	for d := range secretLeft {
		cows += min(secretLeft[d], guessLeft[d])
	}
	return bulls, cows, nil
}

// digitIdx clamps a digit into the tally array; out-of-range digits
// are expected to be rejected by ValidateCode beforehand.
func digitIdx(d int) int {
	if d < 0 || d > 9 {
		return 0
	}
	return d
}

func inColorRange(d, numColors int) bool {
	return d >= 1 && d <= numColors
}

// isDigits checks that a string consists only of ASCII 0–9.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
