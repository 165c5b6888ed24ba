// internal/daily/daily.go
//
// Deterministic "daily challenge" secret codes.
// Every game created as daily on the same UTC day draws the same code,
// derived from HMAC-SHA256(salt, YYYY-MM-DD).

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Code returns the code of the given day: length digits in [1, colors].
// Digits are taken from successive HMAC blocks so any length is supported.
func Code(date time.Time, salt string, length, colors int) (string, error) {
	if length < 1 || colors < 1 || colors > 9 {
		return "", fmt.Errorf("daily: invalid code shape %d/%d", length, colors)
	}
	dk := DateKey(date)
	var b strings.Builder
	for block := uint32(0); b.Len() < length; block++ {
		h := hmac.New(sha256.New, []byte(salt))
		h.Write([]byte(dk))
		var ctr [4]byte
		binary.BigEndian.PutUint32(ctr[:], block)
		h.Write(ctr[:])
		for _, x := range h.Sum(nil) {
			if b.Len() == length {
				break
			}
			b.WriteByte(byte('1' + int(x)%colors))
		}
	}
	return b.String(), nil
}

// Generator serves the current day's code. It satisfies secret.Generator.
type Generator struct {
	Salt string
	Now  func() time.Time
}

func (g Generator) Generate(length, colors int) (string, error) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return Code(now(), g.Salt, length, colors)
}
