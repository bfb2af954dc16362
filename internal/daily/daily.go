// internal/daily/daily.go
//
// Daily root word: every player gets the same challenge word on a given UTC
// date. The word is picked with HMAC-SHA256(salt, YYYY-MM-DD) so the choice
// cannot be predicted without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordscramble/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// RootWord returns the day's root word from source. Like game.SelectRootWord
// it never fails: load errors and empty lists yield the fallback word.
func RootWord(date time.Time, salt string, source game.WordSource) string {
	if source == nil {
		return game.FallbackRootWord
	}
	list, err := source.Load()
	if err != nil || len(list) == 0 {
		return game.FallbackRootWord
	}
	return list[WordIndex(date, salt, len(list))]
}
