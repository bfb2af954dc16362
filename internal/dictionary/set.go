// Package dictionary provides the spell-check backends the rule engine
// consults: an in-memory word set, a SQLite table and a Redis set.
package dictionary

import (
	"context"
	"strings"

	"github.com/robalobadob/wordscramble/internal/game"
)

var _ game.Dictionary = (*Set)(nil)

// Set is an in-memory dictionary for a single language.
type Set struct {
	lang  string
	words map[string]struct{}
}

// NewSet builds a Set from a word list. Words are lowercased.
func NewSet(lang string, words []string) *Set {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &Set{lang: lang, words: m}
}

// IsValid reports whether word is in the set. Other languages are unknown.
func (s *Set) IsValid(_ context.Context, word, language string) (bool, error) {
	if language != s.lang {
		return false, nil
	}
	_, ok := s.words[word]
	return ok, nil
}

// Len returns the number of words held.
func (s *Set) Len() int { return len(s.words) }

// Close is a no-op.
func (s *Set) Close() error { return nil }
