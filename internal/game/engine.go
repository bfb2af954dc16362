// internal/game/engine.go
//
// Rule engine for a Word Scramble round.
// Responsibilities:
//   - Normalize raw submissions (lowercase, trim outer whitespace).
//   - Apply the rejection rules in fixed order: real word → originality → derivability.
//   - Pick the round's root word from a WordSource.
//
// Notes:
//   - Evaluate never mutates the Round; callers commit with Round.Accept.
//   - The dictionary lookup is the only call that may block.
//   - The real-word gate rejects length <= 3 but the message classifier only
//     says "too short" for length < 3. Three-letter words get "not a real word".
package game

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"unicode/utf8"
)

// minWordLength is the gate's cutoff; candidates must be strictly longer.
const minWordLength = 3

// Normalize lowercases raw and trims leading/trailing whitespace.
func Normalize(raw string) string {
	return strings.TrimSpace(strings.ToLower(raw))
}

// Evaluate runs the rules against round and returns the normalized word on
// acceptance. A refused candidate yields a *Rejection; any other error comes
// from the dictionary (including ctx cancellation).
//
// Rule order:
//  1. Empty after normalization → ReasonEmpty (silent).
//  2. Not longer than 3 runes, equal to the root, or unknown to dict → ReasonNotReal.
//  3. Already in UsedWords → ReasonAlreadyUsed.
//  4. Not spellable from the root's letters → ReasonNotPossible.
func Evaluate(ctx context.Context, round Round, raw string, dict Dictionary) (string, error) {
	word := Normalize(raw)
	if word == "" {
		return "", &Rejection{Reason: ReasonEmpty}
	}

	ok, err := isReal(ctx, round, word, dict)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", notReal(round, word)
	}

	if round.IsUsed(word) {
		return "", &Rejection{Reason: ReasonAlreadyUsed, Title: TitleSorry, Message: MsgAlreadyUsed}
	}

	if !IsDerivable(round.RootWord, word) {
		return "", &Rejection{Reason: ReasonNotPossible, Title: TitleSorry, Message: MsgNotPossible}
	}
	return word, nil
}

// isReal is the first gate. The dictionary is only consulted once the
// cheap checks pass.
func isReal(ctx context.Context, round Round, word string, dict Dictionary) (bool, error) {
	if utf8.RuneCountInString(word) <= minWordLength || word == round.RootWord {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return dict.IsValid(ctx, word, Language)
}

// notReal builds the NotReal rejection. Title and message are chosen
// independently of the gate condition that failed.
func notReal(round Round, word string) *Rejection {
	title := TitleSorry
	if word == round.RootWord {
		title = TitleNiceTry
	}

	var msg string
	switch {
	case utf8.RuneCountInString(word) < minWordLength:
		msg = MsgTooShort
	case word == round.RootWord:
		msg = MsgSameAsRoot
	default:
		msg = MsgNotReal
	}
	return &Rejection{Reason: ReasonNotReal, Title: title, Message: msg}
}

// IsDerivable reports whether word can be spelled from root's letters,
// using each letter at most as often as it occurs in root.
//
// Both strings must already share the same case.
func IsDerivable(root, word string) bool {
	pool := []rune(root)
	for _, r := range word {
		i := indexRune(pool, r)
		if i < 0 {
			return false
		}
		pool = append(pool[:i], pool[i+1:]...)
	}
	return true
}

// indexRune returns the first index of r in rs, or -1.
func indexRune(rs []rune, r rune) int {
	for i, x := range rs {
		if x == r {
			return i
		}
	}
	return -1
}

// SelectRootWord picks a uniformly random word from source.
// Load failures and empty lists fall back to FallbackRootWord; this never fails.
func SelectRootWord(source WordSource) string {
	if source == nil {
		return FallbackRootWord
	}
	list, err := source.Load()
	if err != nil || len(list) == 0 {
		return FallbackRootWord
	}
	return pick(list)
}

// pick returns a cryptographically random element of a non-empty list.
func pick(list []string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return list[0]
	}
	return list[n.Int64()]
}
