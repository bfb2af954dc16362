// internal/game/types.go
//
// Core type definitions for the Word Scramble engine.
// Defines:
//   - Round: root word + accepted words for one session.
//   - Reason / Rejection: typed outcome for a refused candidate.
//   - Dictionary / WordSource: collaborators the engine consults.

package game

import (
	"context"
	"errors"
	"strings"
)

const (
	// FallbackRootWord is used when no root-word list is available.
	FallbackRootWord = "silkworm"

	// Language is the dictionary language tag used for every lookup.
	Language = "en"
)

// ErrInvalidRootWord is returned by NewRound for a blank root word.
var ErrInvalidRootWord = errors.New("game: root word is empty")

// Dictionary reports whether word is a correctly spelled word in language.
// Implementations may block (database, network) and must honor ctx.
type Dictionary interface {
	IsValid(ctx context.Context, word, language string) (bool, error)
}

// WordSource supplies candidate root words.
type WordSource interface {
	Load() ([]string, error)
}

// Round is the state of one game: the challenge word and the words
// accepted so far, most recent first. A Round is a value; Accept returns
// a new one and never touches the receiver.
type Round struct {
	RootWord  string   `json:"rootWord"`
	UsedWords []string `json:"usedWords"`
}

// NewRound constructs a Round with an empty used-word list.
func NewRound(rootWord string) (Round, error) {
	root := strings.ToLower(strings.TrimSpace(rootWord))
	if root == "" {
		return Round{}, ErrInvalidRootWord
	}
	return Round{RootWord: root, UsedWords: []string{}}, nil
}

// Accept prepends word to the used-word list. It performs no validation;
// callers run Evaluate first.
func (r Round) Accept(word string) Round {
	used := make([]string, 0, len(r.UsedWords)+1)
	used = append(used, word)
	used = append(used, r.UsedWords...)
	return Round{RootWord: r.RootWord, UsedWords: used}
}

// IsUsed reports whether word was already accepted this round.
func (r Round) IsUsed(word string) bool {
	for _, w := range r.UsedWords {
		if w == word {
			return true
		}
	}
	return false
}

// Reason classifies why a candidate was refused.
type Reason string

const (
	ReasonEmpty       Reason = "empty"
	ReasonNotReal     Reason = "not_real"
	ReasonAlreadyUsed Reason = "already_used"
	ReasonNotPossible Reason = "not_possible"
)

// Alert titles and messages shown to the player.
const (
	TitleSorry   = "I am sorry."
	TitleNiceTry = "Nice try."

	MsgTooShort    = "too short"
	MsgSameAsRoot  = "must differ from the challenge word"
	MsgNotReal     = "not a real word"
	MsgAlreadyUsed = "You have already added this word to the list."
	MsgNotPossible = "It is not possible to create this word from the available letters."
)

// Rejection is the outcome for a refused candidate. It implements error so
// callers can use errors.As / errors.Is; two rejections match under
// errors.Is when their reasons are equal.
type Rejection struct {
	Reason  Reason `json:"reason"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// Sentinels for errors.Is comparisons.
var (
	ErrEmpty       = &Rejection{Reason: ReasonEmpty}
	ErrNotReal     = &Rejection{Reason: ReasonNotReal}
	ErrAlreadyUsed = &Rejection{Reason: ReasonAlreadyUsed}
	ErrNotPossible = &Rejection{Reason: ReasonNotPossible}
)

func (e *Rejection) Error() string {
	if e.Message == "" {
		return "rejected: " + string(e.Reason)
	}
	return "rejected: " + string(e.Reason) + ": " + e.Message
}

// Is matches any Rejection carrying the same reason.
func (e *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.Reason == e.Reason
}

// Silent reports whether the UI should swallow this rejection without an alert.
func (e *Rejection) Silent() bool { return e.Reason == ReasonEmpty }
