// internal/game/session.go
//
// Session owns exactly one Round and serializes evaluate-then-commit so the
// Round only ever sees one caller at a time.

package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one player's game: an ID for transports to refer to it and
// the Round it exclusively owns.
type Session struct {
	ID        string
	StartedAt time.Time
	Daily     bool // root word came from the daily selection

	mu    sync.Mutex
	round Round
}

// NewSession starts a session around a fresh Round.
func NewSession(rootWord string, daily bool) (*Session, error) {
	r, err := NewRound(rootWord)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Daily:     daily,
		round:     r,
	}, nil
}

// Round returns a snapshot of the current round.
func (s *Session) Round() Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// Submit evaluates raw and, on acceptance, commits it to the round.
// If ctx is cancelled before the commit the round is left untouched.
func (s *Session) Submit(ctx context.Context, raw string, dict Dictionary) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	word, err := Evaluate(ctx, s.round, raw, dict)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.round = s.round.Accept(word)
	return word, nil
}
