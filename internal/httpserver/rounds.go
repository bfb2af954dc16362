// internal/httpserver/rounds.go
//
// Round endpoints.
//   - POST /round/new  → start a round (random or daily root word)
//   - GET  /round      → current root word and accepted words
//   - POST /round/word → submit a candidate word
//
// Verdicts:
//   - accepted:          200 with the new row and the updated list
//   - empty submission:  200 {"accepted":false,"reason":"empty"} (no alert)
//   - other rejections:  422 with reason, title and message for the alert
//   - dictionary errors: 503

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/daily"
	"github.com/robalobadob/wordscramble/internal/game"
)

const modeDaily = "daily"

// newRoundReq/Res payloads for POST /round/new.
type newRoundReq struct {
	Mode string `json:"mode"` // "random" (default) | "daily"
}
type newRoundRes struct {
	RoundID  string `json:"roundId"`
	RootWord string `json:"rootWord"`
	Token    string `json:"token"`
}

// usedWord is one row of the accepted-word list.
type usedWord struct {
	Word   string `json:"word"`
	Length int    `json:"length"`
}

type roundRes struct {
	RoundID   string     `json:"roundId"`
	RootWord  string     `json:"rootWord"`
	Daily     bool       `json:"daily"`
	UsedWords []usedWord `json:"usedWords"`
}

// submitReq is the body of POST /round/word and of each WebSocket frame.
type submitReq struct {
	Word string `json:"word"`
}

// verdict is the response to a submission.
type verdict struct {
	Accepted  bool        `json:"accepted"`
	Word      string      `json:"word,omitempty"`
	Length    int         `json:"length,omitempty"`
	Reason    game.Reason `json:"reason,omitempty"`
	Title     string      `json:"title,omitempty"`
	Message   string      `json:"message,omitempty"`
	UsedWords []usedWord  `json:"usedWords,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// handleNewRound picks a root word, registers a fresh session and returns
// its token. A round already attached to the request is discarded.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	if tok := tokenFromRequest(r); tok != "" {
		if old, err := s.parseRoundToken(tok); err == nil {
			_ = s.store.Delete(r.Context(), old)
		}
	}

	isDaily := req.Mode == modeDaily
	root := game.SelectRootWord(s.source)
	if isDaily {
		root = daily.RootWord(s.opts.Now(), s.opts.DailySalt, s.source)
	}

	sess, err := game.NewSession(root, isDaily)
	if err != nil {
		log.Error().Err(err).Str("rootWord", root).Msg("new session")
		http.Error(w, `{"error":"new_round_failed"}`, http.StatusInternalServerError)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	tok, exp, err := s.signRoundToken(sess.ID)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setRoundCookie(w, tok, exp)

	log.Info().Str("roundId", sess.ID).Bool("daily", isDaily).Msg("round started")
	_ = json.NewEncoder(w).Encode(newRoundRes{RoundID: sess.ID, RootWord: sess.Round().RootWord, Token: tok})
}

// handleGetRound returns the current state of the caller's round.
func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	round := sess.Round()
	_ = json.NewEncoder(w).Encode(roundRes{
		RoundID:   sess.ID,
		RootWord:  round.RootWord,
		Daily:     sess.Daily,
		UsedWords: rows(round),
	})
}

// handleSubmitWord evaluates one candidate against the caller's round.
func (s *Server) handleSubmitWord(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	v, status := s.submit(r.Context(), sessionFrom(r.Context()), req.Word)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// submit runs a submission through the session and maps the outcome to a
// verdict and HTTP status. Shared by the REST and WebSocket transports.
func (s *Server) submit(ctx context.Context, sess *game.Session, raw string) (verdict, int) {
	word, err := sess.Submit(ctx, raw, s.dict)
	if err == nil {
		log.Debug().Str("roundId", sess.ID).Str("word", word).Msg("word accepted")
		return verdict{
			Accepted:  true,
			Word:      word,
			Length:    utf8.RuneCountInString(word),
			UsedWords: rows(sess.Round()),
		}, http.StatusOK
	}

	var rej *game.Rejection
	if errors.As(err, &rej) {
		log.Debug().Str("roundId", sess.ID).Str("reason", string(rej.Reason)).Msg("word rejected")
		v := verdict{Reason: rej.Reason, Title: rej.Title, Message: rej.Message}
		if rej.Silent() {
			return v, http.StatusOK
		}
		return v, http.StatusUnprocessableEntity
	}

	log.Warn().Err(err).Str("roundId", sess.ID).Msg("evaluate word")
	return verdict{Error: "dictionary_unavailable"}, http.StatusServiceUnavailable
}

// rows renders the accepted words, most recent first.
func rows(r game.Round) []usedWord {
	out := make([]usedWord, 0, len(r.UsedWords))
	for _, w := range r.UsedWords {
		out = append(out, usedWord{Word: w, Length: utf8.RuneCountInString(w)})
	}
	return out
}
