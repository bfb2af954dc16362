// internal/httpserver/tokens.go
//
// Round tokens: an HS256 JWT carrying the round ID ("rid"). Clients present
// it as a Bearer header, the round cookie, or a ?token= query parameter
// (browsers cannot set headers on WebSocket upgrades).

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/store"
)

const roundCookieName = "wordscramble_round"

var errBadToken = errors.New("invalid round token")

// ctxSessionKey is the context key type for the resolved *game.Session.
type ctxSessionKey struct{}

// signRoundToken creates an HS256 JWT for round id.
func (s *Server) signRoundToken(id string) (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"rid": id,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// parseRoundToken validates tok and returns its round ID.
func (s *Server) parseRoundToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.opts.Now),
	)
	if err != nil || !t.Valid {
		return "", errBadToken
	}
	id, _ := claims["rid"].(string)
	if id == "" {
		return "", errBadToken
	}
	return id, nil
}

// tokenFromRequest extracts a round token from header, cookie or query.
func tokenFromRequest(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(roundCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get("token")
}

// requireRound resolves the request's round token to a live session and
// stores it in the request context.
func (s *Server) requireRound() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := tokenFromRequest(r)
			if tok == "" {
				http.Error(w, `{"error":"missing_round_token"}`, http.StatusUnauthorized)
				return
			}
			id, err := s.parseRoundToken(tok)
			if err != nil {
				http.Error(w, `{"error":"invalid_round_token"}`, http.StatusUnauthorized)
				return
			}
			sess, err := s.store.Get(r.Context(), id)
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, `{"error":"round_not_found"}`, http.StatusNotFound)
				return
			}
			if err != nil {
				http.Error(w, `{"error":"store_error"}`, http.StatusInternalServerError)
				return
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFrom returns the session placed in ctx by requireRound.
func sessionFrom(ctx context.Context) *game.Session {
	sess, _ := ctx.Value(ctxSessionKey{}).(*game.Session)
	return sess
}

// setRoundCookie writes the round token cookie with appropriate security attributes.
func (s *Server) setRoundCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.Production {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     roundCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Production,
		SameSite: sameSite,
		Expires:  exp,
	})
}
