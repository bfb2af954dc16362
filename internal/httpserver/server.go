// internal/httpserver/server.go
//
// HTTP server wiring for the Word Scramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Round endpoints: POST /round/new, GET /round, POST /round/word.
//   - Streaming submissions over WebSocket: GET /round/ws.
//
// Notes:
//   - A round is addressed by a signed token (JWT, claim "rid") returned by
//     /round/new and mirrored in an HttpOnly cookie.
//   - The WebSocket route sits outside the Timeout middleware; each message
//     gets its own evaluation deadline instead.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/store"
)

const (
	requestTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Options carries the settings the server needs from configuration.
type Options struct {
	ClientOrigin string
	Production   bool
	JWTSecret    string
	TokenTTL     time.Duration
	DailySalt    string

	// Now is the clock used for daily rounds and tokens (time.Now if nil).
	Now func() time.Time
}

// Server bundles router, session store, dictionary and root-word source.
type Server struct {
	r      *chi.Mux
	store  store.Store
	dict   game.Dictionary
	source game.WordSource
	opts   Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, dict game.Dictionary, source game.WordSource, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), store: st, dict: dict, source: source, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)
	s.r.Use(cors(opts.ClientOrigin))

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"wordscramble-go","endpoints":["/health","POST /round/new","GET /round","POST /round/word","GET /round/ws"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", s.handleWordStats)

		// --- rounds ---
		r.Post("/round/new", s.handleNewRound)
		r.With(s.requireRound()).Get("/round", s.handleGetRound)
		r.With(s.requireRound()).Post("/round/word", s.handleSubmitWord)
	})

	s.r.With(s.requireRound()).Get("/round/ws", s.handleRoundSocket)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})
	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- hs.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := hs.Shutdown(sctx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// handleWordStats reports how many root words are available.
func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	n := 0
	if list, err := s.source.Load(); err == nil {
		n = len(list)
	}
	_ = json.NewEncoder(w).Encode(map[string]int{"rootWords": n})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
