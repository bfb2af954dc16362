package dictionary

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/game"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("dictionary: unknown backend")

// Backend is a Dictionary that holds resources.
type Backend interface {
	game.Dictionary
	Close() error
}

// Options selects and seeds a backend.
type Options struct {
	Backend   string   // memory | sqlite | redis
	DBPath    string   // sqlite database file
	RedisAddr string   // host:port
	Words     []string // seed list for the "en" dictionary
}

// Open builds the configured backend and seeds it with opts.Words.
// A SQLite database that already holds English words is not re-seeded.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Backend {
	case "", BackendMemory:
		s := NewSet(game.Language, opts.Words)
		log.Info().Str("backend", BackendMemory).Int("words", s.Len()).Msg("dictionary ready")
		return s, nil

	case BackendSQLite:
		s, err := OpenSQLite(opts.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite dictionary: %w", err)
		}
		n, err := s.Count(ctx, game.Language)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("count sqlite dictionary: %w", err)
		}
		if n == 0 {
			if err := s.Import(ctx, game.Language, opts.Words); err != nil {
				_ = s.Close()
				return nil, fmt.Errorf("seed sqlite dictionary: %w", err)
			}
			n, _ = s.Count(ctx, game.Language)
		}
		log.Info().Str("backend", BackendSQLite).Str("path", opts.DBPath).Int("words", n).Msg("dictionary ready")
		return s, nil

	case BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis %s: %w", opts.RedisAddr, err)
		}
		r := NewRedis(client, "")
		if err := r.Import(ctx, game.Language, opts.Words); err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("seed redis dictionary: %w", err)
		}
		log.Info().Str("backend", BackendRedis).Str("addr", opts.RedisAddr).Int("words", len(opts.Words)).Msg("dictionary ready")
		return r, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}
