// internal/dictionary/redis.go
//
// Redis-backed dictionary: one set per language, keyed <prefix>:<lang>.

package dictionary

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/robalobadob/wordscramble/internal/game"
)

const (
	defaultRedisPrefix = "wordscramble:dictionary"
	importBatch        = 500
)

var _ game.Dictionary = (*Redis)(nil)

// SetClient is the subset of the go-redis client the dictionary needs.
// *redis.Client and redis.UniversalClient satisfy it.
type SetClient interface {
	SIsMember(ctx context.Context, key string, member interface{}) *redis.BoolCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	Close() error
}

// Redis answers lookups with SISMEMBER.
type Redis struct {
	client SetClient
	prefix string
}

// NewRedis wraps client. An empty prefix uses "wordscramble:dictionary".
func NewRedis(client SetClient, prefix string) *Redis {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(lang string) string { return r.prefix + ":" + lang }

// IsValid reports whether word is a member of the language's set.
func (r *Redis) IsValid(ctx context.Context, word, language string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, r.key(language), word).Result()
	if err != nil {
		return false, fmt.Errorf("dictionary lookup: %w", err)
	}
	return ok, nil
}

// Import adds words to the language's set in batches.
func (r *Redis) Import(ctx context.Context, lang string, words []string) error {
	batch := make([]interface{}, 0, importBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := r.client.SAdd(ctx, r.key(lang), batch...).Err(); err != nil {
			return fmt.Errorf("import: %w", err)
		}
		batch = batch[:0]
		return nil
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		batch = append(batch, w)
		if len(batch) == importBatch {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

// Close closes the underlying client.
func (r *Redis) Close() error { return r.client.Close() }
