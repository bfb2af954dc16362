// main.go
//
// Entry point for the Word Scramble binary.
//   wordscramble serve  → HTTP/WebSocket API
//   wordscramble play   → one round in the terminal
//
// Startup:
//   - .env + environment → config.Load()
//   - LOG_LEVEL → zerolog global level
//   - Root-word list must load; a missing resource is fatal.

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/dictionary"
	"github.com/robalobadob/wordscramble/internal/words"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wordscramble",
	Short: "Word Scramble: spell new words from the letters of a root word",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
	},
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, playCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// mustLoadWords loads the root-word list and exits if the resource is absent.
// An empty list is fine: rounds fall back to the default root word.
func mustLoadWords() *words.Source {
	src := words.NewSource(cfg.Words.StartFile)
	list, err := src.Load()
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Words.StartFile).Msg("failed to load root word list")
	}
	log.Info().Int("rootWords", len(list)).Msg("root words loaded")
	return src
}

// openDictionary seeds and opens the configured dictionary backend.
func openDictionary(ctx context.Context) (dictionary.Backend, error) {
	list, err := words.DictionaryList(cfg.Words.DictionaryFile)
	if err != nil {
		return nil, err
	}
	return dictionary.Open(ctx, dictionary.Options{
		Backend:   cfg.Dictionary.Backend,
		DBPath:    cfg.Dictionary.DBPath,
		RedisAddr: cfg.Dictionary.RedisAddr,
		Words:     list,
	})
}
