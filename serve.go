package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordscramble/internal/httpserver"
	"github.com/robalobadob/wordscramble/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and WebSocket API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := mustLoadWords()
	dict, err := openDictionary(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to open dictionary")
		return err
	}
	defer dict.Close()

	srv := httpserver.New(store.NewMemoryStore(), dict, src, httpserver.Options{
		ClientOrigin: cfg.Server.ClientOrigin,
		Production:   cfg.Server.Production,
		JWTSecret:    cfg.Round.JWTSecret,
		TokenTTL:     cfg.Round.TokenTTL,
		DailySalt:    cfg.Round.DailySalt,
	})

	log.Info().Str("port", cfg.Server.Port).Msg("starting wordscramble server")
	if err := srv.Start(ctx, ":"+cfg.Server.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		return err
	}
	return nil
}
