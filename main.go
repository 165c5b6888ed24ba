package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bullscows/internal/config"
	"github.com/robalobadob/bullscows/internal/daily"
	"github.com/robalobadob/bullscows/internal/httpserver"
	"github.com/robalobadob/bullscows/internal/secret"
	"github.com/robalobadob/bullscows/internal/state"
	"github.com/robalobadob/bullscows/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	logger := log.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var gen secret.Generator = secret.Local{}
	if cfg.RandomOrgEnabled {
		gen = secret.NewFallback(secret.NewRandomOrg(cfg.RandomOrgURL, cfg.RandomOrgTimeout), logger)
	}

	st, err := store.Open(ctx, cfg.Store,
		store.WithLogger(logger),
		store.WithStateOptions(state.WithGenerator(gen), state.WithLogger(logger)),
	)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}
	defer st.Close()

	srv := httpserver.New(st,
		httpserver.WithLogger(logger),
		httpserver.WithGenerator(gen),
		httpserver.WithDaily(daily.Generator{Salt: cfg.DailySalt}),
		httpserver.WithClientOrigin(cfg.ClientOrigin),
	)

	log.Info().
		Str("port", cfg.Port).
		Str("store", cfg.Store.Driver).
		Bool("random_org", cfg.RandomOrgEnabled).
		Msg("starting bulls-and-cows server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}
