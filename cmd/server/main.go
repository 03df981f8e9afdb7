package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/config"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/gateway"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/router"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/store"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	gw := gateway.New(cfg.BackendURL, time.Duration(cfg.BackendTimeoutSec)*time.Second)
	cache := store.New(gw, log.Logger, cfg.BackendToken)

	// With a static token configured there is no login step to trigger the
	// initial load, so warm the cache at boot.
	if cfg.BackendToken != "" {
		warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
		cache.LoadAll(warmCtx)
		warmCancel()
	}

	r := router.New(cfg, gw, cache)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Inventario El Balcon dashboard listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
