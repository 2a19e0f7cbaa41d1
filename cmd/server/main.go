package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaibh-c/Price-Pilot/internal/config"
	"github.com/vaibh-c/Price-Pilot/internal/infra"
	"github.com/vaibh-c/Price-Pilot/internal/pricing"
	"github.com/vaibh-c/Price-Pilot/internal/repository"
	"github.com/vaibh-c/Price-Pilot/internal/router"
	"github.com/vaibh-c/Price-Pilot/internal/service"
	"github.com/vaibh-c/Price-Pilot/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	engine := pricing.NewEngine(pricing.NewSimulatedCompetitor(cfg.CompetitorSeed))

	// Worker pool for async tasks (bulk optimization, email summaries).
	// Handlers are wired here (composition root) so the pool has full
	// access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	productRepo := repository.NewProductRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	optimizeSvc := service.NewOptimizeService(productRepo, suggestionRepo, engine, rdb)

	handlers := worker.Handlers{
		Optimize: worker.NewOptimizeWorker(optimizeSvc, dispatcher),
		Email:    worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)
	worker.StartRetentionCron(ctx, suggestionRepo, cfg.SuggestionRetentionDays)

	r := router.New(cfg, db, rdb, engine, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Price-Pilot backend listening on :%d", cfg.Port)
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
