// Package main запускает HTTP-сервер сервиса поиска премиальных билетов.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/award-search/internal/airport"
	"github.com/mmeshcher/award-search/internal/config"
	"github.com/mmeshcher/award-search/internal/handler"
	"github.com/mmeshcher/award-search/internal/history"
	"github.com/mmeshcher/award-search/internal/middleware"
	"github.com/mmeshcher/award-search/internal/repository"
	"github.com/mmeshcher/award-search/internal/seatsaero"
	"github.com/mmeshcher/award-search/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	var store history.Store
	if cfg.DatabaseURI != "" {
		repo, err := repository.NewPostgresRepository(cfg.DatabaseURI)
		if err != nil {
			sugar.Fatalw("database initialization error", "error", err.Error())
		}
		store = repo
	} else {
		sugar.Info("DATABASE_URI is not set, history is kept in memory")
		store = history.NewMemoryStore()
	}

	directory := airport.NewDirectory(airport.LoadFile(cfg.AirportDataPath, logger))
	sugar.Infow("airport directory loaded", "airports", directory.Len())

	var remote airport.Source
	if cfg.AirportServiceAddress != "" {
		remote = airport.NewRemoteSource(cfg.AirportServiceAddress)
	}

	airports := airport.NewSuggester(directory, airport.Options{Limit: cfg.SuggestLimit}, store, remote, cfg.DebounceDelay, logger)

	if cfg.SeatsAeroAPIKey == "" {
		sugar.Warn("SEATS_AERO_API_KEY is not set, award search will be unavailable")
	}
	provider := seatsaero.NewClient(cfg.SeatsAeroAddress, cfg.SeatsAeroAPIKey)

	svc := service.NewService(store, provider, logger)
	defer svc.Close()

	clientMiddleware := middleware.NewClientMiddleware(cfg.ClientSecret)
	h := handler.NewHandler(svc, airports, logger, clientMiddleware, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting award search server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
