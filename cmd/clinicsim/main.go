package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-portal/pkg/logger"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"

	"github.com/jwalitptl/clinic-portal/cmd/clinicsim/config"
	"github.com/jwalitptl/clinic-portal/internal/clinicsim"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	m := metrics.NewMetrics(cfg.MetricsNamespace)

	store := clinicsim.NewStore()
	clinicsim.Seed(store, time.Now())

	handler := clinicsim.NewHandler(store, appLogger)
	engine := clinicsim.NewRouter(handler, m, appLogger, clinicsim.RouterConfig{
		RateLimit: rate.Limit(cfg.RateLimit),
		RateBurst: cfg.RateBurst,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	go func() {
		appLogger.Info("clinic simulator listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down simulator...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info("simulator exited properly")
}
