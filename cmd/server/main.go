package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/deckpulse/internal/api"
	"github.com/vytor/deckpulse/internal/config"
	"github.com/vytor/deckpulse/internal/db"
	"github.com/vytor/deckpulse/internal/logger"
	"github.com/vytor/deckpulse/internal/models"
	"github.com/vytor/deckpulse/internal/repository/sqlite"
	"github.com/vytor/deckpulse/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("DeckPulse Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("rollover_hour=%d", cfg.RolloverHour)
	log.Debug("streak_threshold=%d", cfg.StreakThreshold)
	log.Debug("leech_threshold=%d", cfg.LeechThreshold)
	log.Debug("chart_days=%d", cfg.ChartDays)
	log.Debug("default_goal=%d", cfg.DefaultGoal)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	defaults := models.Settings{
		StreakThreshold: cfg.StreakThreshold,
		LeechThreshold:  cfg.LeechThreshold,
		ChartDays:       cfg.ChartDays,
		ShowCharts:      cfg.ShowCharts,
		DefaultGoal:     cfg.DefaultGoal,
	}

	// Initialize repositories and services
	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	revlogRepo := sqlite.NewReviewLogRepository(database.DB)
	settingsRepo := sqlite.NewSettingsRepository(database.DB, defaults)
	historyRepo := sqlite.NewStatsHistoryRepository(database.DB)

	aggregations := services.NewAggregationService(
		deckRepo, cardRepo, revlogRepo, settingsRepo, historyRepo,
		cfg.RolloverHour,
	)

	srv := &api.Server{Aggregations: aggregations}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("DeckPulse Server Stopped")
	log.Info("===========================================")
}
