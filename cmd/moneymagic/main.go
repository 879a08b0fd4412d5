package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moneymagic/internal/cache"
	"moneymagic/internal/config"
	apphttp "moneymagic/internal/http"
	"moneymagic/internal/log"
	"moneymagic/internal/services"
	"moneymagic/internal/storage"
)

func main() {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	reports := cache.NewLRU[services.MonthlyReport](cfg.SummaryCacheSize, cfg.SummaryCacheTTL)

	server := apphttp.NewServer(
		services.NewAuthService(repo, logger),
		services.NewAccountService(repo, logger),
		services.NewLedgerService(repo, logger),
		services.NewBalanceService(repo, logger),
		services.NewSummaryService(repo, reports, logger),
		services.NewAdminService(repo, logger),
		logger,
		apphttp.Options{
			JWTSecret:          cfg.JWTSecret,
			TokenTTL:           cfg.TokenTTL,
			LoginRatePerMinute: cfg.LoginRatePerMinute,
		},
	)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        server.Handler(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting moneymagic server", "port", cfg.Port, "db", cfg.SQLiteDBPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
