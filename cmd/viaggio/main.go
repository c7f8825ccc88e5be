package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"viaggio/internal/advisor"
	"viaggio/internal/config"
	apphttp "viaggio/internal/http"
	applog "viaggio/internal/log"
	"viaggio/internal/slot"
	"viaggio/internal/store"
)

func main() {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	slotResult, err := slot.Open(slot.Config{
		Type:         slot.Backend(cfg.SlotBackend),
		DataDir:      cfg.DataDir,
		SQLiteDBPath: cfg.SQLiteDBPath,
	}, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize persistence slot",
			applog.FieldError, err,
			applog.FieldSlotBackend, cfg.SlotBackend)
		os.Exit(1)
	}
	if slotResult.Cleanup != nil {
		defer func() {
			if err := slotResult.Cleanup(); err != nil {
				logger.Error("Slot cleanup error", applog.FieldError, err)
			}
		}()
	}

	st := store.New(slotResult.Slot)
	count, seeded := st.Load(context.Background())
	logger.Info("Expense store loaded",
		"expenses", count,
		"seeded", seeded,
		applog.FieldSlotBackend, cfg.SlotBackend)

	adv := advisor.NewClient(cfg.GeminiEndpoint, cfg.GeminiModel, cfg.GeminiAPIKey)
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, analysis will return the fallback result")
	}

	srv := apphttp.NewServer(":"+cfg.Port, st, adv, cfg.BaseCurrency, cfg.AnalyzePerMinute, logger)

	// The analyze endpoint waits on the Gemini call, which can take tens of
	// seconds; the write timeout has to outlast the advisor's HTTP timeout.
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 90 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

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
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting viaggio server",
		"port", cfg.Port,
		applog.FieldSlotBackend, cfg.SlotBackend,
		applog.FieldModel, cfg.GeminiModel)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
