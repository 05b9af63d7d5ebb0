package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/efectlabs/parentcoach/internal/api"
	"github.com/efectlabs/parentcoach/internal/audiostore"
	"github.com/efectlabs/parentcoach/internal/config"
	"github.com/efectlabs/parentcoach/internal/langdetect"
	"github.com/efectlabs/parentcoach/internal/llm"
	"github.com/efectlabs/parentcoach/internal/prefs"
	"github.com/efectlabs/parentcoach/internal/tips"
	"github.com/efectlabs/parentcoach/internal/tts"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	gateway := llm.NewGateway(cfg.LLM)
	detector := langdetect.NewDetector(gateway, cfg.LLM.DefaultModel)
	speech := tts.NewOpenAI(tts.OpenAIConfig{
		APIKey:       cfg.TTS.APIKey,
		BaseURL:      cfg.TTS.BaseURL,
		Model:        cfg.TTS.Model,
		DefaultVoice: cfg.TTS.Voice,
	})

	audioStore, err := audiostore.New(cfg.Audio.Dir, cfg.Audio.PublicPath)
	if err != nil {
		slog.Error("failed to init audio store", "error", err)
		os.Exit(1)
	}

	if cfg.Audio.Retention > 0 {
		sweeper, err := audiostore.NewSweeper(audioStore, cfg.Audio.Retention, cfg.Audio.SweepSchedule)
		if err != nil {
			slog.Error("failed to init audio sweeper", "error", err)
			os.Exit(1)
		}
		sweeper.Start()
		defer sweeper.Stop()
		slog.Info("audio retention sweep enabled",
			"retention", cfg.Audio.Retention.String(),
			"schedule", cfg.Audio.SweepSchedule,
		)
	}

	service := tips.NewService(gateway, detector, speech, audioStore, tips.Options{
		Model:          cfg.LLM.DefaultModel,
		MaxTokens:      cfg.LLM.MaxTokens,
		Temperature:    cfg.LLM.Temperature,
		Voice:          cfg.TTS.Voice,
		AgeGate:        cfg.Tips.AgeGateEnabled,
		DetectLanguage: cfg.Tips.LanguageDetectionEnabled,
	})

	prefStore := prefs.NewStore()

	router := api.NewRouter(service, prefStore, audioStore)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
