package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relcheck/internal/analyzer"
	"relcheck/internal/api"
	"relcheck/internal/config"
	"relcheck/internal/logger"
	"relcheck/internal/pipeline"
	"relcheck/internal/transcript"
	"relcheck/pkg/timedtext"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "relcheck - video relevance auditor")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Model: %s", cfg.Gemini.Model)
	log.Info(ctx, "Caption language: %s", cfg.YouTube.Language)
	log.Info(ctx, "Max concurrent audits: %d", cfg.Performance.MaxConcurrent)

	apiKeys := cfg.Gemini.APIKeys
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		apiKeys = append(apiKeys, key)
	}

	gen, err := analyzer.NewGemini(cfg.Gemini.Model, apiKeys, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize Gemini: %v (set gemini.api_keys or GEMINI_API_KEY)", err)
		os.Exit(1)
	}

	captions := timedtext.New(cfg.YouTube.Language, time.Duration(cfg.YouTube.TimeoutSeconds)*time.Second)
	source := transcript.NewSource(transcript.NewTimedtextProvider(captions), log)
	pipe := pipeline.New(source, analyzer.New(gen, log), log, cfg.Performance.MaxConcurrent)

	app := api.New(pipe, log)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	errChan := make(chan error, 1)
	go func() {
		if err := app.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	log.Info(ctx, "Listening on %s", addr)
	log.Info(ctx, "POST /api/v1/analyze to audit a video")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error(ctx, "Shutdown error: %v", err)
	}

	log.Info(ctx, "relcheck stopped")
}
