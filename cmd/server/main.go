package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"insurance-agent/internal/httpapi"
	"insurance-agent/internal/knowledge"
	"insurance-agent/internal/repository"
	"insurance-agent/internal/respond"
	"insurance-agent/internal/usecase"
)

func main() {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	// ---- Configuration (read only here) ----
	port := envOr("PORT", "8080")
	knowledgePath := os.Getenv("KNOWLEDGE_PATH")
	maxHistoryItems := envInt("MAX_HISTORY_ITEMS", 50)
	maxQuestionLen := envInt("MAX_QUESTION_LENGTH", 300)
	rateLimit := httpapi.RateLimitConfig{
		RequestsPerMinute: envInt("RATE_LIMIT_PER_MINUTE", httpapi.DefaultRateLimitConfig().RequestsPerMinute),
		Burst:             envInt("RATE_LIMIT_BURST", httpapi.DefaultRateLimitConfig().Burst),
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// ---- Knowledge base ----
	base := knowledge.Default()
	if knowledgePath != "" {
		loaded, err := knowledge.LoadFile(knowledgePath)
		if err != nil {
			logger.Error("invalid knowledge document", "path", knowledgePath, "err", err)
			os.Exit(1)
		}
		base = loaded
		logger.Info("knowledge base loaded from file", "path", knowledgePath)
	}

	responder, err := respond.New(base)
	if err != nil {
		logger.Error("failed to create responder", "err", err)
		os.Exit(1)
	}

	// ---- Service wiring ----
	// Conversations only need to outlive a page session, so the local
	// server keeps them in process memory.
	store := repository.NewMemoryStore()
	askService, err := usecase.NewAskService(responder, store, maxHistoryItems, maxQuestionLen)
	if err != nil {
		logger.Error("failed to create ask service", "err", err)
		os.Exit(1)
	}

	api, err := httpapi.NewServer(askService, logger, rateLimit)
	if err != nil {
		logger.Error("failed to create HTTP server", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      api,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server started", "addr", "http://localhost:"+port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	logger.Info("server stopped")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
