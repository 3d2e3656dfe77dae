package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ponder/internal/config"
	"ponder/internal/handlers"
	"ponder/internal/router"
	"ponder/internal/services"
)

func main() {
	log.Println("🚀 Starting Ponder relay...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")
	if cfg.AnthropicAPIKey == "" {
		log.Println("✗ ANTHROPIC_API_KEY is not set; /api/claude will answer with a configuration error")
	}

	// ──── Step 2: Initialize Anthropic Client ────
	upstream := services.NewAnthropicUpstream(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL)
	relayService := services.NewRelayService(
		upstream,
		cfg.AnthropicAPIKey != "",
		services.SystemPrompt,
		services.Defaults{Model: cfg.DefaultModel, MaxTokens: cfg.DefaultMaxTokens},
	)
	log.Printf("✓ Anthropic client initialized (default model %s)", cfg.DefaultModel)

	// ──── Step 3: Initialize Handlers ────
	healthHandler := handlers.NewHealthHandler()
	chatHandler := handlers.NewChatHandler(relayService, cfg.MaxBodyBytes)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(healthHandler, chatHandler, cfg.FrontendURL)

	// No WriteTimeout: the upstream call is bounded only by the transport.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Server running on http://localhost:%s", cfg.Port)
	log.Printf("  Health check: http://localhost:%s/health", cfg.Port)
	log.Printf("  Claude API:   http://localhost:%s/api/claude", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
