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

	"github.com/joho/godotenv"
	"github.com/secondli/secondli-be/internal/api"
	"github.com/secondli/secondli-be/internal/auth"
	"github.com/secondli/secondli-be/internal/config"
	"github.com/secondli/secondli-be/internal/jobs"
	"github.com/secondli/secondli-be/internal/logger"
	"github.com/secondli/secondli-be/internal/storage"
	"github.com/secondli/secondli-be/internal/websocket"
)

func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.LogLevel)

	// Set up the in-memory store. All state lives and dies with the process.
	store := storage.NewMemoryStore()
	if cfg.SeedData {
		store.Seed()
	}

	// Set up the activity feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up sessions
	sessions := auth.NewManager(store, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())

	// Set up and run the background janitor
	janitor, err := jobs.NewJanitor(store, cfg.SessionPruneSchedule, cfg.CommunityRecountSchedule)
	if err != nil {
		log.Fatalf("Failed to initialize janitor: %v", err)
	}
	janitor.Start()

	// Set up router
	router := api.NewRouter(store, sessions, hub, cfg.AllowedOrigins)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.Port)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	janitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
