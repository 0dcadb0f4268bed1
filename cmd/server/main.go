/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the khata bot webhook server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load environment (.env supported via godotenv)
  3. Initialize SQLite row store
  4. Wire ledger service, bot executor, Telegram client
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: khata.db)
           Use ":memory:" for an in-memory database
  -errlog  Persistent error record path (default: server_error.log;
           empty disables the file)

ENVIRONMENT:
  BOT_TOKEN            Telegram bot token (required)
  AUTHORIZED_USER_ID   The one Telegram user ID the bot answers (required)
  TELEGRAM_API_BASE    Bot API base URL override (tests/local proxies)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Row store implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/khatawala/khatabot/api"
	"github.com/khatawala/khatabot/bot"
	"github.com/khatawala/khatabot/ledger"
	"github.com/khatawala/khatabot/store/sqlite"
	"github.com/khatawala/khatabot/telegram"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "khata.db", "SQLite database path")
	errLogPath := flag.String("errlog", "server_error.log", "persistent error record path (empty to disable)")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		log.Fatal("BOT_TOKEN is required")
	}
	authorizedUserID, err := strconv.ParseInt(os.Getenv("AUTHORIZED_USER_ID"), 10, 64)
	if err != nil {
		log.Fatalf("AUTHORIZED_USER_ID is required and must be an integer: %v", err)
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Wire the core
	service := ledger.NewService(store)
	executor := bot.New(service)
	messenger := telegram.NewClient(botToken, os.Getenv("TELEGRAM_API_BASE"))
	handler := api.NewHandler(store, executor, messenger, authorizedUserID, api.NewErrorLog(*errLogPath))

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Khata bot listening on http://localhost:%d", *port)
		log.Printf("📊 Webhook endpoint: http://localhost:%d/telegram/webhook", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
