/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the inventory dashboard server.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Open the SQLite blob store
  3. Load the ledger state (falls back to defaults on corrupt/absent data)
  4. Configure the HTTP router
  5. Start the server with graceful shutdown

COMMAND-LINE FLAGS:
  --port    HTTP server port (default: 8080)
  --db      SQLite database path (default: inventory.db)
            Use ":memory:" for an in-memory database

ENVIRONMENT:
  No environment variables. All config via flags.

SEE ALSO:
  - api/server.go: Router configuration
  - ledger/persist.go: State load/save
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/warp/inventory-engine/api"
	"github.com/warp/inventory-engine/ledger"
	"github.com/warp/inventory-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "inventory.db", "SQLite database path")
	flag.Parse()

	// Diagnostic logger
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	// Blob store
	blobs, err := sqlite.New(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer blobs.Close()

	// Ledger: loads persisted state once at startup
	led := ledger.New(context.Background(), blobs, log)

	// Router
	handler := api.NewHandler(led, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}
