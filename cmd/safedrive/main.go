// SafeDrive: vehicle insurance quoting backend
//
// One binary, three modes:
//
//	safedrive serve   # Start the assistant MCP server (stdio transport)
//	safedrive web     # Start the HTTP quoting API
//	safedrive seed    # Populate the database with the demo dataset
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/safedrive/safedrive/internal/config"
	"github.com/safedrive/safedrive/internal/db"
	"github.com/safedrive/safedrive/internal/migrations"
	"github.com/safedrive/safedrive/internal/seed"
	appserver "github.com/safedrive/safedrive/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe()
	case "web":
		err = runWeb()
	case "seed":
		err = runSeed()
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("safedrive v%s\n", appserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runServe starts the MCP server on stdio. Logging goes to stderr so
// it never interferes with the protocol stream on stdout.
func runServe() error {
	log.SetOutput(os.Stderr)

	cfg := config.Load()
	s, cleanup, err := appserver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	return server.ServeStdio(s)
}

// runWeb starts the HTTP quoting API with graceful shutdown on
// interrupt.
func runWeb() error {
	cfg := config.Load()
	handler, cleanup, err := appserver.NewWeb(cfg)
	if err != nil {
		return fmt.Errorf("creating web server: %w", err)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on :%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-sigCh:
		log.Print("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// runSeed migrates the database and loads the demo dataset.
func runSeed() error {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database %s: %w", cfg.DBPath, err)
	}
	defer database.Close()

	if err := migrations.Up(database, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	stats, err := seed.Run(database)
	if err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if stats.Skipped {
		log.Print("database already seeded, nothing to do")
		return nil
	}
	log.Printf("seeded %d rows into %s", stats.Inserts, cfg.DBPath)
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `SafeDrive v%s — vehicle insurance quoting backend

Usage:
  safedrive serve     Start the assistant MCP server (stdio transport)
  safedrive web       Start the HTTP quoting API
  safedrive seed      Populate the database with the demo dataset
  safedrive version   Print the version
  safedrive help      Show this help

Environment:
  DB_PATH          sqlite database file (default ./safedrive.db)
  PORT             HTTP listen port for web mode (default 8080)
  REFERENCE_YEAR   year anchoring vehicle-age pricing (default: current year)
`, appserver.Version)
}
