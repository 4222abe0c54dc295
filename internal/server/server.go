// Package server wires all components and creates the transport-facing
// instances.
//
// This is the composition root: it opens the database, runs migrations,
// and injects the store, calculator and dispatcher into the MCP tools
// and the web handlers. No business logic lives here — only wiring.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/mark3labs/mcp-go/server"
	"github.com/safedrive/safedrive/internal/config"
	"github.com/safedrive/safedrive/internal/db"
	"github.com/safedrive/safedrive/internal/dispatch"
	"github.com/safedrive/safedrive/internal/mcptools"
	"github.com/safedrive/safedrive/internal/migrations"
	"github.com/safedrive/safedrive/internal/quote"
	"github.com/safedrive/safedrive/internal/store"
	"github.com/safedrive/safedrive/internal/web"
)

// Version is set at build time via ldflags.
var Version = "dev"

// migrationsDir is resolved relative to the working directory, matching
// how the binary is deployed alongside its migrations.
const migrationsDir = "migrations"

type components struct {
	store   *store.Store
	calc    *quote.Calculator
	cleanup func()
}

// open builds the shared dependency graph: database, schema, store and
// calculator. The returned cleanup closes the database connection and
// is always non-nil.
func open(cfg config.Config) (components, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return components{}, fmt.Errorf("opening database %s: %w", cfg.DBPath, err)
	}

	if err := migrations.Up(database, migrationsDir); err != nil {
		_ = database.Close()
		return components{}, fmt.Errorf("running migrations: %w", err)
	}

	st := store.New(database)
	return components{
		store: st,
		calc:  quote.NewCalculator(st),
		cleanup: func() {
			if err := database.Close(); err != nil {
				log.Printf("WARNING: database close: %v", err)
			}
		},
	}, nil
}

// New creates and configures the MCP server with the query and
// estimate tools registered.
//
// The returned cleanup function closes the database connection and
// must be called on shutdown (typically via defer).
func New(cfg config.Config) (*server.MCPServer, func(), error) {
	c, err := open(cfg)
	if err != nil {
		return nil, noop, err
	}

	s := server.NewMCPServer(
		"safedrive",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	dispatcher := dispatch.New(c.store, c.calc, cfg.ReferenceYear)

	queryTool := mcptools.NewQueryTool(dispatcher)
	s.AddTool(queryTool.Definition(), queryTool.Handle)

	estimateTool := mcptools.NewEstimateTool(dispatcher)
	s.AddTool(estimateTool.Definition(), estimateTool.Handle)

	return s, c.cleanup, nil
}

// NewWeb creates the HTTP handler for the web quoting flow over the
// same dependency graph.
func NewWeb(cfg config.Config) (http.Handler, func(), error) {
	c, err := open(cfg)
	if err != nil {
		return nil, noop, err
	}
	return web.NewServer(c.store, c.calc, cfg.ReferenceYear).Router(), c.cleanup, nil
}

func noop() {}

func serverInstructions() string {
	return `SafeDrive insurance assistant backend.

Use the database_query tool for all customer data access: product
catalog, user profiles, vehicles, saved quotes and policy details, plus
premium calculations for stored vehicles. Use premium_estimate for
rough quotes when the customer's vehicle is not on file.

All queries are read-only. Relay error messages to the user instead of
retrying with different parameters.`
}
