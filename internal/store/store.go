// Package store implements the SQLite-backed data access layer for
// users, vehicles, insurance products and quotes.
//
// Every method executes a single round-trip read, except InsertQuote
// which performs the one write the system makes. Failures are mapped
// onto the domain taxonomy: missing rows become NotFound, anything
// else wraps StoreError.
package store

import "database/sql"

// Store provides data access over an open SQLite database. It holds no
// state beyond the connection pool and is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// New creates a Store over an already opened database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for callers that manage lifecycle
// (close on shutdown) or seed data.
func (s *Store) DB() *sql.DB {
	return s.db
}
