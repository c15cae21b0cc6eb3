// Package db wires the repositories over a shared database handle and runs
// schema migrations at startup.
package db

import (
	"context"
	"database/sql"

	"github.com/jojiiikol/notes-backend/internal/server/notes"
	"github.com/jojiiikol/notes-backend/internal/server/users"
)

// RepositoryManager gives access to all repositories sharing one storage
// backend.
type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Notes() notes.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
