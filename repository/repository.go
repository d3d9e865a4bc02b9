package repository

import (
	"database/sql"
)

// Repository defines the app's data-access layer. Read operations run
// against the shared connection pool; mutations are staged on a Unit and
// committed in a single transaction by Save.
type Repository interface {
	books
	users
	NewUnit() Unit
}

// repository wraps the shared database connection pool.
type repository struct {
	db *sql.DB
}

// New creates a new instance of Repository.
func New(db *sql.DB) *repository {
	return &repository{db: db}
}
