package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/osagie/bookstore/data"
)

type users interface {
	RegisterUser(user *data.User) error
	GetUserByID(ID int64) (*data.User, error)
	GetUserByUsername(username string) (*data.User, error)
}

// RegisterUser inserts a new user record. The unique constraints on email
// and username are enforced by the database and surfaced as sentinels so no
// partial account can ever exist.
func (r *repository) RegisterUser(user *data.User) error {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version`
	args := []interface{}{user.Username, user.Email, user.Password.Hash}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Version,
	)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "users_email_key"`:
			return ErrDuplicateEmail
		case err.Error() == `pq: duplicate key value violates unique constraint "users_username_key"`:
			return ErrDuplicateUsername
		default:
			return err
		}
	}
	return nil
}

// GetUserByID retrieves a user record by its ID.
func (r *repository) GetUserByID(ID int64) (*data.User, error) {
	query := `
		SELECT id, created_at, username, email, password_hash, version
		FROM users
		WHERE id = $1`
	var user data.User
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, ID).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Username,
		&user.Email,
		&user.Password.Hash,
		&user.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

// GetUserByUsername retrieves a user record by its username.
func (r *repository) GetUserByUsername(username string) (*data.User, error) {
	query := `
		SELECT id, created_at, username, email, password_hash, version
		FROM users
		WHERE username = $1`
	var user data.User
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Username,
		&user.Email,
		&user.Password.Hash,
		&user.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}
