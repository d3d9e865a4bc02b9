package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/osagie/bookstore/data"
)

// Unit is a unit of work: mutations staged against it are not written to the
// database until Save commits them all in one transaction.
type Unit interface {
	AddBook(book *data.Book)
	UpdateBook(book *data.Book)
	DeleteBook(bookID int64) (bool, error)
	Save() (bool, error)
}

// A staged operation runs inside the commit transaction and reports how many
// rows it changed.
type stagedOp func(ctx context.Context, tx *sql.Tx) (int64, error)

type unit struct {
	db  *sql.DB
	ops []stagedOp
}

// NewUnit returns an empty unit of work bound to the connection pool.
func (r *repository) NewUnit() Unit {
	return &unit{db: r.db}
}

// AddBook stages an insert. The book's ID and timestamps are populated from
// the database when Save commits.
func (u *unit) AddBook(book *data.Book) {
	u.ops = append(u.ops, func(ctx context.Context, tx *sql.Tx) (int64, error) {
		query := `
			INSERT INTO books (title, author, published_date, number_of_pages)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at`
		args := []interface{}{book.Title, book.Author, book.PublishedDate, book.NumberOfPages}
		err := tx.QueryRowContext(ctx, query, args...).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
		if err != nil {
			return 0, err
		}
		return 1, nil
	})
}

// UpdateBook stages a full-record replacement. The update timestamp is
// refreshed by the database and written back into the book. Concurrent
// writes to the same ID are resolved by whichever commits last.
func (u *unit) UpdateBook(book *data.Book) {
	u.ops = append(u.ops, func(ctx context.Context, tx *sql.Tx) (int64, error) {
		query := `
			UPDATE books
			SET title = $1, author = $2, published_date = $3, number_of_pages = $4, updated_at = now()
			WHERE id = $5
			RETURNING updated_at`
		args := []interface{}{book.Title, book.Author, book.PublishedDate, book.NumberOfPages, book.ID}
		err := tx.QueryRowContext(ctx, query, args...).Scan(&book.UpdatedAt)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return 0, nil
			default:
				return 0, err
			}
		}
		return 1, nil
	})
}

// DeleteBook stages a hard delete if the record currently exists and reports
// whether it did. The removal itself happens at Save time.
func (u *unit) DeleteBook(bookID int64) (bool, error) {
	if bookID < 1 {
		return false, nil
	}
	query := `
		SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`
	var exists bool
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := u.db.QueryRowContext(ctx, query, bookID).Scan(&exists)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	u.ops = append(u.ops, func(ctx context.Context, tx *sql.Tx) (int64, error) {
		result, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, bookID)
		if err != nil {
			return 0, err
		}
		return result.RowsAffected()
	})
	return true, nil
}

// Save commits all staged changes atomically and reports whether any row
// changed. A unit is exhausted after Save and must not be reused.
func (u *unit) Save() (bool, error) {
	if len(u.ops) == 0 {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	var changed int64
	for _, op := range u.ops {
		rows, err := op(ctx, tx)
		if err != nil {
			tx.Rollback()
			return false, err
		}
		changed += rows
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	u.ops = nil
	return changed > 0, nil
}
