package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/osagie/bookstore/data"
)

// escapeLikePattern escapes the LIKE metacharacters in a search term so the
// term always matches literally inside '%' || $1 || '%'.
func escapeLikePattern(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type books interface {
	GetAllBooks() ([]*data.Book, error)
	GetBook(bookID int64) (*data.Book, error)
	GetBooksPage(search string, filters data.Filters) ([]*data.Book, data.Metadata, error)
	SearchBooks(search string) ([]*data.Book, error)
	GetBooksByAuthor(author string) ([]*data.Book, error)
}

// GetAllBooks retrieves every book record in insertion order.
func (r *repository) GetAllBooks() ([]*data.Book, error) {
	query := `
		SELECT id, title, author, published_date, number_of_pages, created_at, updated_at
		FROM books
		ORDER BY id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

// GetBook retrieves a book record by its ID.
func (r *repository) GetBook(bookID int64) (*data.Book, error) {
	if bookID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, title, author, published_date, number_of_pages, created_at, updated_at
		FROM books
		WHERE id = $1`
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, bookID).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.PublishedDate,
		&book.NumberOfPages,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetBooksPage retrieves one page of book records ordered by title. When
// search is non-empty only books whose title or author contains it are
// counted and returned. The total matching count is computed before the
// page is sliced off.
func (r *repository) GetBooksPage(search string, filters data.Filters) ([]*data.Book, data.Metadata, error) {
	query := `
		SELECT count(*) OVER(), id, title, author, published_date, number_of_pages, created_at, updated_at
		FROM books
		WHERE (title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%' OR $1 = '')
		ORDER BY title ASC, id ASC
		LIMIT $2 OFFSET $3`
	args := []interface{}{escapeLikePattern(search), filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&totalRecords,
			&book.ID,
			&book.Title,
			&book.Author,
			&book.PublishedDate,
			&book.NumberOfPages,
			&book.CreatedAt,
			&book.UpdatedAt,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return books, metadata, nil
}

// SearchBooks retrieves all book records whose title or author contains the
// search term, ordered by title.
func (r *repository) SearchBooks(search string) ([]*data.Book, error) {
	query := `
		SELECT id, title, author, published_date, number_of_pages, created_at, updated_at
		FROM books
		WHERE title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%'
		ORDER BY title ASC, id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, escapeLikePattern(search))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

// GetBooksByAuthor retrieves all book records whose author contains the
// given name, ordered by publication date.
func (r *repository) GetBooksByAuthor(author string) ([]*data.Book, error) {
	query := `
		SELECT id, title, author, published_date, number_of_pages, created_at, updated_at
		FROM books
		WHERE author ILIKE '%' || $1 || '%'
		ORDER BY published_date ASC, id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, escapeLikePattern(author))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func scanBooks(rows *sql.Rows) ([]*data.Book, error) {
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.PublishedDate,
			&book.NumberOfPages,
			&book.CreatedAt,
			&book.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}
