package service

import (
	"errors"

	"github.com/osagie/bookstore/data"
	"github.com/osagie/bookstore/data/dto"
	"github.com/osagie/bookstore/internal/validator"
	"github.com/osagie/bookstore/repository"
)

type books interface {
	GetBook(bookID int64) (*data.Book, error)
	ListBooks(searchTerm string, filters data.Filters) (*data.PaginatedBooks, error)
	CreateBook(requestBody dto.CreateBookRequestBody) (*data.Book, error)
	UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error)
	DeleteBook(bookID int64) error
	SearchBooks(searchTerm string) ([]*data.Book, error)
	ListBooksByAuthor(author string) ([]*data.Book, error)
}

// GetBook service retrieves the details of a book.
func (s *service) GetBook(bookID int64) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// ListBooks service retrieves one page of books ordered by title, optionally
// narrowed to those whose title or author contains the search term.
func (s *service) ListBooks(searchTerm string, filters data.Filters) (*data.PaginatedBooks, error) {
	books, metadata, err := s.repo.GetBooksPage(searchTerm, filters)
	if err != nil {
		return nil, err
	}
	return &data.PaginatedBooks{Data: books, Metadata: metadata}, nil
}

// CreateBook service validates and persists a new book.
func (s *service) CreateBook(requestBody dto.CreateBookRequestBody) (*data.Book, error) {
	book := &data.Book{
		Title:         requestBody.Title,
		Author:        requestBody.Author,
		PublishedDate: requestBody.PublishedDate,
		NumberOfPages: requestBody.NumberOfPages,
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	unit := s.repo.NewUnit()
	unit.AddBook(book)
	_, err := unit.Save()
	if err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateBook service applies a partial update to a book: only the supplied
// fields change, and the update timestamp is refreshed.
func (s *service) UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if requestBody.Title != nil {
		book.Title = *requestBody.Title
	}
	if requestBody.Author != nil {
		book.Author = *requestBody.Author
	}
	if requestBody.PublishedDate != nil {
		book.PublishedDate = *requestBody.PublishedDate
	}
	if requestBody.NumberOfPages != nil {
		book.NumberOfPages = *requestBody.NumberOfPages
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	unit := s.repo.NewUnit()
	unit.UpdateBook(book)
	_, err = unit.Save()
	if err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook service removes a book record. Deleting an absent identifier
// reports not-found, not an internal error.
func (s *service) DeleteBook(bookID int64) error {
	unit := s.repo.NewUnit()
	existed, err := unit.DeleteBook(bookID)
	if err != nil {
		return err
	}
	if !existed {
		return ErrRecordNotFound
	}
	_, err = unit.Save()
	return err
}

// SearchBooks service retrieves all books matching the term by title or
// author. A term matching nothing yields an empty list, not an error.
func (s *service) SearchBooks(searchTerm string) ([]*data.Book, error) {
	return s.repo.SearchBooks(searchTerm)
}

// ListBooksByAuthor service retrieves an author's books ordered by
// publication date.
func (s *service) ListBooksByAuthor(author string) ([]*data.Book, error) {
	return s.repo.GetBooksByAuthor(author)
}
