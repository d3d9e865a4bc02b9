package data

import (
	"time"

	"github.com/osagie/bookstore/internal/validator"
)

// Book defines a book model. The JSON field names are part of the API wire
// contract and must not change.
type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedDate Date      `json:"publishedDate"`
	NumberOfPages int32     `json:"numberOfPages"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(len(book.Title) <= 200, "title", "must not be more than 200 bytes long")
	v.Check(book.Author != "", "author", "must be provided")
	v.Check(len(book.Author) <= 100, "author", "must not be more than 100 bytes long")
	v.Check(!book.PublishedDate.IsZero(), "publishedDate", "must be provided")
	v.Check(book.NumberOfPages >= 1, "numberOfPages", "must be greater than zero")
}
