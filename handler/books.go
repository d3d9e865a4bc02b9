package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/osagie/bookstore/data"
	"github.com/osagie/bookstore/data/dto"
	"github.com/osagie/bookstore/internal/validator"
	"github.com/osagie/bookstore/service"
)

// ListBooks godoc
// @Summary List books
// @Description This endpoint returns a paginated list of books, optionally filtered by a search term
// @Tags books
// @Produce json
// @Param pageNumber query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 10, max 50)"
// @Param searchTerm query string false "Match against title or author"
// @Success 200 {object} data.PaginatedBooks
// @Failure 400
// @Router /api/books [get]
func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListBooks
	v := validator.New()
	qs := r.URL.Query()
	qsInput.SearchTerm = h.readString(qs, "searchTerm", "")
	page := h.readInt(qs, "pageNumber", 1, v)
	pageSize := h.readInt(qs, "pageSize", 10, v)
	if !v.Valid() {
		h.failedValidationResponse(w, r, v.Errors)
		return
	}
	qsInput.Filters = data.NewFilters(page, pageSize)
	books, err := h.service.ListBooks(qsInput.SearchTerm, qsInput.Filters)
	if err != nil {
		h.uncaughtErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowBook godoc
// @Summary Show a book
// @Description This endpoint returns a single book by its id
// @Tags books
// @Produce json
// @Param bookId path int true "Book ID"
// @Success 200 {object} data.Book
// @Failure 404
// @Router /api/books/{bookId} [get]
func (h *Handler) showBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	book, err := h.service.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.uncaughtErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// CreateBook godoc
// @Summary Create a new book
// @Description This endpoint creates a new book record
// @Tags books
// @Accept  json
// @Produce json
// @Param body body dto.CreateBookRequestBody true "JSON payload required to create a book"
// @Success 201 {object} data.Book
// @Failure 400
// @Failure 401
// @Router /api/books [post]
func (h *Handler) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateBookRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.CreateBook(requestBody)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.failedValidationResponse(w, r, validationErr.Fields)
		default:
			h.uncaughtErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/api/books/%d", book.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"book": book}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateBook godoc
// @Summary Update a book
// @Description This endpoint updates a book record. Fields omitted from the payload keep their current value
// @Tags books
// @Accept  json
// @Produce json
// @Param bookId path int true "Book ID"
// @Param body body dto.UpdateBookRequestBody true "JSON payload with the fields to update"
// @Success 200 {object} data.Book
// @Failure 400
// @Failure 401
// @Failure 404
// @Router /api/books/{bookId} [put]
func (h *Handler) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdateBookRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.UpdateBook(bookID, requestBody)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.As(err, &validationErr):
			h.failedValidationResponse(w, r, validationErr.Fields)
		default:
			h.uncaughtErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteBook godoc
// @Summary Delete a book
// @Description This endpoint deletes a book record by its id
// @Tags books
// @Produce json
// @Param bookId path int true "Book ID"
// @Success 200
// @Failure 401
// @Failure 404
// @Router /api/books/{bookId} [delete]
func (h *Handler) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.uncaughtErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "book successfully deleted"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// SearchBooks godoc
// @Summary Search books
// @Description This endpoint returns all books whose title or author matches the search term
// @Tags books
// @Produce json
// @Param searchTerm query string true "Match against title or author"
// @Success 200 {array} data.Book
// @Failure 400
// @Router /api/books/search [get]
func (h *Handler) searchBooksHandler(w http.ResponseWriter, r *http.Request) {
	searchTerm := h.readString(r.URL.Query(), "searchTerm", "")
	if searchTerm == "" {
		h.badRequestResponse(w, r, errors.New("searchTerm must be provided"))
		return
	}
	books, err := h.service.SearchBooks(searchTerm)
	if err != nil {
		h.uncaughtErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListBooksByAuthor godoc
// @Summary List books by author
// @Description This endpoint returns all books whose author matches the given name
// @Tags books
// @Produce json
// @Param author path string true "Author name"
// @Success 200 {array} data.Book
// @Failure 400
// @Router /api/books/author/{author} [get]
func (h *Handler) listBooksByAuthorHandler(w http.ResponseWriter, r *http.Request) {
	author := chi.URLParam(r, "author")
	if author == "" {
		h.badRequestResponse(w, r, errors.New("author must be provided"))
		return
	}
	books, err := h.service.ListBooksByAuthor(author)
	if err != nil {
		h.uncaughtErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
