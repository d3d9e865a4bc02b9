package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/osagie/bookstore/data"
	"github.com/osagie/bookstore/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBook() *data.Book {
	return &data.Book{
		ID:            1,
		Title:         "The Great Gatsby",
		Author:        "F. Scott Fitzgerald",
		PublishedDate: data.NewDate(1925, time.April, 10),
		NumberOfPages: 180,
	}
}

func TestListBooksHandler(t *testing.T) {
	svc := &stubService{
		paginated: &data.PaginatedBooks{
			Data:     []*data.Book{testBook()},
			Metadata: data.CalculateMetadata(1, 1, 10),
		},
	}
	ts := newTestServer(t, svc)

	res, env := doRequest(t, http.MethodGet, ts.URL+"/api/books?pageNumber=2&pageSize=5&searchTerm=gatsby", nil, "")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Query string parameters reach the service clamped into Filters.
	assert.Equal(t, "gatsby", svc.gotSearchTerm)
	assert.Equal(t, 2, svc.gotFilters.Page)
	assert.Equal(t, 5, svc.gotFilters.PageSize)

	var body struct {
		Data       []*data.Book `json:"data"`
		PageNumber int          `json:"pageNumber"`
		TotalCount int          `json:"totalCount"`
	}
	require.NoError(t, json.Unmarshal(env["books"], &body))
	assert.Len(t, body.Data, 1)
	assert.Equal(t, 1, body.TotalCount)
}

func TestListBooksHandlerClampsPagination(t *testing.T) {
	svc := &stubService{paginated: &data.PaginatedBooks{Data: []*data.Book{}}}
	ts := newTestServer(t, svc)

	res, _ := doRequest(t, http.MethodGet, ts.URL+"/api/books?pageNumber=-3&pageSize=900", nil, "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 1, svc.gotFilters.Page)
	assert.Equal(t, 50, svc.gotFilters.PageSize)
}

func TestListBooksHandlerRejectsNonIntegerParams(t *testing.T) {
	svc := &stubService{paginated: &data.PaginatedBooks{Data: []*data.Book{}}}
	ts := newTestServer(t, svc)

	res, env := doRequest(t, http.MethodGet, ts.URL+"/api/books?pageNumber=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, string(env["error"]), "pageNumber")
	assert.Contains(t, string(env["error"]), "must be an integer value")
}

func TestShowBookHandler(t *testing.T) {
	ts := newTestServer(t, &stubService{book: testBook()})

	res, env := doRequest(t, http.MethodGet, ts.URL+"/api/books/1", nil, "")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var book data.Book
	require.NoError(t, json.Unmarshal(env["book"], &book))
	assert.Equal(t, "The Great Gatsby", book.Title)
	// The date uses the wire format, not a timestamp.
	assert.Contains(t, string(env["book"]), `"1925-04-10"`)
}

func TestShowBookHandlerNotFound(t *testing.T) {
	ts := newTestServer(t, &stubService{err: service.ErrRecordNotFound})

	res, _ := doRequest(t, http.MethodGet, ts.URL+"/api/books/42", nil, "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestShowBookHandlerBadID(t *testing.T) {
	ts := newTestServer(t, &stubService{book: testBook()})

	res, _ := doRequest(t, http.MethodGet, ts.URL+"/api/books/abc", nil, "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestCreateBookHandler(t *testing.T) {
	svc := &stubService{book: testBook(), user: &data.User{ID: 1, Username: "gatsby"}}
	ts := newTestServer(t, svc)

	payload := map[string]interface{}{
		"title":         "The Great Gatsby",
		"author":        "F. Scott Fitzgerald",
		"publishedDate": "1925-04-10",
		"numberOfPages": 180,
	}
	res, _ := doRequest(t, http.MethodPost, ts.URL+"/api/books", payload, "some-token")
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "/api/books/1", res.Header.Get("Location"))
}

func TestCreateBookHandlerRequiresAuthentication(t *testing.T) {
	ts := newTestServer(t, &stubService{book: testBook()})

	payload := map[string]interface{}{"title": "The Great Gatsby"}
	res, _ := doRequest(t, http.MethodPost, ts.URL+"/api/books", payload, "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestCreateBookHandlerValidationErrors(t *testing.T) {
	svc := &stubService{
		err:  &service.ValidationError{Fields: map[string]string{"title": "must be provided"}},
		user: &data.User{ID: 1, Username: "gatsby"},
	}
	ts := newTestServer(t, svc)

	payload := map[string]interface{}{"author": "F. Scott Fitzgerald"}
	res, env := doRequest(t, http.MethodPost, ts.URL+"/api/books", payload, "some-token")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(env["error"], &fields))
	assert.Equal(t, "must be provided", fields["title"])
}

func TestCreateBookHandlerMalformedJSON(t *testing.T) {
	svc := &stubService{user: &data.User{ID: 1, Username: "gatsby"}}
	ts := newTestServer(t, svc)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/books", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer some-token")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDeleteBookHandlerNotFound(t *testing.T) {
	svc := &stubService{err: service.ErrRecordNotFound, user: &data.User{ID: 1, Username: "gatsby"}}
	ts := newTestServer(t, svc)

	res, _ := doRequest(t, http.MethodDelete, ts.URL+"/api/books/42", nil, "some-token")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSearchBooksHandler(t *testing.T) {
	svc := &stubService{books: []*data.Book{testBook()}}
	ts := newTestServer(t, svc)

	res, env := doRequest(t, http.MethodGet, ts.URL+"/api/books/search?searchTerm=gatsby", nil, "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "gatsby", svc.gotSearchTerm)

	var books []*data.Book
	require.NoError(t, json.Unmarshal(env["books"], &books))
	assert.Len(t, books, 1)
}

func TestSearchBooksHandlerEmptyTerm(t *testing.T) {
	ts := newTestServer(t, &stubService{})

	res, _ := doRequest(t, http.MethodGet, ts.URL+"/api/books/search", nil, "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestListBooksByAuthorHandler(t *testing.T) {
	svc := &stubService{books: []*data.Book{testBook()}}
	ts := newTestServer(t, svc)

	res, env := doRequest(t, http.MethodGet, ts.URL+"/api/books/author/Harper%20Lee", nil, "")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var books []*data.Book
	require.NoError(t, json.Unmarshal(env["books"], &books))
	assert.Len(t, books, 1)
}

func TestHealthcheckHandler(t *testing.T) {
	ts := newTestServer(t, &stubService{})

	res, env := doRequest(t, http.MethodGet, ts.URL+"/api/healthcheck", nil, "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, `"available"`, string(env["status"]))
}
