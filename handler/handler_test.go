package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/osagie/bookstore/config"
	"github.com/osagie/bookstore/data"
	"github.com/osagie/bookstore/data/dto"
	"github.com/osagie/bookstore/internal/jsonlog"
	"github.com/osagie/bookstore/service"
	"github.com/stretchr/testify/require"
)

// stubService is a canned-response implementation of service.Service for
// handler tests. Each method returns the corresponding field, and the inputs
// it was called with are recorded for assertions.
type stubService struct {
	book      *data.Book
	books     []*data.Book
	paginated *data.PaginatedBooks
	user      *data.User
	token     *service.Token
	err       error

	gotSearchTerm string
	gotFilters    data.Filters
}

func (s *stubService) GetBook(bookID int64) (*data.Book, error) {
	return s.book, s.err
}

func (s *stubService) ListBooks(searchTerm string, filters data.Filters) (*data.PaginatedBooks, error) {
	s.gotSearchTerm = searchTerm
	s.gotFilters = filters
	return s.paginated, s.err
}

func (s *stubService) CreateBook(requestBody dto.CreateBookRequestBody) (*data.Book, error) {
	return s.book, s.err
}

func (s *stubService) UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
	return s.book, s.err
}

func (s *stubService) DeleteBook(bookID int64) error {
	return s.err
}

func (s *stubService) SearchBooks(searchTerm string) ([]*data.Book, error) {
	s.gotSearchTerm = searchTerm
	return s.books, s.err
}

func (s *stubService) ListBooksByAuthor(author string) ([]*data.Book, error) {
	return s.books, s.err
}

func (s *stubService) RegisterUser(username string, email string, password string) (*data.User, error) {
	return s.user, s.err
}

func (s *stubService) CreateAuthenticationToken(username string, password string) (*service.Token, error) {
	return s.token, s.err
}

func (s *stubService) GetUserForToken(token string) (*data.User, error) {
	if s.user == nil {
		return nil, service.ErrInvalidToken
	}
	return s.user, nil
}

// newTestServer builds the full middleware and routing stack around a stub
// service and returns a running test server.
func newTestServer(t *testing.T, svc service.Service) *httptest.Server {
	t.Helper()
	return newTestServerWithLogger(t, svc, jsonlog.New(io.Discard, jsonlog.LevelOff))
}

func newTestServerWithLogger(t *testing.T, svc service.Service, logger *jsonlog.Logger) *httptest.Server {
	t.Helper()
	var cfg config.Config
	cfg.Server.Env = "test"
	cache := ttlcache.New(ttlcache.WithTTL[string, *data.User](time.Minute))
	h := New(cfg, logger, cache, svc)
	ts := httptest.NewServer(h.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, method, url string, body interface{}, bearer string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	payload, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	env := map[string]json.RawMessage{}
	if len(payload) > 0 {
		require.NoError(t, json.Unmarshal(payload, &env))
	}
	return res, env
}
