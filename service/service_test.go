package service

import (
	"bytes"
	"sync"
	"time"

	"github.com/osagie/bookstore/config"
	"github.com/osagie/bookstore/data"
	"github.com/osagie/bookstore/internal/jsonlog"
	"github.com/osagie/bookstore/internal/mailer"
	"github.com/osagie/bookstore/repository"
)

// stubRepository is an in-memory repository used by the service tests. Books
// are keyed by ID; staged mutations on a stubUnit apply at Save, mirroring
// the transactional contract of the real repository.
type stubRepository struct {
	books  map[int64]*data.Book
	users  map[string]*data.User
	nextID int64
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		books:  make(map[int64]*data.Book),
		users:  make(map[string]*data.User),
		nextID: 1,
	}
}

func (r *stubRepository) addBook(book *data.Book) *data.Book {
	book.ID = r.nextID
	r.nextID++
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt
	r.books[book.ID] = book
	return book
}

func (r *stubRepository) GetAllBooks() ([]*data.Book, error) {
	books := []*data.Book{}
	for _, book := range r.books {
		books = append(books, book)
	}
	return books, nil
}

func (r *stubRepository) GetBook(bookID int64) (*data.Book, error) {
	book, ok := r.books[bookID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	copied := *book
	return &copied, nil
}

func (r *stubRepository) GetBooksPage(search string, filters data.Filters) ([]*data.Book, data.Metadata, error) {
	books, _ := r.GetAllBooks()
	metadata := data.CalculateMetadata(len(books), filters.Page, filters.PageSize)
	return books, metadata, nil
}

func (r *stubRepository) SearchBooks(search string) ([]*data.Book, error) {
	return r.GetAllBooks()
}

func (r *stubRepository) GetBooksByAuthor(author string) ([]*data.Book, error) {
	return r.GetAllBooks()
}

func (r *stubRepository) RegisterUser(user *data.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.Version = 1
	r.users[user.Username] = user
	return nil
}

func (r *stubRepository) GetUserByID(ID int64) (*data.User, error) {
	for _, user := range r.users {
		if user.ID == ID {
			return user, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (r *stubRepository) GetUserByUsername(username string) (*data.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubRepository) NewUnit() repository.Unit {
	return &stubUnit{repo: r}
}

type stubUnit struct {
	repo *stubRepository
	ops  []func()
}

func (u *stubUnit) AddBook(book *data.Book) {
	u.ops = append(u.ops, func() {
		u.repo.addBook(book)
	})
}

func (u *stubUnit) UpdateBook(book *data.Book) {
	u.ops = append(u.ops, func() {
		if _, ok := u.repo.books[book.ID]; ok {
			book.UpdatedAt = time.Now()
			copied := *book
			u.repo.books[book.ID] = &copied
		}
	})
}

func (u *stubUnit) DeleteBook(bookID int64) (bool, error) {
	_, existed := u.repo.books[bookID]
	u.ops = append(u.ops, func() {
		delete(u.repo.books, bookID)
	})
	return existed, nil
}

func (u *stubUnit) Save() (bool, error) {
	for _, op := range u.ops {
		op()
	}
	changed := len(u.ops) > 0
	u.ops = nil
	return changed, nil
}

// newTestService wires a service instance around a stub repository with a
// discarding logger.
func newTestService(repo repository.Repository) *service {
	var cfg config.Config
	cfg.JWT.Secret = "test-signing-secret"
	cfg.JWT.Issuer = "bookstore"
	cfg.JWT.Audience = "bookstore"
	var wg sync.WaitGroup
	logger := jsonlog.New(&bytes.Buffer{}, jsonlog.LevelOff)
	return New(cfg, &wg, logger, repo, mailer.New("localhost", 1025, "", "", "Bookstore <no-reply@bookstore.example.com>"))
}
