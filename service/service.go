package service

import (
	"sync"

	"github.com/osagie/bookstore/config"
	"github.com/osagie/bookstore/internal/jsonlog"
	"github.com/osagie/bookstore/internal/mailer"
	"github.com/osagie/bookstore/repository"
)

// Service defines the app's business-rule layer.
type Service interface {
	books
	users
	tokens
}

type service struct {
	config config.Config
	wg     *sync.WaitGroup
	logger *jsonlog.Logger
	repo   repository.Repository
	mailer mailer.Mailer
}

// New creates a new instance of Service. The WaitGroup tracks background
// goroutines so the server can drain them on shutdown.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository, mailer mailer.Mailer) *service {
	return &service{
		config: cfg,
		wg:     wg,
		logger: logger,
		repo:   repo,
		mailer: mailer,
	}
}
