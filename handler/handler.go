package handler

import (
	"github.com/jellydator/ttlcache/v3"
	"github.com/osagie/bookstore/config"
	"github.com/osagie/bookstore/data"
	"github.com/osagie/bookstore/internal/jsonlog"
	"github.com/osagie/bookstore/service"
)

// Handler defines Handler layer.
type Handler struct {
	config  config.Config
	logger  *jsonlog.Logger
	cache   *ttlcache.Cache[string, *data.User]
	service service.Service
}

// New creates a new instance of Handler. The cache holds recently verified
// bearer tokens so repeat requests skip token verification and the user lookup.
func New(cfg config.Config, logger *jsonlog.Logger, cache *ttlcache.Cache[string, *data.User], service service.Service) *Handler {
	return &Handler{
		config:  cfg,
		logger:  logger,
		cache:   cache,
		service: service,
	}
}
