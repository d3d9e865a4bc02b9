package main

import (
	"expvar"
	"flag"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	_ "github.com/lib/pq"
	"github.com/osagie/bookstore/config"
	"github.com/osagie/bookstore/data"
	"github.com/osagie/bookstore/handler"
	"github.com/osagie/bookstore/internal/jsonlog"
	"github.com/osagie/bookstore/internal/mailer"
	"github.com/osagie/bookstore/repository"
	"github.com/osagie/bookstore/repository/postgres"
	"github.com/osagie/bookstore/service"
)

const version = "1.0.0"

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

// @title Bookstore API
// @version 1.0.0
// @description This is an API service for managing a book catalog.
// @BasePath /api
func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
	var cfg config.Config
	var configFile string
	flag.StringVar(&configFile, "config", "", "Path to a YAML configuration file")
	flag.IntVar(&cfg.Server.Port, "port", 4000, "API server port")
	flag.StringVar(&cfg.Server.Env, "env", "development", "Environment(development|staging|production)")

	// Read the database connection pool settings into the config
	flag.StringVar(&cfg.Database.DSN, "db-dsn", os.Getenv("DSN"), "PostgreSQL DSN")
	flag.IntVar(&cfg.Database.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.IntVar(&cfg.Database.MaxIdleConns, "db-max-idle-conns", 25, "PostgreSQL max idle connections")
	flag.StringVar(&cfg.Database.MaxIdleTime, "db-max-idle-time", "15m", "PostgreSQL max connection idle time")

	// Read the token signing settings into the config
	flag.StringVar(&cfg.JWT.Secret, "jwt-secret", os.Getenv("JWTSECRET"), "JWT signing secret")
	flag.StringVar(&cfg.JWT.Issuer, "jwt-issuer", "bookstore", "JWT issuer")
	flag.StringVar(&cfg.JWT.Audience, "jwt-audience", "bookstore", "JWT audience")

	// Read the SMTP server settings into the config
	flag.StringVar(&cfg.SMTP.Host, "smtp-host", os.Getenv("SMTPHOST"), "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 25, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", os.Getenv("SMTPUSERNAME"), "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", os.Getenv("SMTPPASSWORD"), "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "Bookstore <no-reply@bookstore.example.com>", "SMTP sender")

	// Read the rate limter settings into the config
	flag.Float64Var(&cfg.Limiter.RPS, "limiter-rps", 4, "Rate limiter maximum requests per second")
	flag.IntVar(&cfg.Limiter.Burst, "limiter-burst", 8, "Rate limiter maximum burst")
	flag.BoolVar(&cfg.Limiter.Enabled, "limiter-enabled", true, "Enable rate limiter")

	// Process the -cors-trusted-origins command line flag
	flag.Func("cors-trusted-origin", "Trusted CORS origin (space separated)", func(s string) error {
		cfg.Cors.TrustedOrigins = strings.Fields(s)
		return nil
	})

	// Read the metrics settings and basic auth credentials for the /debug/vars endpoint
	flag.BoolVar(&cfg.Metrics.Enabled, "metrics-enabled", true, "Enable request-level metrics")
	flag.StringVar(&cfg.BasicAuth.Username, "basic-auth-username", os.Getenv("BASIC_AUTH_USERNAME"), "Basic auth username")
	flag.StringVar(&cfg.BasicAuth.Password, "basic-auth-password", os.Getenv("BASIC_AUTH_PASSWORD"), "Basic auth password")

	flag.Parse()

	// A configuration file overrides flag and environment defaults for the
	// keys it contains.
	if configFile != "" {
		err := config.LoadFile(configFile, &cfg)
		if err != nil {
			logger.PrintFatal(err, map[string]string{"file": configFile})
		}
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	// Other shared resources: waitgroup and in-memory token cache
	var wg sync.WaitGroup
	cache := ttlcache.New(ttlcache.WithTTL[string, *data.User](5 * time.Minute))
	go cache.Start()

	// Publish runtime metrics in the expvar handler
	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("database", expvar.Func(func() any {
		return db.Stats()
	}))
	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	// Application layers
	repo := repository.New(db)
	service := service.New(cfg, &wg, logger, repo, mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender))
	handler := handler.New(cfg, logger, cache, service)

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(&wg, logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
