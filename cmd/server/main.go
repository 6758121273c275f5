package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Mart1n-S/WatchListy-sub000/internal/config"
	"github.com/Mart1n-S/WatchListy-sub000/internal/handlers"
	"github.com/Mart1n-S/WatchListy-sub000/internal/jobs"
	"github.com/Mart1n-S/WatchListy-sub000/internal/metrics"
	"github.com/Mart1n-S/WatchListy-sub000/internal/models"
	"github.com/Mart1n-S/WatchListy-sub000/internal/repositories"
	"github.com/Mart1n-S/WatchListy-sub000/internal/routers"
	"github.com/Mart1n-S/WatchListy-sub000/internal/tmdb"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Seams so tests can substitute the database, listener and process exit.
var (
	newLogger        = zap.NewProduction
	newDialector     = func(dsn string) gorm.Dialector { return postgres.Open(dsn) }
	gormOpen         = defaultGormOpen
	runAutoMigrate   = func(db *gorm.DB, models ...interface{}) error { return db.AutoMigrate(models...) }
	httpListenServe  = http.ListenAndServe
	exitFunc         = os.Exit
	logFatalFn       = defaultLogFatal
	dbConnectTimeout = 30 * time.Second
	startScheduler   = func(s *jobs.Scheduler) error { return s.Start() }
)

func resetServerGlobals() {
	newLogger = zap.NewProduction
	newDialector = func(dsn string) gorm.Dialector { return postgres.Open(dsn) }
	gormOpen = defaultGormOpen
	runAutoMigrate = func(db *gorm.DB, models ...interface{}) error { return db.AutoMigrate(models...) }
	httpListenServe = http.ListenAndServe
	exitFunc = os.Exit
	logFatalFn = defaultLogFatal
	dbConnectTimeout = 30 * time.Second
	startScheduler = func(s *jobs.Scheduler) error { return s.Start() }
}

func defaultGormOpen(dsn string) (*gorm.DB, error) {
	return gorm.Open(newDialector(dsn), &gorm.Config{TranslateError: true})
}

func defaultLogFatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	exitFunc(1)
}

// connectWithRetry keeps trying until the database answers a ping or the
// timeout runs out; container orchestration starts the DB in parallel.
func connectWithRetry(dsn string, timeout time.Duration, logger *zap.Logger) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for {
		db, err := gormOpen(dsn)
		if err == nil {
			sqlDB, derr := db.DB()
			if derr == nil {
				if perr := sqlDB.Ping(); perr == nil {
					return db, nil
				} else {
					lastErr = perr
				}
			} else {
				lastErr = derr
			}
		} else {
			lastErr = err
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database not reachable: %w", lastErr)
		}
		logger.Warn("database not ready, retrying", zap.Error(lastErr))
		time.Sleep(500 * time.Millisecond)
	}
}

func allModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Token{},
		&models.UserMovie{},
		&models.Review{},
		&models.Follow{},
		&models.Like{},
	}
}

func run() error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := connectWithRetry(cfg.Postgres.DSN(), dbConnectTimeout, logger)
	if err != nil {
		return err
	}
	if err := runAutoMigrate(db, allModels()...); err != nil {
		return err
	}
	if err := models.EnsureUserIndexes(db); err != nil {
		return err
	}

	userRepo := &repositories.UserRepository{DB: db}
	tokenRepo := &repositories.TokenRepository{DB: db}
	watchlistRepo := &repositories.WatchlistRepository{DB: db}
	reviewRepo := &repositories.ReviewRepository{DB: db}
	socialRepo := &repositories.SocialRepository{DB: db}

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = os.Getenv("JWT_SECRET")
	}
	if jwtSecret == "" {
		jwtSecret = "dev"
	}

	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	authHandler := &handlers.AuthHandler{UserRepo: userRepo, TokenRepo: tokenRepo, JWTSecret: jwtSecret}
	userHandler := &handlers.UserHandler{UserRepo: userRepo, SocialRepo: socialRepo}
	watchlistHandler := &handlers.WatchlistHandler{Repo: watchlistRepo}
	reviewHandler := &handlers.ReviewHandler{Repo: reviewRepo, UserRepo: userRepo}
	catalogHandler := &handlers.CatalogHandler{
		Provider: tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey),
		Cache:    cache,
		Logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(60*time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(metrics.Middleware())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	routers.AuthRoutes(r, authHandler)
	routers.UserRoutes(r, userHandler, jwtSecret)
	routers.WatchlistRoutes(r, watchlistHandler, jwtSecret)
	routers.ReviewRoutes(r, reviewHandler, jwtSecret)
	routers.CatalogRoutes(r, catalogHandler, jwtSecret)

	scheduler := jobs.NewScheduler(userRepo, tokenRepo, logger)
	if err := startScheduler(scheduler); err != nil {
		return err
	}
	defer scheduler.Stop()

	port := cfg.HTTP.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	addr := ":" + port
	logger.Info("watchlisty api listening", zap.String("addr", addr))
	return httpListenServe(addr, r)
}

func main() {
	if err := run(); err != nil {
		logFatalFn(err)
	}
}
