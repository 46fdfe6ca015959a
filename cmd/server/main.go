package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/eldercare-records/internal/cache"
	"github.com/iliyamo/eldercare-records/internal/config"
	"github.com/iliyamo/eldercare-records/internal/database"
	"github.com/iliyamo/eldercare-records/internal/handler"
	"github.com/iliyamo/eldercare-records/internal/logger"
	"github.com/iliyamo/eldercare-records/internal/queue"
	"github.com/iliyamo/eldercare-records/internal/repository"
	"github.com/iliyamo/eldercare-records/internal/router"
	"github.com/iliyamo/eldercare-records/internal/service"
)

func main() {
	dotenvErr := config.LoadDotEnv()

	lc := config.LoadLogConfig()
	log, err := logger.New(lc.Level, lc.Format, "eldercare-api")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	if dotenvErr != nil {
		log.Warn("could not read .env", zap.Error(dotenvErr))
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		log.Warn("redis unavailable; caching and login throttling are off")
	} else {
		defer rdb.Close()
	}

	cc := config.LoadCacheConfig()
	records := cache.New(cacheBackend(cc, rdb, log), cc.TTL, cc.Prefix, log)

	var events *queue.Publisher
	if ec := config.LoadEventsConfig(); ec.Enabled {
		events = queue.NewPublisher(ec.URL, ec.Queue, log)
		log.Info("payslip events enabled", zap.String("queue", ec.Queue))
	}

	users := repository.NewUserRepo(db)
	links := repository.NewAssignmentRepo(db)
	auth := service.NewAuthService(users, repository.NewTokenRepo(db), service.AuthConfig{
		JWTSecret:      cfg.JWTSecret,
		AccessTTLMin:   cfg.AccessTTLMin,
		RefreshTTLDays: cfg.RefreshTTLDays,
		BcryptCost:     cfg.BcryptCost,
	}, log)
	caregivers := service.NewCaregiverService(repository.NewCaregiverRepo(db), links, records, events, log)
	elderly := service.NewElderlyService(repository.NewElderlyRepo(db), repository.NewTaskRepo(db),
		repository.NewMedicationRepo(db), links, records, log)
	assignments := service.NewAssignmentService(links, records)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	opts := router.Options{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      config.LoadRateLimitConfig(),
		Redis:          rdb,
		Users:          auth,
		Log:            log,
	}
	router.UseCommon(e, opts)
	router.RegisterRoutes(e, router.Handlers{
		Auth:        handler.NewAuthHandler(auth, log),
		Caregivers:  handler.NewCaregiverHandler(caregivers, log),
		Elderly:     handler.NewElderlyHandler(elderly, log),
		Assignments: handler.NewAssignmentHandler(assignments, log),
	}, opts)

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server exited")
}

// cacheBackend picks the store behind the record cache.  A nil backend
// disables caching.
func cacheBackend(cc config.CacheConfig, rdb *redis.Client, log *zap.Logger) cache.Backend {
	switch cc.Backend {
	case config.CacheRedis:
		if rdb != nil {
			return cache.NewRedisBackend(rdb)
		}
	case config.CacheMemory:
		return cache.NewMemoryBackend(cc.MemoryCapacity, cc.TTL)
	}
	log.Info("record cache disabled", zap.String("backend", cc.Backend))
	return nil
}
