package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/contesthub/contest-api/internal/api"
	"github.com/contesthub/contest-api/internal/config"
	"github.com/contesthub/contest-api/internal/db"
	"github.com/contesthub/contest-api/internal/domain"
	"github.com/contesthub/contest-api/internal/events"
	"github.com/contesthub/contest-api/internal/logger"
	"github.com/contesthub/contest-api/internal/metrics"
	"github.com/contesthub/contest-api/internal/repository"
	"github.com/contesthub/contest-api/internal/repository/dao"
	"github.com/contesthub/contest-api/internal/service"
)

const (
	DefaultConfigPath = "./cmd/app/config.yml"

	shutdownTimeout = 10 * time.Second
)

// Start serves the HTTP API and runs the event bus until SIGINT or SIGTERM.
func Start(configPath string) error {
	conf, postgresDB, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	config.Watch(configPath, func(updated *config.AppConfig) {
		if err := logger.SetLevel(updated.Log.Level); err != nil {
			zap.L().Warn("ignoring invalid log level", zap.String("level", updated.Log.Level), zap.Error(err))
			return
		}
		zap.L().Info("log level changed", zap.String("level", updated.Log.Level))
	})

	if err = db.Migrate(postgresDB, false); err != nil {
		return fmt.Errorf("failed to migrate database -> %w", err)
	}

	m := metrics.New()

	bus, err := newBus(conf, postgresDB, m)
	if err != nil {
		return fmt.Errorf("failed to initialize event bus -> %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	busErr := make(chan error, 1)
	go func() {
		busErr <- bus.Run(ctx)
	}()
	select {
	case <-bus.Running():
	case err = <-busErr:
		return fmt.Errorf("event bus stopped before starting -> %w", err)
	}

	s := api.NewServer(conf, postgresDB, bus, m)
	srv := &http.Server{
		Addr:              ":" + s.Config.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = bus.Close()
			return fmt.Errorf("failed to start the server -> %w", err)
		}
	case <-ctx.Done():
		zap.L().Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return errors.Join(srv.Shutdown(shutdownCtx), bus.Close())
}

// Migrate creates the schema. With reset every table is dropped and recreated.
func Migrate(configPath string, reset bool) error {
	_, postgresDB, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	if err = db.Migrate(postgresDB, reset); err != nil {
		return fmt.Errorf("failed to migrate database -> %w", err)
	}
	zap.L().Info("database migrated", zap.Bool("reset", reset))

	return nil
}

// Recompute re-ranks one contest outside of the event bus.
func Recompute(ctx context.Context, configPath string, contestID uint) ([]domain.RankChange, error) {
	conf, postgresDB, err := bootstrap(configPath)
	if err != nil {
		return nil, err
	}

	repo := repository.NewContestRepository(dao.NewContestDAO(postgresDB))
	svc := service.NewLeaderboardService(repo, conf.Contest.RecomputeAttempts, nil)

	changes, err := svc.Recompute(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("svc.Recompute -> %w", err)
	}

	return changes, nil
}

// AddUser creates a user, typically the first admin of a fresh deployment.
func AddUser(ctx context.Context, configPath string, user domain.User) (domain.User, error) {
	_, postgresDB, err := bootstrap(configPath)
	if err != nil {
		return domain.User{}, err
	}

	svc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(postgresDB)))

	created, err := svc.CreateUser(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("svc.CreateUser -> %w", err)
	}

	return created, nil
}

func bootstrap(configPath string) (*config.AppConfig, *gorm.DB, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.Log.Level); err != nil {
		return nil, nil, fmt.Errorf("failed to set log level -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	return conf, postgresDB, nil
}

func newBus(conf *config.AppConfig, postgresDB *gorm.DB, m *metrics.Metrics) (*events.Bus, error) {
	contests := repository.NewContestRepository(dao.NewContestDAO(postgresDB))
	users := repository.NewUserRepository(dao.NewUserDAO(postgresDB))

	ranker := service.NewLeaderboardService(contests, conf.Contest.RecomputeAttempts, m)
	notifier := service.NewNotificationService(users, contests, nil, conf.API.BaseURL)

	return events.NewBus(events.Config{
		BufferSize: conf.Events.BufferSize,
		Retries:    conf.Events.Retries,
		Registry:   m.Registry,
	}, events.NewHandlers(ranker, notifier), events.NewZapLogger(zap.L()))
}
