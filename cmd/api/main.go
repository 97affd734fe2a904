package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/planny/planny-backend/config"
	"github.com/planny/planny-backend/internal/auth"
	authmw "github.com/planny/planny-backend/internal/auth/middleware"
	"github.com/planny/planny-backend/internal/bootstrap"
	"github.com/planny/planny-backend/internal/calendar/gcal"
	calsvc "github.com/planny/planny-backend/internal/calendar/service"
	"github.com/planny/planny-backend/internal/logging"
	cronjob "github.com/planny/planny-backend/internal/projects/cron"
	"github.com/planny/planny-backend/internal/storage/postgres"
)

const serviceName = "planny-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	logger := logging.New(logging.Options{
		Level:      cfg.App.LogLevel,
		Production: cfg.IsProduction(),
	})
	log := logging.Component(logger, "main")

	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.WithError(err).Warn("set GOMAXPROCS")
	}

	if err := run(cfg, logger); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	log := logging.Component(logger, "main")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)

	sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, sqlDB); err != nil {
			return err
		}
		log.Info("schema migrated")
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		URL:      postgres.URL(&cfg.Database),
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	var rdb *redis.Client
	if cfg.Redis.Active() {
		rdb, err = bootstrap.OpenRedis(ctx, &cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
	} else {
		log.Warn("redis disabled, kanban board served without cache or events")
	}

	var verifier authmw.TokenVerifier
	if cfg.Firebase.Enabled {
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			return err
		}
		verifier = client
	} else {
		log.Warn("firebase disabled, trusting X-User-* headers")
	}

	var exporter calsvc.Exporter
	if cfg.Calendar.Enabled {
		exp, err := gcal.New(ctx, &cfg.Calendar, logging.Component(logger, "gcal"))
		if err != nil {
			return err
		}
		exporter = exp
	}

	projects, err := bootstrap.NewProjectService(cfg, sqlDB, rdb, logger)
	if err != nil {
		return err
	}

	var scheduler *cronjob.Scheduler
	if cfg.Cron.Enabled {
		scheduler = cronjob.NewScheduler(cfg.Cron.ProgressSpec, projects, logging.Component(logger, "cron"))
		if err := scheduler.Start(); err != nil {
			return err
		}
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Config:      cfg,
		Logger:      logger,
		Pool:        pool,
		SQL:         sqlDB,
		Redis:       rdb,
		Verifier:    verifier,
		Exporter:    exporter,
		Projects:    projects,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSeconds)*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	return srv.Shutdown(shutdownCtx)
}
