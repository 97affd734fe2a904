package bootstrap

import (
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/planny/planny-backend/config"
	"github.com/planny/planny-backend/internal/logging"
	"github.com/planny/planny-backend/internal/planning/gantt"
	"github.com/planny/planny-backend/internal/projects/repository"
	"github.com/planny/planny-backend/internal/projects/service"
	"github.com/planny/planny-backend/internal/tasks/cache"
)

// NewProjectService assembles the project service shared by the API, the
// cron job and the worker. db and rdb may be nil.
func NewProjectService(cfg *config.Config, db *sql.DB, rdb *redis.Client, logger *logrus.Logger) (*service.ProjectService, error) {
	cat, dist, err := NewPlanner(&cfg.Planner)
	if err != nil {
		return nil, err
	}

	var repo *repository.ProjectRepository
	if db != nil {
		repo = repository.NewProjectRepository(db)
	}

	svc := service.NewProjectService(
		repo,
		cat,
		dist,
		gantt.Options{WindowDays: cfg.Planner.SprintDays},
		logging.Component(logger, "projects"),
	)
	if rdb != nil {
		svc.WithBoard(cache.NewBoardCache(rdb, time.Duration(cfg.Redis.BoardTTLSeconds)*time.Second))
	}
	return svc, nil
}
