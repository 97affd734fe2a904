package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/planny/planny-backend/config"
	httpapi "github.com/planny/planny-backend/internal/api/http"
	"github.com/planny/planny-backend/internal/api/http/middleware"
	"github.com/planny/planny-backend/internal/auth"
	authmw "github.com/planny/planny-backend/internal/auth/middleware"
	calhttp "github.com/planny/planny-backend/internal/calendar/http"
	calrepo "github.com/planny/planny-backend/internal/calendar/repository"
	calsvc "github.com/planny/planny-backend/internal/calendar/service"
	"github.com/planny/planny-backend/internal/logging"
	peoplehttp "github.com/planny/planny-backend/internal/people/http"
	peoplerepo "github.com/planny/planny-backend/internal/people/repository"
	projecthttp "github.com/planny/planny-backend/internal/projects/http"
	projectsvc "github.com/planny/planny-backend/internal/projects/service"
	"github.com/planny/planny-backend/internal/tasks/cache"
	taskhttp "github.com/planny/planny-backend/internal/tasks/http"
	taskrepo "github.com/planny/planny-backend/internal/tasks/repository"
	tasksvc "github.com/planny/planny-backend/internal/tasks/service"
	"github.com/planny/planny-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	Logger      *logrus.Logger
	Pool        *pgxpool.Pool
	SQL         *sql.DB
	Redis       *redis.Client
	// Verifier checks Firebase ID tokens; nil selects header-based identity.
	Verifier authmw.TokenVerifier
	// Exporter pushes events to Google Calendar; nil disables export.
	Exporter calsvc.Exporter
	Projects *projectsvc.ProjectService
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(logging.Component(dep.Logger, "http")))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID, "X-User-Id", "X-User-Email"},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	var dbPing, redisPing httpapi.Pinger
	if dep.Pool != nil {
		dbPing = dep.Pool
	}
	if dep.Redis != nil {
		redisPing = httpapi.RedisPinger{Client: dep.Redis}
	}
	httpapi.NewHealthHandler(dep.ServiceName, cfg.App.Version, dbPing, redisPing).RegisterRoutes(r)

	api := r.Group("/api/v1")

	var userDB users.Querier
	if dep.Pool != nil {
		userDB = dep.Pool
	}
	userRepo := users.NewRepo(userDB)
	if dep.Verifier != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.Verifier, userRepo))
	} else {
		api.Use(auth.WithUser(userRepo))
	}

	peoplehttp.New(peoplerepo.New(dep.SQL), logging.Component(dep.Logger, "people")).Register(api)

	taskLog := logging.Component(dep.Logger, "tasks")
	tasks := taskrepo.New(dep.SQL)
	var (
		board  tasksvc.Board
		events taskhttp.Events
	)
	if dep.Redis != nil {
		bc := cache.NewBoardCache(dep.Redis, time.Duration(cfg.Redis.BoardTTLSeconds)*time.Second)
		board, events = bc, bc
	}
	taskhttp.New(tasksvc.NewTaskService(tasks, board, taskLog), events, taskLog).Register(api.Group("/kanban-tasks"))

	projecthttp.New(dep.Projects, logging.Component(dep.Logger, "projects")).Register(api.Group("/projects"))

	calLog := logging.Component(dep.Logger, "calendar")
	cal := calsvc.New(tasks, calrepo.New(dep.SQL), dep.Exporter, calLog)
	calhttp.New(cal, calLog).Register(api)

	return r
}
