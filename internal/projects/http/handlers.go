package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/planny/planny-backend/internal/auth"
	plan "github.com/planny/planny-backend/internal/planning/domain"
	"github.com/planny/planny-backend/internal/planning/timeline"
	"github.com/planny/planny-backend/internal/projects/domain"
	"github.com/planny/planny-backend/internal/projects/service"
)

type Service interface {
	Create(ctx context.Context, in domain.Input) (*service.Created, error)
	List(ctx context.Context) ([]service.ListItem, error)
	Get(ctx context.Context, id int64) (*service.ListItem, error)
	Update(ctx context.Context, id int64, in domain.Input) (*service.ListItem, error)
	Delete(ctx context.Context, id int64) error
	Options(ctx context.Context) ([]domain.Option, error)
	Timeline(ctx context.Context, id int64) (*service.Timeline, error)
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc Service
	log *logrus.Entry
}

func New(svc Service, log *logrus.Entry) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON"})
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.fail(c, err)
		return
	}
	if uid := auth.UserDBID(c); uid > 0 {
		in.CreatedBy = &uid
	}

	out, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"ok":           true,
		"projectID":    out.Project.ID,
		"project":      toResponse(*out.Project),
		"typeTasks":    toWorkItems(out.TypeTasks),
		"featureTasks": toWorkItems(out.FeatureTasks),
		"message":      "Project created successfully",
	})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]projectResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": out})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	it, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": toItemResponse(*it)})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON"})
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.fail(c, err)
		return
	}

	it, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": toItemResponse(*it), "message": "Project updated successfully"})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Project deleted successfully"})
}

func (h *Handler) options(c *gin.Context) {
	opts, err := h.svc.Options(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": opts})
}

func (h *Handler) timeline(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	tl, err := h.svc.Timeline(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"project":   toItemResponse(*tl.Project),
		"rows":      tl.Rows,
		"ganttData": tl.Chart,
	})
}

func projectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	var distErr *timeline.DistributionError
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, plan.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid date format"})
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrDatesRequired),
		errors.Is(err, domain.ErrDeadlineBeforeStart),
		errors.Is(err, domain.ErrUnknownClient),
		errors.Is(err, domain.ErrUnknownDeveloper),
		errors.As(err, &distErr):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		h.log.WithError(err).WithField("path", c.FullPath()).Error("project request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
