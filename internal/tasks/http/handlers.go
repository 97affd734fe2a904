package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	plan "github.com/planny/planny-backend/internal/planning/domain"
	"github.com/planny/planny-backend/internal/tasks/domain"
)

type Service interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id int64) error
	ChangeStatus(ctx context.Context, id int64, status plan.Status) (*domain.StatusChange, error)
}

// Events streams board changes; nil disables the SSE endpoint.
type Events interface {
	Subscribe(ctx context.Context) (<-chan domain.StatusChange, error)
}

type Handler struct {
	svc    Service
	events Events
	log    *logrus.Entry
}

func New(svc Service, events Events, log *logrus.Entry) *Handler {
	return &Handler{svc: svc, events: events, log: log}
}

func (h *Handler) list(c *gin.Context) {
	tasks, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tasks": out})
}

func (h *Handler) create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON"})
		return
	}
	t, err := req.toTask()
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.svc.Create(c.Request.Context(), t); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "taskID": t.ID, "message": "Task created successfully"})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON"})
		return
	}
	t, err := req.toTask()
	if err != nil {
		h.fail(c, err)
		return
	}
	t.ID = id

	if err := h.svc.Update(c.Request.Context(), t); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "taskID": id, "message": "Task updated successfully"})
}

func (h *Handler) changeStatus(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON"})
		return
	}

	change, err := h.svc.ChangeStatus(c.Request.Context(), id, plan.Status(req.StatusID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "change": change, "message": "Task updated successfully"})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Task deleted successfully"})
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid task id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrStatusRequired),
		errors.Is(err, domain.ErrProjectRequired),
		errors.Is(err, plan.ErrInvalidStatus),
		errors.Is(err, plan.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		h.log.WithError(err).WithField("path", c.FullPath()).Error("task request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
