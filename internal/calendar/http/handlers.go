package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/planny/planny-backend/internal/auth"
	"github.com/planny/planny-backend/internal/calendar/domain"
	"github.com/planny/planny-backend/internal/planning/calendar"
	plan "github.com/planny/planny-backend/internal/planning/domain"
	taskdomain "github.com/planny/planny-backend/internal/tasks/domain"
)

type Service interface {
	TaskEvent(ctx context.Context, taskID int64) (*calendar.Event, error)
	TaskEvents(ctx context.Context) ([]calendar.Event, error)
	PinTask(ctx context.Context, userID, taskID int64) (*domain.UserEvent, error)
	UserEvents(ctx context.Context, userID int64) ([]domain.UserEvent, error)
	CreateUserEvent(ctx context.Context, e *domain.UserEvent) error
	UpdateUserEvent(ctx context.Context, userID, id int64, p domain.Patch) error
	DeleteUserEvent(ctx context.Context, userID, id int64) error
	Export(ctx context.Context, taskID int64) (string, error)
}

type Handler struct {
	svc Service
	log *logrus.Entry
}

func New(svc Service, log *logrus.Entry) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) taskEvent(c *gin.Context) {
	var req taskEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON"})
		return
	}
	if req.TaskID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Task ID is required"})
		return
	}

	ev, err := h.svc.TaskEvent(c.Request.Context(), req.TaskID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := gin.H{"ok": true, "event": ev, "message": "Calendar event created"}
	if req.AddToMyCalendar && ev != nil {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		pinned, err := h.svc.PinTask(c.Request.Context(), userID, req.TaskID)
		if err != nil {
			h.fail(c, err)
			return
		}
		resp["userEvent"] = toResponse(*pinned)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) taskEvents(c *gin.Context) {
	evs, err := h.svc.TaskEvents(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "events": evs})
}

func (h *Handler) export(c *gin.Context) {
	taskID, ok := pathID(c, "taskID")
	if !ok {
		return
	}

	id, err := h.svc.Export(c.Request.Context(), taskID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "taskID": taskID, "eventID": id})
}

func (h *Handler) listUserEvents(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	evs, err := h.svc.UserEvents(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]userEventResponse, 0, len(evs))
	for _, e := range evs {
		out = append(out, toResponse(e))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "events": out})
}

func (h *Handler) createUserEvent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req userEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON"})
		return
	}
	e, err := req.toEvent(userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.svc.CreateUserEvent(c.Request.Context(), e); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "eventID": e.ID, "message": "Calendar event created successfully"})
}

func (h *Handler) updateUserEvent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req patchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON"})
		return
	}
	p, err := req.toPatch()
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.svc.UpdateUserEvent(c.Request.Context(), userID, id, p); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Event updated successfully"})
}

func (h *Handler) deleteUserEvent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteUserEvent(c.Request.Context(), userID, id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Event deleted successfully"})
}

func currentUser(c *gin.Context) (int64, bool) {
	id := auth.UserDBID(c)
	if id <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
		return 0, false
	}
	return id, true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, taskdomain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Task not found"})
	case errors.Is(err, domain.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, plan.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid date format"})
	case errors.Is(err, domain.ErrTitleRequired):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Event title is required"})
	case errors.Is(err, domain.ErrNoDates):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrExportOff):
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": err.Error()})
	default:
		h.log.WithError(err).WithField("path", c.FullPath()).Error("calendar request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
