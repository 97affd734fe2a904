package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/planny/planny-backend/internal/people/domain"
)

type Store interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	CreateClient(ctx context.Context, c *domain.Client) error
	ListDevelopers(ctx context.Context) ([]domain.Developer, error)
	CreateDeveloper(ctx context.Context, d *domain.Developer) error
}

type Handler struct {
	store Store
	log   *logrus.Entry
}

func New(store Store, log *logrus.Entry) *Handler {
	return &Handler{store: store, log: log}
}

// Register attaches /clients and /developers to rg.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/clients", h.listClients)
	rg.POST("/clients", h.createClient)
	rg.GET("/developers", h.listDevelopers)
	rg.POST("/developers", h.createDeveloper)
}

func (h *Handler) listClients(c *gin.Context) {
	items, err := h.store.ListClients(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("list clients")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "clients": items})
}

func (h *Handler) createClient(c *gin.Context) {
	var req domain.Client
	if err := c.ShouldBindJSON(&req); err != nil || req.CompanyName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "companyName is required"})
		return
	}
	if err := h.store.CreateClient(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "client": req})
}

func (h *Handler) listDevelopers(c *gin.Context) {
	items, err := h.store.ListDevelopers(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("list developers")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "developers": items})
}

func (h *Handler) createDeveloper(c *gin.Context) {
	var req domain.Developer
	if err := c.ShouldBindJSON(&req); err != nil || req.FirstName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "firstName is required"})
		return
	}
	if err := h.store.CreateDeveloper(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "developer": req})
}
