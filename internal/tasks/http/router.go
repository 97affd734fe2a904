package http

import "github.com/gin-gonic/gin"

// Register attaches the kanban routes to rg (mounted at /kanban-tasks).
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.PATCH("/:id", h.changeStatus)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
	if h.events != nil {
		rg.GET("/events", h.streamEvents)
	}
}
