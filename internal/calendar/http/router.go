package http

import "github.com/gin-gonic/gin"

// Register attaches the calendar routes to the API root group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/calendar-event", h.taskEvent)
	rg.POST("/calendar-event/:taskID/export", h.export)
	rg.GET("/calendar-events", h.taskEvents)

	ev := rg.Group("/user-calendar-events")
	ev.GET("", h.listUserEvents)
	ev.POST("", h.createUserEvent)
	ev.PATCH("/:id", h.updateUserEvent)
	ev.DELETE("/:id", h.deleteUserEvent)
}
