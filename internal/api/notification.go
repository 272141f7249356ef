package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/calorix/backend/internal/service"
)

// NotificationHandler serves the in-app notification list.
type NotificationHandler struct {
	notificationService service.INotificationService
}

func NewNotificationHandler(notificationService service.INotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	n := router.Group("/notifications")
	{
		n.GET("", h.List)
		n.POST("/:id/read", h.MarkRead)
	}
}

// List reads ?unread=true to skip read notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	list, err := h.notificationService.List(c.Request.Context(), uid, c.Query("unread") == "true")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "id", codeInvalidID)
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
