package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internlink/internship-service/internal/services"
	"github.com/internlink/internship-service/internal/utils"
)

type NotificationHandler struct {
	BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         NewBaseHandler(logger),
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notificationService.ListForUser(c.Request.Context(), user.ID, unreadOnly)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "", notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), CurrentUser(c).ID, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Notification marked as read", nil)
}
