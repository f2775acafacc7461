package handlers

import (
	"net/http"

	notificationRepo "github.com/sekharpasem/YouCanStyle-Api/database/repository/notification"
	"github.com/sekharpasem/YouCanStyle-Api/middleware"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the in-app notification feed.
type NotificationHandler struct {
	Repo notificationRepo.NotificationRepository
}

func NewNotificationHandler(repo notificationRepo.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{Repo: repo}
}

func (h *NotificationHandler) ListMyNotifications(c *gin.Context) {
	skip, limit := pageParams(c)
	notifications, err := h.Repo.ListForUser(c.Request.Context(), c.GetString(middleware.CtxUserID), skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	if err := h.Repo.MarkRead(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}
