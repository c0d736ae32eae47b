// internal/handlers/notification/notification_handler.go
package notification

import (
	"net/http"
	"strconv"

	"acadetrack-service/internal/domain/notification"
	"acadetrack-service/internal/middleware"
	"acadetrack-service/internal/pkg/response"
	notifService "acadetrack-service/internal/service/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	service *notifService.NotificationService
	logger  *zap.Logger
}

func NewNotificationHandler(svc *notifService.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: svc,
		logger:  logger,
	}
}

// List returns a page of notifications with summary counts
func (h *NotificationHandler) List(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	var filters notification.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), identityID, filters)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", resp)
}

// Latest returns the newest notifications (default 20)
func (h *NotificationHandler) Latest(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	limit := notification.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "limit must be an integer", err)
			return
		}
		limit = parsed
	}

	notifications, err := h.service.Latest(c.Request.Context(), identityID, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// UnreadCount returns the unread badge count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	count, err := h.service.UnreadCount(c.Request.Context(), identityID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", gin.H{"unread_count": count})
}

// MarkRead marks one notification read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	if err := h.service.MarkRead(c.Request.Context(), identityID, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "notification marked as read", nil)
}

// MarkAllRead marks everything read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	updated, err := h.service.MarkAllRead(c.Request.Context(), identityID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "all notifications marked as read", gin.H{
		"updated": updated,
	})
}

// Delete removes one notification
func (h *NotificationHandler) Delete(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	if err := h.service.Delete(c.Request.Context(), identityID, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "notification deleted", nil)
}

// DeleteAll clears the student's notification history
func (h *NotificationHandler) DeleteAll(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	deleted, err := h.service.DeleteAll(c.Request.Context(), identityID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "notifications cleared", gin.H{
		"deleted": deleted,
	})
}

// ========== Settings ==========

// GetSettings returns the student's reminder settings
func (h *NotificationHandler) GetSettings(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	settings, err := h.service.GetSettings(c.Request.Context(), identityID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", settings)
}

// UpdateSettings merges a settings patch
func (h *NotificationHandler) UpdateSettings(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	var req notification.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	settings, err := h.service.UpdateSettings(c.Request.Context(), identityID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "settings updated", settings)
}
