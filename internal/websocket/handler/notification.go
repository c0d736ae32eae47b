// internal/websocket/handler/notification.go
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	wstypes "acadetrack-service/internal/domain/websocket"
	notifsvc "acadetrack-service/internal/service/notification"
	ws "acadetrack-service/internal/websocket"
)

// NotificationHandler answers notification events over the socket. It
// goes through the notification service so read-state changes evict
// the in-process history cache.
type NotificationHandler struct {
	notifications *notifsvc.NotificationService
}

func NewNotificationHandler(notifications *notifsvc.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
	}
}

// SupportedEvents returns events this handler supports
func (h *NotificationHandler) SupportedEvents() []wstypes.EventType {
	return []wstypes.EventType{
		wstypes.EventTypeNotificationRead,
		wstypes.EventTypeNotificationReadAll,
		wstypes.EventTypeNotificationList,
		wstypes.EventTypeNotificationCount,
	}
}

// HandleMessage processes notification-related messages
func (h *NotificationHandler) HandleMessage(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	switch msg.Type {
	case wstypes.EventTypeNotificationRead:
		return h.handleMarkAsRead(ctx, client, msg)

	case wstypes.EventTypeNotificationReadAll:
		return h.handleMarkAllAsRead(ctx, client, msg)

	case wstypes.EventTypeNotificationList:
		return h.handleListNotifications(ctx, client, msg)

	case wstypes.EventTypeNotificationCount:
		return h.handleGetCount(ctx, client, msg)

	default:
		return fmt.Errorf("unsupported event type: %s", msg.Type)
	}
}

func (h *NotificationHandler) handleMarkAsRead(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	var req struct {
		NotificationID string `json:"notification_id"`
	}

	if err := mapToStruct(msg.Data, &req); err != nil {
		client.SendError("invalid_request", "Invalid mark as read request", err.Error())
		return err
	}

	if err := h.notifications.MarkRead(ctx, client.GetIdentityID(), req.NotificationID); err != nil {
		client.SendError("mark_read_failed", "Failed to mark notification as read", err.Error())
		return err
	}

	count, err := h.notifications.UnreadCount(ctx, client.GetIdentityID())
	if err != nil {
		log.Printf("Failed to get unread count: %v", err)
		count = 0
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeNotificationRead, map[string]interface{}{
		"notification_id": req.NotificationID,
		"success":         true,
		"unread_count":    count,
	}))

	return nil
}

func (h *NotificationHandler) handleMarkAllAsRead(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	if _, err := h.notifications.MarkAllRead(ctx, client.GetIdentityID()); err != nil {
		client.SendError("mark_all_read_failed", "Failed to mark all as read", err.Error())
		return err
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeNotificationReadAll, map[string]interface{}{
		"success":      true,
		"unread_count": 0,
	}))

	return nil
}

func (h *NotificationHandler) handleListNotifications(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	var req struct {
		Limit int `json:"limit"`
	}

	if err := mapToStruct(msg.Data, &req); err != nil {
		client.SendError("invalid_request", "Invalid list request", err.Error())
		return err
	}

	notifications, err := h.notifications.Latest(ctx, client.GetIdentityID(), req.Limit)
	if err != nil {
		client.SendError("list_failed", "Failed to get notifications", err.Error())
		return err
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeNotificationList, map[string]interface{}{
		"notifications": notifications,
		"count":         len(notifications),
	}))

	return nil
}

func (h *NotificationHandler) handleGetCount(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	count, err := h.notifications.UnreadCount(ctx, client.GetIdentityID())
	if err != nil {
		client.SendError("count_failed", "Failed to get unread count", err.Error())
		return err
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeNotificationCount, map[string]interface{}{
		"unread_count": count,
	}))

	return nil
}

func mapToStruct(data interface{}, target interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, target)
}
