// internal/service/notification/notification.go
package notification

import (
	"context"
	"fmt"
	"time"

	"acadetrack-service/internal/domain/notification"
	wstypes "acadetrack-service/internal/domain/websocket"
	"acadetrack-service/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, n *notification.Notification) error
	List(ctx context.Context, identityID int64, filters notification.ListFilters) ([]notification.Notification, int64, error)
	Latest(ctx context.Context, identityID int64, limit int) ([]notification.Notification, error)
	Summary(ctx context.Context, identityID int64) (*notification.Summary, error)
	UnreadCount(ctx context.Context, identityID int64) (int, error)
	MarkRead(ctx context.Context, identityID int64, id string) error
	MarkAllRead(ctx context.Context, identityID int64) (int64, error)
	Delete(ctx context.Context, identityID int64, id string) error
	DeleteAll(ctx context.Context, identityID int64) (int64, error)
}

// Pusher delivers live updates to a student's connected clients.
type Pusher interface {
	BroadcastNotification(identityID int64, notification *wstypes.NotificationData)
	BroadcastNotificationCount(identityID int64, count int)
}

// NotificationService persists notifications, keeps the in-process
// history cache warm and pushes each new notification to the student's
// live connections.
type NotificationService struct {
	repo         Store
	settingsRepo *postgres.SettingsRepository
	hub          Pusher
	history      *History
	logger       *zap.Logger
}

func NewNotificationService(
	repo Store,
	settingsRepo *postgres.SettingsRepository,
	hub Pusher,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		repo:         repo,
		settingsRepo: settingsRepo,
		hub:          hub,
		history:      NewHistory(notification.HistoryCap),
		logger:       logger,
	}
}

// Notify stores a notification and pushes it out. The stored history
// stays bounded; the oldest entry falls off when the cap is reached.
func (s *NotificationService) Notify(ctx context.Context, identityID int64, category notification.Category, priority notification.Priority, title, message, icon string) (*notification.Notification, error) {
	n := &notification.Notification{
		ID:         ulid.Make().String(),
		IdentityID: identityID,
		Category:   category,
		Priority:   priority,
		Title:      title,
		Message:    message,
		Icon:       icon,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}
	s.history.Add(*n)

	s.hub.BroadcastNotification(identityID, &wstypes.NotificationData{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Message,
		Icon:      n.Icon,
		Tag:       string(n.Category),
		Category:  string(n.Category),
		Priority:  string(n.Priority),
		CreatedAt: n.CreatedAt,
	})

	if count, err := s.repo.UnreadCount(ctx, identityID); err == nil {
		s.hub.BroadcastNotificationCount(identityID, count)
	} else {
		s.logger.Warn("failed to fetch unread count", zap.Error(err))
	}

	return n, nil
}

// List returns a page of notifications with summary counts.
func (s *NotificationService) List(ctx context.Context, identityID int64, filters notification.ListFilters) (*notification.ListResponse, error) {
	notifications, total, err := s.repo.List(ctx, identityID, filters)
	if err != nil {
		return nil, err
	}

	summary, err := s.repo.Summary(ctx, identityID)
	if err != nil {
		return nil, err
	}

	pageSize := filters.PageSize
	if pageSize <= 0 {
		pageSize = notification.DefaultListLimit
	}
	page := filters.Page
	if page < 1 {
		page = 1
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &notification.ListResponse{
		Notifications: notifications,
		Summary:       *summary,
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    totalPages,
	}, nil
}

// Latest serves the newest notifications, from the in-process cache
// when it is warm and from storage otherwise.
func (s *NotificationService) Latest(ctx context.Context, identityID int64, limit int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = notification.DefaultListLimit
	}
	if cached, ok := s.history.Latest(identityID, limit); ok {
		return cached, nil
	}
	return s.repo.Latest(ctx, identityID, limit)
}

func (s *NotificationService) UnreadCount(ctx context.Context, identityID int64) (int, error) {
	return s.repo.UnreadCount(ctx, identityID)
}

func (s *NotificationService) Summary(ctx context.Context, identityID int64) (*notification.Summary, error) {
	return s.repo.Summary(ctx, identityID)
}

// MarkRead marks one notification read and pushes the new unread count.
func (s *NotificationService) MarkRead(ctx context.Context, identityID int64, id string) error {
	if err := s.repo.MarkRead(ctx, identityID, id); err != nil {
		return err
	}
	s.history.Forget(identityID)

	if count, err := s.repo.UnreadCount(ctx, identityID); err == nil {
		s.hub.BroadcastNotificationCount(identityID, count)
	}
	return nil
}

// MarkAllRead marks everything read.
func (s *NotificationService) MarkAllRead(ctx context.Context, identityID int64) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, identityID)
	if err != nil {
		return 0, err
	}
	s.history.Forget(identityID)
	s.hub.BroadcastNotificationCount(identityID, 0)
	return updated, nil
}

func (s *NotificationService) Delete(ctx context.Context, identityID int64, id string) error {
	if err := s.repo.Delete(ctx, identityID, id); err != nil {
		return err
	}
	s.history.Forget(identityID)
	return nil
}

func (s *NotificationService) DeleteAll(ctx context.Context, identityID int64) (int64, error) {
	deleted, err := s.repo.DeleteAll(ctx, identityID)
	if err != nil {
		return 0, err
	}
	s.history.Forget(identityID)
	return deleted, nil
}

// ========== Settings ==========

func (s *NotificationService) GetSettings(ctx context.Context, identityID int64) (notification.Settings, error) {
	return s.settingsRepo.Get(ctx, identityID)
}

func (s *NotificationService) UpdateSettings(ctx context.Context, identityID int64, req *notification.UpdateSettingsRequest) (notification.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx, identityID)
	if err != nil {
		return notification.Settings{}, err
	}

	req.Apply(&settings)

	if err := s.settingsRepo.Save(ctx, identityID, settings); err != nil {
		return notification.Settings{}, err
	}
	return settings, nil
}
