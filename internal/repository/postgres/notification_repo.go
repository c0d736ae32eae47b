// internal/repository/postgres/notification_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"acadetrack-service/internal/domain/notification"
	xerrors "acadetrack-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification and evicts the oldest rows beyond the
// per-user history cap in the same transaction.
func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO notifications (id, identity_id, category, priority, title, message, icon, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
	`
	if _, err := tx.Exec(ctx, query,
		n.ID, n.IdentityID, n.Category, n.Priority, n.Title, n.Message, n.Icon, n.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	evict := `
		DELETE FROM notifications
		WHERE identity_id = $1
		AND id NOT IN (
			SELECT id FROM notifications
			WHERE identity_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		)
	`
	if _, err := tx.Exec(ctx, evict, n.IdentityID, notification.HistoryCap); err != nil {
		return fmt.Errorf("failed to evict old notifications: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *NotificationRepository) List(ctx context.Context, identityID int64, filters notification.ListFilters) ([]notification.Notification, int64, error) {
	pageSize := filters.PageSize
	if pageSize <= 0 {
		pageSize = notification.DefaultListLimit
	}
	if pageSize > notification.HistoryCap {
		pageSize = notification.HistoryCap
	}
	page := filters.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	where := "identity_id = $1"
	args := []interface{}{identityID}
	if filters.Category != nil {
		args = append(args, *filters.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filters.IsRead != nil {
		args = append(args, *filters.IsRead)
		where += fmt.Sprintf(" AND is_read = $%d", len(args))
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM notifications WHERE %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	args = append(args, pageSize, offset)
	query := fmt.Sprintf(`
		SELECT id, identity_id, category, priority, title, message, icon, is_read, created_at, read_at
		FROM notifications
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]notification.Notification, 0, pageSize)
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(
			&n.ID, &n.IdentityID, &n.Category, &n.Priority, &n.Title,
			&n.Message, &n.Icon, &n.IsRead, &n.CreatedAt, &n.ReadAt,
		); err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}

// Latest returns the newest notifications for a student, capped at
// limit (default 20).
func (r *NotificationRepository) Latest(ctx context.Context, identityID int64, limit int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = notification.DefaultListLimit
	}
	if limit > notification.HistoryCap {
		limit = notification.HistoryCap
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, identity_id, category, priority, title, message, icon, is_read, created_at, read_at
		FROM notifications
		WHERE identity_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, identityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]notification.Notification, 0, limit)
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(
			&n.ID, &n.IdentityID, &n.Category, &n.Priority, &n.Title,
			&n.Message, &n.Icon, &n.IsRead, &n.CreatedAt, &n.ReadAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) GetByID(ctx context.Context, identityID int64, id string) (*notification.Notification, error) {
	query := `
		SELECT id, identity_id, category, priority, title, message, icon, is_read, created_at, read_at
		FROM notifications
		WHERE identity_id = $1 AND id = $2
	`
	var n notification.Notification
	err := r.db.QueryRow(ctx, query, identityID, id).Scan(
		&n.ID, &n.IdentityID, &n.Category, &n.Priority, &n.Title,
		&n.Message, &n.Icon, &n.IsRead, &n.CreatedAt, &n.ReadAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &n, nil
}

func (r *NotificationRepository) Summary(ctx context.Context, identityID int64) (*notification.Summary, error) {
	var summary notification.Summary
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_read = FALSE),
		       COUNT(*) FILTER (WHERE is_read = TRUE)
		FROM notifications WHERE identity_id = $1
	`, identityID).Scan(&summary.Total, &summary.TotalUnread, &summary.TotalRead)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize notifications: %w", err)
	}
	return &summary, nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, identityID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE identity_id = $1 AND is_read = FALSE`,
		identityID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, identityID int64, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = NOW() WHERE identity_id = $1 AND id = $2 AND is_read = FALSE`,
		identityID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM notifications WHERE identity_id = $1 AND id = $2)`,
			identityID, id,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return xerrors.ErrNotFound
		}
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, identityID int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = NOW() WHERE identity_id = $1 AND is_read = FALSE`,
		identityID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all read: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *NotificationRepository) Delete(ctx context.Context, identityID int64, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM notifications WHERE identity_id = $1 AND id = $2`,
		identityID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteAll(ctx context.Context, identityID int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM notifications WHERE identity_id = $1`,
		identityID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

// PurgeOlderThan removes notifications past the retention window
// across all users. Run by the daily purge job.
func (r *NotificationRepository) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM notifications WHERE created_at < NOW() - make_interval(days => $1)`,
		days,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}
