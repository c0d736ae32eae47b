// internal/repository/postgres/settings_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"acadetrack-service/internal/domain/notification"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// SettingsRepository stores per-student notification settings as a
// jsonb document. Missing or corrupt rows read as the defaults.
type SettingsRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSettingsRepository(db *pgxpool.Pool, logger *zap.Logger) *SettingsRepository {
	return &SettingsRepository{db: db, logger: logger}
}

func (r *SettingsRepository) Get(ctx context.Context, identityID int64) (notification.Settings, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT settings FROM notification_settings WHERE identity_id = $1`,
		identityID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return notification.DefaultSettings(), nil
	}
	if err != nil {
		return notification.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	var s notification.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		r.logger.Warn("corrupt notification settings, using defaults",
			zap.Int64("identity_id", identityID),
			zap.Error(err))
		return notification.DefaultSettings(), nil
	}
	s.Normalize()
	return s, nil
}

func (r *SettingsRepository) Save(ctx context.Context, identityID int64, s notification.Settings) error {
	s.Normalize()
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	query := `
		INSERT INTO notification_settings (identity_id, settings, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (identity_id)
		DO UPDATE SET settings = EXCLUDED.settings, updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, identityID, raw); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
