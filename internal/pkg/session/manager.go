// internal/pkg/session/manager.go
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"acadetrack-service/internal/repository/postgres"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Manager struct {
	client   *redis.Client
	authRepo *postgres.AuthRepository
	logger   *zap.Logger
}

func NewManager(client *redis.Client, authRepo *postgres.AuthRepository, logger *zap.Logger) *Manager {
	return &Manager{
		client:   client,
		authRepo: authRepo,
		logger:   logger,
	}
}

// CreateSession stores a new session in Redis and stamps DB activity.
func (m *Manager) CreateSession(ctx context.Context, data *Data) error {
	key := m.sessionKey(data.IdentityID, data.JTI)

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(data.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	if err := m.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in redis: %w", err)
	}

	if data.SessionID > 0 {
		if err := m.authRepo.UpdateSessionActivity(ctx, data.SessionID); err != nil {
			// Redis is the source of truth, the DB row is audit only.
			m.logger.Warn("failed to update db session activity", zap.Error(err))
		}
	}

	return nil
}

// GetSession retrieves a session from Redis with DB fallback.
func (m *Manager) GetSession(ctx context.Context, identityID int64, jti string) (*Data, error) {
	key := m.sessionKey(identityID, jti)

	raw, err := m.client.Get(ctx, key).Bytes()
	if err == nil {
		var data Data
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session: %w", err)
		}

		data.LastActivityAt = time.Now()
		go m.touch(context.Background(), identityID, jti)

		return &data, nil
	}

	if err != redis.Nil {
		m.logger.Warn("redis error, falling back to db", zap.Error(err))
	}

	dbSession, dbErr := m.authRepo.FindSessionByToken(ctx, jti)
	if dbErr != nil {
		return nil, fmt.Errorf("session not found: %w", dbErr)
	}
	if dbSession.IdentityID != identityID {
		return nil, fmt.Errorf("session identity mismatch")
	}
	if dbSession.Status != "active" || dbSession.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("session not active")
	}

	data := &Data{
		JTI:            jti,
		IdentityID:     dbSession.IdentityID,
		SessionID:      dbSession.ID,
		Device:         stringFromNull(dbSession.DeviceID),
		IPAddress:      stringFromNull(dbSession.IPAddress),
		UserAgent:      stringFromNull(dbSession.UserAgent),
		Provider:       dbSession.Provider,
		LoginAt:        dbSession.LoginAt,
		LastActivityAt: dbSession.LastActivityAt,
		ExpiresAt:      dbSession.ExpiresAt,
		IsActive:       true,
	}

	identity, err := m.authRepo.FindIdentityByID(ctx, identityID)
	if err == nil && identity.Email.Valid {
		data.Email = identity.Email.String
	}

	go m.restoreToRedis(context.Background(), data)

	return data, nil
}

func (m *Manager) touch(ctx context.Context, identityID int64, jti string) {
	key := m.sessionKey(identityID, jti)

	raw, err := m.client.Get(ctx, key).Bytes()
	if err != nil {
		return // session gone or expired
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}
	data.LastActivityAt = time.Now()

	updated, err := json.Marshal(&data)
	if err != nil {
		return
	}
	if ttl := time.Until(data.ExpiresAt); ttl > 0 {
		m.client.Set(ctx, key, updated, ttl)
	}
}

// InvalidateSession removes a session from Redis and revokes the DB row.
// Missing keys and rows are fine: logout is idempotent.
func (m *Manager) InvalidateSession(ctx context.Context, identityID int64, jti string) error {
	key := m.sessionKey(identityID, jti)

	if err := m.client.Del(ctx, key).Err(); err != nil {
		m.logger.Warn("failed to delete session from redis", zap.Error(err))
	}

	dbSession, err := m.authRepo.FindSessionByToken(ctx, jti)
	if err == nil {
		if err := m.authRepo.RevokeSession(ctx, dbSession.ID); err != nil {
			return fmt.Errorf("failed to revoke db session: %w", err)
		}
	}

	return nil
}

// InvalidateAllUserSessions removes every session for a user.
func (m *Manager) InvalidateAllUserSessions(ctx context.Context, identityID int64) error {
	pattern := fmt.Sprintf("session:%d:*", identityID)

	iter := m.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := m.client.Del(ctx, iter.Val()).Err(); err != nil {
			m.logger.Warn("failed to delete session key", zap.String("key", iter.Val()), zap.Error(err))
		}
	}

	if err := m.authRepo.RevokeAllUserSessions(ctx, identityID); err != nil {
		return fmt.Errorf("failed to revoke db sessions: %w", err)
	}

	return iter.Err()
}

// GetUserActiveSessions returns all cached sessions for a user.
func (m *Manager) GetUserActiveSessions(ctx context.Context, identityID int64) ([]*Data, error) {
	pattern := fmt.Sprintf("session:%d:*", identityID)

	var sessions []*Data
	iter := m.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		raw, err := m.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue
		}
		var data Data
		if err := json.Unmarshal(raw, &data); err != nil {
			continue
		}
		sessions = append(sessions, &data)
	}

	return sessions, iter.Err()
}

// IsTokenBlacklisted checks if a token JTI has been revoked.
func (m *Manager) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := m.client.Exists(ctx, m.blacklistKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return exists > 0, nil
}

// BlacklistToken adds a token JTI to the blacklist until it would have
// expired anyway.
func (m *Manager) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return m.client.Set(ctx, m.blacklistKey(jti), "1", ttl).Err()
}

// StampLogout records the moment of logout for an identity. Auth
// operations that started before this stamp are stale: a token refresh
// resolving after logout must not resurrect the session.
func (m *Manager) StampLogout(ctx context.Context, identityID int64, at time.Time) error {
	key := m.logoutStampKey(identityID)
	// Keep the stamp for as long as any refresh token could still live.
	return m.client.Set(ctx, key, strconv.FormatInt(at.UnixNano(), 10), 60*24*time.Hour).Err()
}

// LogoutStamp returns the last logout instant for an identity, or the
// zero time when none is recorded.
func (m *Manager) LogoutStamp(ctx context.Context, identityID int64) (time.Time, error) {
	raw, err := m.client.Get(ctx, m.logoutStampKey(identityID)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, nil // treat corrupt stamp as absent
	}
	return time.Unix(0, nanos), nil
}

func (m *Manager) sessionKey(identityID int64, jti string) string {
	return fmt.Sprintf("session:%d:%s", identityID, jti)
}

func (m *Manager) blacklistKey(jti string) string {
	return fmt.Sprintf("blacklist:%s", jti)
}

func (m *Manager) logoutStampKey(identityID int64) string {
	return fmt.Sprintf("logout_stamp:%d", identityID)
}

func (m *Manager) restoreToRedis(ctx context.Context, data *Data) {
	if err := m.CreateSession(ctx, data); err != nil {
		m.logger.Warn("failed to restore session to redis", zap.Error(err))
	}
}

func stringFromNull(s sql.NullString) string {
	if s.Valid {
		return s.String
	}
	return ""
}
