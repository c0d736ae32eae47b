// internal/repository/postgres/auth_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"acadetrack-service/internal/domain/auth"
	xerrors "acadetrack-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthRepository struct {
	db *pgxpool.Pool
}

func NewAuthRepository(db *pgxpool.Pool) *AuthRepository {
	return &AuthRepository{db: db}
}

// ========== Identities ==========

func (r *AuthRepository) CreateIdentity(ctx context.Context, identity *auth.Identity) error {
	query := `
		INSERT INTO identities (email, email_verified, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, identity.Email, identity.EmailVerified, identity.Status).
		Scan(&identity.ID, &identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}
	return nil
}

func (r *AuthRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM identities WHERE email = $1 AND deleted_at IS NULL)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *AuthRepository) FindIdentityByEmail(ctx context.Context, email string) (*auth.Identity, error) {
	query := `
		SELECT id, email, email_verified, email_verified_at, status, last_login,
		       failed_login_attempts, locked_until, created_at, updated_at
		FROM identities
		WHERE email = $1 AND deleted_at IS NULL
	`
	var identity auth.Identity
	err := r.db.QueryRow(ctx, query, email).Scan(
		&identity.ID, &identity.Email, &identity.EmailVerified, &identity.EmailVerifiedAt,
		&identity.Status, &identity.LastLogin, &identity.FailedLoginAttempts,
		&identity.LockedUntil, &identity.CreatedAt, &identity.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}
	return &identity, nil
}

func (r *AuthRepository) FindIdentityByID(ctx context.Context, id int64) (*auth.Identity, error) {
	query := `
		SELECT id, email, email_verified, email_verified_at, status, last_login,
		       failed_login_attempts, locked_until, created_at, updated_at
		FROM identities
		WHERE id = $1 AND deleted_at IS NULL
	`
	var identity auth.Identity
	err := r.db.QueryRow(ctx, query, id).Scan(
		&identity.ID, &identity.Email, &identity.EmailVerified, &identity.EmailVerifiedAt,
		&identity.Status, &identity.LastLogin, &identity.FailedLoginAttempts,
		&identity.LockedUntil, &identity.CreatedAt, &identity.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}
	return &identity, nil
}

func (r *AuthRepository) UpdateIdentityLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE identities SET last_login = NOW(), failed_login_attempts = 0, locked_until = NULL, updated_at = NOW() WHERE id = $1`,
		id,
	)
	return err
}

func (r *AuthRepository) IncrementFailedLoginAttempts(ctx context.Context, id int64, lockAfter int, lockFor time.Duration) error {
	_, err := r.db.Exec(ctx, `
		UPDATE identities
		SET failed_login_attempts = failed_login_attempts + 1,
		    locked_until = CASE WHEN failed_login_attempts + 1 >= $2 THEN NOW() + $3 ELSE locked_until END,
		    updated_at = NOW()
		WHERE id = $1
	`, id, lockAfter, lockFor)
	return err
}

func (r *AuthRepository) UpdateIdentityStatus(ctx context.Context, id int64, status string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE identities SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	return err
}

func (r *AuthRepository) MarkEmailVerified(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE identities SET email_verified = TRUE, email_verified_at = NOW(), status = 'active', updated_at = NOW() WHERE id = $1`,
		id,
	)
	return err
}

// ========== Providers ==========

func (r *AuthRepository) CreateProvider(ctx context.Context, p *auth.Provider) error {
	query := `
		INSERT INTO auth_providers (identity_id, provider, provider_user_id, provider_email, password_hash, is_primary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		p.IdentityID, p.Provider, p.ProviderUserID, p.ProviderEmail, p.PasswordHash, p.IsPrimary,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

func (r *AuthRepository) FindProviderByIdentityAndType(ctx context.Context, identityID int64, provider string) (*auth.Provider, error) {
	query := `
		SELECT id, identity_id, provider, provider_user_id, provider_email, password_hash, is_primary, created_at, updated_at
		FROM auth_providers
		WHERE identity_id = $1 AND provider = $2
	`
	var p auth.Provider
	err := r.db.QueryRow(ctx, query, identityID, provider).Scan(
		&p.ID, &p.IdentityID, &p.Provider, &p.ProviderUserID, &p.ProviderEmail,
		&p.PasswordHash, &p.IsPrimary, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find provider: %w", err)
	}
	return &p, nil
}

func (r *AuthRepository) UpdateProviderPassword(ctx context.Context, providerID int64, passwordHash string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE auth_providers SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		providerID, passwordHash,
	)
	return err
}

// ========== Profiles ==========

func (r *AuthRepository) CreateStudentProfile(ctx context.Context, p *auth.StudentProfile) error {
	query := `
		INSERT INTO student_profiles (identity_id, first_name, last_name, university, semester, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		p.IdentityID, p.FirstName, p.LastName, p.University, p.Semester, p.AvatarURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *AuthRepository) GetStudentProfile(ctx context.Context, identityID int64) (*auth.StudentProfile, error) {
	query := `
		SELECT id, identity_id, first_name, last_name, university, semester, avatar_url, created_at, updated_at
		FROM student_profiles
		WHERE identity_id = $1
	`
	var p auth.StudentProfile
	err := r.db.QueryRow(ctx, query, identityID).Scan(
		&p.ID, &p.IdentityID, &p.FirstName, &p.LastName, &p.University,
		&p.Semester, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

func (r *AuthRepository) UpdateStudentProfile(ctx context.Context, identityID int64, p *auth.StudentProfile) error {
	query := `
		UPDATE student_profiles
		SET first_name = COALESCE($2, first_name),
		    last_name = COALESCE($3, last_name),
		    university = COALESCE($4, university),
		    semester = COALESCE($5, semester),
		    avatar_url = COALESCE($6, avatar_url),
		    updated_at = NOW()
		WHERE identity_id = $1
	`
	_, err := r.db.Exec(ctx, query,
		identityID, p.FirstName, p.LastName, p.University, p.Semester, p.AvatarURL,
	)
	return err
}

// ========== Sessions ==========

func (r *AuthRepository) CreateSession(ctx context.Context, s *auth.Session) error {
	query := `
		INSERT INTO sessions (identity_id, session_token, refresh_token, provider, ip_address, user_agent, device_id, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'active', $8)
		RETURNING id, login_at, last_activity_at
	`
	err := r.db.QueryRow(ctx, query,
		s.IdentityID, s.SessionToken, s.RefreshToken, s.Provider,
		s.IPAddress, s.UserAgent, s.DeviceID, s.ExpiresAt,
	).Scan(&s.ID, &s.LoginAt, &s.LastActivityAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *AuthRepository) FindSessionByToken(ctx context.Context, token string) (*auth.Session, error) {
	query := `
		SELECT id, identity_id, session_token, refresh_token, provider, ip_address, user_agent,
		       device_id, status, login_at, last_activity_at, expires_at, logout_at
		FROM sessions
		WHERE session_token = $1
	`
	var s auth.Session
	err := r.db.QueryRow(ctx, query, token).Scan(
		&s.ID, &s.IdentityID, &s.SessionToken, &s.RefreshToken, &s.Provider,
		&s.IPAddress, &s.UserAgent, &s.DeviceID, &s.Status,
		&s.LoginAt, &s.LastActivityAt, &s.ExpiresAt, &s.LogoutAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &s, nil
}

func (r *AuthRepository) UpdateSessionActivity(ctx context.Context, sessionID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE sessions SET last_activity_at = NOW() WHERE id = $1`,
		sessionID,
	)
	return err
}

func (r *AuthRepository) RevokeSession(ctx context.Context, sessionID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE sessions SET status = 'revoked', logout_at = NOW() WHERE id = $1`,
		sessionID,
	)
	return err
}

func (r *AuthRepository) RevokeAllUserSessions(ctx context.Context, identityID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE sessions SET status = 'revoked', logout_at = NOW() WHERE identity_id = $1 AND status = 'active'`,
		identityID,
	)
	return err
}

// ExpireStaleSessions marks active sessions past their expiry as
// expired. Run by the daily sweep.
func (r *AuthRepository) ExpireStaleSessions(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE sessions SET status = 'expired' WHERE status = 'active' AND expires_at < NOW()`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ========== Verification tokens ==========

func (r *AuthRepository) CreateVerificationToken(ctx context.Context, t *auth.VerificationToken) error {
	query := `
		INSERT INTO verification_tokens (identity_id, token_type, token, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, t.IdentityID, t.TokenType, t.Token, t.ExpiresAt).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}
	return nil
}

func (r *AuthRepository) FindVerificationToken(ctx context.Context, tokenType, token string) (*auth.VerificationToken, error) {
	query := `
		SELECT id, identity_id, token_type, token, expires_at, used_at, created_at
		FROM verification_tokens
		WHERE token_type = $1 AND token = $2 AND used_at IS NULL AND expires_at > NOW()
	`
	var t auth.VerificationToken
	err := r.db.QueryRow(ctx, query, tokenType, token).Scan(
		&t.ID, &t.IdentityID, &t.TokenType, &t.Token, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find verification token: %w", err)
	}
	return &t, nil
}

func (r *AuthRepository) MarkTokenAsUsed(ctx context.Context, tokenID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE verification_tokens SET used_at = NOW() WHERE id = $1`,
		tokenID,
	)
	return err
}

// ========== Roles & permissions ==========

func (r *AuthRepository) AssignRoleByName(ctx context.Context, identityID int64, roleName string) error {
	query := `
		INSERT INTO identity_roles (identity_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, identityID, roleName)
	return err
}

func (r *AuthRepository) GetUserRoles(ctx context.Context, identityID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ro.name
		FROM identity_roles ir
		JOIN roles ro ON ro.id = ir.role_id
		WHERE ir.identity_id = $1
	`, identityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		roles = append(roles, name)
	}
	return roles, rows.Err()
}

func (r *AuthRepository) GetUserPermissions(ctx context.Context, identityID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT p.name
		FROM identity_roles ir
		JOIN role_permissions rp ON rp.role_id = ir.role_id
		JOIN permissions p ON p.id = rp.permission_id
		WHERE ir.identity_id = $1
	`, identityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get permissions: %w", err)
	}
	defer rows.Close()

	var permissions []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		permissions = append(permissions, name)
	}
	return permissions, rows.Err()
}
