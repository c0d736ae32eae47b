// internal/service/auth/auth.go
package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"acadetrack-service/internal/domain/auth"
	xerrors "acadetrack-service/internal/pkg/errors"
	"acadetrack-service/internal/pkg/jwt"
	"acadetrack-service/internal/pkg/session"
	"acadetrack-service/internal/repository/postgres"
	ws "acadetrack-service/internal/websocket"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	lockAfterAttempts = 5
	lockDuration      = 30 * time.Minute
	rememberMeTTL     = 30 * 24 * time.Hour
)

type AuthService struct {
	authRepo       *postgres.AuthRepository
	jwtManager     *jwt.Manager
	sessionManager *session.Manager
	rateLimiter    *session.RateLimiter
	hub            *ws.Hub
	cache          *redis.Client
	logger         *zap.Logger
}

func NewAuthService(
	authRepo *postgres.AuthRepository,
	jwtManager *jwt.Manager,
	sessionManager *session.Manager,
	rateLimiter *session.RateLimiter,
	hub *ws.Hub,
	cache *redis.Client,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		authRepo:       authRepo,
		jwtManager:     jwtManager,
		sessionManager: sessionManager,
		rateLimiter:    rateLimiter,
		hub:            hub,
		cache:          cache,
		logger:         logger,
	}
}

// ========== Registration ==========

// Signup creates a new student account and logs it in.
func (s *AuthService) Signup(ctx context.Context, req *auth.SignupRequest) (*auth.LoginResponse, error) {
	// Validation happens before any storage or network interaction.
	if err := req.Validate(); err != nil {
		return nil, err
	}
	email := auth.NormalizeEmail(req.Email)

	exists, err := s.authRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, xerrors.ErrDuplicateEntry
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity := &auth.Identity{
		Email:  sql.NullString{String: email, Valid: true},
		Status: "pending_verification",
	}
	if err := s.authRepo.CreateIdentity(ctx, identity); err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	provider := &auth.Provider{
		IdentityID:   identity.ID,
		Provider:     "local",
		PasswordHash: sql.NullString{String: string(hashedPassword), Valid: true},
		IsPrimary:    true,
	}
	if err := s.authRepo.CreateProvider(ctx, provider); err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	profile := &auth.StudentProfile{
		IdentityID: identity.ID,
		FirstName:  sql.NullString{String: req.FirstName, Valid: true},
		LastName:   sql.NullString{String: req.LastName, Valid: true},
		University: sql.NullString{String: req.University, Valid: true},
		Semester:   sql.NullString{String: req.Semester, Valid: true},
	}
	if err := s.authRepo.CreateStudentProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := s.authRepo.AssignRoleByName(ctx, identity.ID, "student"); err != nil {
		// log only
		s.logger.Error("failed to assign student role", zap.Error(err))
	}

	// Auto-login after registration
	return s.loginWithIdentity(ctx, identity, "local", req.Device, req.IPAddress, req.UserAgent, false)
}

// IssueEmailVerification creates a fresh email verification token.
// The token is handed back through the API; there is no mail delivery
// in this service.
func (s *AuthService) IssueEmailVerification(ctx context.Context, identityID int64) (string, error) {
	identity, err := s.authRepo.FindIdentityByID(ctx, identityID)
	if err != nil {
		return "", xerrors.ErrNotFound
	}
	if identity.EmailVerified {
		return "", fmt.Errorf("email already verified")
	}

	token := generateToken()
	vToken := &auth.VerificationToken{
		IdentityID: identityID,
		TokenType:  "email_verify",
		Token:      token,
		ExpiresAt:  time.Now().Add(24 * time.Hour),
	}
	if err := s.authRepo.CreateVerificationToken(ctx, vToken); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// VerifyEmail verifies a student email using a token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	vToken, err := s.authRepo.FindVerificationToken(ctx, "email_verify", token)
	if err != nil {
		return xerrors.ErrTokenExpired
	}

	if err := s.authRepo.MarkEmailVerified(ctx, vToken.IdentityID); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	if err := s.authRepo.MarkTokenAsUsed(ctx, vToken.ID); err != nil {
		s.logger.Error("failed to mark token as used", zap.Error(err))
	}
	return nil
}

func generateToken() string {
	tokenBytes := make([]byte, 32)
	rand.Read(tokenBytes)
	return base64.URLEncoding.EncodeToString(tokenBytes)
}

// ========== Login ==========

// Login authenticates a student with email/password
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	email := auth.NormalizeEmail(req.Email)

	allowed, remaining, err := s.rateLimiter.CheckLoginAttempt(ctx, req.IPAddress, email)
	if err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}
	if !allowed {
		return nil, xerrors.ErrRateLimited
	}

	identity, err := s.authRepo.FindIdentityByEmail(ctx, email)
	if err != nil {
		return nil, xerrors.ErrBadCredentials
	}

	if identity.Status == "inactive" || identity.Status == "suspended" {
		return nil, xerrors.ErrAccountInactive
	}
	if identity.LockedUntil.Valid && identity.LockedUntil.Time.After(time.Now()) {
		return nil, xerrors.ErrAccountLocked
	}

	provider, err := s.authRepo.FindProviderByIdentityAndType(ctx, identity.ID, "local")
	if err != nil {
		return nil, xerrors.ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(provider.PasswordHash.String), []byte(req.Password)); err != nil {
		if err := s.authRepo.IncrementFailedLoginAttempts(ctx, identity.ID, lockAfterAttempts, lockDuration); err != nil {
			s.logger.Error("failed to record login failure", zap.Error(err))
		}
		s.logger.Info("login rejected",
			zap.Int64("identity_id", identity.ID),
			zap.Int64("attempts_remaining", remaining))
		return nil, xerrors.ErrBadCredentials
	}

	if err := s.authRepo.UpdateIdentityLastLogin(ctx, identity.ID); err != nil {
		s.logger.Error("failed to update last login", zap.Error(err))
	}
	s.rateLimiter.ResetLoginAttempts(ctx, req.IPAddress, email)

	return s.loginWithIdentity(ctx, identity, "local", req.Device, req.IPAddress, req.UserAgent, req.RememberMe)
}

// SocialLogin consumes an external provider assertion and finds or
// creates the matching account.
func (s *AuthService) SocialLogin(ctx context.Context, req *auth.SocialLoginRequest) (*auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	email := auth.NormalizeEmail(req.Email)

	identity, err := s.authRepo.FindIdentityByEmail(ctx, email)
	if err != nil {
		identity, err = s.createSocialIdentity(ctx, req, email)
		if err != nil {
			return nil, err
		}
	} else {
		if identity.Status == "inactive" || identity.Status == "suspended" {
			return nil, xerrors.ErrAccountInactive
		}
		// Link the provider on first social login for an existing account.
		if _, err := s.authRepo.FindProviderByIdentityAndType(ctx, identity.ID, req.Provider); err != nil {
			provider := &auth.Provider{
				IdentityID:     identity.ID,
				Provider:       req.Provider,
				ProviderUserID: sql.NullString{String: req.ProviderID, Valid: true},
				ProviderEmail:  sql.NullString{String: email, Valid: true},
			}
			if err := s.authRepo.CreateProvider(ctx, provider); err != nil {
				return nil, fmt.Errorf("failed to link provider: %w", err)
			}
		}
	}

	if err := s.authRepo.UpdateIdentityLastLogin(ctx, identity.ID); err != nil {
		s.logger.Error("failed to update last login", zap.Error(err))
	}

	return s.loginWithIdentity(ctx, identity, req.Provider, req.Device, req.IPAddress, req.UserAgent, false)
}

func (s *AuthService) createSocialIdentity(ctx context.Context, req *auth.SocialLoginRequest, email string) (*auth.Identity, error) {
	identity := &auth.Identity{
		Email:           sql.NullString{String: email, Valid: true},
		EmailVerified:   true, // the external provider already verified it
		EmailVerifiedAt: sql.NullTime{Time: time.Now(), Valid: true},
		Status:          "active",
	}
	if err := s.authRepo.CreateIdentity(ctx, identity); err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	provider := &auth.Provider{
		IdentityID:     identity.ID,
		Provider:       req.Provider,
		ProviderUserID: sql.NullString{String: req.ProviderID, Valid: true},
		ProviderEmail:  sql.NullString{String: email, Valid: true},
		IsPrimary:      true,
	}
	if err := s.authRepo.CreateProvider(ctx, provider); err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	profile := &auth.StudentProfile{
		IdentityID: identity.ID,
		FirstName:  sql.NullString{String: req.FirstName, Valid: req.FirstName != ""},
		LastName:   sql.NullString{String: req.LastName, Valid: req.LastName != ""},
		AvatarURL:  sql.NullString{String: req.AvatarURL, Valid: req.AvatarURL != ""},
	}
	if err := s.authRepo.CreateStudentProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := s.authRepo.AssignRoleByName(ctx, identity.ID, "student"); err != nil {
		s.logger.Error("failed to assign student role", zap.Error(err))
	}
	return identity, nil
}

// loginWithIdentity creates the session and generates tokens.
func (s *AuthService) loginWithIdentity(ctx context.Context, identity *auth.Identity, provider, device, ipAddress, userAgent string, rememberMe bool) (*auth.LoginResponse, error) {
	roles, permissions, err := s.getRolesAndPermissions(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	accessToken, accessJTI, err := s.jwtManager.Generator.GenerateAccessToken(identity.ID, roles, permissions, device)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshJTI, err := s.jwtManager.Generator.GenerateRefreshToken(identity.ID, device)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	sessionTTL := s.jwtManager.Generator.RefreshTtl
	if rememberMe {
		sessionTTL = rememberMeTTL
	}
	expiresAt := time.Now().Add(s.jwtManager.Generator.Ttl)
	sessionExpiresAt := time.Now().Add(sessionTTL)

	dbSession := &auth.Session{
		IdentityID:   identity.ID,
		SessionToken: accessJTI,
		RefreshToken: sql.NullString{String: refreshJTI, Valid: true},
		Provider:     provider,
		IPAddress:    sql.NullString{String: ipAddress, Valid: ipAddress != ""},
		UserAgent:    sql.NullString{String: userAgent, Valid: userAgent != ""},
		DeviceID:     sql.NullString{String: device, Valid: device != ""},
		ExpiresAt:    sessionExpiresAt,
	}
	if err := s.authRepo.CreateSession(ctx, dbSession); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	sessionData := &session.Data{
		JTI:            accessJTI,
		IdentityID:     identity.ID,
		SessionID:      dbSession.ID,
		Email:          identity.Email.String,
		Roles:          roles,
		Permissions:    permissions,
		Device:         device,
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
		Provider:       provider,
		RememberMe:     rememberMe,
		LoginAt:        time.Now(),
		LastActivityAt: time.Now(),
		ExpiresAt:      sessionExpiresAt,
		IsActive:       true,
	}
	if err := s.sessionManager.CreateSession(ctx, sessionData); err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	profile, err := s.authRepo.GetStudentProfile(ctx, identity.ID)
	if err != nil {
		s.logger.Warn("profile missing for identity", zap.Int64("identity_id", identity.ID), zap.Error(err))
		profile = &auth.StudentProfile{IdentityID: identity.ID}
	}

	return &auth.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.jwtManager.Generator.Ttl.Seconds()),
		ExpiresAt:    expiresAt,
		User:         buildUserInfo(identity, profile, roles, permissions),
	}, nil
}

// ========== Token Refresh ==========

// Refresh exchanges a refresh token for a new token pair. Refresh
// tokens are one-shot: the presented token is blacklisted once used.
// A refresh token issued before the identity's last logout is stale
// and must not resurrect the session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, device, ipAddress, userAgent string) (*auth.LoginResponse, error) {
	claims, err := s.jwtManager.Verifier.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	blacklisted, err := s.sessionManager.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check blacklist: %w", err)
	}
	if blacklisted {
		return nil, xerrors.ErrUnauthorized
	}

	stamp, err := s.sessionManager.LogoutStamp(ctx, claims.IdentityID)
	if err != nil {
		s.logger.Warn("failed to read logout stamp", zap.Error(err))
	}
	if !stamp.IsZero() && claims.IssuedAt != nil && !claims.IssuedAt.Time.After(stamp) {
		return nil, xerrors.ErrSessionExpired
	}

	identity, err := s.authRepo.FindIdentityByID(ctx, claims.IdentityID)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}
	if identity.Status == "inactive" || identity.Status == "suspended" {
		return nil, xerrors.ErrAccountInactive
	}

	// Consume the presented token before issuing replacements.
	if claims.ExpiresAt != nil {
		if err := s.sessionManager.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			return nil, fmt.Errorf("failed to consume refresh token: %w", err)
		}
	}

	return s.loginWithIdentity(ctx, identity, "local", device, ipAddress, userAgent, false)
}

// ========== Logout ==========

// Logout invalidates the current session. Repeated logouts for the
// same token succeed.
func (s *AuthService) Logout(ctx context.Context, identityID int64, jti string) error {
	if err := s.sessionManager.InvalidateSession(ctx, identityID, jti); err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}

	if err := s.sessionManager.BlacklistToken(ctx, jti, s.jwtManager.Generator.Ttl); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	if err := s.sessionManager.StampLogout(ctx, identityID, time.Now()); err != nil {
		s.logger.Warn("failed to stamp logout", zap.Error(err))
	}

	s.hub.ForceLogout(identityID, jti, "logged out")
	return nil
}

// LogoutAllSessions invalidates every session for a student.
func (s *AuthService) LogoutAllSessions(ctx context.Context, identityID int64) error {
	if err := s.sessionManager.InvalidateAllUserSessions(ctx, identityID); err != nil {
		return fmt.Errorf("failed to invalidate sessions: %w", err)
	}

	if err := s.sessionManager.StampLogout(ctx, identityID, time.Now()); err != nil {
		s.logger.Warn("failed to stamp logout", zap.Error(err))
	}

	s.hub.ForceLogout(identityID, "", "all sessions logged out")
	return nil
}

// ========== Password Management ==========

// ChangePassword changes a password given the current one.
func (s *AuthService) ChangePassword(ctx context.Context, identityID int64, req *auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	provider, err := s.authRepo.FindProviderByIdentityAndType(ctx, identityID, "local")
	if err != nil {
		return xerrors.ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(provider.PasswordHash.String), []byte(req.CurrentPassword)); err != nil {
		return xerrors.ErrBadCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.authRepo.UpdateProviderPassword(ctx, provider.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Every other device must log in again.
	return s.LogoutAllSessions(ctx, identityID)
}

// ForgotPassword initiates a password reset and returns the reset
// token. An unknown email returns an empty token without error so the
// endpoint does not reveal which addresses exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := auth.ValidateEmail(email); err != nil {
		return "", err
	}
	email = auth.NormalizeEmail(email)

	allowed, err := s.rateLimiter.CheckPasswordResetAttempt(ctx, email)
	if err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}
	if !allowed {
		return "", xerrors.ErrRateLimited
	}

	identity, err := s.authRepo.FindIdentityByEmail(ctx, email)
	if err != nil {
		return "", nil
	}

	resetToken := generateToken()
	verificationToken := &auth.VerificationToken{
		IdentityID: identity.ID,
		TokenType:  "password_reset",
		Token:      resetToken,
		ExpiresAt:  time.Now().Add(1 * time.Hour),
	}
	if err := s.authRepo.CreateVerificationToken(ctx, verificationToken); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	cacheKey := fmt.Sprintf("password_reset:%d", identity.ID)
	if err := s.cache.Set(ctx, cacheKey, resetToken, 1*time.Hour).Err(); err != nil {
		s.logger.Error("failed to cache reset token", zap.Error(err))
	}

	return resetToken, nil
}

// ResetPassword completes a reset using a token.
func (s *AuthService) ResetPassword(ctx context.Context, req *auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	vToken, err := s.authRepo.FindVerificationToken(ctx, "password_reset", req.Token)
	if err != nil {
		return xerrors.ErrTokenExpired
	}

	provider, err := s.authRepo.FindProviderByIdentityAndType(ctx, vToken.IdentityID, "local")
	if err != nil {
		return xerrors.ErrNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.authRepo.UpdateProviderPassword(ctx, provider.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.authRepo.MarkTokenAsUsed(ctx, vToken.ID); err != nil {
		s.logger.Error("failed to mark token as used", zap.Error(err))
	}

	s.cache.Del(ctx, fmt.Sprintf("password_reset:%d", vToken.IdentityID))

	return s.LogoutAllSessions(ctx, vToken.IdentityID)
}

// ========== Profile ==========

// GetMe returns the authenticated student's account summary.
func (s *AuthService) GetMe(ctx context.Context, identityID int64) (*auth.UserInfo, error) {
	identity, err := s.authRepo.FindIdentityByID(ctx, identityID)
	if err != nil {
		return nil, xerrors.ErrNotFound
	}

	profile, err := s.authRepo.GetStudentProfile(ctx, identityID)
	if err != nil {
		profile = &auth.StudentProfile{IdentityID: identityID}
	}

	roles, permissions, err := s.getRolesAndPermissions(ctx, identityID)
	if err != nil {
		return nil, err
	}

	info := buildUserInfo(identity, profile, roles, permissions)
	return &info, nil
}

// GetProfile retrieves a student profile.
func (s *AuthService) GetProfile(ctx context.Context, identityID int64) (*auth.StudentProfile, error) {
	profile, err := s.authRepo.GetStudentProfile(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile updates a student profile. Empty fields keep their
// stored values.
func (s *AuthService) UpdateProfile(ctx context.Context, identityID int64, req *auth.UpdateProfileRequest) (*auth.StudentProfile, error) {
	profile := &auth.StudentProfile{
		FirstName:  sql.NullString{String: req.FirstName, Valid: req.FirstName != ""},
		LastName:   sql.NullString{String: req.LastName, Valid: req.LastName != ""},
		University: sql.NullString{String: req.University, Valid: req.University != ""},
		Semester:   sql.NullString{String: req.Semester, Valid: req.Semester != ""},
		AvatarURL:  sql.NullString{String: req.AvatarURL, Valid: req.AvatarURL != ""},
	}

	if err := s.authRepo.UpdateStudentProfile(ctx, identityID, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.authRepo.GetStudentProfile(ctx, identityID)
}

// ========== Token Validation ==========

// ValidateToken validates an access token against the blacklist and
// the session store.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.Verifier.VerifyAccessToken(token)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	blacklisted, err := s.sessionManager.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check blacklist: %w", err)
	}
	if blacklisted {
		return nil, xerrors.ErrUnauthorized
	}

	if _, err := s.sessionManager.GetSession(ctx, claims.IdentityID, claims.ID); err != nil {
		return nil, xerrors.ErrSessionExpired
	}

	return claims, nil
}

// ========== Session Management ==========

// GetActiveSessions returns all active sessions for a student.
func (s *AuthService) GetActiveSessions(ctx context.Context, identityID int64) ([]*session.Data, error) {
	sessions, err := s.sessionManager.GetUserActiveSessions(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}
	return sessions, nil
}

// RevokeSession revokes one session by its token JTI.
func (s *AuthService) RevokeSession(ctx context.Context, identityID int64, jti string) error {
	if err := s.sessionManager.InvalidateSession(ctx, identityID, jti); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	if err := s.sessionManager.BlacklistToken(ctx, jti, s.jwtManager.Generator.Ttl); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	s.hub.ForceLogout(identityID, jti, "session revoked")
	return nil
}

// ========== Helpers ==========

func (s *AuthService) getRolesAndPermissions(ctx context.Context, identityID int64) ([]string, []string, error) {
	roles, err := s.authRepo.GetUserRoles(ctx, identityID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get roles: %w", err)
	}

	permissions, err := s.authRepo.GetUserPermissions(ctx, identityID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get permissions: %w", err)
	}

	if len(roles) == 0 {
		roles = []string{"student"}
	}
	return roles, permissions, nil
}

func buildUserInfo(identity *auth.Identity, profile *auth.StudentProfile, roles, permissions []string) auth.UserInfo {
	return auth.UserInfo{
		IdentityID:    identity.ID,
		Email:         identity.Email.String,
		FirstName:     profile.FirstName.String,
		LastName:      profile.LastName.String,
		University:    profile.University.String,
		Semester:      profile.Semester.String,
		AvatarURL:     profile.AvatarURL.String,
		EmailVerified: identity.EmailVerified,
		Roles:         roles,
		Permissions:   permissions,
	}
}
