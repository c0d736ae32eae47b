// internal/domain/auth/dto.go
package auth

import (
	"strings"
	"time"
	"unicode"

	xerrors "acadetrack-service/internal/pkg/errors"
)

const MinPasswordLength = 8

// SignupRequest for student registration
type SignupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	University string `json:"university"`
	Semester   string `json:"semester"`
	Device     string `json:"device"`
	IPAddress  string `json:"-"`
	UserAgent  string `json:"-"`
}

// LoginRequest for email/password login
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
	Device     string `json:"device"`
	IPAddress  string `json:"-"`
	UserAgent  string `json:"-"`
}

// SocialLoginRequest carries the identity assertion returned by an
// external OAuth provider. The handshake itself happens outside this
// service; we only consume its result.
type SocialLoginRequest struct {
	Provider   string `json:"provider"` // google, github
	ProviderID string `json:"provider_id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	AvatarURL  string `json:"avatar_url"`
	Device     string `json:"device"`
	IPAddress  string `json:"-"`
	UserAgent  string `json:"-"`
}

// LoginResponse successful login/signup/refresh response
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         UserInfo  `json:"user"`
}

// UserInfo minimal user information returned with tokens
type UserInfo struct {
	IdentityID    int64    `json:"identity_id"`
	Email         string   `json:"email"`
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	University    string   `json:"university"`
	Semester      string   `json:"semester"`
	AvatarURL     string   `json:"avatar_url,omitempty"`
	EmailVerified bool     `json:"email_verified"`
	Roles         []string `json:"roles"`
	Permissions   []string `json:"permissions"`
}

// ChangePasswordRequest for password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ForgotPasswordRequest for password reset initiation
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest for completing password reset
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// UpdateProfileRequest for profile updates
type UpdateProfileRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	University string `json:"university"`
	Semester   string `json:"semester"`
	AvatarURL  string `json:"avatar_url"`
}

// ValidationError carries a field-specific validation message.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return xerrors.ErrInvalidInput }

// ValidateEmail rejects addresses with no local part, no '@' or no
// domain segment containing a dot. Checked before any storage or
// network interaction.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return &ValidationError{Field: "email", Message: "please enter a valid email address"}
	}
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return &ValidationError{Field: "email", Message: "please enter a valid email address"}
	}
	if strings.ContainsAny(email, " \t") {
		return &ValidationError{Field: "email", Message: "please enter a valid email address"}
	}
	return nil
}

// ValidatePassword enforces the minimum length and character classes.
func ValidatePassword(password string) error {
	if password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: "password must be at least 8 characters long"}
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return &ValidationError{Field: "password", Message: "password must contain uppercase, lowercase and numeric characters"}
	}
	return nil
}

// Validate checks the signup payload locally, before any repository call.
func (r *SignupRequest) Validate() error {
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if err := ValidatePassword(r.Password); err != nil {
		return err
	}
	if strings.TrimSpace(r.FirstName) == "" {
		return &ValidationError{Field: "first_name", Message: "first name is required"}
	}
	if strings.TrimSpace(r.LastName) == "" {
		return &ValidationError{Field: "last_name", Message: "last name is required"}
	}
	if strings.TrimSpace(r.University) == "" {
		return &ValidationError{Field: "university", Message: "university is required"}
	}
	if strings.TrimSpace(r.Semester) == "" {
		return &ValidationError{Field: "semester", Message: "semester is required"}
	}
	return nil
}

func (r *LoginRequest) Validate() error {
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

func (r *SocialLoginRequest) Validate() error {
	switch r.Provider {
	case "google", "github":
	default:
		return &ValidationError{Field: "provider", Message: "unsupported provider"}
	}
	if r.ProviderID == "" {
		return &ValidationError{Field: "provider_id", Message: "provider user id is required"}
	}
	return ValidateEmail(r.Email)
}

func (r *ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" {
		return &ValidationError{Field: "current_password", Message: "current password is required"}
	}
	return ValidatePassword(r.NewPassword)
}

func (r *ResetPasswordRequest) Validate() error {
	if r.Token == "" {
		return &ValidationError{Field: "token", Message: "token is required"}
	}
	return ValidatePassword(r.NewPassword)
}

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
