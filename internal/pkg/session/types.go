// internal/pkg/session/types.go
package session

import "time"

// Data is the cached view of a live session. Redis is the source of
// truth for liveness; the Postgres session row is the durable audit
// record and fallback.
type Data struct {
	JTI            string    `json:"jti"`
	IdentityID     int64     `json:"identity_id"`
	SessionID      int64     `json:"session_id"` // DB session ID
	Email          string    `json:"email"`
	Roles          []string  `json:"roles"`
	Permissions    []string  `json:"permissions"`
	Device         string    `json:"device,omitempty"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`
	Provider       string    `json:"provider"` // local, google, github
	RememberMe     bool      `json:"remember_me"`
	LoginAt        time.Time `json:"login_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	IsActive       bool      `json:"is_active"`
}
