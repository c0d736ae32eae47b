// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"acadetrack-service/internal/domain/auth"
	"acadetrack-service/internal/middleware"
	"acadetrack-service/internal/pkg/response"
	authService "acadetrack-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *authService.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(svc *authService.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: svc,
		logger:      logger,
	}
}

// ========== Registration ==========

// Signup handles student registration (public endpoint)
func (h *AuthHandler) Signup(c *gin.Context) {
	var req auth.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	loginResp, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		h.logger.Warn("signup failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "signup successful", loginResp)
}

// ========== Login ==========

// Login handles email/password login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	loginResp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.logger.Warn("login failed",
			zap.String("email", req.Email),
			zap.String("ip", req.IPAddress),
			zap.Error(err),
		)
		response.FromError(c, err)
		return
	}

	h.logger.Info("student logged in",
		zap.Int64("identity_id", loginResp.User.IdentityID),
		zap.String("email", loginResp.User.Email),
	)

	response.Success(c, http.StatusOK, "login successful", loginResp)
}

// SocialLogin consumes an external provider assertion
func (h *AuthHandler) SocialLogin(c *gin.Context) {
	var req auth.SocialLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	loginResp, err := h.authService.SocialLogin(c.Request.Context(), &req)
	if err != nil {
		h.logger.Warn("social login failed",
			zap.String("provider", req.Provider),
			zap.Error(err),
		)
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", loginResp)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
		Device       string `json:"device"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if req.RefreshToken == "" {
		response.Error(c, http.StatusBadRequest, "refresh token is required", nil)
		return
	}

	loginResp, err := h.authService.Refresh(c.Request.Context(),
		req.RefreshToken, req.Device, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "token refreshed", loginResp)
}

// ========== Logout ==========

// Logout handles logout of the current session (requires auth)
func (h *AuthHandler) Logout(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)
	jti := middleware.MustGetJTI(c)

	if err := h.authService.Logout(c.Request.Context(), identityID, jti); err != nil {
		h.logger.Error("logout failed",
			zap.Int64("identity_id", identityID),
			zap.Error(err),
		)
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "logout successful", nil)
}

// LogoutAll logs out every session (requires auth)
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	if err := h.authService.LogoutAllSessions(c.Request.Context(), identityID); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "all sessions logged out", nil)
}

// ========== Password Management ==========

// ChangePassword handles password change (requires auth)
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	var req auth.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), identityID, &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "password changed successfully", nil)
}

// ForgotPassword starts a password reset. The reset token is returned
// in the response body; delivery is the client's concern.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req auth.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	token, err := h.authService.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		response.FromError(c, err)
		return
	}

	data := gin.H{}
	if token != "" {
		data["reset_token"] = token
	}
	response.Success(c, http.StatusOK, "if the email exists, a reset token has been issued", data)
}

// ResetPassword completes a password reset
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req auth.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "password reset successfully", nil)
}

// ========== Email Verification ==========

// RequestEmailVerification issues a fresh verification token (requires auth)
func (h *AuthHandler) RequestEmailVerification(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	token, err := h.authService.IssueEmailVerification(c.Request.Context(), identityID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "verification token issued", gin.H{
		"verification_token": token,
	})
}

// VerifyEmail verifies an email address using a token (public)
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		var req struct {
			Token string `json:"token"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.Token
		}
	}
	if token == "" {
		response.Error(c, http.StatusBadRequest, "token is required", nil)
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), token); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "email verified", nil)
}

// ========== Profile ==========

// Me returns the authenticated student's account summary
func (h *AuthHandler) Me(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	info, err := h.authService.GetMe(c.Request.Context(), identityID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", info)
}

// GetProfile returns the student profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	profile, err := h.authService.GetProfile(c.Request.Context(), identityID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", profile)
}

// UpdateProfile updates the student profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	var req auth.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	profile, err := h.authService.UpdateProfile(c.Request.Context(), identityID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "profile updated", profile)
}

// ========== Sessions ==========

// GetSessions lists active sessions for the student
func (h *AuthHandler) GetSessions(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	sessions, err := h.authService.GetActiveSessions(c.Request.Context(), identityID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// RevokeSession revokes one session by its token id
func (h *AuthHandler) RevokeSession(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)
	jti := c.Param("id")
	if jti == "" {
		response.Error(c, http.StatusBadRequest, "session id is required", nil)
		return
	}

	if err := h.authService.RevokeSession(c.Request.Context(), identityID, jti); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "session revoked", nil)
}
