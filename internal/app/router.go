// internal/app/router.go
package app

import (
	authHandler "acadetrack-service/internal/handlers/auth"
	notifyHandler "acadetrack-service/internal/handlers/notification"
	studentHandler "acadetrack-service/internal/handlers/student"
	wsHandler "acadetrack-service/internal/handlers/websocket"
	"acadetrack-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler    *authHandler.AuthHandler
	StudentHandler *studentHandler.StudentHandler
	NotifHandler   *notifyHandler.NotificationHandler
	WSHandler      *wsHandler.WebSocketHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)
	api.GET("/ws/stats", h.AuthMiddleware.Auth(), h.WSHandler.GetStats)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/signup", h.AuthHandler.Signup)
		authPublic.POST("/login", h.AuthHandler.Login)
		authPublic.POST("/social-login", h.AuthHandler.SocialLogin)
		authPublic.POST("/refresh", h.AuthHandler.Refresh)
		authPublic.POST("/forgot-password", h.AuthHandler.ForgotPassword)
		authPublic.POST("/reset-password", h.AuthHandler.ResetPassword)
		authPublic.GET("/verify-email", h.AuthHandler.VerifyEmail)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.POST("/logout-all", h.AuthHandler.LogoutAll)
		authProtected.PUT("/change-password", h.AuthHandler.ChangePassword)
		authProtected.GET("/me", h.AuthHandler.Me)
		authProtected.GET("/profile", h.AuthHandler.GetProfile)
		authProtected.PUT("/profile", h.AuthHandler.UpdateProfile)
		authProtected.POST("/request-verification", h.AuthHandler.RequestEmailVerification)
		authProtected.GET("/sessions", h.AuthHandler.GetSessions)
		authProtected.DELETE("/sessions/:id", h.AuthHandler.RevokeSession)
	}

	// ==================== Student Record ====================
	student := api.Group("/student")
	student.Use(h.AuthMiddleware.Auth())
	{
		student.GET("/record", h.StudentHandler.GetRecord)
		student.PUT("/record", h.StudentHandler.PatchRecord)

		student.POST("/activities", h.StudentHandler.AddActivity)
		student.PUT("/activities/:id", h.StudentHandler.UpdateActivity)
		student.DELETE("/activities/:id", h.StudentHandler.DeleteActivity)

		student.POST("/goals", h.StudentHandler.AddGoal)
		student.PUT("/goals/:id", h.StudentHandler.UpdateGoal)
		student.DELETE("/goals/:id", h.StudentHandler.DeleteGoal)

		student.POST("/timetable/generate", h.StudentHandler.GenerateTimetable)
		student.PUT("/timetable", h.StudentHandler.SetTimetable)

		student.GET("/summary", h.StudentHandler.Summary)
	}

	// ==================== Notifications ====================
	notifications := api.Group("/notifications")
	notifications.Use(h.AuthMiddleware.Auth())
	{
		notifications.GET("", h.NotifHandler.List)
		notifications.GET("/latest", h.NotifHandler.Latest)
		notifications.GET("/count/unread", h.NotifHandler.UnreadCount)
		notifications.PUT("/:id/read", h.NotifHandler.MarkRead)
		notifications.PUT("/read-all", h.NotifHandler.MarkAllRead)
		notifications.DELETE("/:id", h.NotifHandler.Delete)
		notifications.DELETE("", h.NotifHandler.DeleteAll)
		notifications.GET("/settings", h.NotifHandler.GetSettings)
		notifications.PUT("/settings", h.NotifHandler.UpdateSettings)
	}
}
