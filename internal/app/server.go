// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"acadetrack-service/internal/config"
	"acadetrack-service/internal/db"
	authHandler "acadetrack-service/internal/handlers/auth"
	notifyH "acadetrack-service/internal/handlers/notification"
	studentHandler "acadetrack-service/internal/handlers/student"
	wsHandler "acadetrack-service/internal/handlers/websocket"
	"acadetrack-service/internal/jobs"
	"acadetrack-service/internal/middleware"
	"acadetrack-service/internal/pkg/jwt"
	"acadetrack-service/internal/pkg/session"
	"acadetrack-service/internal/repository/postgres"
	authUsecase "acadetrack-service/internal/service/auth"
	notifyUsecase "acadetrack-service/internal/service/notification"
	"acadetrack-service/internal/service/reminder"
	studentUsecase "acadetrack-service/internal/service/student"
	"acadetrack-service/internal/websocket"
	wsHandlers "acadetrack-service/internal/websocket/handler"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg         config.AppConfig
	engine      *gin.Engine
	logger      *zap.Logger
	authService *authUsecase.AuthService
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start(ctx context.Context) error {
	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pool.Close()

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       s.cfg.RedisDB,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()
	log.Println("[REDIS] connected")

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- JWT Manager -----
	jwtManager, err := jwt.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT manager: %w", err)
	}

	// ----- Repositories -----
	authRepo := postgres.NewAuthRepository(pool)
	studentRepo := postgres.NewStudentRepository(pool, logger)
	notifyRepo := postgres.NewNotificationRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool, logger)

	// ----- Session Manager & Rate Limiter -----
	sessionManager := session.NewManager(redisClient, authRepo, logger)
	rateLimiter := session.NewRateLimiter(redisClient)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(jwtManager.Verifier, sessionManager)
	go hub.Run(ctx)

	// ----- Services -----
	authService := authUsecase.NewAuthService(
		authRepo,
		jwtManager,
		sessionManager,
		rateLimiter,
		hub,
		redisClient,
		logger,
	)
	s.authService = authService

	studentService := studentUsecase.NewStudentService(studentRepo, logger)
	notifService := notifyUsecase.NewNotificationService(notifyRepo, settingsRepo, hub, logger)
	hub.RegisterHandler(wsHandlers.NewNotificationHandler(notifService))

	// ----- Reminder Scheduler -----
	scheduler := reminder.NewScheduler(hub, studentRepo, settingsRepo, notifService, s.cfg.ReminderTick, logger)
	go scheduler.Run(ctx)

	// ----- Background Jobs -----
	runner := jobs.NewRunner(notifyRepo, authRepo, logger)
	if err := runner.Register(s.cfg.PurgeCronSpec, s.cfg.SessionSweepSpec); err != nil {
		return fmt.Errorf("failed to register background jobs: %w", err)
	}
	runner.Start()
	defer runner.Stop()

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authService, logger)
	studentHandlerInst := studentHandler.NewStudentHandler(studentService, logger)
	notifHandlerInst := notifyH.NewNotificationHandler(notifService, logger)
	wsHandlerInst := wsHandler.NewWebSocketHandler(hub, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(authService)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:    authHandlerInst,
		StudentHandler: studentHandlerInst,
		NotifHandler:   notifHandlerInst,
		WSHandler:      wsHandlerInst,
		AuthMiddleware: authMiddleware,
	}
	SetupRouter(s.engine, logger, handlers)

	logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}
