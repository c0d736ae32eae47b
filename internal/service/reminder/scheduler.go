// internal/service/reminder/scheduler.go
package reminder

import (
	"context"
	"time"

	"acadetrack-service/internal/domain/notification"
	"acadetrack-service/internal/domain/student"
	"acadetrack-service/internal/repository/postgres"
	notifsvc "acadetrack-service/internal/service/notification"
	ws "acadetrack-service/internal/websocket"

	"go.uber.org/zap"
)

const registryRetention = 48 * time.Hour

// Scheduler polls every tick and evaluates the reminder generators for
// each student with a live connection. A panicking generator is
// isolated: it loses its turn this tick, the rest still run.
type Scheduler struct {
	hub          *ws.Hub
	studentRepo  *postgres.StudentRepository
	settingsRepo *postgres.SettingsRepository
	notifier     *notifsvc.NotificationService
	registry     *Registry
	generators   []Generator
	tick         time.Duration
	logger       *zap.Logger
}

func NewScheduler(
	hub *ws.Hub,
	studentRepo *postgres.StudentRepository,
	settingsRepo *postgres.SettingsRepository,
	notifier *notifsvc.NotificationService,
	tick time.Duration,
	logger *zap.Logger,
) *Scheduler {
	if tick <= 0 {
		tick = time.Minute
	}
	return &Scheduler{
		hub:          hub,
		studentRepo:  studentRepo,
		settingsRepo: settingsRepo,
		notifier:     notifier,
		registry:     NewRegistry(),
		generators:   Generators(),
		tick:         tick,
		logger:       logger,
	}
}

// Run blocks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	s.logger.Info("reminder scheduler started", zap.Duration("tick", s.tick))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder scheduler stopped")
			return
		case now := <-ticker.C:
			s.Evaluate(ctx, now)
		}
	}
}

// Evaluate runs one scheduler pass for every connected student.
func (s *Scheduler) Evaluate(ctx context.Context, now time.Time) {
	for _, identityID := range s.hub.ConnectedIdentityIDs() {
		s.EvaluateFor(ctx, identityID, now)
	}
	s.registry.Sweep(registryRetention, now)
}

// EvaluateFor runs every enabled generator for one student.
func (s *Scheduler) EvaluateFor(ctx context.Context, identityID int64, now time.Time) {
	rec, err := s.studentRepo.LoadRecord(ctx, identityID)
	if err != nil {
		s.logger.Warn("failed to load record for reminders",
			zap.Int64("identity_id", identityID), zap.Error(err))
		return
	}

	settings, err := s.settingsRepo.Get(ctx, identityID)
	if err != nil {
		s.logger.Warn("failed to load notification settings",
			zap.Int64("identity_id", identityID), zap.Error(err))
		return
	}

	for _, gen := range s.generators {
		if !gen.Enabled(settings) {
			continue
		}
		s.runGenerator(ctx, gen, identityID, now, rec, settings)
	}
}

func (s *Scheduler) runGenerator(ctx context.Context, gen Generator, identityID int64, now time.Time, rec *student.Record, settings notification.Settings) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("reminder generator panicked",
				zap.String("generator", gen.Name),
				zap.Int64("identity_id", identityID),
				zap.Any("panic", r))
		}
	}()

	for _, candidate := range gen.Evaluate(now, rec, settings) {
		if !s.registry.FireOnce(identityID, candidate.Key, now) {
			continue
		}
		if _, err := s.notifier.Notify(ctx, identityID,
			candidate.Category, candidate.Priority,
			candidate.Title, candidate.Message, candidate.Icon); err != nil {
			s.logger.Error("failed to deliver reminder",
				zap.String("generator", gen.Name),
				zap.String("key", candidate.Key),
				zap.Error(err))
		}
	}
}
