// internal/jobs/jobs.go
package jobs

import (
	"context"
	"time"

	"acadetrack-service/internal/domain/notification"
	"acadetrack-service/internal/repository/postgres"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner owns the background maintenance schedule: the nightly
// notification purge and the session sweep.
type Runner struct {
	cron             *cron.Cron
	notificationRepo *postgres.NotificationRepository
	authRepo         *postgres.AuthRepository
	logger           *zap.Logger
}

func NewRunner(notificationRepo *postgres.NotificationRepository, authRepo *postgres.AuthRepository, logger *zap.Logger) *Runner {
	return &Runner{
		cron:             cron.New(cron.WithSeconds()),
		notificationRepo: notificationRepo,
		authRepo:         authRepo,
		logger:           logger,
	}
}

// Register wires the maintenance jobs onto their cron specs.
func (r *Runner) Register(purgeSpec, sessionSweepSpec string) error {
	if _, err := r.cron.AddFunc(purgeSpec, r.purgeNotifications); err != nil {
		return err
	}
	if _, err := r.cron.AddFunc(sessionSweepSpec, r.sweepSessions); err != nil {
		return err
	}
	return nil
}

func (r *Runner) Start() {
	r.cron.Start()
	r.logger.Info("background jobs started")
}

// Stop waits for running jobs to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("background jobs stopped")
}

// purgeNotifications drops notifications past the retention window.
func (r *Runner) purgeNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	removed, err := r.notificationRepo.PurgeOlderThan(ctx, notification.RetentionDays)
	if err != nil {
		r.logger.Error("notification purge failed", zap.Error(err))
		return
	}
	r.logger.Info("notification purge complete", zap.Int64("removed", removed))
}

// sweepSessions expires stale active sessions in the audit table.
func (r *Runner) sweepSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	expired, err := r.authRepo.ExpireStaleSessions(ctx)
	if err != nil {
		r.logger.Error("session sweep failed", zap.Error(err))
		return
	}
	r.logger.Info("session sweep complete", zap.Int64("expired", expired))
}
