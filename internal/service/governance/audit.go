// Package governance provides audit log access and retention.
package governance

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"clubhouse/internal/domain"
	"clubhouse/internal/service/security"
)

// AuditService exposes the audit log to administrators.
type AuditService struct {
	repo domain.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(repo domain.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// List returns the most recent audit entries, newest first. Admin only.
func (s *AuditService) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if err := security.Check(security.Caller(ctx), security.OpAuditRead, 0); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, limit)
}

// Retention prunes audit entries older than a configured window on a cron
// schedule.
type Retention struct {
	repo   domain.AuditRepository
	window time.Duration
	logger *slog.Logger
	cron   *cron.Cron
}

// NewRetention creates a Retention job. window <= 0 disables pruning.
func NewRetention(repo domain.AuditRepository, window time.Duration, logger *slog.Logger) *Retention {
	return &Retention{repo: repo, window: window, logger: logger}
}

// Start schedules the daily prune. No-op when the window is disabled.
func (r *Retention) Start() error {
	if r.window <= 0 {
		return nil
	}
	r.cron = cron.New()
	if _, err := r.cron.AddFunc("@daily", func() { r.prune(context.Background()) }); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running prune to finish.
func (r *Retention) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}

func (r *Retention) prune(ctx context.Context) {
	cutoff := time.Now().Add(-r.window)
	n, err := r.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		r.logger.Warn("audit retention prune failed", "error", err)
		return
	}
	if n > 0 {
		r.logger.Info("audit retention pruned entries", "count", n, "cutoff", cutoff)
	}
}
