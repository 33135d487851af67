package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scoperhq/scoper-api/pkg/jobs"

	"github.com/scoperhq/scoper-api/internal/models"
)

// JobTypeModerationAudit tags audit writes on the background queue.
const JobTypeModerationAudit = "moderation-audit"

// PendingRepo is the moderation queue persistence contract.
type PendingRepo interface {
	Insert(ctx context.Context, pending *models.PendingSalary) error
	ListPending(ctx context.Context) ([]models.PendingSalary, error)
	Approve(ctx context.Context, id int64) (models.PendingSalary, error)
	Reject(ctx context.Context, id int64) (models.PendingSalary, error)
}

// AuditRepo records moderation decisions.
type AuditRepo interface {
	Create(ctx context.Context, entry *models.ModerationAudit) error
}

// Enqueuer pushes background jobs. Satisfied by jobs.Queue.
type Enqueuer interface {
	Enqueue(job jobs.Job) error
}

// ModerationService drives the pending -> approved/rejected lifecycle.
// Decisions are terminal, a submission leaves the queue exactly once.
type ModerationService struct {
	pending PendingRepo
	audit   AuditRepo
	queue   Enqueuer
	cache   *CacheService
	logger  *zap.Logger
}

func NewModerationService(pending PendingRepo, audit AuditRepo, queue Enqueuer, cache *CacheService, logger *zap.Logger) *ModerationService {
	return &ModerationService{
		pending: pending,
		audit:   audit,
		queue:   queue,
		cache:   cache,
		logger:  logger,
	}
}

// ListPending returns queued submissions oldest first.
func (s *ModerationService) ListPending(ctx context.Context) ([]models.PendingSalary, error) {
	return s.pending.ListPending(ctx)
}

// Approve publishes a pending submission. The copy into the reported set
// and the status flip happen in one transaction in the repository.
func (s *ModerationService) Approve(ctx context.Context, id int64, adminUser, ip, userAgent string) (models.PendingSalary, error) {
	approved, err := s.pending.Approve(ctx, id)
	if err != nil {
		return models.PendingSalary{}, err
	}

	s.recordDecision(ctx, "approve", &approved, adminUser, ip, userAgent)
	s.invalidateAnalytics(ctx)

	if s.logger != nil {
		s.logger.Info("submission approved",
			zap.Int64("id", id),
			zap.String("company", approved.Company),
			zap.String("admin", adminUser),
		)
	}
	return approved, nil
}

// Reject marks a pending submission rejected. The row is kept for audit.
func (s *ModerationService) Reject(ctx context.Context, id int64, adminUser, ip, userAgent string) (models.PendingSalary, error) {
	rejected, err := s.pending.Reject(ctx, id)
	if err != nil {
		return models.PendingSalary{}, err
	}

	s.recordDecision(ctx, "reject", &rejected, adminUser, ip, userAgent)

	if s.logger != nil {
		s.logger.Info("submission rejected",
			zap.Int64("id", id),
			zap.String("admin", adminUser),
		)
	}
	return rejected, nil
}

// recordDecision is best effort, a failed audit write never rolls back
// the moderation decision itself. Writes go through the background
// queue when one is wired, the queue retries transient failures.
func (s *ModerationService) recordDecision(ctx context.Context, action string, sub *models.PendingSalary, adminUser, ip, userAgent string) {
	if s.audit == nil && s.queue == nil {
		return
	}
	detail, _ := json.Marshal(map[string]interface{}{
		"company": sub.Company,
		"role":    sub.Role,
		"year":    sub.Year,
	})
	entry := &models.ModerationAudit{
		Action:       action,
		SubmissionID: &sub.ID,
		AdminUser:    adminUser,
		IPAddress:    ip,
		UserAgent:    userAgent,
		Detail:       detail,
	}

	if s.queue != nil {
		err := s.queue.Enqueue(jobs.Job{
			ID:      uuid.NewString(),
			Type:    JobTypeModerationAudit,
			Payload: entry,
		})
		if err == nil {
			return
		}
		if s.logger != nil {
			s.logger.Warn("audit enqueue failed, writing inline", zap.Error(err))
		}
	}
	if s.audit == nil {
		return
	}
	if err := s.audit.Create(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("audit write failed", zap.String("action", action), zap.Error(err))
	}
}

// invalidateAnalytics drops cached aggregates so readers see the newly
// published report on their next request.
func (s *ModerationService) invalidateAnalytics(ctx context.Context) {
	if s.cache == nil || !s.cache.Enabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("%s*", analyticsCachePrefix)); err != nil && s.logger != nil {
		s.logger.Warn("analytics cache invalidation failed", zap.Error(err))
	}
}
