package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/scoperhq/scoper-api/internal/models"
)

// AuditRepository records admin actions against the moderation queue.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository instantiates the repository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create persists one audit entry, assigning id and timestamp when unset.
func (r *AuditRepository) Create(ctx context.Context, entry *models.ModerationAudit) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO moderation_audit (id, action, submission_id, admin_user, ip_address, user_agent, detail, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Action, entry.SubmissionID, entry.AdminUser,
		entry.IPAddress, entry.UserAgent, entry.Detail, entry.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert moderation audit: %w", err)
	}
	return nil
}
