package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/scoperhq/scoper-api/internal/models"
	appErrors "github.com/scoperhq/scoper-api/pkg/errors"
)

const pendingColumns = "id, company, role, salary, year, university, location, bonus, term, arrangement, status, ip_address, submitted_at"

// PendingRepository persists the moderation queue.
type PendingRepository struct {
	db *sqlx.DB
}

// NewPendingRepository instantiates the repository.
func NewPendingRepository(db *sqlx.DB) *PendingRepository {
	return &PendingRepository{db: db}
}

// Insert records a validated submission as pending and returns its id.
func (r *PendingRepository) Insert(ctx context.Context, pending *models.PendingSalary) error {
	const query = `INSERT INTO pending_salaries
        (company, role, salary, year, university, location, bonus, term, arrangement, status, ip_address, submitted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id`

	if err := r.db.QueryRowxContext(ctx, query,
		pending.Company, pending.Role, pending.Salary, pending.Year,
		pending.University, pending.Location, pending.Bonus, pending.Term,
		pending.Arrangement, pending.Status, pending.IPAddress, pending.SubmittedAt,
	).Scan(&pending.ID); err != nil {
		return fmt.Errorf("insert pending salary: %w", err)
	}
	return nil
}

// ListPending returns the rows still awaiting moderation, oldest first.
func (r *PendingRepository) ListPending(ctx context.Context) ([]models.PendingSalary, error) {
	query := fmt.Sprintf("SELECT %s FROM pending_salaries WHERE status = $1 ORDER BY submitted_at ASC", pendingColumns)

	var pending []models.PendingSalary
	if err := r.db.SelectContext(ctx, &pending, query, models.StatusPending); err != nil {
		return nil, fmt.Errorf("query pending submissions: %w", err)
	}
	return pending, nil
}

// Approve atomically publishes a pending submission: the row is copied
// into reported_salaries and flipped to approved. Only rows still in
// pending state transition; anything else surfaces as not found.
func (r *PendingRepository) Approve(ctx context.Context, id int64) (models.PendingSalary, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.PendingSalary{}, fmt.Errorf("begin approve: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	updateQuery := fmt.Sprintf(`UPDATE pending_salaries SET status = $1 WHERE id = $2 AND status = $3 RETURNING %s`, pendingColumns)

	var pending models.PendingSalary
	if err := tx.GetContext(ctx, &pending, updateQuery, models.StatusApproved, id, models.StatusPending); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PendingSalary{}, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return models.PendingSalary{}, fmt.Errorf("mark submission approved: %w", err)
	}

	report := pending.Report()
	const insertQuery = `INSERT INTO reported_salaries (company, role, salary, year, university, location, bonus, term, arrangement)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := tx.ExecContext(ctx, insertQuery,
		report.Company, report.Role, report.Salary, report.Year,
		report.University, report.Location, report.Bonus, report.Term, report.Arrangement,
	); err != nil {
		return models.PendingSalary{}, fmt.Errorf("publish approved salary: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.PendingSalary{}, fmt.Errorf("commit approve: %w", err)
	}
	return pending, nil
}

// Reject marks a pending submission rejected without publishing it.
func (r *PendingRepository) Reject(ctx context.Context, id int64) (models.PendingSalary, error) {
	query := fmt.Sprintf(`UPDATE pending_salaries SET status = $1 WHERE id = $2 AND status = $3 RETURNING %s`, pendingColumns)

	var pending models.PendingSalary
	if err := r.db.GetContext(ctx, &pending, query, models.StatusRejected, id, models.StatusPending); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PendingSalary{}, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return models.PendingSalary{}, fmt.Errorf("mark submission rejected: %w", err)
	}
	return pending, nil
}
