package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoperhq/scoper-api/internal/models"
	appErrors "github.com/scoperhq/scoper-api/pkg/errors"
)

func pendingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "company", "role", "salary", "year", "university", "location", "bonus", "term", "arrangement", "status", "ip_address", "submitted_at"})
}

func TestPendingRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPendingRepository(db)

	submittedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	pending := &models.PendingSalary{
		Company:     "Shopify",
		Role:        "Software Developer",
		Salary:      32.5,
		Year:        2024,
		University:  "Concordia University",
		Location:    "Montreal, QC",
		Arrangement: models.ArrangementHybrid,
		Status:      models.StatusPending,
		IPAddress:   "203.0.113.9",
		SubmittedAt: submittedAt,
	}

	mock.ExpectQuery("INSERT INTO pending_salaries").
		WithArgs("Shopify", "Software Developer", 32.5, 2024, "Concordia University", "Montreal, QC",
			nil, nil, models.ArrangementHybrid, models.StatusPending, "203.0.113.9", submittedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	require.NoError(t, repo.Insert(context.Background(), pending))
	assert.Equal(t, int64(42), pending.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingRepositoryApprove(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPendingRepository(db)

	submittedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE pending_salaries SET status").
		WithArgs(models.StatusApproved, int64(7), models.StatusPending).
		WillReturnRows(pendingRows().
			AddRow(7, "Shopify", "Software Developer", 32.5, 2024, "Concordia University", "Montreal, QC",
				nil, nil, "Hybrid", "approved", "203.0.113.9", submittedAt))
	mock.ExpectExec("INSERT INTO reported_salaries").
		WithArgs("Shopify", "Software Developer", 32.5, 2024, "Concordia University", "Montreal, QC",
			nil, nil, models.ArrangementHybrid).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	approved, err := repo.Approve(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	assert.Equal(t, "Shopify", approved.Company)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingRepositoryApproveNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPendingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE pending_salaries SET status").
		WithArgs(models.StatusApproved, int64(99), models.StatusPending).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Approve(context.Background(), 99)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "submission not found", appErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingRepositoryReject(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPendingRepository(db)

	submittedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("UPDATE pending_salaries SET status").
		WithArgs(models.StatusRejected, int64(7), models.StatusPending).
		WillReturnRows(pendingRows().
			AddRow(7, "Shopify", "Software Developer", 32.5, 2024, "Concordia University", "Montreal, QC",
				nil, nil, "Hybrid", "rejected", "203.0.113.9", submittedAt))

	rejected, err := repo.Reject(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingRepositoryRejectNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPendingRepository(db)

	mock.ExpectQuery("UPDATE pending_salaries SET status").
		WithArgs(models.StatusRejected, int64(99), models.StatusPending).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Reject(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingRepositoryListPending(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPendingRepository(db)

	submittedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM pending_salaries WHERE status").
		WithArgs(models.StatusPending).
		WillReturnRows(pendingRows().
			AddRow(1, "Shopify", "Software Developer", 32.5, 2024, "Concordia University", "Montreal, QC",
				nil, nil, "Hybrid", "pending", "203.0.113.9", submittedAt))

	pending, err := repo.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.StatusPending, pending[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
