package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoperhq/scoper-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func reportedRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "company", "role", "salary", "year", "university", "location", "bonus", "term", "arrangement"})
}

func TestSalaryRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSalaryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, company, role, salary, year, university, location, bonus, term, arrangement FROM reported_salaries ORDER BY year DESC, id DESC LIMIT $1 OFFSET $2")).
		WithArgs(12, 12).
		WillReturnRows(reportedRows().
			AddRow(13, "Shopify", "Software Developer", 32.5, 2024, "Concordia University", "Montreal, QC", nil, nil, "Hybrid"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reported_salaries")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(40))

	reports, total, err := repo.List(context.Background(), models.SalaryFilter{Offset: 12, Limit: 12})
	require.NoError(t, err)
	assert.Len(t, reports, 1)
	assert.Equal(t, 40, total)
	assert.Equal(t, "Shopify", reports[0].Company)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalaryRepositoryDistinctCompanies(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSalaryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT company FROM reported_salaries ORDER BY company")).
		WillReturnRows(sqlmock.NewRows([]string{"company"}).AddRow("Pratt and Whitney").AddRow("Shopify"))

	companies, err := repo.DistinctCompanies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Pratt and Whitney", "Shopify"}, companies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalaryRepositoryAverageByCompany(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSalaryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(AVG(salary), 0) FROM reported_salaries WHERE company = $1")).
		WithArgs("Shopify").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(33.125))

	avg, err := repo.AverageByCompany(context.Background(), "Shopify")
	require.NoError(t, err)
	assert.Equal(t, 33.125, avg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalaryRepositoryTopUniversityEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSalaryRepository(db)

	mock.ExpectQuery("SELECT university FROM reported_salaries").
		WithArgs("Ghost Corp").
		WillReturnRows(sqlmock.NewRows([]string{"university"}))

	top, err := repo.TopUniversityByCompany(context.Background(), "Ghost Corp")
	require.NoError(t, err)
	assert.Empty(t, top)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalaryRepositoryBulkInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSalaryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO reported_salaries").
		WithArgs("Shopify", "Unreported", 32.5, 2024, "Concordia University", "Montreal, QC", nil, nil, models.ArrangementInOffice).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.BulkInsert(context.Background(), []models.ReportedSalary{{
		Company:     "Shopify",
		Role:        "Unreported",
		Salary:      32.5,
		Year:        2024,
		University:  "Concordia University",
		Location:    "Montreal, QC",
		Arrangement: models.ArrangementInOffice,
	}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalaryRepositoryBulkInsertEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSalaryRepository(db)

	require.NoError(t, repo.BulkInsert(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
