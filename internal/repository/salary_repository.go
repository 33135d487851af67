package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/scoperhq/scoper-api/internal/models"
)

const reportedColumns = "id, company, role, salary, year, university, location, bonus, term, arrangement"

// SalaryRepository persists published salary reports.
type SalaryRepository struct {
	db *sqlx.DB
}

// NewSalaryRepository instantiates the repository.
func NewSalaryRepository(db *sqlx.DB) *SalaryRepository {
	return &SalaryRepository{db: db}
}

// List returns one page of reports ordered by year descending together
// with the total row count the pagination contract requires.
func (r *SalaryRepository) List(ctx context.Context, filter models.SalaryFilter) ([]models.ReportedSalary, int, error) {
	query := fmt.Sprintf("SELECT %s FROM reported_salaries ORDER BY year DESC, id DESC LIMIT $1 OFFSET $2", reportedColumns)

	var reports []models.ReportedSalary
	if err := r.db.SelectContext(ctx, &reports, query, filter.Limit, filter.Offset); err != nil {
		return nil, 0, fmt.Errorf("query salary page: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM reported_salaries"); err != nil {
		return nil, 0, fmt.Errorf("count salaries: %w", err)
	}

	return reports, total, nil
}

// ListAll returns every report ordered by year descending.
func (r *SalaryRepository) ListAll(ctx context.Context) ([]models.ReportedSalary, error) {
	query := fmt.Sprintf("SELECT %s FROM reported_salaries ORDER BY year DESC, id DESC", reportedColumns)

	var reports []models.ReportedSalary
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, fmt.Errorf("query all salaries: %w", err)
	}
	return reports, nil
}

// DistinctCompanies returns the unique company names.
func (r *SalaryRepository) DistinctCompanies(ctx context.Context) ([]string, error) {
	var companies []string
	if err := r.db.SelectContext(ctx, &companies, "SELECT DISTINCT company FROM reported_salaries ORDER BY company"); err != nil {
		return nil, fmt.Errorf("query distinct companies: %w", err)
	}
	return companies, nil
}

// DistinctLocations returns the unique non-empty locations.
func (r *SalaryRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	var locations []string
	if err := r.db.SelectContext(ctx, &locations, "SELECT DISTINCT location FROM reported_salaries WHERE location <> '' ORDER BY location"); err != nil {
		return nil, fmt.Errorf("query distinct locations: %w", err)
	}
	return locations, nil
}

// ListByCompany returns a company's reports ordered by year descending.
func (r *SalaryRepository) ListByCompany(ctx context.Context, company string) ([]models.ReportedSalary, error) {
	query := fmt.Sprintf("SELECT %s FROM reported_salaries WHERE company = $1 ORDER BY year DESC, id DESC", reportedColumns)

	var reports []models.ReportedSalary
	if err := r.db.SelectContext(ctx, &reports, query, company); err != nil {
		return nil, fmt.Errorf("query company salaries: %w", err)
	}
	return reports, nil
}

// AverageByCompany returns the mean hourly salary for a company, zero
// when the company has no reports.
func (r *SalaryRepository) AverageByCompany(ctx context.Context, company string) (float64, error) {
	var avg float64
	if err := r.db.GetContext(ctx, &avg, "SELECT COALESCE(AVG(salary), 0) FROM reported_salaries WHERE company = $1", company); err != nil {
		return 0, fmt.Errorf("query company average: %w", err)
	}
	return avg, nil
}

// TopUniversityByCompany returns the most frequently reported university
// for a company; empty string when the company is unknown.
func (r *SalaryRepository) TopUniversityByCompany(ctx context.Context, company string) (string, error) {
	return r.topGroup(ctx, "university", "company", company)
}

// TopLocationByCompany returns the most frequently reported location for
// a company.
func (r *SalaryRepository) TopLocationByCompany(ctx context.Context, company string) (string, error) {
	return r.topGroup(ctx, "location", "company", company)
}

// ListByLocation returns a location's reports ordered by year descending.
func (r *SalaryRepository) ListByLocation(ctx context.Context, location string) ([]models.ReportedSalary, error) {
	query := fmt.Sprintf("SELECT %s FROM reported_salaries WHERE location = $1 ORDER BY year DESC, id DESC", reportedColumns)

	var reports []models.ReportedSalary
	if err := r.db.SelectContext(ctx, &reports, query, location); err != nil {
		return nil, fmt.Errorf("query location salaries: %w", err)
	}
	return reports, nil
}

// AverageByLocation returns the mean hourly salary for a location.
func (r *SalaryRepository) AverageByLocation(ctx context.Context, location string) (float64, error) {
	var avg float64
	if err := r.db.GetContext(ctx, &avg, "SELECT COALESCE(AVG(salary), 0) FROM reported_salaries WHERE location = $1", location); err != nil {
		return 0, fmt.Errorf("query location average: %w", err)
	}
	return avg, nil
}

// TopUniversityByLocation returns the most reported university for a location.
func (r *SalaryRepository) TopUniversityByLocation(ctx context.Context, location string) (string, error) {
	return r.topGroup(ctx, "university", "location", location)
}

// TopCompanyByLocation returns the most reported company for a location.
func (r *SalaryRepository) TopCompanyByLocation(ctx context.Context, location string) (string, error) {
	return r.topGroup(ctx, "company", "location", location)
}

// BulkInsert loads seed reports in a single transaction.
func (r *SalaryRepository) BulkInsert(ctx context.Context, reports []models.ReportedSalary) error {
	if len(reports) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO reported_salaries (company, role, salary, year, university, location, bonus, term, arrangement)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, report := range reports {
		if _, err := tx.ExecContext(ctx, query,
			report.Company, report.Role, report.Salary, report.Year,
			report.University, report.Location, report.Bonus, report.Term, report.Arrangement,
		); err != nil {
			return fmt.Errorf("insert seed salary: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk insert: %w", err)
	}
	return nil
}

func (r *SalaryRepository) topGroup(ctx context.Context, groupCol, whereCol, value string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM reported_salaries WHERE %s = $1 AND %s <> ''
        GROUP BY %s ORDER BY COUNT(*) DESC LIMIT 1`, groupCol, whereCol, groupCol, groupCol)

	var top []string
	if err := r.db.SelectContext(ctx, &top, query, value); err != nil {
		return "", fmt.Errorf("query top %s by %s: %w", groupCol, whereCol, err)
	}
	if len(top) == 0 {
		return "", nil
	}
	return top[0], nil
}
