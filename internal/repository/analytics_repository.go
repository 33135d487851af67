package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/scoperhq/scoper-api/internal/models"
)

// AnalyticsRepository exposes read-optimised aggregate queries over the
// published salary reports. Medians and percentiles are computed in the
// service layer from the ordered salary sets returned here.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository instantiates the repository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// CountReports returns the total number of published reports.
func (r *AnalyticsRepository) CountReports(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM reported_salaries"); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return count, nil
}

// OrderedSalaries returns every hourly salary sorted ascending.
func (r *AnalyticsRepository) OrderedSalaries(ctx context.Context) ([]float64, error) {
	var salaries []float64
	if err := r.db.SelectContext(ctx, &salaries, "SELECT salary FROM reported_salaries ORDER BY salary ASC"); err != nil {
		return nil, fmt.Errorf("query ordered salaries: %w", err)
	}
	return salaries, nil
}

// SalariesByYear returns a year's hourly salaries sorted ascending.
func (r *AnalyticsRepository) SalariesByYear(ctx context.Context, year int) ([]float64, error) {
	var salaries []float64
	if err := r.db.SelectContext(ctx, &salaries, "SELECT salary FROM reported_salaries WHERE year = $1 ORDER BY salary ASC", year); err != nil {
		return nil, fmt.Errorf("query salaries for year %d: %w", year, err)
	}
	return salaries, nil
}

// SalariesByCompany returns one company's hourly salaries.
func (r *AnalyticsRepository) SalariesByCompany(ctx context.Context, company string) ([]float64, error) {
	var salaries []float64
	if err := r.db.SelectContext(ctx, &salaries, "SELECT salary FROM reported_salaries WHERE company = $1 ORDER BY salary ASC", company); err != nil {
		return nil, fmt.Errorf("query salaries for company: %w", err)
	}
	return salaries, nil
}

// YearlyAggregate is a per-year average and report count.
type YearlyAggregate struct {
	Year      int     `db:"year"`
	AvgSalary float64 `db:"avg_salary"`
	Count     int     `db:"count"`
}

// YearlyAggregates returns per-year averages ordered by year ascending.
func (r *AnalyticsRepository) YearlyAggregates(ctx context.Context) ([]YearlyAggregate, error) {
	const query = `SELECT year, AVG(salary) AS avg_salary, COUNT(*) AS count
        FROM reported_salaries GROUP BY year ORDER BY year ASC`

	var aggregates []YearlyAggregate
	if err := r.db.SelectContext(ctx, &aggregates, query); err != nil {
		return nil, fmt.Errorf("query yearly aggregates: %w", err)
	}
	return aggregates, nil
}

// TopPayingCompany returns the best-paying company among those with at
// least minReports reports; found is false when no company qualifies.
func (r *AnalyticsRepository) TopPayingCompany(ctx context.Context, minReports int) (string, float64, bool, error) {
	const query = `SELECT company, AVG(salary) AS avg_salary FROM reported_salaries
        GROUP BY company HAVING COUNT(*) >= $1 ORDER BY AVG(salary) DESC LIMIT 1`

	var rows []struct {
		Company   string  `db:"company"`
		AvgSalary float64 `db:"avg_salary"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, minReports); err != nil {
		return "", 0, false, fmt.Errorf("query top paying company: %w", err)
	}
	if len(rows) == 0 {
		return "", 0, false, nil
	}
	return rows[0].Company, rows[0].AvgSalary, true, nil
}

// MostReportedCompany returns the company with the most reports.
func (r *AnalyticsRepository) MostReportedCompany(ctx context.Context) (string, int, bool, error) {
	const query = `SELECT company, COUNT(*) AS count FROM reported_salaries
        GROUP BY company ORDER BY COUNT(*) DESC LIMIT 1`

	var rows []struct {
		Company string `db:"company"`
		Count   int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return "", 0, false, fmt.Errorf("query most reported company: %w", err)
	}
	if len(rows) == 0 {
		return "", 0, false, nil
	}
	return rows[0].Company, rows[0].Count, true, nil
}

// DistinctCounts returns the number of distinct companies, universities
// and locations across all reports.
func (r *AnalyticsRepository) DistinctCounts(ctx context.Context) (companies, universities, locations int, err error) {
	const query = `SELECT COUNT(DISTINCT company) AS companies,
        COUNT(DISTINCT university) AS universities,
        COUNT(DISTINCT location) AS locations
        FROM reported_salaries`

	var counts struct {
		Companies    int `db:"companies"`
		Universities int `db:"universities"`
		Locations    int `db:"locations"`
	}
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return 0, 0, 0, fmt.Errorf("query distinct counts: %w", err)
	}
	return counts.Companies, counts.Universities, counts.Locations, nil
}

// TopCompanies ranks companies by average salary, requiring at least two
// reports, including the salary range observed per company.
func (r *AnalyticsRepository) TopCompanies(ctx context.Context, limit int) ([]models.CompanyStats, error) {
	const query = `SELECT company, AVG(salary) AS avg_salary, COUNT(*) AS total_reports,
        MIN(salary) AS salary_min, MAX(salary) AS salary_max
        FROM reported_salaries GROUP BY company HAVING COUNT(*) >= 2
        ORDER BY AVG(salary) DESC LIMIT $1`

	var stats []models.CompanyStats
	if err := r.db.SelectContext(ctx, &stats, query, limit); err != nil {
		return nil, fmt.Errorf("query top companies: %w", err)
	}
	return stats, nil
}

// TopUniversities ranks universities by average salary, requiring at
// least three reports.
func (r *AnalyticsRepository) TopUniversities(ctx context.Context, limit int) ([]models.UniversityStats, error) {
	const query = `SELECT university, AVG(salary) AS avg_salary, COUNT(*) AS total_reports
        FROM reported_salaries GROUP BY university HAVING COUNT(*) >= 3
        ORDER BY AVG(salary) DESC LIMIT $1`

	var stats []models.UniversityStats
	if err := r.db.SelectContext(ctx, &stats, query, limit); err != nil {
		return nil, fmt.Errorf("query top universities: %w", err)
	}
	return stats, nil
}

// TopLocations ranks non-empty locations by average salary, requiring at
// least two reports.
func (r *AnalyticsRepository) TopLocations(ctx context.Context, limit int) ([]models.LocationStats, error) {
	const query = `SELECT location, AVG(salary) AS avg_salary, COUNT(*) AS total_reports
        FROM reported_salaries WHERE location <> ''
        GROUP BY location HAVING COUNT(*) >= 2
        ORDER BY AVG(salary) DESC LIMIT $1`

	var stats []models.LocationStats
	if err := r.db.SelectContext(ctx, &stats, query, limit); err != nil {
		return nil, fmt.Errorf("query top locations: %w", err)
	}
	return stats, nil
}

// TopRoles ranks roles by average salary, requiring at least two reports.
func (r *AnalyticsRepository) TopRoles(ctx context.Context, limit int) ([]models.RoleStats, error) {
	const query = `SELECT role, AVG(salary) AS avg_salary, COUNT(*) AS total_reports
        FROM reported_salaries GROUP BY role HAVING COUNT(*) >= 2
        ORDER BY AVG(salary) DESC LIMIT $1`

	var stats []models.RoleStats
	if err := r.db.SelectContext(ctx, &stats, query, limit); err != nil {
		return nil, fmt.Errorf("query top roles: %w", err)
	}
	return stats, nil
}

// AverageSince returns the mean salary for reports from the given year on.
func (r *AnalyticsRepository) AverageSince(ctx context.Context, year int) (float64, error) {
	var avg float64
	if err := r.db.GetContext(ctx, &avg, "SELECT COALESCE(AVG(salary), 0) FROM reported_salaries WHERE year >= $1", year); err != nil {
		return 0, fmt.Errorf("query recent average: %w", err)
	}
	return avg, nil
}

// AverageBefore returns the mean salary for reports older than the year.
func (r *AnalyticsRepository) AverageBefore(ctx context.Context, year int) (float64, error) {
	var avg float64
	if err := r.db.GetContext(ctx, &avg, "SELECT COALESCE(AVG(salary), 0) FROM reported_salaries WHERE year < $1", year); err != nil {
		return 0, fmt.Errorf("query older average: %w", err)
	}
	return avg, nil
}

// MostCommonRole returns the role with the most reports.
func (r *AnalyticsRepository) MostCommonRole(ctx context.Context) (string, int, bool, error) {
	const query = `SELECT role, COUNT(*) AS count FROM reported_salaries
        GROUP BY role ORDER BY COUNT(*) DESC LIMIT 1`

	var rows []struct {
		Role  string `db:"role"`
		Count int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return "", 0, false, fmt.Errorf("query most common role: %w", err)
	}
	if len(rows) == 0 {
		return "", 0, false, nil
	}
	return rows[0].Role, rows[0].Count, true, nil
}

// TopLocationByCount returns the non-empty location with the most reports.
func (r *AnalyticsRepository) TopLocationByCount(ctx context.Context) (string, int, bool, error) {
	const query = `SELECT location, COUNT(*) AS count FROM reported_salaries
        WHERE location <> '' GROUP BY location ORDER BY COUNT(*) DESC LIMIT 1`

	var rows []struct {
		Location string `db:"location"`
		Count    int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return "", 0, false, fmt.Errorf("query top location by count: %w", err)
	}
	if len(rows) == 0 {
		return "", 0, false, nil
	}
	return rows[0].Location, rows[0].Count, true, nil
}

// TermAverages returns average salaries per work term, term ascending.
func (r *AnalyticsRepository) TermAverages(ctx context.Context) ([]models.TermStats, error) {
	const query = `SELECT term, AVG(salary) AS avg_salary, COUNT(*) AS total_reports
        FROM reported_salaries WHERE term IS NOT NULL
        GROUP BY term ORDER BY term ASC`

	var stats []models.TermStats
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("query term averages: %w", err)
	}
	return stats, nil
}
