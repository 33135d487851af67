package models

// AnalyticsOverview carries the headline metrics for the dashboard.
type AnalyticsOverview struct {
	TotalReports             int     `json:"total_reports"`
	AvgSalary                float64 `json:"avg_salary"`
	MedianSalary             float64 `json:"median_salary"`
	TopPayingCompany         string  `json:"top_paying_company"`
	TopPayingCompanyAvg      float64 `json:"top_paying_company_avg"`
	MostReportedCompany      string  `json:"most_reported_company"`
	MostReportedCompanyCount int     `json:"most_reported_company_count"`
	TotalCompanies           int     `json:"total_companies"`
	TotalUniversities        int     `json:"total_universities"`
	TotalLocations           int     `json:"total_locations"`
}

// SalaryTrend is a per-year aggregate point.
type SalaryTrend struct {
	Year         int     `json:"year"`
	AvgSalary    float64 `json:"avg_salary"`
	MedianSalary float64 `json:"median_salary"`
	Count        int     `json:"count"`
}

// CompanyStats ranks a company by average salary with its report range.
type CompanyStats struct {
	Company        string  `db:"company" json:"company"`
	AvgSalary      float64 `db:"avg_salary" json:"avg_salary"`
	TotalReports   int     `db:"total_reports" json:"total_reports"`
	SalaryRangeMin float64 `db:"salary_min" json:"salary_range_min"`
	SalaryRangeMax float64 `db:"salary_max" json:"salary_range_max"`
}

// UniversityStats ranks a university by average salary.
type UniversityStats struct {
	University   string  `db:"university" json:"university"`
	AvgSalary    float64 `db:"avg_salary" json:"avg_salary"`
	TotalReports int     `db:"total_reports" json:"total_reports"`
}

// LocationStats ranks a location by average salary.
type LocationStats struct {
	Location     string  `db:"location" json:"location"`
	AvgSalary    float64 `db:"avg_salary" json:"avg_salary"`
	TotalReports int     `db:"total_reports" json:"total_reports"`
}

// RoleStats ranks a role by average salary.
type RoleStats struct {
	Role         string  `db:"role" json:"role"`
	AvgSalary    float64 `db:"avg_salary" json:"avg_salary"`
	TotalReports int     `db:"total_reports" json:"total_reports"`
}

// SalaryBucket is one fixed hourly range of the distribution histogram.
type SalaryBucket struct {
	SalaryRange string  `json:"salary_range"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
}

// CompanyComparison summarises one company in a side-by-side comparison.
type CompanyComparison struct {
	AvgSalary    float64   `json:"avg_salary"`
	MedianSalary float64   `json:"median_salary"`
	MinSalary    float64   `json:"min_salary"`
	MaxSalary    float64   `json:"max_salary"`
	TotalReports int       `json:"total_reports"`
	SalaryData   []float64 `json:"salary_data"`
}

// YearlyGrowth tracks submission volume year over year.
type YearlyGrowth struct {
	Year         int     `json:"year"`
	TotalReports int     `json:"total_reports"`
	GrowthRate   float64 `json:"growth_rate"`
}

// TermStats is the average salary for one co-op work term.
type TermStats struct {
	Term         int     `db:"term" json:"term"`
	AvgSalary    float64 `db:"avg_salary" json:"avg_salary"`
	TotalReports int     `db:"total_reports" json:"total_reports"`
}

// SalaryPercentiles carries the 25th/75th/90th percentile cut points.
type SalaryPercentiles struct {
	P25 float64 `json:"25th"`
	P75 float64 `json:"75th"`
	P90 float64 `json:"90th"`
}

// RecentComparison contrasts the last two years against older reports.
type RecentComparison struct {
	RecentAvg   float64 `json:"recent_avg"`
	OlderAvg    float64 `json:"older_avg"`
	Improvement float64 `json:"improvement"`
}

// MarketInsights is the broad market statistics payload.
type MarketInsights struct {
	TotalReports      int               `json:"total_reports"`
	SalaryPercentiles SalaryPercentiles `json:"salary_percentiles"`
	RecentVsOlder     RecentComparison  `json:"recent_vs_older"`
	MostCommonRole    MostCommonRole    `json:"most_common_role"`
	TopLocation       TopLocationCount  `json:"top_location_by_opportunities"`
}

// MostCommonRole names the role with the most reports.
type MostCommonRole struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// TopLocationCount names the location with the most reports.
type TopLocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}
