package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scoperhq/scoper-api/internal/models"
	"github.com/scoperhq/scoper-api/internal/repository"
)

type mockAnalyticsRepo struct {
	count          int
	ordered        []float64
	byYear         map[int][]float64
	byCompany      map[string][]float64
	yearly         []repository.YearlyAggregate
	topPayer       string
	topPayerAvg    float64
	topPayerFound  bool
	mostReported   string
	mostCount      int
	mostFound      bool
	companies      int
	universities   int
	locations      int
	topCompanies   []models.CompanyStats
	avgSince       float64
	avgBefore      float64
	commonRole     string
	commonCount    int
	commonFound    bool
	busyLocation   string
	busyCount      int
	busyFound      bool
	termStats      []models.TermStats
	orderedQueries int
}

func (m *mockAnalyticsRepo) CountReports(ctx context.Context) (int, error) { return m.count, nil }

func (m *mockAnalyticsRepo) OrderedSalaries(ctx context.Context) ([]float64, error) {
	m.orderedQueries++
	return m.ordered, nil
}

func (m *mockAnalyticsRepo) SalariesByYear(ctx context.Context, year int) ([]float64, error) {
	return m.byYear[year], nil
}

func (m *mockAnalyticsRepo) SalariesByCompany(ctx context.Context, company string) ([]float64, error) {
	return m.byCompany[company], nil
}

func (m *mockAnalyticsRepo) YearlyAggregates(ctx context.Context) ([]repository.YearlyAggregate, error) {
	return m.yearly, nil
}

func (m *mockAnalyticsRepo) TopPayingCompany(ctx context.Context, minReports int) (string, float64, bool, error) {
	return m.topPayer, m.topPayerAvg, m.topPayerFound, nil
}

func (m *mockAnalyticsRepo) MostReportedCompany(ctx context.Context) (string, int, bool, error) {
	return m.mostReported, m.mostCount, m.mostFound, nil
}

func (m *mockAnalyticsRepo) DistinctCounts(ctx context.Context) (int, int, int, error) {
	return m.companies, m.universities, m.locations, nil
}

func (m *mockAnalyticsRepo) TopCompanies(ctx context.Context, limit int) ([]models.CompanyStats, error) {
	return m.topCompanies, nil
}

func (m *mockAnalyticsRepo) TopUniversities(ctx context.Context, limit int) ([]models.UniversityStats, error) {
	return nil, nil
}

func (m *mockAnalyticsRepo) TopLocations(ctx context.Context, limit int) ([]models.LocationStats, error) {
	return nil, nil
}

func (m *mockAnalyticsRepo) TopRoles(ctx context.Context, limit int) ([]models.RoleStats, error) {
	return nil, nil
}

func (m *mockAnalyticsRepo) AverageSince(ctx context.Context, year int) (float64, error) {
	return m.avgSince, nil
}

func (m *mockAnalyticsRepo) AverageBefore(ctx context.Context, year int) (float64, error) {
	return m.avgBefore, nil
}

func (m *mockAnalyticsRepo) MostCommonRole(ctx context.Context) (string, int, bool, error) {
	return m.commonRole, m.commonCount, m.commonFound, nil
}

func (m *mockAnalyticsRepo) TopLocationByCount(ctx context.Context) (string, int, bool, error) {
	return m.busyLocation, m.busyCount, m.busyFound, nil
}

func (m *mockAnalyticsRepo) TermAverages(ctx context.Context) ([]models.TermStats, error) {
	return m.termStats, nil
}

func newTestAnalytics(repo *mockAnalyticsRepo) *AnalyticsService {
	return NewAnalyticsService(repo, nil, NewMetricsService(), zap.NewNop(), time.Minute)
}

func TestOverviewComputesAverageAndMedian(t *testing.T) {
	repo := &mockAnalyticsRepo{
		count:         4,
		ordered:       []float64{20, 25, 30, 45},
		topPayer:      "Shopify",
		topPayerAvg:   41.6666,
		topPayerFound: true,
		mostReported:  "Pratt and Whitney",
		mostCount:     12,
		mostFound:     true,
		companies:     3,
		universities:  2,
		locations:     4,
	}
	svc := newTestAnalytics(repo)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, overview.TotalReports)
	assert.Equal(t, 30.0, overview.AvgSalary)
	assert.Equal(t, 27.5, overview.MedianSalary)
	assert.Equal(t, "Shopify", overview.TopPayingCompany)
	assert.Equal(t, 41.67, overview.TopPayingCompanyAvg)
	assert.Equal(t, "Pratt and Whitney", overview.MostReportedCompany)
	assert.Equal(t, 3, overview.TotalCompanies)
}

func TestOverviewFallsBackWhenNoQualifiers(t *testing.T) {
	svc := newTestAnalytics(&mockAnalyticsRepo{})

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "N/A", overview.TopPayingCompany)
	assert.Zero(t, overview.TopPayingCompanyAvg)
	assert.Equal(t, "N/A", overview.MostReportedCompany)
	assert.Zero(t, overview.MostReportedCompanyCount)
}

func TestSalaryTrendsPerYearMedian(t *testing.T) {
	repo := &mockAnalyticsRepo{
		yearly: []repository.YearlyAggregate{
			{Year: 2022, AvgSalary: 24.505, Count: 3},
			{Year: 2023, AvgSalary: 28.0, Count: 2},
		},
		byYear: map[int][]float64{
			2022: {20, 24, 29.51},
			2023: {26, 30},
		},
	}
	svc := newTestAnalytics(repo)

	trends, err := svc.SalaryTrends(context.Background())
	require.NoError(t, err)
	require.Len(t, trends, 2)

	assert.Equal(t, 2022, trends[0].Year)
	assert.Equal(t, 24.51, trends[0].AvgSalary)
	assert.Equal(t, 24.0, trends[0].MedianSalary)
	assert.Equal(t, 3, trends[0].Count)
	assert.Equal(t, 28.0, trends[1].MedianSalary)
}

func TestSalaryDistributionBuckets(t *testing.T) {
	repo := &mockAnalyticsRepo{
		ordered: []float64{10, 15, 18, 22, 50, 75},
	}
	svc := newTestAnalytics(repo)

	buckets, err := svc.SalaryDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 9)

	byRange := make(map[string]models.SalaryBucket, len(buckets))
	for _, b := range buckets {
		byRange[b.SalaryRange] = b
	}

	assert.Equal(t, 1, byRange["$0-$15"].Count)
	assert.Equal(t, 2, byRange["$15-$20"].Count)
	assert.Equal(t, 1, byRange["$20-$25"].Count)
	assert.Equal(t, 0, byRange["$45-$50"].Count)
	assert.Equal(t, 2, byRange["$50+"].Count)
	assert.Equal(t, 33.3, byRange["$15-$20"].Percentage)
}

func TestSalaryDistributionEmptySet(t *testing.T) {
	svc := newTestAnalytics(&mockAnalyticsRepo{})

	buckets, err := svc.SalaryDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 9)
	for _, b := range buckets {
		assert.Zero(t, b.Count)
		assert.Zero(t, b.Percentage)
	}
}

func TestCompanyComparisonSkipsUnknown(t *testing.T) {
	repo := &mockAnalyticsRepo{
		byCompany: map[string][]float64{
			"Shopify": {30, 40, 26},
		},
	}
	svc := newTestAnalytics(repo)

	result, err := svc.CompanyComparison(context.Background(), "Shopify, Ghost Corp, ")
	require.NoError(t, err)
	require.Len(t, result, 1)

	stats := result["Shopify"]
	assert.Equal(t, 32.0, stats.AvgSalary)
	assert.Equal(t, 30.0, stats.MedianSalary)
	assert.Equal(t, 26.0, stats.MinSalary)
	assert.Equal(t, 40.0, stats.MaxSalary)
	assert.Equal(t, 3, stats.TotalReports)
	assert.Equal(t, []float64{30, 40, 26}, stats.SalaryData)
}

func TestYearlyGrowthRates(t *testing.T) {
	repo := &mockAnalyticsRepo{
		yearly: []repository.YearlyAggregate{
			{Year: 2021, Count: 4},
			{Year: 2022, Count: 6},
			{Year: 2023, Count: 3},
		},
	}
	svc := newTestAnalytics(repo)

	growth, err := svc.YearlyGrowth(context.Background())
	require.NoError(t, err)
	require.Len(t, growth, 3)

	assert.Equal(t, 0.0, growth[0].GrowthRate)
	assert.Equal(t, 50.0, growth[1].GrowthRate)
	assert.Equal(t, -50.0, growth[2].GrowthRate)
}

func TestMarketInsightsPercentiles(t *testing.T) {
	repo := &mockAnalyticsRepo{
		count:        8,
		ordered:      []float64{15, 20, 25, 30, 35, 40, 45, 50},
		avgSince:     34.567,
		avgBefore:    28.0,
		commonRole:   "Software Developer",
		commonCount:  5,
		commonFound:  true,
		busyLocation: "Toronto, ON",
		busyCount:    6,
		busyFound:    true,
	}
	svc := newTestAnalytics(repo)

	insights, err := svc.MarketInsights(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, insights.TotalReports)
	assert.Equal(t, 21.25, insights.SalaryPercentiles.P25)
	assert.Equal(t, 43.75, insights.SalaryPercentiles.P75)
	assert.Equal(t, 50.5, insights.SalaryPercentiles.P90)
	assert.Equal(t, 34.57, insights.RecentVsOlder.RecentAvg)
	assert.Equal(t, 23.5, insights.RecentVsOlder.Improvement)
	assert.Equal(t, "Software Developer", insights.MostCommonRole.Role)
	assert.Equal(t, "Toronto, ON", insights.TopLocation.Location)
}

func TestMarketInsightsEmptySet(t *testing.T) {
	svc := newTestAnalytics(&mockAnalyticsRepo{})

	insights, err := svc.MarketInsights(context.Background())
	require.NoError(t, err)

	assert.Zero(t, insights.SalaryPercentiles.P25)
	assert.Zero(t, insights.RecentVsOlder.Improvement)
	assert.Equal(t, "N/A", insights.MostCommonRole.Role)
	assert.Equal(t, "N/A", insights.TopLocation.Location)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 7.0, median([]float64{7}))
	assert.Equal(t, 25.0, median([]float64{20, 25, 30}))
	assert.Equal(t, 27.5, median([]float64{20, 25, 30, 45}))
}

func TestQuantileExclusive(t *testing.T) {
	sorted := []float64{15, 20, 25, 30, 35, 40, 45, 50}

	assert.Equal(t, 21.25, quantile(sorted, 1, 4))
	assert.Equal(t, 43.75, quantile(sorted, 3, 4))
	assert.Equal(t, 50.5, quantile(sorted, 9, 10))

	// cut points past the sample extrapolate from the outermost pair
	assert.Equal(t, 3.0, quantile([]float64{10, 20}, 1, 10))
	assert.Equal(t, 22.5, quantile([]float64{10, 20}, 3, 4))
	assert.Equal(t, 27.0, quantile([]float64{10, 20}, 9, 10))
}
