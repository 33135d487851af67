package service

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scoperhq/scoper-api/internal/models"
	"github.com/scoperhq/scoper-api/internal/repository"
)

const analyticsCachePrefix = "analytics:"

// currentYear anchors the recent-vs-older market split.
const currentYear = 2024

// salaryBuckets are the hourly ranges of the distribution chart. The
// last bucket is open ended.
var salaryBuckets = []struct {
	Label string
	Min   float64
	Max   float64
}{
	{"$0-$15", 0, 15},
	{"$15-$20", 15, 20},
	{"$20-$25", 20, 25},
	{"$25-$30", 25, 30},
	{"$30-$35", 30, 35},
	{"$35-$40", 35, 40},
	{"$40-$45", 40, 45},
	{"$45-$50", 45, 50},
	{"$50+", 50, math.Inf(1)},
}

// AnalyticsRepo is the aggregate-query contract used by the service.
type AnalyticsRepo interface {
	CountReports(ctx context.Context) (int, error)
	OrderedSalaries(ctx context.Context) ([]float64, error)
	SalariesByYear(ctx context.Context, year int) ([]float64, error)
	SalariesByCompany(ctx context.Context, company string) ([]float64, error)
	YearlyAggregates(ctx context.Context) ([]repository.YearlyAggregate, error)
	TopPayingCompany(ctx context.Context, minReports int) (string, float64, bool, error)
	MostReportedCompany(ctx context.Context) (string, int, bool, error)
	DistinctCounts(ctx context.Context) (companies, universities, locations int, err error)
	TopCompanies(ctx context.Context, limit int) ([]models.CompanyStats, error)
	TopUniversities(ctx context.Context, limit int) ([]models.UniversityStats, error)
	TopLocations(ctx context.Context, limit int) ([]models.LocationStats, error)
	TopRoles(ctx context.Context, limit int) ([]models.RoleStats, error)
	AverageSince(ctx context.Context, year int) (float64, error)
	AverageBefore(ctx context.Context, year int) (float64, error)
	MostCommonRole(ctx context.Context) (string, int, bool, error)
	TopLocationByCount(ctx context.Context) (string, int, bool, error)
	TermAverages(ctx context.Context) ([]models.TermStats, error)
}

// AnalyticsService computes the aggregate views over published reports.
// Every view is cached as a whole under an analytics: key so moderation
// can invalidate all of them with one pattern delete.
type AnalyticsService struct {
	repo     AnalyticsRepo
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	cacheTTL time.Duration
}

func NewAnalyticsService(repo AnalyticsRepo, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *AnalyticsService {
	return &AnalyticsService{
		repo:     repo,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// cached wraps a view computation with the cache-aside read and write.
func cached[T any](ctx context.Context, s *AnalyticsService, key string, compute func(context.Context) (T, error)) (T, error) {
	fullKey := analyticsCachePrefix + key
	var out T

	if s.cache != nil && s.cache.Enabled() {
		hit, err := s.cache.Get(ctx, fullKey, &out)
		if err == nil && hit {
			return out, nil
		}
		if err != nil && s.logger != nil {
			s.logger.Warn("analytics cache read failed", zap.String("key", fullKey), zap.Error(err))
		}
	}

	start := time.Now()
	out, err := compute(ctx)
	if err != nil {
		return out, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("analytics:"+key, time.Since(start))
	}

	if s.cache != nil && s.cache.Enabled() {
		if err := s.cache.Set(ctx, fullKey, out, s.cacheTTL); err != nil && s.logger != nil {
			s.logger.Warn("analytics cache write failed", zap.String("key", fullKey), zap.Error(err))
		}
	}
	return out, nil
}

// Overview returns the headline metrics for the dashboard.
func (s *AnalyticsService) Overview(ctx context.Context) (*models.AnalyticsOverview, error) {
	return cached(ctx, s, "overview", func(ctx context.Context) (*models.AnalyticsOverview, error) {
		total, err := s.repo.CountReports(ctx)
		if err != nil {
			return nil, err
		}

		salaries, err := s.repo.OrderedSalaries(ctx)
		if err != nil {
			return nil, err
		}

		topCompany, topAvg, topFound, err := s.repo.TopPayingCompany(ctx, 3)
		if err != nil {
			return nil, err
		}
		if !topFound {
			topCompany, topAvg = "N/A", 0
		}

		mostReported, mostCount, mostFound, err := s.repo.MostReportedCompany(ctx)
		if err != nil {
			return nil, err
		}
		if !mostFound {
			mostReported, mostCount = "N/A", 0
		}

		companies, universities, locations, err := s.repo.DistinctCounts(ctx)
		if err != nil {
			return nil, err
		}

		return &models.AnalyticsOverview{
			TotalReports:             total,
			AvgSalary:                round2(mean(salaries)),
			MedianSalary:             round2(median(salaries)),
			TopPayingCompany:         topCompany,
			TopPayingCompanyAvg:      round2(topAvg),
			MostReportedCompany:      mostReported,
			MostReportedCompanyCount: mostCount,
			TotalCompanies:           companies,
			TotalUniversities:        universities,
			TotalLocations:           locations,
		}, nil
	})
}

// SalaryTrends returns per-year averages and medians, oldest first.
func (s *AnalyticsService) SalaryTrends(ctx context.Context) ([]models.SalaryTrend, error) {
	return cached(ctx, s, "salary-trends", func(ctx context.Context) ([]models.SalaryTrend, error) {
		aggregates, err := s.repo.YearlyAggregates(ctx)
		if err != nil {
			return nil, err
		}

		trends := make([]models.SalaryTrend, 0, len(aggregates))
		for _, agg := range aggregates {
			yearSalaries, err := s.repo.SalariesByYear(ctx, agg.Year)
			if err != nil {
				return nil, err
			}
			trends = append(trends, models.SalaryTrend{
				Year:         agg.Year,
				AvgSalary:    round2(agg.AvgSalary),
				MedianSalary: round2(median(yearSalaries)),
				Count:        agg.Count,
			})
		}
		return trends, nil
	})
}

// TopCompanies returns the best-paying companies with at least two reports.
func (s *AnalyticsService) TopCompanies(ctx context.Context, limit int) ([]models.CompanyStats, error) {
	if limit <= 0 {
		limit = 15
	}
	key := "top-companies:" + strconv.Itoa(limit)
	return cached(ctx, s, key, func(ctx context.Context) ([]models.CompanyStats, error) {
		stats, err := s.repo.TopCompanies(ctx, limit)
		if err != nil {
			return nil, err
		}
		for i := range stats {
			stats[i].AvgSalary = round2(stats[i].AvgSalary)
			stats[i].SalaryRangeMin = round2(stats[i].SalaryRangeMin)
			stats[i].SalaryRangeMax = round2(stats[i].SalaryRangeMax)
		}
		return stats, nil
	})
}

// TopUniversities returns the best-paid universities with at least three reports.
func (s *AnalyticsService) TopUniversities(ctx context.Context, limit int) ([]models.UniversityStats, error) {
	if limit <= 0 {
		limit = 10
	}
	key := "top-universities:" + strconv.Itoa(limit)
	return cached(ctx, s, key, func(ctx context.Context) ([]models.UniversityStats, error) {
		stats, err := s.repo.TopUniversities(ctx, limit)
		if err != nil {
			return nil, err
		}
		for i := range stats {
			stats[i].AvgSalary = round2(stats[i].AvgSalary)
		}
		return stats, nil
	})
}

// TopLocations returns the best-paid locations with at least two reports.
func (s *AnalyticsService) TopLocations(ctx context.Context, limit int) ([]models.LocationStats, error) {
	if limit <= 0 {
		limit = 10
	}
	key := "top-locations:" + strconv.Itoa(limit)
	return cached(ctx, s, key, func(ctx context.Context) ([]models.LocationStats, error) {
		stats, err := s.repo.TopLocations(ctx, limit)
		if err != nil {
			return nil, err
		}
		for i := range stats {
			stats[i].AvgSalary = round2(stats[i].AvgSalary)
		}
		return stats, nil
	})
}

// TopRoles returns the best-paid roles with at least two reports.
func (s *AnalyticsService) TopRoles(ctx context.Context, limit int) ([]models.RoleStats, error) {
	if limit <= 0 {
		limit = 10
	}
	key := "top-roles:" + strconv.Itoa(limit)
	return cached(ctx, s, key, func(ctx context.Context) ([]models.RoleStats, error) {
		stats, err := s.repo.TopRoles(ctx, limit)
		if err != nil {
			return nil, err
		}
		for i := range stats {
			stats[i].AvgSalary = round2(stats[i].AvgSalary)
		}
		return stats, nil
	})
}

// SalaryDistribution buckets every published salary into fixed hourly
// ranges and reports each bucket's share of the total.
func (s *AnalyticsService) SalaryDistribution(ctx context.Context) ([]models.SalaryBucket, error) {
	return cached(ctx, s, "salary-distribution", func(ctx context.Context) ([]models.SalaryBucket, error) {
		salaries, err := s.repo.OrderedSalaries(ctx)
		if err != nil {
			return nil, err
		}

		total := len(salaries)
		buckets := make([]models.SalaryBucket, 0, len(salaryBuckets))
		for _, b := range salaryBuckets {
			count := 0
			for _, salary := range salaries {
				if salary >= b.Min && salary < b.Max {
					count++
				}
			}
			pct := 0.0
			if total > 0 {
				pct = float64(count) / float64(total) * 100
			}
			buckets = append(buckets, models.SalaryBucket{
				SalaryRange: b.Label,
				Count:       count,
				Percentage:  round1(pct),
			})
		}
		return buckets, nil
	})
}

// CompanyComparison returns side-by-side stats for a comma-separated
// company list. Companies with no reports are omitted.
func (s *AnalyticsService) CompanyComparison(ctx context.Context, companies string) (map[string]models.CompanyComparison, error) {
	result := make(map[string]models.CompanyComparison)
	for _, raw := range strings.Split(companies, ",") {
		company := strings.TrimSpace(raw)
		if company == "" {
			continue
		}
		salaries, err := s.repo.SalariesByCompany(ctx, company)
		if err != nil {
			return nil, err
		}
		if len(salaries) == 0 {
			continue
		}

		sorted := append([]float64(nil), salaries...)
		sort.Float64s(sorted)
		result[company] = models.CompanyComparison{
			AvgSalary:    round2(mean(salaries)),
			MedianSalary: round2(median(sorted)),
			MinSalary:    round2(sorted[0]),
			MaxSalary:    round2(sorted[len(sorted)-1]),
			TotalReports: len(salaries),
			SalaryData:   salaries,
		}
	}
	return result, nil
}

// YearlyGrowth returns year-over-year submission growth. The first year
// has no predecessor so its rate is zero.
func (s *AnalyticsService) YearlyGrowth(ctx context.Context) ([]models.YearlyGrowth, error) {
	return cached(ctx, s, "yearly-growth", func(ctx context.Context) ([]models.YearlyGrowth, error) {
		aggregates, err := s.repo.YearlyAggregates(ctx)
		if err != nil {
			return nil, err
		}

		growth := make([]models.YearlyGrowth, 0, len(aggregates))
		prev := 0
		for i, agg := range aggregates {
			rate := 0.0
			if i > 0 && prev > 0 {
				rate = float64(agg.Count-prev) / float64(prev) * 100
			}
			growth = append(growth, models.YearlyGrowth{
				Year:         agg.Year,
				TotalReports: agg.Count,
				GrowthRate:   round1(rate),
			})
			prev = agg.Count
		}
		return growth, nil
	})
}

// SalaryByTerm returns average salary per work term, terms 1 through 7.
func (s *AnalyticsService) SalaryByTerm(ctx context.Context) ([]models.TermStats, error) {
	return cached(ctx, s, "salary-by-term", func(ctx context.Context) ([]models.TermStats, error) {
		stats, err := s.repo.TermAverages(ctx)
		if err != nil {
			return nil, err
		}
		for i := range stats {
			stats[i].AvgSalary = round2(stats[i].AvgSalary)
		}
		return stats, nil
	})
}

// MarketInsights returns the percentile spread, the recent-vs-older
// comparison and the headline role and location by report count.
func (s *AnalyticsService) MarketInsights(ctx context.Context) (*models.MarketInsights, error) {
	return cached(ctx, s, "market-insights", func(ctx context.Context) (*models.MarketInsights, error) {
		total, err := s.repo.CountReports(ctx)
		if err != nil {
			return nil, err
		}

		salaries, err := s.repo.OrderedSalaries(ctx)
		if err != nil {
			return nil, err
		}

		var p25, p75, p90 float64
		if len(salaries) >= 2 {
			p25 = quantile(salaries, 1, 4)
			p75 = quantile(salaries, 3, 4)
			p90 = quantile(salaries, 9, 10)
		}

		recentAvg, err := s.repo.AverageSince(ctx, currentYear-1)
		if err != nil {
			return nil, err
		}
		olderAvg, err := s.repo.AverageBefore(ctx, currentYear-1)
		if err != nil {
			return nil, err
		}
		improvement := 0.0
		if olderAvg > 0 {
			improvement = (recentAvg - olderAvg) / olderAvg * 100
		}

		role, roleCount, roleFound, err := s.repo.MostCommonRole(ctx)
		if err != nil {
			return nil, err
		}
		if !roleFound {
			role, roleCount = "N/A", 0
		}

		location, locationCount, locationFound, err := s.repo.TopLocationByCount(ctx)
		if err != nil {
			return nil, err
		}
		if !locationFound {
			location, locationCount = "N/A", 0
		}

		return &models.MarketInsights{
			TotalReports: total,
			SalaryPercentiles: models.SalaryPercentiles{
				P25: round2(p25),
				P75: round2(p75),
				P90: round2(p90),
			},
			RecentVsOlder: models.RecentComparison{
				RecentAvg:   round2(recentAvg),
				OlderAvg:    round2(olderAvg),
				Improvement: round1(improvement),
			},
			MostCommonRole: models.MostCommonRole{Role: role, Count: roleCount},
			TopLocation:    models.TopLocationCount{Location: location, Count: locationCount},
		}, nil
	})
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median expects values sorted ascending.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

// quantile returns the k-th of n exclusive-method cut points over
// sorted ascending values, interpolating at position k*(len+1)/n.
// Cut points outside the sample extrapolate linearly from the
// outermost pair, so delta is taken from the clamped index.
func quantile(sorted []float64, k, n int) float64 {
	ld := len(sorted)
	if ld == 0 {
		return 0
	}
	if ld == 1 {
		return sorted[0]
	}
	m := ld + 1
	j := k * m / n
	if j < 1 {
		j = 1
	}
	if j > ld-1 {
		j = ld - 1
	}
	delta := k*m - j*n
	return (sorted[j-1]*float64(n-delta) + sorted[j]*float64(delta)) / float64(n)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
