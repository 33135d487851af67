package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scoperhq/scoper-api/internal/service"
	"github.com/scoperhq/scoper-api/pkg/response"
)

// AnalyticsHandler serves the dashboard aggregate endpoints.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs AnalyticsHandler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Overview godoc
// @Summary Headline metrics over the published reports
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.AnalyticsOverview
// @Router /analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	overview, err := h.analytics.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, overview)
}

// SalaryTrends godoc
// @Summary Per-year salary averages and medians
// @Tags Analytics
// @Produce json
// @Success 200 {array} models.SalaryTrend
// @Router /analytics/salary-trends [get]
func (h *AnalyticsHandler) SalaryTrends(c *gin.Context) {
	trends, err := h.analytics.SalaryTrends(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, trends)
}

// TopCompanies godoc
// @Summary Best-paying companies
// @Tags Analytics
// @Produce json
// @Param limit query int false "Maximum rows"
// @Success 200 {array} models.CompanyStats
// @Router /analytics/top-companies [get]
func (h *AnalyticsHandler) TopCompanies(c *gin.Context) {
	stats, err := h.analytics.TopCompanies(c.Request.Context(), limitQuery(c, 15))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, stats)
}

// TopUniversities godoc
// @Summary Best-paid universities
// @Tags Analytics
// @Produce json
// @Param limit query int false "Maximum rows"
// @Success 200 {array} models.UniversityStats
// @Router /analytics/top-universities [get]
func (h *AnalyticsHandler) TopUniversities(c *gin.Context) {
	stats, err := h.analytics.TopUniversities(c.Request.Context(), limitQuery(c, 10))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, stats)
}

// TopLocations godoc
// @Summary Best-paid locations
// @Tags Analytics
// @Produce json
// @Param limit query int false "Maximum rows"
// @Success 200 {array} models.LocationStats
// @Router /analytics/top-locations [get]
func (h *AnalyticsHandler) TopLocations(c *gin.Context) {
	stats, err := h.analytics.TopLocations(c.Request.Context(), limitQuery(c, 10))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, stats)
}

// TopRoles godoc
// @Summary Best-paid roles
// @Tags Analytics
// @Produce json
// @Param limit query int false "Maximum rows"
// @Success 200 {array} models.RoleStats
// @Router /analytics/top-roles [get]
func (h *AnalyticsHandler) TopRoles(c *gin.Context) {
	stats, err := h.analytics.TopRoles(c.Request.Context(), limitQuery(c, 10))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, stats)
}

// SalaryDistribution godoc
// @Summary Salary counts across fixed hourly ranges
// @Tags Analytics
// @Produce json
// @Success 200 {array} models.SalaryBucket
// @Router /analytics/salary-distribution [get]
func (h *AnalyticsHandler) SalaryDistribution(c *gin.Context) {
	buckets, err := h.analytics.SalaryDistribution(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, buckets)
}

// CompanyComparison godoc
// @Summary Side-by-side stats for a comma-separated company list
// @Tags Analytics
// @Produce json
// @Param companies query string true "Comma-separated company names"
// @Success 200 {object} map[string]models.CompanyComparison
// @Router /analytics/company-comparison [get]
func (h *AnalyticsHandler) CompanyComparison(c *gin.Context) {
	companies, ok := requiredQuery(c, "companies")
	if !ok {
		return
	}
	comparison, err := h.analytics.CompanyComparison(c.Request.Context(), companies)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, comparison)
}

// YearlyGrowth godoc
// @Summary Year-over-year submission growth
// @Tags Analytics
// @Produce json
// @Success 200 {array} models.YearlyGrowth
// @Router /analytics/yearly-growth [get]
func (h *AnalyticsHandler) YearlyGrowth(c *gin.Context) {
	growth, err := h.analytics.YearlyGrowth(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, growth)
}

// SalaryByTerm godoc
// @Summary Average salary per work term
// @Tags Analytics
// @Produce json
// @Success 200 {array} models.TermStats
// @Router /analytics/salary-by-term [get]
func (h *AnalyticsHandler) SalaryByTerm(c *gin.Context) {
	stats, err := h.analytics.SalaryByTerm(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, stats)
}

// MarketInsights godoc
// @Summary Percentiles, recency comparison and headline counts
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.MarketInsights
// @Router /analytics/market-insights [get]
func (h *AnalyticsHandler) MarketInsights(c *gin.Context) {
	insights, err := h.analytics.MarketInsights(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, insights)
}

func limitQuery(c *gin.Context, fallback int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(fallback)))
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
