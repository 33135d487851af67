package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scoperhq/scoper-api/internal/service"
	appErrors "github.com/scoperhq/scoper-api/pkg/errors"
	"github.com/scoperhq/scoper-api/pkg/response"
)

// CompanyHandler exposes the per-company drill-down endpoints.
type CompanyHandler struct {
	salaries *service.SalaryService
}

// NewCompanyHandler constructs CompanyHandler.
func NewCompanyHandler(salaries *service.SalaryService) *CompanyHandler {
	return &CompanyHandler{salaries: salaries}
}

// ListCompanies godoc
// @Summary List distinct company names
// @Tags Companies
// @Produce json
// @Success 200 {array} string
// @Router /all-companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.salaries.Companies(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, companies)
}

// Salaries godoc
// @Summary List reports for one company
// @Tags Companies
// @Produce json
// @Param company query string true "Company name"
// @Success 200 {array} models.ReportedSalary
// @Router /company/all-salaries [get]
func (h *CompanyHandler) Salaries(c *gin.Context) {
	company, ok := requiredQuery(c, "company")
	if !ok {
		return
	}
	reports, err := h.salaries.CompanySalaries(c.Request.Context(), company)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, reports)
}

// AverageSalary godoc
// @Summary Average hourly salary for one company
// @Tags Companies
// @Produce json
// @Param company query string true "Company name"
// @Success 200 {number} number
// @Router /company/average-salary [get]
func (h *CompanyHandler) AverageSalary(c *gin.Context) {
	company, ok := requiredQuery(c, "company")
	if !ok {
		return
	}
	avg, err := h.salaries.CompanyAverage(c.Request.Context(), company)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, avg)
}

// TopUniversity godoc
// @Summary Most reported university for one company
// @Tags Companies
// @Produce json
// @Param company query string true "Company name"
// @Success 200 {array} string
// @Router /company/top-university [get]
func (h *CompanyHandler) TopUniversity(c *gin.Context) {
	company, ok := requiredQuery(c, "company")
	if !ok {
		return
	}
	university, err := h.salaries.CompanyTopUniversity(c.Request.Context(), company)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, singleton(university))
}

// TopLocation godoc
// @Summary Most reported location for one company
// @Tags Companies
// @Produce json
// @Param company query string true "Company name"
// @Success 200 {array} string
// @Router /company/top-location [get]
func (h *CompanyHandler) TopLocation(c *gin.Context) {
	company, ok := requiredQuery(c, "company")
	if !ok {
		return
	}
	location, err := h.salaries.CompanyTopLocation(c.Request.Context(), company)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, singleton(location))
}

// requiredQuery pulls a mandatory query parameter or writes the 422.
func requiredQuery(c *gin.Context, name string) (string, bool) {
	value := strings.TrimSpace(c.Query(name))
	if value == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, name+" query parameter is required"))
		return "", false
	}
	return value, true
}

// singleton wraps a drill-down answer as a one-element array, the shape
// the dashboard widgets consume. An unknown group yields an empty array.
func singleton(value string) []string {
	if value == "" {
		return []string{}
	}
	return []string{value}
}
