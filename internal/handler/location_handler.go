package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scoperhq/scoper-api/internal/service"
	"github.com/scoperhq/scoper-api/pkg/response"
)

// LocationHandler exposes the per-location drill-down endpoints.
type LocationHandler struct {
	salaries *service.SalaryService
}

// NewLocationHandler constructs LocationHandler.
func NewLocationHandler(salaries *service.SalaryService) *LocationHandler {
	return &LocationHandler{salaries: salaries}
}

// ListLocations godoc
// @Summary List distinct locations
// @Tags Locations
// @Produce json
// @Success 200 {array} string
// @Router /all-locations [get]
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.salaries.Locations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, locations)
}

// Salaries godoc
// @Summary List reports for one location
// @Tags Locations
// @Produce json
// @Param location query string true "Location"
// @Success 200 {array} models.ReportedSalary
// @Router /location/all-salaries [get]
func (h *LocationHandler) Salaries(c *gin.Context) {
	location, ok := requiredQuery(c, "location")
	if !ok {
		return
	}
	reports, err := h.salaries.LocationSalaries(c.Request.Context(), location)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, reports)
}

// AverageSalary godoc
// @Summary Average hourly salary for one location
// @Tags Locations
// @Produce json
// @Param location query string true "Location"
// @Success 200 {number} number
// @Router /location/average-salary [get]
func (h *LocationHandler) AverageSalary(c *gin.Context) {
	location, ok := requiredQuery(c, "location")
	if !ok {
		return
	}
	avg, err := h.salaries.LocationAverage(c.Request.Context(), location)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, avg)
}

// TopUniversity godoc
// @Summary Most reported university for one location
// @Tags Locations
// @Produce json
// @Param location query string true "Location"
// @Success 200 {array} string
// @Router /location/top-university [get]
func (h *LocationHandler) TopUniversity(c *gin.Context) {
	location, ok := requiredQuery(c, "location")
	if !ok {
		return
	}
	university, err := h.salaries.LocationTopUniversity(c.Request.Context(), location)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, singleton(university))
}

// TopCompany godoc
// @Summary Most reported company for one location
// @Tags Locations
// @Produce json
// @Param location query string true "Location"
// @Success 200 {array} string
// @Router /location/top-company [get]
func (h *LocationHandler) TopCompany(c *gin.Context) {
	location, ok := requiredQuery(c, "location")
	if !ok {
		return
	}
	company, err := h.salaries.LocationTopCompany(c.Request.Context(), location)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, singleton(company))
}
