package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scoperhq/scoper-api/internal/dto"
	"github.com/scoperhq/scoper-api/internal/models"
	"github.com/scoperhq/scoper-api/internal/service"
	appErrors "github.com/scoperhq/scoper-api/pkg/errors"
	"github.com/scoperhq/scoper-api/pkg/response"
)

// SalaryHandler exposes the public submission and listing endpoints.
type SalaryHandler struct {
	salaries *service.SalaryService
}

// NewSalaryHandler constructs SalaryHandler.
func NewSalaryHandler(salaries *service.SalaryService) *SalaryHandler {
	return &SalaryHandler{salaries: salaries}
}

// Submit godoc
// @Summary Submit a salary report for moderation
// @Tags Salaries
// @Accept json
// @Produce json
// @Param payload body dto.SubmitSalaryRequest true "Salary report"
// @Success 201 {object} dto.SubmissionAccepted
// @Failure 422 {object} response.Envelope
// @Router /submit-salary [post]
func (h *SalaryHandler) Submit(c *gin.Context) {
	var req dto.SubmitSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	pending, fields, err := h.salaries.Submit(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(fields) > 0 {
		response.ValidationError(c, fields)
		return
	}

	response.Raw(c, http.StatusCreated, dto.SubmissionAccepted{
		ID:     pending.ID,
		Status: pending.Status,
	})
}

// List godoc
// @Summary List published salary reports
// @Tags Salaries
// @Produce json
// @Param offset query int false "Rows to skip"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Page
// @Router /all-salaries [get]
func (h *SalaryHandler) List(c *gin.Context) {
	// without paging params the whole set comes back as a bare array
	if c.Query("limit") == "" && c.Query("offset") == "" {
		reports, err := h.salaries.ListAll(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Raw(c, http.StatusOK, reports)
		return
	}

	var filter models.SalaryFilter
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filter.Offset = offset
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil {
		filter.Limit = limit
	}

	reports, total, err := h.salaries.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, reports, total)
}
