package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scoperhq/scoper-api/internal/middleware"
	"github.com/scoperhq/scoper-api/internal/service"
	appErrors "github.com/scoperhq/scoper-api/pkg/errors"
	"github.com/scoperhq/scoper-api/pkg/response"
)

// AdminHandler exposes the moderation and maintenance endpoints. Every
// route behind it is wrapped in basic auth and rate limiting.
type AdminHandler struct {
	moderation *service.ModerationService
	seeder     *service.SeedService
	exporter   *service.ExportService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(moderation *service.ModerationService, seeder *service.SeedService, exporter *service.ExportService) *AdminHandler {
	return &AdminHandler{moderation: moderation, seeder: seeder, exporter: exporter}
}

// PendingSubmissions godoc
// @Summary List submissions awaiting review
// @Tags Admin
// @Produce json
// @Security BasicAuth
// @Success 200 {array} models.PendingSalary
// @Router /admin/pending-submissions [get]
func (h *AdminHandler) PendingSubmissions(c *gin.Context) {
	pending, err := h.moderation.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, pending)
}

// Approve godoc
// @Summary Publish a pending submission
// @Tags Admin
// @Produce json
// @Security BasicAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/approve/{id} [post]
func (h *AdminHandler) Approve(c *gin.Context) {
	id, ok := submissionID(c)
	if !ok {
		return
	}
	if _, err := h.moderation.Approve(c.Request.Context(), id, adminUser(c), c.ClientIP(), c.GetHeader("User-Agent")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Submission approved")
}

// Reject godoc
// @Summary Reject a pending submission
// @Tags Admin
// @Produce json
// @Security BasicAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/reject/{id} [post]
func (h *AdminHandler) Reject(c *gin.Context) {
	id, ok := submissionID(c)
	if !ok {
		return
	}
	if _, err := h.moderation.Reject(c.Request.Context(), id, adminUser(c), c.ClientIP(), c.GetHeader("User-Agent")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Submission rejected")
}

// PopulateDB godoc
// @Summary Seed the database from the bundled survey data
// @Tags Admin
// @Produce json
// @Security BasicAuth
// @Success 200 {object} service.SeedResult
// @Router /admin/populate-db [get]
func (h *AdminHandler) PopulateDB(c *gin.Context) {
	result, err := h.seeder.Populate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, result)
}

// Export godoc
// @Summary Download the published reports as CSV or PDF
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Security BasicAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /admin/export [get]
func (h *AdminHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	payload, contentType, filename, err := h.exporter.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}

func submissionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "submission id must be a positive integer"))
		return 0, false
	}
	return id, true
}

func adminUser(c *gin.Context) string {
	if user, ok := c.Get(middleware.ContextAdminKey); ok {
		if name, ok := user.(string); ok {
			return name
		}
	}
	return ""
}
