package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scoperhq/scoper-api/internal/service"
	"github.com/scoperhq/scoper-api/pkg/response"
)

// ReferenceHandler serves the autocomplete vocabularies.
type ReferenceHandler struct {
	references *service.ReferenceService
}

// NewReferenceHandler constructs ReferenceHandler.
func NewReferenceHandler(references *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{references: references}
}

// Universities godoc
// @Summary List known university names
// @Tags Reference
// @Produce json
// @Success 200 {array} string
// @Router /all-universities [get]
func (h *ReferenceHandler) Universities(c *gin.Context) {
	names, err := h.references.Universities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, names)
}

// Roles godoc
// @Summary List known role names
// @Tags Reference
// @Produce json
// @Success 200 {array} string
// @Router /all-roles [get]
func (h *ReferenceHandler) Roles(c *gin.Context) {
	names, err := h.references.Roles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, names)
}

// InternshipRoles godoc
// @Summary List the curated internship role suggestions
// @Tags Reference
// @Produce json
// @Success 200 {array} string
// @Router /internship-roles [get]
func (h *ReferenceHandler) InternshipRoles(c *gin.Context) {
	response.Raw(c, http.StatusOK, h.references.InternshipRoles())
}
