package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

type classService interface {
	ListClasses(ctx context.Context) ([]models.Class, error)
	ListSections(ctx context.Context, classID *int64) ([]models.SectionDetail, error)
	ListGrouped(ctx context.Context) ([]models.ClassSections, error)
}

// ClassHandler wires the class service to HTTP endpoints.
type ClassHandler struct {
	service classService
}

// NewClassHandler constructs the handler.
func NewClassHandler(service classService) *ClassHandler {
	return &ClassHandler{service: service}
}

// ListClasses godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.service.ListClasses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// ListSections godoc
// @Summary List sections, flat or grouped by class
// @Tags Classes
// @Produce json
// @Param class_id query int false "Filter by class"
// @Param grouped query bool false "Group sections under their class"
// @Success 200 {object} response.Envelope
// @Router /sections [get]
func (h *ClassHandler) ListSections(c *gin.Context) {
	if c.Query("grouped") == "true" {
		grouped, err := h.service.ListGrouped(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, grouped)
		return
	}

	var classID *int64
	if raw := c.Query("class_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.ValidationField("class_id must be numeric", "class_id", raw))
			return
		}
		classID = &parsed
	}
	sections, err := h.service.ListSections(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sections)
}
