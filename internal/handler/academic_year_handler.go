package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

type academicYearService interface {
	List(ctx context.Context) ([]models.AcademicYear, error)
}

// AcademicYearHandler wires academic year lookups to HTTP endpoints.
type AcademicYearHandler struct {
	service academicYearService
}

// NewAcademicYearHandler constructs the handler.
func NewAcademicYearHandler(service academicYearService) *AcademicYearHandler {
	return &AcademicYearHandler{service: service}
}

// List godoc
// @Summary List academic years
// @Tags AcademicYears
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /academic-years [get]
func (h *AcademicYearHandler) List(c *gin.Context) {
	years, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, years)
}
