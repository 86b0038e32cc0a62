package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/dto"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

type reportService interface {
	StudentReport(ctx context.Context, studentID string, ref time.Time) (*dto.StudentReportResponse, error)
}

// ReportHandler wires the report service to HTTP endpoints.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// StudentReport godoc
// @Summary Full financial and attendance report for one student
// @Tags Reports
// @Produce json
// @Param id path string true "Student ID"
// @Param date query string false "Reference date (YYYY-MM-DD). Defaults to today"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/student/{id} [get]
func (h *ReportHandler) StudentReport(c *gin.Context) {
	var ref time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.ValidationField("date must be YYYY-MM-DD", "date", raw))
			return
		}
		ref = parsed
	}
	report, err := h.service.StudentReport(c.Request.Context(), c.Param("id"), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}
