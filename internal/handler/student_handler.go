package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context) ([]models.StudentDetail, error)
	ListForForms(ctx context.Context) ([]models.StudentSummary, error)
	ListRoster(ctx context.Context) ([]models.StudentSummary, error)
	Enroll(ctx context.Context, req service.EnrollStudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id string) error
}

// StudentHandler wires the student service to HTTP endpoints.
type StudentHandler struct {
	service studentService
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service studentService) *StudentHandler {
	return &StudentHandler{service: service}
}

// List godoc
// @Summary List all students
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// ListForFees godoc
// @Summary List active students for payment forms
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/for-fees [get]
func (h *StudentHandler) ListForFees(c *gin.Context) {
	students, err := h.service.ListForForms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// ListForAttendance godoc
// @Summary List active students ordered for attendance entry
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/for-attendance [get]
func (h *StudentHandler) ListForAttendance(c *gin.Context) {
	students, err := h.service.ListRoster(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// ListForReport godoc
// @Summary List active students for report selection
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/for-report [get]
func (h *StudentHandler) ListForReport(c *gin.Context) {
	students, err := h.service.ListForForms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Enroll godoc
// @Summary Enroll a new student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.EnrollStudentRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Enroll(c *gin.Context) {
	var req service.EnrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	student, err := h.service.Enroll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Delete godoc
// @Summary Delete a student and dependent records
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
