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

type discountService interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Discount, error)
	Grant(ctx context.Context, req service.GrantDiscountRequest) (*models.Discount, error)
}

// DiscountHandler wires the discount service to HTTP endpoints.
type DiscountHandler struct {
	service discountService
}

// NewDiscountHandler constructs the handler.
func NewDiscountHandler(service discountService) *DiscountHandler {
	return &DiscountHandler{service: service}
}

// ListByStudent godoc
// @Summary List a student's discounts
// @Tags Discounts
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /discounts/{studentId} [get]
func (h *DiscountHandler) ListByStudent(c *gin.Context) {
	discounts, err := h.service.ListByStudent(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, discounts)
}

// Grant godoc
// @Summary Grant a discount
// @Tags Discounts
// @Accept json
// @Produce json
// @Param payload body service.GrantDiscountRequest true "Discount payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /discounts [post]
func (h *DiscountHandler) Grant(c *gin.Context) {
	var req service.GrantDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	discount, err := h.service.Grant(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, discount)
}
