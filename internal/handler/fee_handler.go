package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

type feeService interface {
	ListFeeTypes(ctx context.Context) ([]models.FeeType, error)
	ListPayments(ctx context.Context) ([]models.PaymentDetail, error)
	RecordPayment(ctx context.Context, req service.RecordPaymentRequest) (*models.Payment, error)
	DeletePayment(ctx context.Context, id int64) error
}

// FeeHandler wires the fee service to HTTP endpoints.
type FeeHandler struct {
	service feeService
}

// NewFeeHandler constructs the handler.
func NewFeeHandler(service feeService) *FeeHandler {
	return &FeeHandler{service: service}
}

// ListFeeTypes godoc
// @Summary List fee types
// @Tags Fees
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /fee-types [get]
func (h *FeeHandler) ListFeeTypes(c *gin.Context) {
	types, err := h.service.ListFeeTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, types)
}

// ListPayments godoc
// @Summary List the payment ledger
// @Tags Fees
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /fees [get]
func (h *FeeHandler) ListPayments(c *gin.Context) {
	payments, err := h.service.ListPayments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments)
}

// RecordPayment godoc
// @Summary Record a payment
// @Tags Fees
// @Accept json
// @Produce json
// @Param payload body service.RecordPaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /fees [post]
func (h *FeeHandler) RecordPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	payment, err := h.service.RecordPayment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, payment)
}

// DeletePayment godoc
// @Summary Delete a payment
// @Tags Fees
// @Produce json
// @Param id path int true "Payment ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /fees/{id} [delete]
func (h *FeeHandler) DeletePayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.ValidationField("payment id must be numeric", "id", c.Param("id")))
		return
	}
	if err := h.service.DeletePayment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
