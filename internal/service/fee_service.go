package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type feeRepository interface {
	ListFeeTypes(ctx context.Context) ([]models.FeeType, error)
	ListPayments(ctx context.Context) ([]models.PaymentDetail, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
	DeletePayment(ctx context.Context, id int64) error
}

// FeeService coordinates fee-type lookups and the payment ledger.
type FeeService struct {
	repo      feeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeeService constructs the fee service.
func NewFeeService(repo feeRepository, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if validate == nil {
		validate = newValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeService{repo: repo, validator: validate, logger: logger}
}

// RecordPaymentRequest is the payload for recording a payment.
type RecordPaymentRequest struct {
	StudentID     string          `json:"student_id" validate:"required"`
	FeeTypeID     int64           `json:"fee_type_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentDate   *time.Time      `json:"payment_date"`
	PaymentMethod string          `json:"payment_method"`
	ReceiptNumber *string         `json:"receipt_number"`
	Notes         *string         `json:"notes"`
}

// ListFeeTypes returns every fee type.
func (s *FeeService) ListFeeTypes(ctx context.Context) ([]models.FeeType, error) {
	types, err := s.repo.ListFeeTypes(ctx)
	if err != nil {
		return nil, wrapInternal(err, "failed to list fee types")
	}
	if types == nil {
		types = []models.FeeType{}
	}
	return types, nil
}

// ListPayments returns the full payment ledger.
func (s *FeeService) ListPayments(ctx context.Context) ([]models.PaymentDetail, error) {
	payments, err := s.repo.ListPayments(ctx)
	if err != nil {
		return nil, wrapInternal(err, "failed to list payments")
	}
	if payments == nil {
		payments = []models.PaymentDetail{}
	}
	return payments, nil
}

// RecordPayment validates the payload and appends a payment to the ledger.
func (s *FeeService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid payment payload")
	}
	if !req.Amount.IsPositive() {
		return nil, appErrors.ValidationField("amount must be greater than zero", "amount", req.Amount.String())
	}

	payment := &models.Payment{
		StudentID:     req.StudentID,
		FeeTypeID:     req.FeeTypeID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		ReceiptNumber: req.ReceiptNumber,
		Notes:         req.Notes,
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	}

	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, wrapInternal(err, "failed to record payment")
	}
	s.logger.Info("payment recorded",
		zap.Int64("payment_id", payment.ID),
		zap.String("student_id", payment.StudentID),
		zap.String("amount", payment.Amount.String()))
	return payment, nil
}

// DeletePayment removes one payment record.
func (s *FeeService) DeletePayment(ctx context.Context, id int64) error {
	if id <= 0 {
		return appErrors.ValidationField("payment id must be positive", "id", id)
	}
	if err := s.repo.DeletePayment(ctx, id); err != nil {
		return wrapInternal(err, "failed to delete payment")
	}
	s.logger.Info("payment deleted", zap.Int64("payment_id", id))
	return nil
}
