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

type discountRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Discount, error)
	Create(ctx context.Context, discount *models.Discount) error
}

// DiscountService coordinates the append-only discount records.
type DiscountService struct {
	repo      discountRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDiscountService constructs the discount service.
func NewDiscountService(repo discountRepository, validate *validator.Validate, logger *zap.Logger) *DiscountService {
	if validate == nil {
		validate = newValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscountService{repo: repo, validator: validate, logger: logger}
}

// GrantDiscountRequest is the payload for approving a discount. Exactly one
// of Amount or Percentage must be supplied.
type GrantDiscountRequest struct {
	StudentID      string           `json:"student_id" validate:"required"`
	Amount         *decimal.Decimal `json:"amount"`
	Percentage     *decimal.Decimal `json:"percentage"`
	Reason         string           `json:"reason" validate:"required"`
	AcademicYearID *int64           `json:"academic_year_id"`
	ApprovedBy     string           `json:"approved_by" validate:"required"`
	ApprovalDate   *time.Time       `json:"approval_date"`
}

// ListByStudent returns a student's discount history.
func (s *DiscountService) ListByStudent(ctx context.Context, studentID string) ([]models.Discount, error) {
	if studentID == "" {
		return nil, appErrors.ValidationField("student id is required", "student_id", studentID)
	}
	discounts, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, wrapInternal(err, "failed to list discounts")
	}
	if discounts == nil {
		discounts = []models.Discount{}
	}
	return discounts, nil
}

// Grant validates the payload and records the discount. Percentage-based
// requests are resolved to a fixed amount during creation, so the stored
// record is unaffected by later fee changes.
func (s *DiscountService) Grant(ctx context.Context, req GrantDiscountRequest) (*models.Discount, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid discount payload")
	}
	if req.Amount == nil && req.Percentage == nil {
		return nil, appErrors.Validation("either amount or percentage is required", "amount", "percentage")
	}
	if req.Amount != nil && req.Percentage != nil {
		return nil, appErrors.Validation("amount and percentage are mutually exclusive", "amount", "percentage")
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, appErrors.ValidationField("amount must be greater than zero", "amount", req.Amount.String())
	}
	if req.Percentage != nil {
		if !req.Percentage.IsPositive() || req.Percentage.GreaterThan(decimal.NewFromInt(100)) {
			return nil, appErrors.ValidationField("percentage must be between 0 and 100", "percentage", req.Percentage.String())
		}
	}

	discount := &models.Discount{
		StudentID:      req.StudentID,
		Percentage:     req.Percentage,
		Reason:         req.Reason,
		AcademicYearID: req.AcademicYearID,
		ApprovedBy:     req.ApprovedBy,
	}
	if req.Amount != nil {
		discount.Amount = *req.Amount
	}
	if req.ApprovalDate != nil {
		discount.ApprovalDate = *req.ApprovalDate
	}

	if err := s.repo.Create(ctx, discount); err != nil {
		return nil, wrapInternal(err, "failed to grant discount")
	}
	s.logger.Info("discount granted",
		zap.Int64("discount_id", discount.ID),
		zap.String("student_id", discount.StudentID),
		zap.String("amount", discount.Amount.String()))
	return discount, nil
}
