package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type discountRepoStub struct {
	discounts map[string][]models.Discount
	created   []*models.Discount
	err       error
}

func (s *discountRepoStub) ListByStudent(ctx context.Context, studentID string) ([]models.Discount, error) {
	return s.discounts[studentID], s.err
}

func (s *discountRepoStub) Create(ctx context.Context, discount *models.Discount) error {
	if s.err != nil {
		return s.err
	}
	discount.ID = int64(len(s.created) + 1)
	s.created = append(s.created, discount)
	return nil
}

func TestDiscountServiceGrantRequiresAmountOrPercentage(t *testing.T) {
	svc := NewDiscountService(&discountRepoStub{}, nil, nil)

	_, err := svc.Grant(context.Background(), GrantDiscountRequest{
		StudentID:  "STD-1",
		Reason:     "scholarship",
		ApprovedBy: "principal",
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.ElementsMatch(t, []string{"amount", "percentage"}, appErr.Fields)
}

func TestDiscountServiceGrantRejectsBothAmountAndPercentage(t *testing.T) {
	svc := NewDiscountService(&discountRepoStub{}, nil, nil)

	amount := decimal.NewFromInt(1000)
	pct := decimal.NewFromInt(10)
	_, err := svc.Grant(context.Background(), GrantDiscountRequest{
		StudentID:  "STD-1",
		Amount:     &amount,
		Percentage: &pct,
		Reason:     "scholarship",
		ApprovedBy: "principal",
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestDiscountServiceGrantRejectsPercentageOutOfRange(t *testing.T) {
	svc := NewDiscountService(&discountRepoStub{}, nil, nil)

	pct := decimal.NewFromInt(150)
	_, err := svc.Grant(context.Background(), GrantDiscountRequest{
		StudentID:  "STD-1",
		Percentage: &pct,
		Reason:     "scholarship",
		ApprovedBy: "principal",
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "percentage", appErr.Field)
}

func TestDiscountServiceGrantPercentageBased(t *testing.T) {
	repo := &discountRepoStub{}
	svc := NewDiscountService(repo, nil, nil)

	pct := decimal.NewFromInt(10)
	discount, err := svc.Grant(context.Background(), GrantDiscountRequest{
		StudentID:  "STD-1",
		Percentage: &pct,
		Reason:     "scholarship",
		ApprovedBy: "principal",
	})
	require.NoError(t, err)
	assert.NotNil(t, discount.Percentage)
	assert.True(t, discount.Amount.IsZero(), "amount resolution belongs to the repository")
	require.Len(t, repo.created, 1)
}

func TestDiscountServiceListRequiresStudentID(t *testing.T) {
	svc := NewDiscountService(&discountRepoStub{}, nil, nil)

	_, err := svc.ListByStudent(context.Background(), "")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "student_id", appErr.Field)
}
