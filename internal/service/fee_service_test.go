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

type feeRepoStub struct {
	feeTypes []models.FeeType
	payments []models.PaymentDetail
	created  []*models.Payment
	deleted  []int64
	err      error
}

func (s *feeRepoStub) ListFeeTypes(ctx context.Context) ([]models.FeeType, error) {
	return s.feeTypes, s.err
}

func (s *feeRepoStub) ListPayments(ctx context.Context) ([]models.PaymentDetail, error) {
	return s.payments, s.err
}

func (s *feeRepoStub) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if s.err != nil {
		return s.err
	}
	payment.ID = int64(len(s.created) + 1)
	s.created = append(s.created, payment)
	return nil
}

func (s *feeRepoStub) DeletePayment(ctx context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func TestFeeServiceRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	repo := &feeRepoStub{}
	svc := NewFeeService(repo, nil, nil)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
		StudentID: "STD-1",
		FeeTypeID: 4,
		Amount:    decimal.NewFromInt(-100),
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "amount", appErr.Field)
	assert.Empty(t, repo.created)
}

func TestFeeServiceRecordPaymentRequiresReferences(t *testing.T) {
	repo := &feeRepoStub{}
	svc := NewFeeService(repo, nil, nil)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
		Amount: decimal.NewFromInt(1000),
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "student_id")
	assert.Contains(t, appErr.Fields, "fee_type_id")
}

func TestFeeServiceRecordPaymentSucceeds(t *testing.T) {
	repo := &feeRepoStub{}
	svc := NewFeeService(repo, nil, nil)

	payment, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
		StudentID: "STD-1",
		FeeTypeID: 4,
		Amount:    decimal.NewFromInt(300000),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), payment.ID)
	require.Len(t, repo.created, 1)
	assert.True(t, repo.created[0].Amount.Equal(decimal.NewFromInt(300000)))
}

func TestFeeServiceDeletePaymentRejectsBadID(t *testing.T) {
	svc := NewFeeService(&feeRepoStub{}, nil, nil)

	err := svc.DeletePayment(context.Background(), 0)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestFeeServiceListPaymentsNeverReturnsNil(t *testing.T) {
	svc := NewFeeService(&feeRepoStub{}, nil, nil)

	payments, err := svc.ListPayments(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, payments)
}
