package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

func TestFeeRepositoryPaymentSumsByStudent(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewFeeRepository(exec)

	rows := sqlmock.NewRows([]string{"fee_type_id", "paid"}).
		AddRow(int64(1), "300000").
		AddRow(int64(2), "50000")
	mock.ExpectQuery("SELECT p.fee_type_id").
		WithArgs("STD-1").
		WillReturnRows(rows)

	sums, err := repo.PaymentSumsByStudent(context.Background(), "STD-1")
	require.NoError(t, err)
	require.Len(t, sums, 2)
	require.True(t, sums[0].Paid.Equal(decimal.NewFromInt(300000)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryCreatePaymentInsertsWithDefaults(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewFeeRepository(exec)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE id = $1")).
		WithArgs("STD-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM fee_types WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO payments").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectCommit()

	payment := &models.Payment{
		StudentID: "STD-1",
		FeeTypeID: 4,
		Amount:    decimal.NewFromInt(300000),
	}
	require.NoError(t, repo.CreatePayment(context.Background(), payment))
	require.Equal(t, int64(9), payment.ID)
	require.Equal(t, "cash", payment.PaymentMethod)
	require.False(t, payment.PaymentDate.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryCreatePaymentRejectsUnknownFeeType(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewFeeRepository(exec)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE id = $1")).
		WithArgs("STD-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM fee_types WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.CreatePayment(context.Background(), &models.Payment{
		StudentID: "STD-1",
		FeeTypeID: 99,
		Amount:    decimal.NewFromInt(1000),
	})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "fee_type_id", appErr.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryClassTotalFees(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewFeeRepository(exec)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM fee_types WHERE class_id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("750000"))

	total, err := repo.ClassTotalFees(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.NewFromInt(750000)))
	require.NoError(t, mock.ExpectationsWereMet())
}
