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

func TestDiscountRepositoryCreateResolvesPercentageAtCreation(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewDiscountRepository(exec)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE id = $1")).
		WithArgs("STD-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(ft.amount), 0)")).
		WithArgs("STD-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("500000"))
	mock.ExpectQuery("INSERT INTO discounts").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectCommit()

	pct := decimal.NewFromInt(10)
	discount := &models.Discount{
		StudentID:  "STD-1",
		Percentage: &pct,
		Reason:     "scholarship",
		ApprovedBy: "principal",
	}
	require.NoError(t, repo.Create(context.Background(), discount))
	require.True(t, discount.Amount.Equal(decimal.NewFromInt(50000)),
		"expected 10%% of 500000, got %s", discount.Amount)
	require.Equal(t, int64(11), discount.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscountRepositoryCreateKeepsFixedAmount(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewDiscountRepository(exec)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE id = $1")).
		WithArgs("STD-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO discounts").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectCommit()

	discount := &models.Discount{
		StudentID:  "STD-1",
		Amount:     decimal.NewFromInt(25000),
		Reason:     "sibling",
		ApprovedBy: "principal",
	}
	require.NoError(t, repo.Create(context.Background(), discount))
	require.True(t, discount.Amount.Equal(decimal.NewFromInt(25000)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscountRepositoryCreateRejectsUnknownStudent(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewDiscountRepository(exec)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE id = $1")).
		WithArgs("STD-missing").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Discount{
		StudentID:  "STD-missing",
		Amount:     decimal.NewFromInt(1000),
		Reason:     "x",
		ApprovedBy: "y",
	})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "student_id", appErr.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}
