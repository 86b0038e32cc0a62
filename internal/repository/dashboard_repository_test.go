package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
)

func TestDashboardRepositoryCountActiveStudents(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewDashboardRepository(exec)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students WHERE status = $1")).
		WithArgs(models.StudentStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(37))

	count, err := repo.CountActiveStudents(context.Background())
	require.NoError(t, err)
	require.Equal(t, 37, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryCountAttendanceByStatus(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewDashboardRepository(exec)

	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM attendance WHERE date = $1 AND status = $2")).
		WithArgs(day, models.AttendanceStatusPresent).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(30))

	count, err := repo.CountAttendanceByStatus(context.Background(), day, models.AttendanceStatusPresent)
	require.NoError(t, err)
	require.Equal(t, 30, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryMandatoryFeesDue(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewDashboardRepository(exec)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow("125000"))

	due, err := repo.MandatoryFeesDue(context.Background())
	require.NoError(t, err)
	require.True(t, due.Equal(decimal.NewFromInt(125000)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryLatestStudentsDefaultsLimit(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewDashboardRepository(exec)

	rows := sqlmock.NewRows([]string{"id", "name", "grade", "section", "phone"}).
		AddRow("STD-1", "Amina Yusuf", "Grade 1", "A", nil)
	mock.ExpectQuery("SELECT s.id").
		WithArgs(5).
		WillReturnRows(rows)

	students, err := repo.LatestStudents(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
