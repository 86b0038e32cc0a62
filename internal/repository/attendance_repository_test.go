package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

func TestAttendanceRepositoryUpsertInsertsOrUpdates(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(exec)

	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE id = $1")).
		WithArgs("STD-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs("STD-1", day, models.AttendanceStatusPresent, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectCommit()

	record := &models.AttendanceRecord{
		StudentID: "STD-1",
		Date:      day,
		Status:    models.AttendanceStatusPresent,
	}
	require.NoError(t, repo.Upsert(context.Background(), record))
	require.Equal(t, int64(42), record.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryUpsertRejectsUnknownStudent(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(exec)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE id = $1")).
		WithArgs("STD-missing").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Upsert(context.Background(), &models.AttendanceRecord{
		StudentID: "STD-missing",
		Date:      time.Now(),
		Status:    models.AttendanceStatusAbsent,
	})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "student_id", appErr.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryMonthEntriesFiltersByMonthAndYear(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(exec)

	ref := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"date", "status"}).
		AddRow(time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), models.AttendanceStatusPresent).
		AddRow(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), models.AttendanceStatusAbsent)
	mock.ExpectQuery("SELECT date, status").
		WithArgs("STD-1", 2, 2026).
		WillReturnRows(rows)

	entries, err := repo.MonthEntries(context.Background(), "STD-1", ref)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, models.AttendanceStatusPresent, entries[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryDeleteMissingRecord(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(exec)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendance WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 7)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
