package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// staticPool is a test stand-in for the connection manager.
type staticPool struct {
	db      *sqlx.DB
	err     error
	timeout time.Duration
}

func (p *staticPool) DB() (*sqlx.DB, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.db, nil
}

func (p *staticPool) AcquireTimeout() time.Duration { return p.timeout }

func newExecutorMock(t *testing.T) (*Executor, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	exec := NewExecutor(&staticPool{db: sqlx.NewDb(db, "sqlmock"), timeout: 5 * time.Second}, nil, nil)
	return exec, mock, func() { db.Close() }
}

func TestExecutorFailsFastWhenStoreUnavailable(t *testing.T) {
	exec := NewExecutor(&staticPool{err: appErrors.Clone(appErrors.ErrStoreUnavailable, "store unavailable")}, nil, nil)

	var dest int
	err := exec.Get(context.Background(), "probe", &dest, "SELECT 1")
	require.Error(t, err)
	require.True(t, appErrors.IsConnection(err))
}

func TestExecutorPassesThroughNoRows(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE id = $1")).
		WithArgs("STD-missing").
		WillReturnError(sql.ErrNoRows)

	var dest int
	err := exec.Get(context.Background(), "student_exists", &dest, "SELECT 1 FROM students WHERE id = $1", "STD-missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorTranslatesForeignKeyViolation(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()

	pqErr := &pq.Error{Code: "23503", Constraint: "payments_student_id_fkey", Table: "payments"}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
		WillReturnError(pqErr)

	_, err := exec.Exec(context.Background(), "insert_payment", "INSERT INTO payments (student_id) VALUES ($1)", "STD-x")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.Equal(t, "student_id", appErr.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorTranslatesUniqueViolation(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()

	pqErr := &pq.Error{Code: "23505", Constraint: "attendance_student_id_date_key", Table: "attendance"}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO attendance")).
		WillReturnError(pqErr)

	_, err := exec.Exec(context.Background(), "insert_attendance", "INSERT INTO attendance (student_id) VALUES ($1)", "STD-x")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.Contains(t, appErr.Message, "attendance")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorTransactionRollsBackOnError(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := exec.InTransaction(context.Background(), "failing_tx", func(tx *sqlx.Tx) error {
		return boom
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorTransactionCommits(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE students")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := exec.InTransaction(context.Background(), "passing_tx", func(tx *sqlx.Tx) error {
		_, execErr := tx.ExecContext(context.Background(), "UPDATE students SET status = $1", "active")
		return execErr
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorPreservesTypedErrorsFromTransactions(t *testing.T) {
	exec, mock, cleanup := newExecutorMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectRollback()

	typed := appErrors.ValidationField("referenced section does not exist", "section_id", int64(9))
	err := exec.InTransaction(context.Background(), "typed_tx", func(tx *sqlx.Tx) error {
		return typed
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "section_id", appErr.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}
