package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// AttendanceRepository manages daily attendance records.
type AttendanceRepository struct {
	exec *Executor
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(exec *Executor) *AttendanceRepository {
	return &AttendanceRepository{exec: exec}
}

// ListByDate returns the full roster view of attendance for one day.
func (r *AttendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]models.AttendanceDetail, error) {
	const query = `SELECT a.id, a.student_id, a.date, a.status, a.time_in, a.time_out, a.notes,
        s.first_name || ' ' || s.last_name AS name,
        c.name AS grade,
        sec.name AS section
        FROM attendance a
        JOIN students s ON a.student_id = s.id
        JOIN sections sec ON s.section_id = sec.id
        JOIN classes c ON sec.class_id = c.id
        WHERE a.date = $1
        ORDER BY c.order_number, sec.name, s.first_name`
	var records []models.AttendanceDetail
	if err := r.exec.Select(ctx, "list_attendance_by_date", &records, query, date); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// MonthEntries returns one student's records restricted to the calendar
// month and year of the reference date, ordered by date ascending.
func (r *AttendanceRepository) MonthEntries(ctx context.Context, studentID string, ref time.Time) ([]models.AttendanceEntry, error) {
	const query = `SELECT date, status
        FROM attendance
        WHERE student_id = $1
          AND EXTRACT(MONTH FROM date) = $2
          AND EXTRACT(YEAR FROM date) = $3
        ORDER BY date ASC`
	var entries []models.AttendanceEntry
	if err := r.exec.Select(ctx, "month_attendance", &entries, query,
		studentID, int(ref.Month()), ref.Year()); err != nil {
		return nil, fmt.Errorf("month attendance: %w", err)
	}
	return entries, nil
}

// Upsert stores one record per (student, date). The student check and the
// insert-or-update run in one transaction so concurrent submissions for the
// same student and day cannot produce two rows; the conflict clause keeps
// the natural-key invariant even across racing transactions.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	return r.exec.InTransaction(ctx, "upsert_attendance", func(tx *sqlx.Tx) error {
		var one int
		err := tx.GetContext(ctx, &one, `SELECT 1 FROM students WHERE id = $1`, record.StudentID)
		if err == sql.ErrNoRows {
			return appErrors.ValidationField("referenced student does not exist", "student_id", record.StudentID)
		}
		if err != nil {
			return fmt.Errorf("check student: %w", err)
		}

		const upsert = `INSERT INTO attendance (student_id, date, status, time_in, time_out, notes)
            VALUES ($1, $2, $3, $4, $5, $6)
            ON CONFLICT (student_id, date)
            DO UPDATE SET status = EXCLUDED.status, time_in = EXCLUDED.time_in,
                time_out = EXCLUDED.time_out, notes = EXCLUDED.notes
            RETURNING id`
		if err := tx.GetContext(ctx, &record.ID, upsert,
			record.StudentID, record.Date, record.Status,
			record.TimeIn, record.TimeOut, record.Notes); err != nil {
			return fmt.Errorf("upsert attendance: %w", err)
		}
		return nil
	})
}

// Delete removes one attendance record.
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.exec.Exec(ctx, "delete_attendance", "DELETE FROM attendance WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appErrors.NotFound("attendance record not found", "id", id)
	}
	return nil
}
