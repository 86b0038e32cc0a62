package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/school-admin-api/internal/models"
)

// DashboardRepository serves the coarse-grained school-wide counters.
type DashboardRepository struct {
	exec *Executor
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(exec *Executor) *DashboardRepository {
	return &DashboardRepository{exec: exec}
}

// CountActiveStudents counts students with status active.
func (r *DashboardRepository) CountActiveStudents(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM students WHERE status = $1`
	var count int
	if err := r.exec.Get(ctx, "count_active_students", &count, query, models.StudentStatusActive); err != nil {
		return 0, fmt.Errorf("count active students: %w", err)
	}
	return count, nil
}

// CountAttendanceByStatus counts attendance rows for a day with the status.
func (r *DashboardRepository) CountAttendanceByStatus(ctx context.Context, date time.Time, status models.AttendanceStatus) (int, error) {
	const query = `SELECT COUNT(*) FROM attendance WHERE date = $1 AND status = $2`
	var count int
	if err := r.exec.Get(ctx, "count_attendance_by_status", &count, query, date, status); err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}
	return count, nil
}

// MandatoryFeesDue computes mandatory fee amounts minus payments recorded
// against mandatory fee types, school-wide. Discounts are deliberately not
// part of this figure.
func (r *DashboardRepository) MandatoryFeesDue(ctx context.Context) (decimal.Decimal, error) {
	const query = `SELECT
        (SELECT COALESCE(SUM(amount), 0) FROM fee_types WHERE is_mandatory) -
        (SELECT COALESCE(SUM(p.amount), 0) FROM payments p
            JOIN fee_types ft ON ft.id = p.fee_type_id
            WHERE ft.is_mandatory)`
	var due decimal.Decimal
	if err := r.exec.Get(ctx, "mandatory_fees_due", &due, query); err != nil {
		return decimal.Zero, fmt.Errorf("mandatory fees due: %w", err)
	}
	return due, nil
}

// LatestStudents returns the most recently enrolled students.
func (r *DashboardRepository) LatestStudents(ctx context.Context, limit int) ([]models.RecentStudent, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `SELECT s.id,
        s.first_name || ' ' || s.last_name AS name,
        c.name AS grade,
        sec.name AS section,
        s.parent_phone AS phone
        FROM students s
        JOIN sections sec ON s.section_id = sec.id
        JOIN classes c ON sec.class_id = c.id
        ORDER BY s.created_at DESC
        LIMIT $1`
	var students []models.RecentStudent
	if err := r.exec.Select(ctx, "latest_students", &students, query, limit); err != nil {
		return nil, fmt.Errorf("latest students: %w", err)
	}
	return students, nil
}
