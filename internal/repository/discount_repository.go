package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// DiscountRepository manages append-only discount records.
type DiscountRepository struct {
	exec *Executor
}

// NewDiscountRepository constructs the repository.
func NewDiscountRepository(exec *Executor) *DiscountRepository {
	return &DiscountRepository{exec: exec}
}

// ListByStudent returns a student's discounts, most recent approval first.
func (r *DiscountRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Discount, error) {
	const query = `SELECT id, student_id, amount, percentage, reason, academic_year_id, approved_by, approval_date
        FROM discounts
        WHERE student_id = $1
        ORDER BY approval_date DESC`
	var discounts []models.Discount
	if err := r.exec.Select(ctx, "list_discounts", &discounts, query, studentID); err != nil {
		return nil, fmt.Errorf("list discounts: %w", err)
	}
	return discounts, nil
}

// Create inserts a discount in one transaction. A percentage-based discount
// is resolved once, here, against the total fees of the student's class at
// creation time; the resolved amount is what gets stored and later summed.
func (r *DiscountRepository) Create(ctx context.Context, discount *models.Discount) error {
	if discount.ApprovalDate.IsZero() {
		discount.ApprovalDate = time.Now().UTC()
	}

	return r.exec.InTransaction(ctx, "create_discount", func(tx *sqlx.Tx) error {
		var one int
		err := tx.GetContext(ctx, &one, `SELECT 1 FROM students WHERE id = $1`, discount.StudentID)
		if err == sql.ErrNoRows {
			return appErrors.ValidationField("referenced student does not exist", "student_id", discount.StudentID)
		}
		if err != nil {
			return fmt.Errorf("check student: %w", err)
		}

		if discount.Percentage != nil && discount.Amount.IsZero() {
			const totalQuery = `SELECT COALESCE(SUM(ft.amount), 0)
                FROM fee_types ft
                WHERE ft.class_id = (
                    SELECT c.id FROM students s
                    JOIN sections sec ON s.section_id = sec.id
                    JOIN classes c ON sec.class_id = c.id
                    WHERE s.id = $1
                )`
			var totalFees decimal.Decimal
			if err := tx.GetContext(ctx, &totalFees, totalQuery, discount.StudentID); err != nil {
				return fmt.Errorf("sum class fees: %w", err)
			}
			discount.Amount = totalFees.Mul(*discount.Percentage).Div(decimal.NewFromInt(100))
		}

		const insert = `INSERT INTO discounts (student_id, amount, percentage, reason, academic_year_id, approved_by, approval_date)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
		if err := tx.GetContext(ctx, &discount.ID, insert,
			discount.StudentID, discount.Amount, discount.Percentage, discount.Reason,
			discount.AcademicYearID, discount.ApprovedBy, discount.ApprovalDate); err != nil {
			return fmt.Errorf("insert discount: %w", err)
		}
		return nil
	})
}
