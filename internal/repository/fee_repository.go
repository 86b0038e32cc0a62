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

// FeeRepository manages fee types and payments.
type FeeRepository struct {
	exec *Executor
}

// NewFeeRepository constructs the repository.
func NewFeeRepository(exec *Executor) *FeeRepository {
	return &FeeRepository{exec: exec}
}

// ListFeeTypes returns every fee type ordered by name.
func (r *FeeRepository) ListFeeTypes(ctx context.Context) ([]models.FeeType, error) {
	const query = `SELECT id, name, amount, is_mandatory, description, class_id FROM fee_types ORDER BY name`
	var feeTypes []models.FeeType
	if err := r.exec.Select(ctx, "list_fee_types", &feeTypes, query); err != nil {
		return nil, fmt.Errorf("list fee types: %w", err)
	}
	return feeTypes, nil
}

// ListFeeTypesByClass returns the fee types scoped to one class.
func (r *FeeRepository) ListFeeTypesByClass(ctx context.Context, classID int64) ([]models.FeeType, error) {
	const query = `SELECT id, name, amount, is_mandatory, description, class_id FROM fee_types WHERE class_id = $1 ORDER BY name`
	var feeTypes []models.FeeType
	if err := r.exec.Select(ctx, "list_fee_types_by_class", &feeTypes, query, classID); err != nil {
		return nil, fmt.Errorf("list fee types by class: %w", err)
	}
	return feeTypes, nil
}

// ClassTotalFees sums the fee-type amounts applicable to a class.
func (r *FeeRepository) ClassTotalFees(ctx context.Context, classID int64) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM fee_types WHERE class_id = $1`
	var total decimal.Decimal
	if err := r.exec.Get(ctx, "class_total_fees", &total, query, classID); err != nil {
		return decimal.Zero, fmt.Errorf("sum class fees: %w", err)
	}
	return total, nil
}

// PaymentSumsByStudent aggregates a student's payments per fee type.
func (r *FeeRepository) PaymentSumsByStudent(ctx context.Context, studentID string) ([]models.PaymentSum, error) {
	const query = `SELECT p.fee_type_id, SUM(p.amount) AS paid
        FROM payments p
        WHERE p.student_id = $1
        GROUP BY p.fee_type_id`
	var sums []models.PaymentSum
	if err := r.exec.Select(ctx, "payment_sums_by_student", &sums, query, studentID); err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}
	return sums, nil
}

// ListPayments returns the full payment ledger, most recent first.
func (r *FeeRepository) ListPayments(ctx context.Context) ([]models.PaymentDetail, error) {
	const query = `SELECT p.id,
        s.first_name || ' ' || s.last_name AS student_name,
        ft.name AS type,
        p.amount,
        p.payment_date AS date,
        p.payment_method AS method
        FROM payments p
        JOIN students s ON p.student_id = s.id
        JOIN fee_types ft ON p.fee_type_id = ft.id
        ORDER BY p.payment_date DESC`
	var payments []models.PaymentDetail
	if err := r.exec.Select(ctx, "list_payments", &payments, query); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// CreatePayment validates the referenced student and fee type and inserts
// the payment in one transaction.
func (r *FeeRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now().UTC()
	}
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = "cash"
	}

	return r.exec.InTransaction(ctx, "create_payment", func(tx *sqlx.Tx) error {
		var one int

		err := tx.GetContext(ctx, &one, `SELECT 1 FROM students WHERE id = $1`, payment.StudentID)
		if err == sql.ErrNoRows {
			return appErrors.ValidationField("referenced student does not exist", "student_id", payment.StudentID)
		}
		if err != nil {
			return fmt.Errorf("check student: %w", err)
		}

		err = tx.GetContext(ctx, &one, `SELECT 1 FROM fee_types WHERE id = $1`, payment.FeeTypeID)
		if err == sql.ErrNoRows {
			return appErrors.ValidationField("referenced fee type does not exist", "fee_type_id", payment.FeeTypeID)
		}
		if err != nil {
			return fmt.Errorf("check fee type: %w", err)
		}

		const insert = `INSERT INTO payments (student_id, fee_type_id, amount, payment_date, payment_method, receipt_number, notes)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
		if err := tx.GetContext(ctx, &payment.ID, insert,
			payment.StudentID, payment.FeeTypeID, payment.Amount,
			payment.PaymentDate, payment.PaymentMethod, payment.ReceiptNumber, payment.Notes); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		return nil
	})
}

// DeletePayment removes one payment record.
func (r *FeeRepository) DeletePayment(ctx context.Context, id int64) error {
	res, err := r.exec.Exec(ctx, "delete_payment", "DELETE FROM payments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appErrors.NotFound("payment not found", "id", id)
	}
	return nil
}
