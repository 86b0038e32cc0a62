package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeType is a category of charge with a fixed amount, scoped to a class.
// Fee types are immutable once referenced by a payment.
type FeeType struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	IsMandatory bool            `db:"is_mandatory" json:"is_mandatory"`
	Description *string         `db:"description" json:"description,omitempty"`
	ClassID     int64           `db:"class_id" json:"class_id"`
}

// Payment records a single payment event. Never updated, only deleted.
type Payment struct {
	ID            int64           `db:"id" json:"id"`
	StudentID     string          `db:"student_id" json:"student_id"`
	FeeTypeID     int64           `db:"fee_type_id" json:"fee_type_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	PaymentDate   time.Time       `db:"payment_date" json:"payment_date"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	ReceiptNumber *string         `db:"receipt_number" json:"receipt_number,omitempty"`
	Notes         *string         `db:"notes" json:"notes,omitempty"`
}

// PaymentDetail is the payment ledger projection with student and fee names.
type PaymentDetail struct {
	ID          int64           `db:"id" json:"id"`
	StudentName string          `db:"student_name" json:"studentName"`
	Type        string          `db:"type" json:"type"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Date        time.Time       `db:"date" json:"date"`
	Method      string          `db:"method" json:"method"`
}

// PaymentSum aggregates a student's payments for one fee type.
type PaymentSum struct {
	FeeTypeID int64           `db:"fee_type_id" json:"fee_type_id"`
	Paid      decimal.Decimal `db:"paid" json:"paid"`
}

// Discount is an approved reduction of a student's pending balance.
// Percentage-based discounts are resolved into a fixed amount at creation
// time; Amount always holds the authoritative resolved value.
type Discount struct {
	ID             int64            `db:"id" json:"id"`
	StudentID      string           `db:"student_id" json:"student_id"`
	Amount         decimal.Decimal  `db:"amount" json:"amount"`
	Percentage     *decimal.Decimal `db:"percentage" json:"percentage,omitempty"`
	Reason         string           `db:"reason" json:"reason"`
	AcademicYearID *int64           `db:"academic_year_id" json:"academic_year_id,omitempty"`
	ApprovedBy     string           `db:"approved_by" json:"approvedBy"`
	ApprovalDate   time.Time        `db:"approval_date" json:"approvalDate"`
}
