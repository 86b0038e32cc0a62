package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/school-admin-api/internal/models"
)

// ReportStudent is the student header block of a report.
type ReportStudent struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Grade         string    `json:"grade"`
	Section       string    `json:"section"`
	GradeSection  string    `json:"gradeSection"`
	Phone         *string   `json:"phone,omitempty"`
	Email         *string   `json:"email,omitempty"`
	AdmissionDate time.Time `json:"createdAt"`
}

// FeeBreakdownRow is one fee type's required/paid/pending line. A fee type
// with no payments still appears with paid = 0.
type FeeBreakdownRow struct {
	Type     string          `json:"type"`
	Required decimal.Decimal `json:"required"`
	Paid     decimal.Decimal `json:"paid"`
	Pending  decimal.Decimal `json:"pending"`
}

// ReportDiscount is the discount line in a report.
type ReportDiscount struct {
	Amount       decimal.Decimal  `json:"amount"`
	Percentage   *decimal.Decimal `json:"percentage,omitempty"`
	Reason       string           `json:"reason"`
	ApprovedBy   string           `json:"approvedBy"`
	ApprovalDate time.Time        `json:"approvalDate"`
}

// StudentReportResponse is the full reconciliation payload for one student.
type StudentReportResponse struct {
	Student            ReportStudent            `json:"student"`
	Attendance         []models.AttendanceEntry `json:"attendance"`
	AttendanceRate     int                      `json:"attendanceRate"`
	AbsenceRate        int                      `json:"absenceRate"`
	FeesBreakdown      []FeeBreakdownRow        `json:"feesBreakdown"`
	TotalFees          decimal.Decimal          `json:"totalFees"`
	TotalPaid          decimal.Decimal          `json:"totalPaid"`
	TotalPending       decimal.Decimal          `json:"totalPending"`
	Discounts          []ReportDiscount         `json:"discounts"`
	TotalDiscount      decimal.Decimal          `json:"totalDiscount"`
	DiscountPercentage int                      `json:"discountPercentage"`
	FinalPending       decimal.Decimal          `json:"finalPending"`
	FinancialStatus    string                   `json:"financialStatus"`
}
