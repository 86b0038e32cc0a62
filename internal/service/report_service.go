package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/dto"
	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// FinancialStatusSettled and FinancialStatusOverdue are the two terminal
// classifications of a student's adjusted balance.
const (
	FinancialStatusSettled = "settled"
	FinancialStatusOverdue = "overdue"
)

type reportStudentRepository interface {
	FindDetailByID(ctx context.Context, id string) (*models.StudentDetail, error)
	FindClassID(ctx context.Context, studentID string) (int64, error)
}

type reportFeeRepository interface {
	ListFeeTypesByClass(ctx context.Context, classID int64) ([]models.FeeType, error)
	PaymentSumsByStudent(ctx context.Context, studentID string) ([]models.PaymentSum, error)
}

type reportDiscountRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Discount, error)
}

type reportAttendanceRepository interface {
	MonthEntries(ctx context.Context, studentID string, ref time.Time) ([]models.AttendanceEntry, error)
}

// ReportService composes the per-student reconciliation report: the fee
// ledger, the discount adjustment, the month's attendance analysis, and the
// final financial status.
type ReportService struct {
	students    reportStudentRepository
	fees        reportFeeRepository
	discounts   reportDiscountRepository
	attendances reportAttendanceRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewReportService constructs the report service.
func NewReportService(
	students reportStudentRepository,
	fees reportFeeRepository,
	discounts reportDiscountRepository,
	attendances reportAttendanceRepository,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		students:    students,
		fees:        fees,
		discounts:   discounts,
		attendances: attendances,
		logger:      logger,
		now:         time.Now,
	}
}

// ledger is the aggregated fee position of one student.
type ledger struct {
	Breakdown    []dto.FeeBreakdownRow
	TotalFees    decimal.Decimal
	TotalPaid    decimal.Decimal
	TotalPending decimal.Decimal
}

// attendanceAnalysis holds the month's attendance figures.
type attendanceAnalysis struct {
	Entries        []models.AttendanceEntry
	AttendanceRate int
	AbsenceRate    int
}

// StudentReport builds the full reconciliation report for one student,
// covering the calendar month of the reference date. A zero reference date
// means now.
func (s *ReportService) StudentReport(ctx context.Context, studentID string, ref time.Time) (*dto.StudentReportResponse, error) {
	if studentID == "" {
		return nil, appErrors.ValidationField("student id is required", "student_id", studentID)
	}
	if ref.IsZero() {
		ref = s.now().UTC()
	}

	detail, err := s.students.FindDetailByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("student not found", "student_id", studentID)
		}
		return nil, wrapInternal(err, "failed to load student")
	}

	led, err := s.aggregateLedger(ctx, studentID)
	if err != nil {
		return nil, err
	}

	discounts, totalDiscount, err := s.adjustDiscounts(ctx, studentID)
	if err != nil {
		return nil, err
	}

	analysis, err := s.analyzeAttendance(ctx, studentID, ref)
	if err != nil {
		return nil, err
	}

	finalPending := led.TotalPending.Sub(totalDiscount)

	report := &dto.StudentReportResponse{
		Student: dto.ReportStudent{
			ID:            detail.ID,
			Name:          detail.Name,
			Grade:         detail.Grade,
			Section:       detail.Section,
			GradeSection:  fmt.Sprintf("%s - %s", detail.Grade, detail.Section),
			Phone:         detail.Phone,
			Email:         detail.Email,
			AdmissionDate: detail.AdmissionDate,
		},
		Attendance:         analysis.Entries,
		AttendanceRate:     analysis.AttendanceRate,
		AbsenceRate:        analysis.AbsenceRate,
		FeesBreakdown:      led.Breakdown,
		TotalFees:          led.TotalFees,
		TotalPaid:          led.TotalPaid,
		TotalPending:       led.TotalPending,
		Discounts:          discounts,
		TotalDiscount:      totalDiscount,
		DiscountPercentage: discountPercentage(totalDiscount, led.TotalFees),
		FinalPending:       finalPending,
		FinancialStatus:    classifyFinancialStatus(finalPending),
	}
	return report, nil
}

// aggregateLedger resolves the student's class, fetches the fee types scoped
// to it, and reconciles them against the student's payment sums. Fee types
// with no payments appear with paid = 0.
func (s *ReportService) aggregateLedger(ctx context.Context, studentID string) (*ledger, error) {
	classID, err := s.students.FindClassID(ctx, studentID)
	if err != nil {
		return nil, wrapInternal(err, "failed to resolve student class")
	}

	feeTypes, err := s.fees.ListFeeTypesByClass(ctx, classID)
	if err != nil {
		return nil, wrapInternal(err, "failed to list class fee types")
	}
	sums, err := s.fees.PaymentSumsByStudent(ctx, studentID)
	if err != nil {
		return nil, wrapInternal(err, "failed to sum payments")
	}

	paidByType := make(map[int64]decimal.Decimal, len(sums))
	for _, sum := range sums {
		paidByType[sum.FeeTypeID] = sum.Paid
	}

	led := &ledger{Breakdown: make([]dto.FeeBreakdownRow, 0, len(feeTypes))}
	for _, ft := range feeTypes {
		paid := paidByType[ft.ID]
		led.Breakdown = append(led.Breakdown, dto.FeeBreakdownRow{
			Type:     ft.Name,
			Required: ft.Amount,
			Paid:     paid,
			Pending:  ft.Amount.Sub(paid),
		})
		led.TotalFees = led.TotalFees.Add(ft.Amount)
		led.TotalPaid = led.TotalPaid.Add(paid)
	}
	led.TotalPending = led.TotalFees.Sub(led.TotalPaid)
	return led, nil
}

// adjustDiscounts sums the already-resolved discount amounts. Percentage
// discounts were fixed at creation time, so this is a plain sum.
func (s *ReportService) adjustDiscounts(ctx context.Context, studentID string) ([]dto.ReportDiscount, decimal.Decimal, error) {
	records, err := s.discounts.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, decimal.Zero, wrapInternal(err, "failed to list discounts")
	}

	discounts := make([]dto.ReportDiscount, 0, len(records))
	total := decimal.Zero
	for _, d := range records {
		discounts = append(discounts, dto.ReportDiscount{
			Amount:       d.Amount,
			Percentage:   d.Percentage,
			Reason:       d.Reason,
			ApprovedBy:   d.ApprovedBy,
			ApprovalDate: d.ApprovalDate,
		})
		total = total.Add(d.Amount)
	}
	return discounts, total, nil
}

// analyzeAttendance computes rates over the calendar month of ref. A student
// with no recorded days gets a 100% attendance rate rather than 0 so that
// newly enrolled students are not penalized.
func (s *ReportService) analyzeAttendance(ctx context.Context, studentID string, ref time.Time) (*attendanceAnalysis, error) {
	entries, err := s.attendances.MonthEntries(ctx, studentID, ref)
	if err != nil {
		return nil, wrapInternal(err, "failed to list month attendance")
	}
	if entries == nil {
		entries = []models.AttendanceEntry{}
	}

	analysis := &attendanceAnalysis{Entries: entries, AttendanceRate: 100, AbsenceRate: 0}
	total := len(entries)
	if total == 0 {
		return analysis, nil
	}

	var present, absent int
	for _, e := range entries {
		switch e.Status {
		case models.AttendanceStatusPresent:
			present++
		case models.AttendanceStatusAbsent:
			absent++
		}
	}
	analysis.AttendanceRate = roundRate(present, total)
	analysis.AbsenceRate = roundRate(absent, total)
	return analysis, nil
}

// discountPercentage expresses the total discount as a rounded share of the
// total fees, 0 when no fees apply.
func discountPercentage(totalDiscount, totalFees decimal.Decimal) int {
	if !totalFees.IsPositive() {
		return 0
	}
	pct := totalDiscount.Div(totalFees).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// classifyFinancialStatus reduces the adjusted pending balance to its binary
// status. A zero or negative balance (credit) is settled.
func classifyFinancialStatus(finalPending decimal.Decimal) string {
	if finalPending.LessThanOrEqual(decimal.Zero) {
		return FinancialStatusSettled
	}
	return FinancialStatusOverdue
}

// roundRate converts a count ratio into a rounded whole percentage.
func roundRate(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
