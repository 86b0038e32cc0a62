package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse captures school-wide point-in-time counters.
//
// FeesDue is an approximation: mandatory fee amounts minus payments against
// mandatory fee types across all students combined. It does not account for
// per-student discounts and is not reconciled with per-student totals.
type DashboardStatsResponse struct {
	TotalStudents   int             `json:"totalStudents"`
	AttendanceToday int             `json:"attendanceToday"`
	AbsentToday     int             `json:"absentToday"`
	FeesDue         decimal.Decimal `json:"feesDue"`
}
