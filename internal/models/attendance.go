package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate:
		return true
	default:
		return false
	}
}

// AttendanceRecord holds one student's attendance for one day. At most one
// record exists per (student_id, date); the upsert preserves this under
// concurrent submissions.
type AttendanceRecord struct {
	ID        int64            `db:"id" json:"id"`
	StudentID string           `db:"student_id" json:"student_id"`
	Date      time.Time        `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	TimeIn    *string          `db:"time_in" json:"time_in,omitempty"`
	TimeOut   *string          `db:"time_out" json:"time_out,omitempty"`
	Notes     *string          `db:"notes" json:"notes,omitempty"`
}

// AttendanceDetail extends the record with roster context for day listings.
type AttendanceDetail struct {
	AttendanceRecord
	Name    string `db:"name" json:"name"`
	Grade   string `db:"grade" json:"grade"`
	Section string `db:"section" json:"section"`
}

// AttendanceEntry is the minimal date/status pair used by student reports.
type AttendanceEntry struct {
	Date   time.Time        `db:"date" json:"date"`
	Status AttendanceStatus `db:"status" json:"status"`
}
