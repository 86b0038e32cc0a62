package models

import "time"

// AcademicYear names a school year. At most one year should be current;
// the store does not enforce this so callers treat it as a soft invariant.
type AcademicYear struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	IsCurrent bool      `db:"is_current" json:"is_current"`
}
