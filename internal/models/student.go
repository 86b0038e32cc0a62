package models

import "time"

// StudentStatus enumerates the lifecycle states of a student record.
type StudentStatus string

const (
	StudentStatusActive      StudentStatus = "active"
	StudentStatusWithdrawn   StudentStatus = "withdrawn"
	StudentStatusGraduated   StudentStatus = "graduated"
	StudentStatusTransferred StudentStatus = "transferred"
)

// Valid returns true when the status is a supported value.
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusActive, StudentStatusWithdrawn, StudentStatusGraduated, StudentStatusTransferred:
		return true
	default:
		return false
	}
}

// Student represents a learner registered in the institution.
type Student struct {
	ID                     string        `db:"id" json:"id"`
	FirstName              string        `db:"first_name" json:"first_name"`
	LastName               string        `db:"last_name" json:"last_name"`
	Gender                 *string       `db:"gender" json:"gender,omitempty"`
	BirthDate              *time.Time    `db:"birth_date" json:"birth_date,omitempty"`
	Nationality            *string       `db:"nationality" json:"nationality,omitempty"`
	Religion               *string       `db:"religion" json:"religion,omitempty"`
	Address                *string       `db:"address" json:"address,omitempty"`
	EmergencyContact       *string       `db:"emergency_contact" json:"emergency_contact,omitempty"`
	MedicalConditions      *string       `db:"medical_conditions" json:"medical_conditions,omitempty"`
	BloodType              *string       `db:"blood_type" json:"blood_type,omitempty"`
	ParentGuardianName     *string       `db:"parent_guardian_name" json:"parent_guardian_name,omitempty"`
	ParentGuardianRelation *string       `db:"parent_guardian_relation" json:"parent_guardian_relation,omitempty"`
	ParentPhone            *string       `db:"parent_phone" json:"parent_phone,omitempty"`
	ParentEmail            *string       `db:"parent_email" json:"parent_email,omitempty"`
	ParentOccupation       *string       `db:"parent_occupation" json:"parent_occupation,omitempty"`
	ParentWorkAddress      *string       `db:"parent_work_address" json:"parent_work_address,omitempty"`
	AdmissionDate          time.Time     `db:"admission_date" json:"admission_date"`
	SectionID              int64         `db:"section_id" json:"section_id"`
	AcademicYearID         *int64        `db:"academic_year_id" json:"academic_year_id,omitempty"`
	Status                 StudentStatus `db:"status" json:"status"`
	CreatedAt              time.Time     `db:"created_at" json:"created_at"`
}

// StudentDetail is the roster projection with class/section context.
type StudentDetail struct {
	ID            string     `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Grade         string     `db:"grade" json:"grade"`
	Section       string     `db:"section" json:"section"`
	Phone         *string    `db:"phone" json:"phone,omitempty"`
	Email         *string    `db:"email" json:"email,omitempty"`
	Address       *string    `db:"address" json:"address,omitempty"`
	BirthDate     *time.Time `db:"dob" json:"dob,omitempty"`
	AdmissionDate time.Time  `db:"admission_date" json:"admission_date"`
}

// RecentStudent is one row of the recent-enrollments widget.
type RecentStudent struct {
	ID      string  `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	Grade   string  `db:"grade" json:"grade"`
	Section string  `db:"section" json:"section"`
	Phone   *string `db:"phone" json:"phone,omitempty"`
}

// StudentSummary is the minimal projection for form pickers.
type StudentSummary struct {
	ID      string  `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	Grade   *string `db:"grade" json:"grade,omitempty"`
	Section *string `db:"section" json:"section,omitempty"`
}
