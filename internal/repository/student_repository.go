package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	exec *Executor
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(exec *Executor) *StudentRepository {
	return &StudentRepository{exec: exec}
}

const studentDetailColumns = `s.id,
        s.first_name || ' ' || s.last_name AS name,
        c.name AS grade,
        sec.name AS section,
        s.parent_phone AS phone,
        s.parent_email AS email,
        s.address,
        s.birth_date AS dob,
        s.admission_date
        FROM students s
        JOIN sections sec ON s.section_id = sec.id
        JOIN classes c ON sec.class_id = c.id`

// List returns the full roster projection, most recent first.
func (r *StudentRepository) List(ctx context.Context) ([]models.StudentDetail, error) {
	query := fmt.Sprintf(`SELECT %s ORDER BY s.created_at DESC`, studentDetailColumns)
	var students []models.StudentDetail
	if err := r.exec.Select(ctx, "list_students", &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindDetailByID fetches the roster projection for one student.
func (r *StudentRepository) FindDetailByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	query := fmt.Sprintf(`SELECT %s WHERE s.id = $1`, studentDetailColumns)
	var detail models.StudentDetail
	if err := r.exec.Get(ctx, "find_student", &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindClassID resolves a student's class through their section.
func (r *StudentRepository) FindClassID(ctx context.Context, studentID string) (int64, error) {
	const query = `SELECT c.id FROM students s
        JOIN sections sec ON s.section_id = sec.id
        JOIN classes c ON sec.class_id = c.id
        WHERE s.id = $1`
	var classID int64
	if err := r.exec.Get(ctx, "find_student_class", &classID, query, studentID); err != nil {
		return 0, err
	}
	return classID, nil
}

// ListActiveForForms returns minimal active-student rows for form pickers.
func (r *StudentRepository) ListActiveForForms(ctx context.Context) ([]models.StudentSummary, error) {
	const query = `SELECT s.id, s.first_name || ' ' || s.last_name AS name
        FROM students s
        WHERE s.status = $1
        ORDER BY s.created_at DESC`
	var students []models.StudentSummary
	if err := r.exec.Select(ctx, "list_students_for_forms", &students, query, models.StudentStatusActive); err != nil {
		return nil, fmt.Errorf("list students for forms: %w", err)
	}
	return students, nil
}

// ListActiveRoster returns active students with class/section context,
// ordered for attendance entry.
func (r *StudentRepository) ListActiveRoster(ctx context.Context) ([]models.StudentSummary, error) {
	const query = `SELECT s.id,
        s.first_name || ' ' || s.last_name AS name,
        c.name AS grade,
        sec.name AS section
        FROM students s
        JOIN sections sec ON s.section_id = sec.id
        JOIN classes c ON sec.class_id = c.id
        WHERE s.status = $1
        ORDER BY c.order_number, sec.name, s.first_name`
	var students []models.StudentSummary
	if err := r.exec.Select(ctx, "list_active_roster", &students, query, models.StudentStatusActive); err != nil {
		return nil, fmt.Errorf("list active roster: %w", err)
	}
	return students, nil
}

// Exists reports whether a student with the given ID is present.
func (r *StudentRepository) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.exec.Get(ctx, "student_exists", &one, "SELECT 1 FROM students WHERE id = $1 LIMIT 1", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student: %w", err)
	}
	return true, nil
}

// Enroll creates the student inside one transaction: the duplicate check,
// the section and academic-year existence checks, and the insert either all
// succeed or the whole operation rolls back.
func (r *StudentRepository) Enroll(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = "STD-" + uuid.NewString()
	}
	now := time.Now().UTC()
	if student.AdmissionDate.IsZero() {
		student.AdmissionDate = now
	}
	if student.Status == "" {
		student.Status = models.StudentStatusActive
	}
	student.CreatedAt = now

	return r.exec.InTransaction(ctx, "enroll_student", func(tx *sqlx.Tx) error {
		var one int

		err := tx.GetContext(ctx, &one,
			`SELECT 1 FROM students WHERE first_name = $1 AND last_name = $2 AND section_id = $3 LIMIT 1`,
			student.FirstName, student.LastName, student.SectionID)
		if err == nil {
			return appErrors.Validation("student already exists with the same name and section",
				"first_name", "last_name", "section_id")
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check duplicate student: %w", err)
		}

		err = tx.GetContext(ctx, &one, `SELECT 1 FROM sections WHERE id = $1`, student.SectionID)
		if err == sql.ErrNoRows {
			return appErrors.ValidationField("referenced section does not exist", "section_id", student.SectionID)
		}
		if err != nil {
			return fmt.Errorf("check section: %w", err)
		}

		if student.AcademicYearID != nil {
			err = tx.GetContext(ctx, &one, `SELECT 1 FROM academic_years WHERE id = $1`, *student.AcademicYearID)
			if err == sql.ErrNoRows {
				return appErrors.ValidationField("referenced academic year does not exist", "academic_year_id", *student.AcademicYearID)
			}
			if err != nil {
				return fmt.Errorf("check academic year: %w", err)
			}
		}

		const insert = `INSERT INTO students (
            id, first_name, last_name, gender, birth_date, nationality, religion,
            address, emergency_contact, medical_conditions, blood_type,
            parent_guardian_name, parent_guardian_relation, parent_phone,
            parent_email, parent_occupation, parent_work_address,
            admission_date, section_id, academic_year_id, status, created_at
        ) VALUES (:id, :first_name, :last_name, :gender, :birth_date, :nationality, :religion,
            :address, :emergency_contact, :medical_conditions, :blood_type,
            :parent_guardian_name, :parent_guardian_relation, :parent_phone,
            :parent_email, :parent_occupation, :parent_work_address,
            :admission_date, :section_id, :academic_year_id, :status, :created_at)`
		if _, err := tx.NamedExecContext(ctx, insert, student); err != nil {
			return fmt.Errorf("insert student: %w", err)
		}
		return nil
	})
}

// Delete removes a student and their dependent records in one transaction.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	return r.exec.InTransaction(ctx, "delete_student", func(tx *sqlx.Tx) error {
		for _, table := range []string{"attendance", "payments", "discounts"} {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE student_id = $1", table), id); err != nil {
				return fmt.Errorf("delete student %s: %w", table, err)
			}
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("delete student: %w", err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return appErrors.NotFound("student not found", "id", id)
		}
		return nil
	})
}
