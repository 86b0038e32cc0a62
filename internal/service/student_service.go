package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.StudentDetail, error)
	ListActiveForForms(ctx context.Context) ([]models.StudentSummary, error)
	ListActiveRoster(ctx context.Context) ([]models.StudentSummary, error)
	Enroll(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

// StudentService coordinates enrollment and roster workflows.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = newValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// EnrollStudentRequest is the payload for registering a new student.
type EnrollStudentRequest struct {
	FirstName              string     `json:"first_name" validate:"required"`
	LastName               string     `json:"last_name" validate:"required"`
	Gender                 *string    `json:"gender"`
	BirthDate              *time.Time `json:"birth_date"`
	Nationality            *string    `json:"nationality"`
	Religion               *string    `json:"religion"`
	Address                *string    `json:"address"`
	EmergencyContact       *string    `json:"emergency_contact"`
	MedicalConditions      *string    `json:"medical_conditions"`
	BloodType              *string    `json:"blood_type"`
	ParentGuardianName     *string    `json:"parent_guardian_name"`
	ParentGuardianRelation *string    `json:"parent_guardian_relation"`
	ParentPhone            *string    `json:"parent_phone"`
	ParentEmail            *string    `json:"parent_email" validate:"omitempty,email"`
	ParentOccupation       *string    `json:"parent_occupation"`
	ParentWorkAddress      *string    `json:"parent_work_address"`
	AdmissionDate          *time.Time `json:"admission_date"`
	SectionID              int64      `json:"section_id" validate:"required"`
	AcademicYearID         *int64     `json:"academic_year_id"`
}

// List returns the full roster projection.
func (s *StudentService) List(ctx context.Context) ([]models.StudentDetail, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, wrapInternal(err, "failed to list students")
	}
	if students == nil {
		students = []models.StudentDetail{}
	}
	return students, nil
}

// ListForForms returns active students for payment and discount form pickers.
func (s *StudentService) ListForForms(ctx context.Context) ([]models.StudentSummary, error) {
	students, err := s.repo.ListActiveForForms(ctx)
	if err != nil {
		return nil, wrapInternal(err, "failed to list students for forms")
	}
	if students == nil {
		students = []models.StudentSummary{}
	}
	return students, nil
}

// ListRoster returns active students with class context for attendance entry.
func (s *StudentService) ListRoster(ctx context.Context) ([]models.StudentSummary, error) {
	students, err := s.repo.ListActiveRoster(ctx)
	if err != nil {
		return nil, wrapInternal(err, "failed to list roster")
	}
	if students == nil {
		students = []models.StudentSummary{}
	}
	return students, nil
}

// Enroll validates the payload and registers the student atomically.
func (s *StudentService) Enroll(ctx context.Context, req EnrollStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid enrollment payload")
	}
	if req.Gender != nil && *req.Gender != "male" && *req.Gender != "female" {
		return nil, appErrors.ValidationField("gender must be male or female", "gender", *req.Gender)
	}

	student := &models.Student{
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		Gender:                 req.Gender,
		BirthDate:              req.BirthDate,
		Nationality:            req.Nationality,
		Religion:               req.Religion,
		Address:                req.Address,
		EmergencyContact:       req.EmergencyContact,
		MedicalConditions:      req.MedicalConditions,
		BloodType:              req.BloodType,
		ParentGuardianName:     req.ParentGuardianName,
		ParentGuardianRelation: req.ParentGuardianRelation,
		ParentPhone:            req.ParentPhone,
		ParentEmail:            req.ParentEmail,
		ParentOccupation:       req.ParentOccupation,
		ParentWorkAddress:      req.ParentWorkAddress,
		SectionID:              req.SectionID,
		AcademicYearID:         req.AcademicYearID,
	}
	if req.AdmissionDate != nil {
		student.AdmissionDate = *req.AdmissionDate
	}

	if err := s.repo.Enroll(ctx, student); err != nil {
		return nil, wrapInternal(err, "failed to enroll student")
	}
	s.logger.Info("student enrolled",
		zap.String("student_id", student.ID),
		zap.Int64("section_id", student.SectionID))
	return student, nil
}

// Delete removes a student and all dependent records.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.ValidationField("student id is required", "id", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapInternal(err, fmt.Sprintf("failed to delete student %s", id))
	}
	s.logger.Info("student deleted", zap.String("student_id", id))
	return nil
}
