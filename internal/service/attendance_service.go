package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type attendanceRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]models.AttendanceDetail, error)
	Upsert(ctx context.Context, record *models.AttendanceRecord) error
	Delete(ctx context.Context, id int64) error
}

// AttendanceService coordinates daily attendance workflows.
type AttendanceService struct {
	repo      attendanceRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = newValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &AttendanceService{repo: repo, validator: validate, logger: logger, now: time.Now}
	svc.validator.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(fl.Field().String()).Valid()
	})
	return svc
}

// MarkAttendanceRequest is the payload for recording one student's day.
type MarkAttendanceRequest struct {
	StudentID string     `json:"student_id" validate:"required"`
	Date      *time.Time `json:"date"`
	Status    string     `json:"status" validate:"required,attendance_status"`
	TimeIn    *string    `json:"time_in"`
	TimeOut   *string    `json:"time_out"`
	Notes     *string    `json:"notes"`
}

// ListByDate returns the roster view of attendance for one day. A zero date
// means today.
func (s *AttendanceService) ListByDate(ctx context.Context, date time.Time) ([]models.AttendanceDetail, error) {
	if date.IsZero() {
		date = s.now().UTC()
	}
	records, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, wrapInternal(err, "failed to list attendance")
	}
	if records == nil {
		records = []models.AttendanceDetail{}
	}
	return records, nil
}

// Mark records or replaces a student's attendance for a day.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid attendance payload")
	}

	record := &models.AttendanceRecord{
		StudentID: req.StudentID,
		Status:    models.AttendanceStatus(req.Status),
		TimeIn:    req.TimeIn,
		TimeOut:   req.TimeOut,
		Notes:     req.Notes,
	}
	if req.Date != nil {
		record.Date = *req.Date
	} else {
		record.Date = s.now().UTC()
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, wrapInternal(err, "failed to mark attendance")
	}
	s.logger.Info("attendance marked",
		zap.String("student_id", record.StudentID),
		zap.Time("date", record.Date),
		zap.String("status", string(record.Status)))
	return record, nil
}

// Delete removes one attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return appErrors.ValidationField("attendance id must be positive", "id", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapInternal(err, "failed to delete attendance")
	}
	s.logger.Info("attendance deleted", zap.Int64("attendance_id", id))
	return nil
}
