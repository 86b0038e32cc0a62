package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
)

type academicYearRepository interface {
	List(ctx context.Context) ([]models.AcademicYear, error)
}

// AcademicYearService serves academic year lookups.
type AcademicYearService struct {
	repo   academicYearRepository
	logger *zap.Logger
}

// NewAcademicYearService constructs the academic year service.
func NewAcademicYearService(repo academicYearRepository, logger *zap.Logger) *AcademicYearService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademicYearService{repo: repo, logger: logger}
}

// List returns academic years, newest first.
func (s *AcademicYearService) List(ctx context.Context) ([]models.AcademicYear, error) {
	years, err := s.repo.List(ctx)
	if err != nil {
		return nil, wrapInternal(err, "failed to list academic years")
	}
	if years == nil {
		years = []models.AcademicYear{}
	}
	return years, nil
}
