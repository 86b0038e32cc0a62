package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/school-admin-api/internal/models"
)

// AcademicYearRepository serves academic year lookups.
type AcademicYearRepository struct {
	exec *Executor
}

// NewAcademicYearRepository constructs the repository.
func NewAcademicYearRepository(exec *Executor) *AcademicYearRepository {
	return &AcademicYearRepository{exec: exec}
}

// List returns academic years, newest first.
func (r *AcademicYearRepository) List(ctx context.Context) ([]models.AcademicYear, error) {
	const query = `SELECT id, name, start_date, end_date, is_current FROM academic_years ORDER BY start_date DESC`
	var years []models.AcademicYear
	if err := r.exec.Select(ctx, "list_academic_years", &years, query); err != nil {
		return nil, fmt.Errorf("list academic years: %w", err)
	}
	return years, nil
}
