package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/school-admin-api/internal/models"
)

// ClassRepository serves the class/section hierarchy.
type ClassRepository struct {
	exec *Executor
}

// NewClassRepository constructs the repository.
func NewClassRepository(exec *Executor) *ClassRepository {
	return &ClassRepository{exec: exec}
}

// ListClasses returns all classes in display order.
func (r *ClassRepository) ListClasses(ctx context.Context) ([]models.Class, error) {
	const query = `SELECT id, name, level, order_number FROM classes ORDER BY order_number`
	var classes []models.Class
	if err := r.exec.Select(ctx, "list_classes", &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// ListSections returns sections with their owning class, optionally filtered
// by class.
func (r *ClassRepository) ListSections(ctx context.Context, classID *int64) ([]models.SectionDetail, error) {
	query := `SELECT sec.id, sec.name, c.id AS class_id, c.name AS class_name
        FROM sections sec
        JOIN classes c ON sec.class_id = c.id`
	args := []interface{}{}
	if classID != nil {
		query += ` WHERE c.id = $1`
		args = append(args, *classID)
	}
	query += ` ORDER BY c.order_number, sec.name`

	var sections []models.SectionDetail
	if err := r.exec.Select(ctx, "list_sections", &sections, query, args...); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}
