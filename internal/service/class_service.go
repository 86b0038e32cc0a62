package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
)

type classRepository interface {
	ListClasses(ctx context.Context) ([]models.Class, error)
	ListSections(ctx context.Context, classID *int64) ([]models.SectionDetail, error)
}

// ClassService serves the class/section hierarchy.
type ClassService struct {
	repo   classRepository
	logger *zap.Logger
}

// NewClassService constructs the class service.
func NewClassService(repo classRepository, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, logger: logger}
}

// ListClasses returns all classes in display order.
func (s *ClassService) ListClasses(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.ListClasses(ctx)
	if err != nil {
		return nil, wrapInternal(err, "failed to list classes")
	}
	if classes == nil {
		classes = []models.Class{}
	}
	return classes, nil
}

// ListSections returns sections, optionally filtered to one class.
func (s *ClassService) ListSections(ctx context.Context, classID *int64) ([]models.SectionDetail, error) {
	sections, err := s.repo.ListSections(ctx, classID)
	if err != nil {
		return nil, wrapInternal(err, "failed to list sections")
	}
	if sections == nil {
		sections = []models.SectionDetail{}
	}
	return sections, nil
}

// ListGrouped returns sections grouped under their class, preserving the
// class display order coming from the repository.
func (s *ClassService) ListGrouped(ctx context.Context) ([]models.ClassSections, error) {
	sections, err := s.repo.ListSections(ctx, nil)
	if err != nil {
		return nil, wrapInternal(err, "failed to list sections")
	}

	grouped := make([]models.ClassSections, 0)
	index := make(map[int64]int)
	for _, sec := range sections {
		i, ok := index[sec.ClassID]
		if !ok {
			i = len(grouped)
			index[sec.ClassID] = i
			grouped = append(grouped, models.ClassSections{
				ClassID:   sec.ClassID,
				ClassName: sec.ClassName,
				Sections:  []models.Section{},
			})
		}
		grouped[i].Sections = append(grouped[i].Sections, models.Section{
			ID:      sec.ID,
			Name:    sec.Name,
			ClassID: sec.ClassID,
		})
	}
	return grouped, nil
}
