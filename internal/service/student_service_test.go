package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type studentRepoStub struct {
	students []models.StudentDetail
	enrolled []*models.Student
	deleted  []string
	err      error
}

func (s *studentRepoStub) List(ctx context.Context) ([]models.StudentDetail, error) {
	return s.students, s.err
}

func (s *studentRepoStub) ListActiveForForms(ctx context.Context) ([]models.StudentSummary, error) {
	return nil, s.err
}

func (s *studentRepoStub) ListActiveRoster(ctx context.Context) ([]models.StudentSummary, error) {
	return nil, s.err
}

func (s *studentRepoStub) Enroll(ctx context.Context, student *models.Student) error {
	if s.err != nil {
		return s.err
	}
	student.ID = "STD-test"
	s.enrolled = append(s.enrolled, student)
	return nil
}

func (s *studentRepoStub) Delete(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func TestStudentServiceEnrollRequiresFields(t *testing.T) {
	repo := &studentRepoStub{}
	svc := NewStudentService(repo, nil, nil)

	_, err := svc.Enroll(context.Background(), EnrollStudentRequest{LastName: "Yusuf"})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Fields, "first_name")
	assert.Contains(t, appErr.Fields, "section_id")
	assert.Empty(t, repo.enrolled)
}

func TestStudentServiceEnrollRejectsBadGender(t *testing.T) {
	repo := &studentRepoStub{}
	svc := NewStudentService(repo, nil, nil)

	gender := "other"
	_, err := svc.Enroll(context.Background(), EnrollStudentRequest{
		FirstName: "Amina",
		LastName:  "Yusuf",
		SectionID: 3,
		Gender:    &gender,
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "gender", appErr.Field)
}

func TestStudentServiceEnrollPassesPayloadThrough(t *testing.T) {
	repo := &studentRepoStub{}
	svc := NewStudentService(repo, nil, nil)

	student, err := svc.Enroll(context.Background(), EnrollStudentRequest{
		FirstName: "Amina",
		LastName:  "Yusuf",
		SectionID: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "STD-test", student.ID)
	require.Len(t, repo.enrolled, 1)
	assert.Equal(t, int64(3), repo.enrolled[0].SectionID)
}

func TestStudentServiceEnrollPreservesRepositoryValidation(t *testing.T) {
	repo := &studentRepoStub{err: appErrors.Validation("student already exists with the same name and section", "first_name", "last_name", "section_id")}
	svc := NewStudentService(repo, nil, nil)

	_, err := svc.Enroll(context.Background(), EnrollStudentRequest{
		FirstName: "Amina",
		LastName:  "Yusuf",
		SectionID: 3,
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestStudentServiceDeleteRequiresID(t *testing.T) {
	svc := NewStudentService(&studentRepoStub{}, nil, nil)

	err := svc.Delete(context.Background(), "")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestStudentServiceListNeverReturnsNil(t *testing.T) {
	svc := NewStudentService(&studentRepoStub{}, nil, nil)

	students, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}
