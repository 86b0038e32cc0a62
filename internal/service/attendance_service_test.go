package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type attendanceRepoStub struct {
	byDate   map[string][]models.AttendanceDetail
	upserted []*models.AttendanceRecord
	deleted  []int64
	err      error
}

func (s *attendanceRepoStub) ListByDate(ctx context.Context, date time.Time) ([]models.AttendanceDetail, error) {
	return s.byDate[date.Format("2006-01-02")], s.err
}

func (s *attendanceRepoStub) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	if s.err != nil {
		return s.err
	}
	record.ID = int64(len(s.upserted) + 1)
	s.upserted = append(s.upserted, record)
	return nil
}

func (s *attendanceRepoStub) Delete(ctx context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func TestAttendanceServiceMarkRejectsUnknownStatus(t *testing.T) {
	repo := &attendanceRepoStub{}
	svc := NewAttendanceService(repo, nil, nil)

	_, err := svc.Mark(context.Background(), MarkAttendanceRequest{
		StudentID: "STD-1",
		Status:    "vacationing",
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Fields, "status")
	assert.Empty(t, repo.upserted)
}

func TestAttendanceServiceMarkDefaultsDateToToday(t *testing.T) {
	repo := &attendanceRepoStub{}
	svc := NewAttendanceService(repo, nil, nil)
	fixed := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	record, err := svc.Mark(context.Background(), MarkAttendanceRequest{
		StudentID: "STD-1",
		Status:    "present",
	})
	require.NoError(t, err)
	assert.True(t, record.Date.Equal(fixed))
	assert.Equal(t, models.AttendanceStatusPresent, record.Status)
}

func TestAttendanceServiceMarkUsesSuppliedDate(t *testing.T) {
	repo := &attendanceRepoStub{}
	svc := NewAttendanceService(repo, nil, nil)

	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	record, err := svc.Mark(context.Background(), MarkAttendanceRequest{
		StudentID: "STD-1",
		Date:      &day,
		Status:    "late",
	})
	require.NoError(t, err)
	assert.True(t, record.Date.Equal(day))
}

func TestAttendanceServiceListDefaultsToToday(t *testing.T) {
	repo := &attendanceRepoStub{byDate: map[string][]models.AttendanceDetail{
		"2026-08-29": {{Name: "Amina Yusuf"}},
	}}
	svc := NewAttendanceService(repo, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC) }

	records, err := svc.ListByDate(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Amina Yusuf", records[0].Name)
}

func TestAttendanceServiceDeleteRejectsBadID(t *testing.T) {
	svc := NewAttendanceService(&attendanceRepoStub{}, nil, nil)

	err := svc.Delete(context.Background(), -1)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
