package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
)

type attendanceServiceMock struct {
	records []models.AttendanceDetail
	marked  *models.AttendanceRecord
	err     error
	last    time.Time
}

func (m *attendanceServiceMock) ListByDate(ctx context.Context, date time.Time) ([]models.AttendanceDetail, error) {
	m.last = date
	return m.records, m.err
}

func (m *attendanceServiceMock) Mark(ctx context.Context, req service.MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	return m.marked, m.err
}

func (m *attendanceServiceMock) Delete(ctx context.Context, id int64) error {
	return m.err
}

func TestAttendanceHandlerMarkCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &attendanceServiceMock{marked: &models.AttendanceRecord{ID: 42, StudentID: "STD-1", Status: models.AttendanceStatusPresent}}
	handler := NewAttendanceHandler(mockSvc)

	payload, _ := json.Marshal(service.MarkAttendanceRequest{StudentID: "STD-1", Status: "present"})
	c, w := newGinContext(http.MethodPost, "/attendance", payload)

	handler.Mark(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestAttendanceHandlerListParsesDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &attendanceServiceMock{}
	handler := NewAttendanceHandler(mockSvc)

	c, w := newGinContext(http.MethodGet, "/attendance?date=2026-03-04", nil)

	handler.ListByDate(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), mockSvc.last)
}

func TestAttendanceHandlerListRejectsBadDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAttendanceHandler(&attendanceServiceMock{})

	c, w := newGinContext(http.MethodGet, "/attendance?date=garbage", nil)

	handler.ListByDate(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandlerDeleteRejectsNonNumericID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAttendanceHandler(&attendanceServiceMock{})

	c, w := newGinContext(http.MethodDelete, "/attendance/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.Delete(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
