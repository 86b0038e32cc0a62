package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/dto"
	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/shopspring/decimal"
)

const dashboardStatsCacheKey = "dash:stats"

type dashboardRepository interface {
	CountActiveStudents(ctx context.Context) (int, error)
	CountAttendanceByStatus(ctx context.Context, date time.Time, status models.AttendanceStatus) (int, error)
	MandatoryFeesDue(ctx context.Context) (decimal.Decimal, error)
	LatestStudents(ctx context.Context, limit int) ([]models.RecentStudent, error)
}

// DashboardService composes the school-wide counters shown on the landing
// page, with a short-lived cache in front of the aggregate queries.
type DashboardService struct {
	repo     dashboardRepository
	cache    *CacheService
	logger   *zap.Logger
	cacheTTL time.Duration
	now      func() time.Time
}

// NewDashboardService constructs the dashboard service. A nil cache disables
// caching.
func NewDashboardService(repo dashboardRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, cache: cache, logger: logger, cacheTTL: cacheTTL, now: time.Now}
}

// Stats returns the current counters and reports whether they were served
// from cache.
func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, bool, error) {
	if s.cache != nil && s.cache.Enabled() {
		var cached dto.DashboardStatsResponse
		hit, err := s.cache.Get(ctx, dashboardStatsCacheKey, &cached)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		} else if hit {
			return &cached, true, nil
		}
	}

	stats, err := s.composeStats(ctx)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil && s.cache.Enabled() {
		if err := s.cache.Set(ctx, dashboardStatsCacheKey, stats, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return stats, false, nil
}

func (s *DashboardService) composeStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	today := s.now().UTC()

	total, err := s.repo.CountActiveStudents(ctx)
	if err != nil {
		return nil, wrapInternal(err, "failed to count active students")
	}
	present, err := s.repo.CountAttendanceByStatus(ctx, today, models.AttendanceStatusPresent)
	if err != nil {
		return nil, wrapInternal(err, "failed to count present students")
	}
	absent, err := s.repo.CountAttendanceByStatus(ctx, today, models.AttendanceStatusAbsent)
	if err != nil {
		return nil, wrapInternal(err, "failed to count absent students")
	}
	feesDue, err := s.repo.MandatoryFeesDue(ctx)
	if err != nil {
		return nil, wrapInternal(err, "failed to compute fees due")
	}

	return &dto.DashboardStatsResponse{
		TotalStudents:   total,
		AttendanceToday: present,
		AbsentToday:     absent,
		FeesDue:         feesDue,
	}, nil
}

// RecentStudents returns the most recently enrolled students, five by
// default.
func (s *DashboardService) RecentStudents(ctx context.Context, limit int) ([]models.RecentStudent, error) {
	students, err := s.repo.LatestStudents(ctx, limit)
	if err != nil {
		return nil, wrapInternal(err, "failed to list recent students")
	}
	if students == nil {
		students = []models.RecentStudent{}
	}
	return students, nil
}
