package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/app/repositories"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
	"github.com/seojin/hakwonhub/internal/pkg/helpers"
)

// DashboardService serves the dashboard aggregate and per-user preferences
type DashboardService struct {
	dashboardRepo repositories.DashboardRepository
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(dashboardRepo repositories.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// GetStats computes the tenant dashboard aggregate over an inclusive date
// window. Both bounds are required.
func (s *DashboardService) GetStats(ctx context.Context, tenantID, periodStart, periodEnd string) (*dto.DashboardStatsResponse, error) {
	if tenantID == "" {
		return nil, apperrors.NewValidationError("tenant id is required")
	}
	if periodStart == "" {
		return nil, apperrors.NewValidationError("periodStart is required")
	}
	if periodEnd == "" {
		return nil, apperrors.NewValidationError("periodEnd is required")
	}

	start, err := helpers.ParseISODate(periodStart)
	if err != nil {
		return nil, apperrors.NewValidationError("periodStart must be a valid date (YYYY-MM-DD)")
	}
	end, err := helpers.ParseISODate(periodEnd)
	if err != nil {
		return nil, apperrors.NewValidationError("periodEnd must be a valid date (YYYY-MM-DD)")
	}

	if start.After(end) {
		return nil, apperrors.NewValidationError("periodStart must be before periodEnd")
	}

	stats, err := s.dashboardRepo.AggregateStats(ctx, tenantID, start, end)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to aggregate dashboard stats")
	}

	return &dto.DashboardStatsResponse{
		ActiveStudents:     stats.ActiveStudents,
		NewEnrollments:     stats.NewEnrollments,
		SessionsCompleted:  stats.SessionsCompleted,
		AttendanceRate:     stats.AttendanceRate(),
		RevenueCollected:   stats.RevenueCollected,
		OutstandingBalance: stats.OutstandingBalance,
		PeriodStart:        stats.PeriodStart.Format(helpers.ISODateFormat),
		PeriodEnd:          stats.PeriodEnd.Format(helpers.ISODateFormat),
	}, nil
}

// GetPreferences returns the stored preferences blob; null when the user has
// never saved any.
func (s *DashboardService) GetPreferences(ctx context.Context, userID string) (*dto.PreferencesResponse, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}

	prefs, err := s.dashboardRepo.GetPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("User", userID)
		}
		return nil, apperrors.NewDatabaseError("failed to load dashboard preferences")
	}

	return &dto.PreferencesResponse{Preferences: prefs}, nil
}

// SavePreferences merges the payload into the stored blob key by key. Keys
// the payload does not mention are preserved.
func (s *DashboardService) SavePreferences(ctx context.Context, userID string, req dto.SavePreferencesRequest) (*dto.PreferencesResponse, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	if req.Preferences == nil {
		return nil, apperrors.NewValidationError("preferences object is required")
	}

	payload, err := json.Marshal(req.Preferences)
	if err != nil {
		return nil, apperrors.NewValidationError("preferences must be a valid JSON object")
	}

	merged, err := s.dashboardRepo.MergePreferences(ctx, userID, payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("User", userID)
		}
		return nil, apperrors.NewDatabaseError("failed to save dashboard preferences")
	}

	return &dto.PreferencesResponse{Preferences: merged}, nil
}
