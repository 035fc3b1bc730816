package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojin/hakwonhub/internal/app/models"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
)

func newStatsService(stats *models.DashboardStats) (*DashboardService, *fakeDashboardRepo) {
	repo := newFakeDashboardRepo()
	repo.stats = stats
	return NewDashboardService(repo), repo
}

func TestGetStats_RequiresTenant(t *testing.T) {
	svc, _ := newStatsService(&models.DashboardStats{})

	_, err := svc.GetStats(context.Background(), "", "", "")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestGetStats_RejectsMalformedDates(t *testing.T) {
	svc, _ := newStatsService(&models.DashboardStats{})

	_, err := svc.GetStats(context.Background(), testTenant, "2026/08/01", "2026-08-31")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	_, err = svc.GetStats(context.Background(), testTenant, "2026-08-01", "not-a-date")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestGetStats_RequiresBothBounds(t *testing.T) {
	svc, _ := newStatsService(&models.DashboardStats{})

	_, err := svc.GetStats(context.Background(), testTenant, "", "2026-08-31")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Message, "periodStart is required")

	_, err = svc.GetStats(context.Background(), testTenant, "2026-08-01", "")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Message, "periodEnd is required")

	_, err = svc.GetStats(context.Background(), testTenant, "", "")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestGetStats_RejectsInvertedWindow(t *testing.T) {
	svc, _ := newStatsService(&models.DashboardStats{})

	_, err := svc.GetStats(context.Background(), testTenant, "2026-08-10", "2026-08-01")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Message, "periodStart must be before periodEnd")
}

func TestGetStats_PassesParsedWindow(t *testing.T) {
	svc, repo := newStatsService(&models.DashboardStats{ActiveStudents: 12})

	resp, err := svc.GetStats(context.Background(), testTenant, "2026-08-01", "2026-08-15")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), repo.lastStart)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), repo.lastEnd)
	assert.Equal(t, "2026-08-01", resp.PeriodStart)
	assert.Equal(t, "2026-08-15", resp.PeriodEnd)
	assert.Equal(t, 12, resp.ActiveStudents)
}

func TestGetStats_ComputesAttendanceRate(t *testing.T) {
	svc, _ := newStatsService(&models.DashboardStats{
		SessionsScheduled: 20,
		SessionsCompleted: 15,
	})

	resp, err := svc.GetStats(context.Background(), testTenant, "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	assert.InDelta(t, 0.75, resp.AttendanceRate, 1e-9)
}

func TestGetStats_ZeroScheduledMeansZeroRate(t *testing.T) {
	svc, _ := newStatsService(&models.DashboardStats{})

	resp, err := svc.GetStats(context.Background(), testTenant, "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	assert.Zero(t, resp.AttendanceRate)
}

func TestGetPreferences_NullWhenNeverSaved(t *testing.T) {
	repo := newFakeDashboardRepo()
	repo.prefs["user-1"] = nil
	svc := NewDashboardService(repo)

	resp, err := svc.GetPreferences(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, resp.Preferences)
}

func TestGetPreferences_UnknownUser(t *testing.T) {
	svc := NewDashboardService(newFakeDashboardRepo())

	_, err := svc.GetPreferences(context.Background(), "ghost")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestSavePreferences_MergePreservesOtherKeys(t *testing.T) {
	repo := newFakeDashboardRepo()
	repo.prefs["user-1"] = json.RawMessage(`{"theme":"dark","widgets":[]}`)
	svc := NewDashboardService(repo)

	resp, err := svc.SavePreferences(context.Background(), "user-1", dto.SavePreferencesRequest{
		Preferences: &dto.DashboardPreferences{
			Widgets: []dto.DashboardWidget{
				{ID: "revenue", Title: "Revenue", Visible: true, Order: 1, Column: "left"},
			},
			Layout: "two-column",
		},
	})
	require.NoError(t, err)

	var merged map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Preferences, &merged))
	assert.JSONEq(t, `"dark"`, string(merged["theme"]))
	assert.Contains(t, string(merged["widgets"]), "revenue")
	assert.JSONEq(t, `"two-column"`, string(merged["layout"]))
}

func TestSavePreferences_RequiresPayload(t *testing.T) {
	svc := NewDashboardService(newFakeDashboardRepo())

	_, err := svc.SavePreferences(context.Background(), "user-1", dto.SavePreferencesRequest{})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}
