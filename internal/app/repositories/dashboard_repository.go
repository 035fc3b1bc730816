package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seojin/hakwonhub/internal/app/models"
)

// DashboardRepository aggregates tenant-scoped statistics and stores
// per-user dashboard preferences.
type DashboardRepository interface {
	AggregateStats(ctx context.Context, tenantID string, periodStart, periodEnd time.Time) (*models.DashboardStats, error)
	GetPreferences(ctx context.Context, userID string) (json.RawMessage, error)
	MergePreferences(ctx context.Context, userID string, preferences json.RawMessage) (json.RawMessage, error)
}

type dashboardRepository struct {
	db *pgxpool.Pool
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *pgxpool.Pool) DashboardRepository {
	return &dashboardRepository{db: db}
}

// AggregateStats computes the dashboard aggregate over the inclusive window
// in a single round trip. The window is closed on both ends; the end bound
// is pushed to the next day for timestamp comparisons.
func (r *dashboardRepository) AggregateStats(ctx context.Context, tenantID string, periodStart, periodEnd time.Time) (*models.DashboardStats, error) {
	endExclusive := periodEnd.AddDate(0, 0, 1)

	query := `
		SELECT
			(SELECT COUNT(*) FROM students
				WHERE tenant_id = $1 AND status = 'active' AND deleted_at IS NULL),
			(SELECT COUNT(*) FROM students
				WHERE tenant_id = $1 AND deleted_at IS NULL
				AND enrollment_date >= $2 AND enrollment_date < $3),
			(SELECT COUNT(*) FROM attendance_sessions
				WHERE tenant_id = $1 AND deleted_at IS NULL
				AND session_date >= $2 AND session_date < $3
				AND status <> 'cancelled'),
			(SELECT COUNT(*) FROM attendance_sessions
				WHERE tenant_id = $1 AND deleted_at IS NULL
				AND session_date >= $2 AND session_date < $3
				AND status = 'completed'),
			(SELECT COALESCE(SUM(amount), 0) FROM payments
				WHERE tenant_id = $1 AND paid_at >= $2 AND paid_at < $3),
			(SELECT COALESCE(SUM(total_amount - paid_amount), 0) FROM invoices
				WHERE tenant_id = $1 AND deleted_at IS NULL
				AND status IN ('unpaid', 'partially_paid', 'overdue'))
	`

	stats := &models.DashboardStats{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}
	err := r.db.QueryRow(ctx, query, tenantID, periodStart, endExclusive).Scan(
		&stats.ActiveStudents,
		&stats.NewEnrollments,
		&stats.SessionsScheduled,
		&stats.SessionsCompleted,
		&stats.RevenueCollected,
		&stats.OutstandingBalance,
	)
	if err != nil {
		return nil, fmt.Errorf("error aggregating dashboard stats: %w", err)
	}

	return stats, nil
}

// GetPreferences returns the raw preferences blob, nil when never set
func (r *dashboardRepository) GetPreferences(ctx context.Context, userID string) (json.RawMessage, error) {
	var prefs json.RawMessage
	err := r.db.QueryRow(ctx, `
		SELECT dashboard_preferences FROM users
		WHERE id = $1 AND deleted_at IS NULL`,
		userID).Scan(&prefs)
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

// MergePreferences merges the given object into the stored blob key by key,
// preserving keys the payload does not touch, and returns the result.
func (r *dashboardRepository) MergePreferences(ctx context.Context, userID string, preferences json.RawMessage) (json.RawMessage, error) {
	var merged json.RawMessage
	err := r.db.QueryRow(ctx, `
		UPDATE users
		SET dashboard_preferences = COALESCE(dashboard_preferences, '{}'::jsonb) || $2::jsonb,
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING dashboard_preferences`,
		userID, preferences).Scan(&merged)
	if err != nil {
		return nil, err
	}
	return merged, nil
}
