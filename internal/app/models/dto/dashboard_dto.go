package dto

import "encoding/json"

// DashboardWidget is one widget placement in a user's dashboard layout
type DashboardWidget struct {
	ID      string `json:"id" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Visible bool   `json:"visible"`
	Order   int    `json:"order"`
	Column  string `json:"column" binding:"required,oneof=left right"`
}

// DashboardPreferences is the persisted per-user dashboard configuration
type DashboardPreferences struct {
	Widgets []DashboardWidget `json:"widgets" binding:"required,dive"`
	Layout  string            `json:"layout,omitempty"`
}

// SavePreferencesRequest wraps the preferences payload; a missing
// preferences object is a 400.
type SavePreferencesRequest struct {
	Preferences *DashboardPreferences `json:"preferences" binding:"required"`
}

// PreferencesResponse returns the stored preferences blob, null when the
// user has never saved any.
type PreferencesResponse struct {
	Preferences json.RawMessage `json:"preferences"`
}

// DashboardStatsResponse is the output DTO for the stats use case. All
// aggregation happens in the repository query; this layer only reshapes.
type DashboardStatsResponse struct {
	ActiveStudents     int     `json:"activeStudents"`
	NewEnrollments     int     `json:"newEnrollments"`
	SessionsCompleted  int     `json:"sessionsCompleted"`
	AttendanceRate     float64 `json:"attendanceRate"`
	RevenueCollected   int64   `json:"revenueCollected"`
	OutstandingBalance int64   `json:"outstandingBalance"`
	PeriodStart        string  `json:"periodStart"`
	PeriodEnd          string  `json:"periodEnd"`
}
