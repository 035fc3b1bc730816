package models

import "time"

// DashboardStats is the tenant-scoped aggregate computed over an inclusive
// date window. All aggregation happens in SQL; this struct only carries the
// results.
type DashboardStats struct {
	ActiveStudents     int
	NewEnrollments     int
	SessionsScheduled  int
	SessionsCompleted  int
	RevenueCollected   int64
	OutstandingBalance int64
	PeriodStart        time.Time
	PeriodEnd          time.Time
}

// AttendanceRate returns the completed/scheduled ratio for the window,
// zero when nothing was scheduled.
func (s *DashboardStats) AttendanceRate() float64 {
	if s.SessionsScheduled == 0 {
		return 0
	}
	return float64(s.SessionsCompleted) / float64(s.SessionsScheduled)
}
