package models

import "time"

// SessionStatus represents the lifecycle state of an attendance session
type SessionStatus string

const (
	SessionStatusScheduled  SessionStatus = "scheduled"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusCancelled  SessionStatus = "cancelled"
)

// Valid returns true when the status is a supported value.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusScheduled, SessionStatusInProgress, SessionStatusCompleted, SessionStatusCancelled:
		return true
	default:
		return false
	}
}

// sessionTransitions is the allowed lifecycle:
// scheduled -> in_progress -> completed, and cancellation from any
// non-terminal state.
var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionStatusScheduled:  {SessionStatusInProgress, SessionStatusCancelled},
	SessionStatusInProgress: {SessionStatusCompleted, SessionStatusCancelled},
	SessionStatusCompleted:  {},
	SessionStatusCancelled:  {},
}

// CanTransitionTo reports whether moving from s to next is a legal step.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	for _, allowed := range sessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AttendanceSession defines a class session based on the
// 'attendance_sessions' table. Actual start/end timestamps are stamped on
// the transitions into in_progress and completed.
type AttendanceSession struct {
	ID               string        `json:"id" db:"id"`
	TenantID         string        `json:"tenantId" db:"tenant_id"`
	ClassID          string        `json:"classId" db:"class_id"`
	SessionDate      time.Time     `json:"sessionDate" db:"session_date"`
	Status           SessionStatus `json:"status" db:"status"`
	ScheduledStartAt *time.Time    `json:"scheduledStartAt,omitempty" db:"scheduled_start_at"`
	ScheduledEndAt   *time.Time    `json:"scheduledEndAt,omitempty" db:"scheduled_end_at"`
	ActualStartAt    *time.Time    `json:"actualStartAt,omitempty" db:"actual_start_at"`
	ActualEndAt      *time.Time    `json:"actualEndAt,omitempty" db:"actual_end_at"`

	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}
