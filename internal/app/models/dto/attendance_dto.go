package dto

import (
	"time"

	"github.com/seojin/hakwonhub/internal/app/models"
)

// CreateSessionRequest schedules a new attendance session for a class
type CreateSessionRequest struct {
	ClassID          string     `json:"class_id" binding:"required,uuid4"`
	SessionDate      string     `json:"session_date" binding:"required,datetime=2006-01-02"`
	ScheduledStartAt *time.Time `json:"scheduled_start_at"`
	ScheduledEndAt   *time.Time `json:"scheduled_end_at"`
}

// UpdateSessionRequest drives a session through its lifecycle. The actual
// timestamps are optional; transitions stamp them when absent.
type UpdateSessionRequest struct {
	Status        string     `json:"status" binding:"required,oneof=scheduled in_progress completed cancelled"`
	ActualStartAt *time.Time `json:"actual_start_at"`
	ActualEndAt   *time.Time `json:"actual_end_at"`
}

// SessionResponse is the output shape for an attendance session
type SessionResponse struct {
	ID               string     `json:"id"`
	TenantID         string     `json:"tenantId"`
	ClassID          string     `json:"classId"`
	SessionDate      time.Time  `json:"sessionDate"`
	Status           string     `json:"status"`
	ScheduledStartAt *time.Time `json:"scheduledStartAt,omitempty"`
	ScheduledEndAt   *time.Time `json:"scheduledEndAt,omitempty"`
	ActualStartAt    *time.Time `json:"actualStartAt,omitempty"`
	ActualEndAt      *time.Time `json:"actualEndAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// NewSessionResponse maps a domain session to its output DTO
func NewSessionResponse(s *models.AttendanceSession) SessionResponse {
	return SessionResponse{
		ID:               s.ID,
		TenantID:         s.TenantID,
		ClassID:          s.ClassID,
		SessionDate:      s.SessionDate,
		Status:           string(s.Status),
		ScheduledStartAt: s.ScheduledStartAt,
		ScheduledEndAt:   s.ScheduledEndAt,
		ActualStartAt:    s.ActualStartAt,
		ActualEndAt:      s.ActualEndAt,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
