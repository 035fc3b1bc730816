package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/seojin/hakwonhub/internal/app/models"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/app/repositories"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
	"github.com/seojin/hakwonhub/internal/pkg/dberrors"
	"github.com/seojin/hakwonhub/internal/pkg/helpers"
)

// AttendanceService drives attendance sessions through their lifecycle
type AttendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	classRepo      repositories.ClassRepository

	// now is swappable in tests
	now func() time.Time
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(attendanceRepo repositories.AttendanceRepository, classRepo repositories.ClassRepository) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		classRepo:      classRepo,
		now:            time.Now,
	}
}

// CreateSession schedules a session for an existing class
func (s *AttendanceService) CreateSession(ctx context.Context, tenantID string, req dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if tenantID == "" {
		return nil, apperrors.NewValidationError("tenant id is required")
	}

	sessionDate, err := helpers.ParseISODate(req.SessionDate)
	if err != nil {
		return nil, apperrors.NewValidationError("session_date must be a valid date (YYYY-MM-DD)")
	}

	if req.ScheduledStartAt != nil && req.ScheduledEndAt != nil &&
		!req.ScheduledStartAt.Before(*req.ScheduledEndAt) {
		return nil, apperrors.NewValidationError("scheduled_start_at must be before scheduled_end_at")
	}

	if _, err := s.classRepo.GetByID(ctx, tenantID, req.ClassID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Class", req.ClassID)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve class")
	}

	session := &models.AttendanceSession{
		TenantID:         tenantID,
		ClassID:          req.ClassID,
		SessionDate:      sessionDate,
		Status:           models.SessionStatusScheduled,
		ScheduledStartAt: req.ScheduledStartAt,
		ScheduledEndAt:   req.ScheduledEndAt,
	}

	if err := s.attendanceRepo.Create(ctx, session); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewNotFoundError("Class", req.ClassID)
		}
		return nil, apperrors.NewDatabaseError("failed to create session")
	}

	resp := dto.NewSessionResponse(session)
	return &resp, nil
}

// GetSession retrieves one session within the tenant
func (s *AttendanceService) GetSession(ctx context.Context, tenantID, id string) (*dto.SessionResponse, error) {
	session, err := s.attendanceRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Session", id)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve session")
	}

	resp := dto.NewSessionResponse(session)
	return &resp, nil
}

// ListSessionsByClass lists a class's sessions, newest first
func (s *AttendanceService) ListSessionsByClass(ctx context.Context, tenantID, classID string) ([]dto.SessionResponse, error) {
	if tenantID == "" {
		return nil, apperrors.NewValidationError("tenant id is required")
	}

	sessions, err := s.attendanceRepo.FindByClass(ctx, tenantID, classID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list sessions")
	}

	out := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, dto.NewSessionResponse(session))
	}
	return out, nil
}

// UpdateSession applies a lifecycle transition. Moving into in_progress
// stamps the actual start, completing stamps the actual end; a supplied
// timestamp wins over the clock. Illegal transitions are conflicts.
func (s *AttendanceService) UpdateSession(ctx context.Context, tenantID, id string, req dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	session, err := s.attendanceRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Session", id)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve session")
	}

	next := models.SessionStatus(req.Status)
	if !next.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid session status %q", req.Status))
	}

	if next != session.Status {
		if !session.Status.CanTransitionTo(next) {
			return nil, apperrors.NewConflictError(
				fmt.Sprintf("cannot transition session from %s to %s", session.Status, next))
		}

		switch next {
		case models.SessionStatusInProgress:
			startAt := s.now()
			if req.ActualStartAt != nil {
				startAt = *req.ActualStartAt
			}
			session.ActualStartAt = &startAt
		case models.SessionStatusCompleted:
			endAt := s.now()
			if req.ActualEndAt != nil {
				endAt = *req.ActualEndAt
			}
			session.ActualEndAt = &endAt
		}
		session.Status = next
	}

	if err := s.attendanceRepo.Update(ctx, session); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Session", id)
		}
		return nil, apperrors.NewDatabaseError("failed to update session")
	}

	resp := dto.NewSessionResponse(session)
	return &resp, nil
}

// DeleteSession soft-deletes a session
func (s *AttendanceService) DeleteSession(ctx context.Context, tenantID, id string) error {
	if err := s.attendanceRepo.SoftDelete(ctx, tenantID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("Session", id)
		}
		return apperrors.NewDatabaseError("failed to delete session")
	}
	return nil
}
