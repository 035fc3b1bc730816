package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/seojin/hakwonhub/internal/app/models"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/app/repositories"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
)

// ClassService manages classes and their headcounts
type ClassService struct {
	classRepo repositories.ClassRepository
}

// NewClassService creates a new class service instance
func NewClassService(classRepo repositories.ClassRepository) *ClassService {
	return &ClassService{classRepo: classRepo}
}

// CreateClass opens a class with a fixed capacity
func (s *ClassService) CreateClass(ctx context.Context, tenantID string, req dto.CreateClassRequest) (*dto.ClassResponse, error) {
	if tenantID == "" {
		return nil, apperrors.NewValidationError("tenant id is required")
	}
	if req.Capacity <= 0 {
		return nil, apperrors.NewValidationError("capacity must be positive")
	}

	class := &models.Class{
		TenantID: tenantID,
		Name:     req.Name,
		Subject:  req.Subject,
		Capacity: req.Capacity,
	}

	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, apperrors.NewDatabaseError("failed to create class")
	}

	resp := dto.NewClassResponse(class)
	return &resp, nil
}

// GetClass retrieves one class within the tenant
func (s *ClassService) GetClass(ctx context.Context, tenantID, id string) (*dto.ClassResponse, error) {
	class, err := s.classRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Class", id)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve class")
	}

	resp := dto.NewClassResponse(class)
	return &resp, nil
}

// ListClasses lists the tenant's classes ordered by name
func (s *ClassService) ListClasses(ctx context.Context, tenantID string) ([]dto.ClassResponse, error) {
	if tenantID == "" {
		return nil, apperrors.NewValidationError("tenant id is required")
	}

	classes, err := s.classRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list classes")
	}

	out := make([]dto.ClassResponse, 0, len(classes))
	for _, class := range classes {
		out = append(out, dto.NewClassResponse(class))
	}
	return out, nil
}

// Enroll increments the class headcount. Enrolling into a full class is a
// conflict; the capacity check happens before the adjustment.
func (s *ClassService) Enroll(ctx context.Context, tenantID, id string) (*dto.ClassResponse, error) {
	class, err := s.classRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Class", id)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve class")
	}

	if class.EnrolledCount >= class.Capacity {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("class %q is at capacity (%d)", class.Name, class.Capacity))
	}

	if err := s.classRepo.AdjustEnrolledCount(ctx, tenantID, id, 1); err != nil {
		return nil, apperrors.NewDatabaseError("failed to update enrollment")
	}

	class.EnrolledCount++
	resp := dto.NewClassResponse(class)
	return &resp, nil
}

// Withdraw decrements the class headcount, never below zero
func (s *ClassService) Withdraw(ctx context.Context, tenantID, id string) (*dto.ClassResponse, error) {
	class, err := s.classRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Class", id)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve class")
	}

	if err := s.classRepo.AdjustEnrolledCount(ctx, tenantID, id, -1); err != nil {
		return nil, apperrors.NewDatabaseError("failed to update enrollment")
	}

	if class.EnrolledCount > 0 {
		class.EnrolledCount--
	}
	resp := dto.NewClassResponse(class)
	return &resp, nil
}
