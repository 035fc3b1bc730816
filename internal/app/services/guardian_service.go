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
	"github.com/seojin/hakwonhub/internal/pkg/dberrors"
)

// GuardianService manages guardians and their links to students
type GuardianService struct {
	guardianRepo repositories.GuardianRepository
	studentRepo  repositories.StudentRepository
}

// NewGuardianService creates a new guardian service instance
func NewGuardianService(guardianRepo repositories.GuardianRepository, studentRepo repositories.StudentRepository) *GuardianService {
	return &GuardianService{guardianRepo: guardianRepo, studentRepo: studentRepo}
}

// CreateGuardian registers a guardian in the caller's tenant
func (s *GuardianService) CreateGuardian(ctx context.Context, tenantID string, req dto.CreateGuardianRequest) (*dto.GuardianResponse, error) {
	if tenantID == "" {
		return nil, apperrors.NewValidationError("tenant id is required")
	}

	guardian := &models.Guardian{
		TenantID: tenantID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
	}

	if err := s.guardianRepo.Create(ctx, guardian); err != nil {
		return nil, apperrors.NewDatabaseError("failed to create guardian")
	}

	resp := dto.NewGuardianResponse(guardian)
	return &resp, nil
}

// GetGuardian retrieves one guardian within the tenant
func (s *GuardianService) GetGuardian(ctx context.Context, tenantID, id string) (*dto.GuardianResponse, error) {
	guardian, err := s.guardianRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Guardian", id)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve guardian")
	}

	resp := dto.NewGuardianResponse(guardian)
	return &resp, nil
}

// UpdateGuardian applies a partial update
func (s *GuardianService) UpdateGuardian(ctx context.Context, tenantID, id string, req dto.UpdateGuardianRequest) (*dto.GuardianResponse, error) {
	guardian, err := s.guardianRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Guardian", id)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve guardian")
	}

	if req.Name != nil {
		guardian.Name = *req.Name
	}
	if req.Phone != nil {
		guardian.Phone = *req.Phone
	}
	if req.Email != nil {
		guardian.Email = *req.Email
	}

	if err := s.guardianRepo.Update(ctx, guardian); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Guardian", id)
		}
		return nil, apperrors.NewDatabaseError("failed to update guardian")
	}

	resp := dto.NewGuardianResponse(guardian)
	return &resp, nil
}

// DeleteGuardian soft-deletes a guardian; existing links remain in place
func (s *GuardianService) DeleteGuardian(ctx context.Context, tenantID, id string) error {
	if err := s.guardianRepo.SoftDelete(ctx, tenantID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("Guardian", id)
		}
		return apperrors.NewDatabaseError("failed to delete guardian")
	}
	return nil
}

// LinkGuardian attaches a guardian to a student. Marking the link primary
// demotes any previous primary guardian for that student.
func (s *GuardianService) LinkGuardian(ctx context.Context, tenantID, studentID string, req dto.LinkGuardianRequest) (*dto.StudentGuardianResponse, error) {
	if tenantID == "" {
		return nil, apperrors.NewValidationError("tenant id is required")
	}
	relation := models.GuardianRelation(req.Relation)
	if !relation.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid guardian relation %q", req.Relation))
	}

	if _, err := s.studentRepo.GetByID(ctx, tenantID, studentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Student", studentID)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve student")
	}

	guardian, err := s.guardianRepo.GetByID(ctx, tenantID, req.GuardianID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Guardian", req.GuardianID)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve guardian")
	}

	link := &models.GuardianStudent{
		TenantID:   tenantID,
		GuardianID: req.GuardianID,
		StudentID:  studentID,
		Relation:   relation,
		IsPrimary:  req.IsPrimary,
	}

	if err := s.guardianRepo.LinkStudent(ctx, link); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("guardian is already linked to this student")
		}
		return nil, apperrors.NewDatabaseError("failed to link guardian")
	}

	resp := dto.StudentGuardianResponse{
		GuardianResponse: dto.NewGuardianResponse(guardian),
		Relation:         string(link.Relation),
		IsPrimary:        link.IsPrimary,
	}
	return &resp, nil
}

// ListStudentGuardians lists a student's guardians, primary first
func (s *GuardianService) ListStudentGuardians(ctx context.Context, tenantID, studentID string) ([]dto.StudentGuardianResponse, error) {
	if _, err := s.studentRepo.GetByID(ctx, tenantID, studentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Student", studentID)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve student")
	}

	links, err := s.guardianRepo.FindByStudent(ctx, tenantID, studentID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list guardians")
	}

	out := make([]dto.StudentGuardianResponse, 0, len(links))
	for _, link := range links {
		out = append(out, dto.StudentGuardianResponse{
			GuardianResponse: dto.NewGuardianResponse(link.Guardian),
			Relation:         string(link.Relation),
			IsPrimary:        link.IsPrimary,
		})
	}
	return out, nil
}
