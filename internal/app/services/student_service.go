package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/seojin/hakwonhub/internal/app/models"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/app/repositories"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
	"github.com/seojin/hakwonhub/internal/pkg/dberrors"
	"github.com/seojin/hakwonhub/internal/pkg/helpers"
)

// ListStudentsInput is the use-case input for the student listing. Page and
// PageSize are optional; nil means the default, a supplied value below 1 is
// rejected.
type ListStudentsInput struct {
	TenantID   string
	Status     string
	GradeLevel string
	Search     string
	SortBy     string
	SortOrder  string
	Page       *int
	PageSize   *int
}

// StudentService orchestrates student operations
type StudentService struct {
	studentRepo repositories.StudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// ListStudents validates the input, issues a filtered page fetch and a count
// with identical predicates, and maps the results to output DTOs.
func (s *StudentService) ListStudents(ctx context.Context, in ListStudentsInput) (*dto.StudentListResponse, error) {
	if in.TenantID == "" {
		return nil, apperrors.NewValidationError("tenant id is required")
	}

	page := helpers.DefaultPage
	if in.Page != nil {
		if *in.Page < 1 {
			return nil, apperrors.NewValidationError("page must be greater than or equal to 1")
		}
		page = *in.Page
	}

	pageSize := helpers.DefaultPageSize
	if in.PageSize != nil {
		if *in.PageSize < 1 {
			return nil, apperrors.NewValidationError("pageSize must be greater than or equal to 1")
		}
		pageSize = *in.PageSize
	}
	if pageSize > helpers.MaxPageSize {
		pageSize = helpers.MaxPageSize
	}

	if in.Status != "" && !models.StudentStatus(in.Status).Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid student status %q", in.Status))
	}

	filter := models.StudentFilter{
		TenantID:   in.TenantID,
		Status:     models.StudentStatus(in.Status),
		GradeLevel: in.GradeLevel,
		Search:     in.Search,
		SortBy:     in.SortBy,
		SortOrder:  in.SortOrder,
		Offset:     uint64((page - 1) * pageSize),
		Limit:      pageSize,
	}

	students, err := s.studentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list students")
	}

	total, err := s.studentRepo.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to count students")
	}

	resp := &dto.StudentListResponse{
		Students:   make([]dto.StudentResponse, 0, len(students)),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: helpers.NewPager(int(total), pageSize).TotalPages,
	}
	for _, student := range students {
		resp.Students = append(resp.Students, dto.NewStudentResponse(student))
	}

	return resp, nil
}

// CreateStudent registers a new student in the caller's tenant. A tenant id
// in the payload must match the session tenant.
func (s *StudentService) CreateStudent(ctx context.Context, tenantID string, req dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if tenantID == "" {
		return nil, apperrors.NewValidationError("tenant id is required")
	}
	if req.TenantID != "" && req.TenantID != tenantID {
		return nil, apperrors.NewForbiddenError("tenant id does not match the authenticated session")
	}
	if len(req.Name) < 2 {
		return nil, apperrors.NewValidationError("name must be at least 2 characters")
	}

	status := models.StudentStatusActive
	if req.Status != "" {
		status = models.StudentStatus(req.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid student status %q", req.Status))
		}
	}

	student := &models.Student{
		TenantID:    tenantID,
		StudentCode: req.StudentCode,
		Name:        req.Name,
		GradeLevel:  req.GradeLevel,
		Status:      status,
		Gender:      req.Gender,
		AvatarURL:   req.AvatarURL,
		Meta:        req.Meta,
	}
	if student.Meta == nil {
		student.Meta = json.RawMessage("{}")
	}
	if req.EnrollmentDate != "" {
		date, err := helpers.ParseISODate(req.EnrollmentDate)
		if err != nil {
			return nil, apperrors.NewValidationError("enrollment_date must be a valid date (YYYY-MM-DD)")
		}
		student.EnrollmentDate = &date
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("student code %q already exists", req.StudentCode))
		}
		return nil, apperrors.NewDatabaseError("failed to create student")
	}

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// GetStudent retrieves one student within the tenant
func (s *StudentService) GetStudent(ctx context.Context, tenantID, id string) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Student", id)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve student")
	}

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// UpdateStudent applies a partial update (status/grade changes and the like)
func (s *StudentService) UpdateStudent(ctx context.Context, tenantID, id string, req dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Student", id)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve student")
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.GradeLevel != nil {
		student.GradeLevel = *req.GradeLevel
	}
	if req.Status != nil {
		status := models.StudentStatus(*req.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid student status %q", *req.Status))
		}
		student.Status = status
	}
	if req.AvatarURL != nil {
		student.AvatarURL = *req.AvatarURL
	}
	if req.Meta != nil {
		student.Meta = req.Meta
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Student", id)
		}
		return nil, apperrors.NewDatabaseError("failed to update student")
	}

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// DeleteStudent soft-deletes a student; the record is retained
func (s *StudentService) DeleteStudent(ctx context.Context, tenantID, id string) error {
	if err := s.studentRepo.SoftDelete(ctx, tenantID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("Student", id)
		}
		return apperrors.NewDatabaseError("failed to delete student")
	}
	return nil
}
