package dto

import (
	"encoding/json"
	"time"

	"github.com/seojin/hakwonhub/internal/app/models"
	"github.com/seojin/hakwonhub/internal/pkg/helpers"
)

// CreateStudentRequest is the payload for registering a student. The tenant
// is taken from the authenticated session; a tenant_id in the body is only
// accepted when it matches the caller's tenant.
type CreateStudentRequest struct {
	TenantID       string          `json:"tenant_id" binding:"omitempty,uuid4"`
	StudentCode    string          `json:"student_code" binding:"omitempty,max=32"`
	Name           string          `json:"name" binding:"required,min=2,max=100"`
	GradeLevel     string          `json:"grade_level" binding:"omitempty,max=32"`
	Status         string          `json:"status" binding:"omitempty,oneof=active inactive graduated withdrawn"`
	Gender         string          `json:"gender" binding:"omitempty,oneof=male female other"`
	EnrollmentDate string          `json:"enrollment_date" binding:"omitempty,datetime=2006-01-02"`
	AvatarURL      string          `json:"avatar_url" binding:"omitempty,url"`
	Meta           json.RawMessage `json:"meta"`
}

// UpdateStudentRequest is the payload for partial student updates
type UpdateStudentRequest struct {
	Name       *string         `json:"name" binding:"omitempty,min=2,max=100"`
	GradeLevel *string         `json:"grade_level" binding:"omitempty,max=32"`
	Status     *string         `json:"status" binding:"omitempty,oneof=active inactive graduated withdrawn"`
	AvatarURL  *string         `json:"avatar_url" binding:"omitempty,url"`
	Meta       json.RawMessage `json:"meta"`
}

// StudentResponse is the flat output shape for a student
type StudentResponse struct {
	ID             string          `json:"id"`
	TenantID       string          `json:"tenantId"`
	StudentCode    string          `json:"studentCode"`
	Name           string          `json:"name"`
	GradeLevel     string          `json:"gradeLevel,omitempty"`
	Status         string          `json:"status"`
	Gender         string          `json:"gender,omitempty"`
	EnrollmentDate *time.Time      `json:"enrollmentDate,omitempty"`
	AvatarURL      string          `json:"avatarUrl"`
	Meta           json.RawMessage `json:"meta,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// NewStudentResponse maps a domain student to its output DTO. The avatar
// falls back to the generated URL when no image was uploaded.
func NewStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		ID:             s.ID,
		TenantID:       s.TenantID,
		StudentCode:    s.StudentCode,
		Name:           s.Name,
		GradeLevel:     s.GradeLevel,
		Status:         string(s.Status),
		Gender:         s.Gender,
		EnrollmentDate: s.EnrollmentDate,
		AvatarURL:      helpers.AvatarURL(s.AvatarURL, s.ID, s.Name),
		Meta:           s.Meta,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// StudentListResponse is the result of the student listing use case
type StudentListResponse struct {
	Students   []StudentResponse `json:"students"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}
