package models

import (
	"encoding/json"
	"time"
)

// StudentStatus represents the enrollment status of a student
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "active"
	StudentStatusInactive  StudentStatus = "inactive"
	StudentStatusGraduated StudentStatus = "graduated"
	StudentStatusWithdrawn StudentStatus = "withdrawn"
)

// Valid returns true when the status is a supported value.
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusActive, StudentStatusInactive, StudentStatusGraduated, StudentStatusWithdrawn:
		return true
	default:
		return false
	}
}

// Student defines the student model based on the 'students' table. Students
// are soft deleted; deleted_at is set and the row is never removed.
type Student struct {
	ID             string          `json:"id" db:"id"`
	TenantID       string          `json:"tenantId" db:"tenant_id"`
	StudentCode    string          `json:"studentCode" db:"student_code" example:"ST-2024-0001"`
	Name           string          `json:"name" db:"name" example:"Kim Minjun"`
	GradeLevel     string          `json:"gradeLevel" db:"grade_level" example:"middle-2"`
	Status         StudentStatus   `json:"status" db:"status" example:"active"`
	Gender         string          `json:"gender,omitempty" db:"gender"`
	EnrollmentDate *time.Time      `json:"enrollmentDate,omitempty" db:"enrollment_date"`
	AvatarURL      string          `json:"avatarUrl,omitempty" db:"avatar_url"`
	Meta           json.RawMessage `json:"meta,omitempty" db:"meta"`

	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}

// StudentFilter encapsulates the allowed search parameters for listing
// students. Offset/Limit are computed by the service layer; the same filter
// is passed to the count query so both see identical predicates.
type StudentFilter struct {
	TenantID   string
	Status     StudentStatus
	GradeLevel string
	Search     string
	SortBy     string
	SortOrder  string
	Offset     uint64
	Limit      int
}
