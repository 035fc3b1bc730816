package dto

import (
	"time"

	"github.com/seojin/hakwonhub/internal/app/models"
)

// CreateClassRequest is the payload for opening a class
type CreateClassRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Subject  string `json:"subject" binding:"omitempty,max=100"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

// ClassResponse is the output shape for a class, including the derived
// occupancy status.
type ClassResponse struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenantId"`
	Name             string    `json:"name"`
	Subject          string    `json:"subject,omitempty"`
	Capacity         int       `json:"capacity"`
	EnrolledCount    int       `json:"enrolledCount"`
	EnrollmentStatus string    `json:"enrollmentStatus"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NewClassResponse maps a domain class to its output DTO
func NewClassResponse(c *models.Class) ClassResponse {
	return ClassResponse{
		ID:               c.ID,
		TenantID:         c.TenantID,
		Name:             c.Name,
		Subject:          c.Subject,
		Capacity:         c.Capacity,
		EnrolledCount:    c.EnrolledCount,
		EnrollmentStatus: string(c.EnrollmentStatus()),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
