package dto

import (
	"time"

	"github.com/seojin/hakwonhub/internal/app/models"
)

// CreateGuardianRequest is the payload for registering a guardian
type CreateGuardianRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Phone string `json:"phone" binding:"omitempty,max=32"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdateGuardianRequest is the payload for partial guardian updates
type UpdateGuardianRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone *string `json:"phone" binding:"omitempty,max=32"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// LinkGuardianRequest links a guardian to a student with a relation
type LinkGuardianRequest struct {
	GuardianID string `json:"guardian_id" binding:"required,uuid4"`
	Relation   string `json:"relation" binding:"required,oneof=father mother grandfather grandmother sibling other"`
	IsPrimary  bool   `json:"is_primary"`
}

// GuardianResponse is the flat output shape for a guardian
type GuardianResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewGuardianResponse maps a domain guardian to its output DTO
func NewGuardianResponse(g *models.Guardian) GuardianResponse {
	return GuardianResponse{
		ID:        g.ID,
		TenantID:  g.TenantID,
		Name:      g.Name,
		Phone:     g.Phone,
		Email:     g.Email,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// StudentGuardianResponse is a guardian link as seen from a student
type StudentGuardianResponse struct {
	GuardianResponse
	Relation  string `json:"relation"`
	IsPrimary bool   `json:"isPrimary"`
}
