package models

import (
	"encoding/json"
	"time"
)

// Role represents a user's role within a tenant
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStaff   Role = "STAFF"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          string     `json:"id" db:"id"`
	TenantID    string     `json:"tenantId" db:"tenant_id"`
	Email       string     `json:"email" db:"email" example:"admin@daechi-math.kr"`
	Password    string     `json:"-" db:"password"` // hashed, excluded from JSON
	Name        string     `json:"name" db:"name" example:"Park Jiyeon"`
	Role        Role       `json:"role" db:"role" example:"ADMIN"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`

	// DashboardPreferences is a free-form JSON blob; the preferences service
	// merges updates into it key by key rather than replacing it.
	DashboardPreferences json.RawMessage `json:"dashboardPreferences,omitempty" db:"dashboard_preferences"`

	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}
