package models

import "time"

// ClassEnrollmentStatus is the derived occupancy state of a class
type ClassEnrollmentStatus string

const (
	ClassStatusFull          ClassEnrollmentStatus = "full"
	ClassStatusNearFull      ClassEnrollmentStatus = "near_full"
	ClassStatusOK            ClassEnrollmentStatus = "ok"
	ClassStatusUnderEnrolled ClassEnrollmentStatus = "under_enrolled"
)

// Occupancy thresholds. near_full kicks in at 90% of capacity,
// under_enrolled below 50%.
const (
	nearFullRatio      = 0.9
	underEnrolledRatio = 0.5
)

// Class defines the class model based on the 'classes' table
type Class struct {
	ID            string `json:"id" db:"id"`
	TenantID      string `json:"tenantId" db:"tenant_id"`
	Name          string `json:"name" db:"name" example:"Middle 2 Algebra A"`
	Subject       string `json:"subject,omitempty" db:"subject"`
	Capacity      int    `json:"capacity" db:"capacity"`
	EnrolledCount int    `json:"enrolledCount" db:"enrolled_count"`

	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}

// EnrollmentStatus derives the occupancy state from capacity and headcount.
// This is the single place the thresholds live.
func (c *Class) EnrollmentStatus() ClassEnrollmentStatus {
	if c.Capacity <= 0 {
		return ClassStatusUnderEnrolled
	}
	ratio := float64(c.EnrolledCount) / float64(c.Capacity)
	switch {
	case c.EnrolledCount >= c.Capacity:
		return ClassStatusFull
	case ratio >= nearFullRatio:
		return ClassStatusNearFull
	case ratio < underEnrolledRatio:
		return ClassStatusUnderEnrolled
	default:
		return ClassStatusOK
	}
}
