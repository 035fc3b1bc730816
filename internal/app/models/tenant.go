package models

import "time"

// Tenant defines an isolated academy account based on the 'tenants' table.
// Every domain row is partitioned by tenant id.
type Tenant struct {
	ID        string     `json:"id" db:"id" example:"b7f4c1de-8a21-4f0e-9c35-2d1d2a6f1a01"`
	Name      string     `json:"name" db:"name" example:"Daechi Math Academy"`
	Slug      string     `json:"slug" db:"slug" example:"daechi-math"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}
