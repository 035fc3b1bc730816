package models

import "time"

// GuardianRelation represents how a guardian is related to a student
type GuardianRelation string

const (
	RelationFather      GuardianRelation = "father"
	RelationMother      GuardianRelation = "mother"
	RelationGrandfather GuardianRelation = "grandfather"
	RelationGrandmother GuardianRelation = "grandmother"
	RelationSibling     GuardianRelation = "sibling"
	RelationOther       GuardianRelation = "other"
)

// Valid returns true when the relation is a supported value.
func (r GuardianRelation) Valid() bool {
	switch r {
	case RelationFather, RelationMother, RelationGrandfather, RelationGrandmother, RelationSibling, RelationOther:
		return true
	default:
		return false
	}
}

// Guardian defines the guardian model based on the 'guardians' table
type Guardian struct {
	ID       string `json:"id" db:"id"`
	TenantID string `json:"tenantId" db:"tenant_id"`
	Name     string `json:"name" db:"name"`
	Phone    string `json:"phone,omitempty" db:"phone"`
	Email    string `json:"email,omitempty" db:"email"`

	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}

// GuardianStudent links a guardian to a student with the relation context.
// At most one link per student may be primary; the service demotes the
// previous primary when a new one is set.
type GuardianStudent struct {
	ID         string           `json:"id" db:"id"`
	TenantID   string           `json:"tenantId" db:"tenant_id"`
	GuardianID string           `json:"guardianId" db:"guardian_id"`
	StudentID  string           `json:"studentId" db:"student_id"`
	Relation   GuardianRelation `json:"relation" db:"relation"`
	IsPrimary  bool             `json:"isPrimary" db:"is_primary"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Populated when listing a student's guardians
	Guardian *Guardian `json:"guardian,omitempty"`
}
