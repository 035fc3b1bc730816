package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seojin/hakwonhub/internal/app/models"
)

// GuardianRepository abstracts persistent storage for guardians and their
// student links.
type GuardianRepository interface {
	GetByID(ctx context.Context, tenantID, id string) (*models.Guardian, error)
	Create(ctx context.Context, guardian *models.Guardian) error
	Update(ctx context.Context, guardian *models.Guardian) error
	SoftDelete(ctx context.Context, tenantID, id string) error
	LinkStudent(ctx context.Context, link *models.GuardianStudent) error
	FindByStudent(ctx context.Context, tenantID, studentID string) ([]*models.GuardianStudent, error)
}

type guardianRepository struct {
	db *pgxpool.Pool
}

// NewGuardianRepository creates a new guardian repository
func NewGuardianRepository(db *pgxpool.Pool) GuardianRepository {
	return &guardianRepository{db: db}
}

func (r *guardianRepository) GetByID(ctx context.Context, tenantID, id string) (*models.Guardian, error) {
	query := `
		SELECT id, tenant_id, name, phone, email, created_at, updated_at, deleted_at
		FROM guardians
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`

	var g models.Guardian
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&g.ID, &g.TenantID, &g.Name, &g.Phone, &g.Email,
		&g.CreatedAt, &g.UpdatedAt, &g.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *guardianRepository) Create(ctx context.Context, guardian *models.Guardian) error {
	query := `
		INSERT INTO guardians (tenant_id, name, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		guardian.TenantID, guardian.Name, guardian.Phone, guardian.Email,
	).Scan(&guardian.ID, &guardian.CreatedAt, &guardian.UpdatedAt)
}

func (r *guardianRepository) Update(ctx context.Context, guardian *models.Guardian) error {
	query := `
		UPDATE guardians
		SET name = $3, phone = $4, email = $5, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
		RETURNING updated_at
	`
	return r.db.QueryRow(ctx, query,
		guardian.TenantID, guardian.ID, guardian.Name, guardian.Phone, guardian.Email,
	).Scan(&guardian.UpdatedAt)
}

func (r *guardianRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE guardians SET deleted_at = NOW(), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`,
		tenantID, id)
	if err != nil {
		return fmt.Errorf("error deleting guardian: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// LinkStudent attaches a guardian to a student. When the link is marked
// primary, any existing primary link for the student is demoted in the same
// transaction so the one-primary invariant holds.
func (r *guardianRepository) LinkStudent(ctx context.Context, link *models.GuardianStudent) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if link.IsPrimary {
		_, err = tx.Exec(ctx, `
			UPDATE guardian_students SET is_primary = FALSE, updated_at = NOW()
			WHERE tenant_id = $1 AND student_id = $2 AND is_primary = TRUE`,
			link.TenantID, link.StudentID)
		if err != nil {
			return fmt.Errorf("error demoting previous primary guardian: %w", err)
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO guardian_students (tenant_id, guardian_id, student_id, relation, is_primary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		link.TenantID, link.GuardianID, link.StudentID, link.Relation, link.IsPrimary,
	).Scan(&link.ID, &link.CreatedAt, &link.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// FindByStudent lists a student's guardian links with guardian details
func (r *guardianRepository) FindByStudent(ctx context.Context, tenantID, studentID string) ([]*models.GuardianStudent, error) {
	query := `
		SELECT gs.id, gs.tenant_id, gs.guardian_id, gs.student_id, gs.relation, gs.is_primary,
			gs.created_at, gs.updated_at,
			g.id, g.tenant_id, g.name, g.phone, g.email, g.created_at, g.updated_at, g.deleted_at
		FROM guardian_students gs
		JOIN guardians g ON g.id = gs.guardian_id
		WHERE gs.tenant_id = $1 AND gs.student_id = $2 AND g.deleted_at IS NULL
		ORDER BY gs.is_primary DESC, gs.created_at
	`

	rows, err := r.db.Query(ctx, query, tenantID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student guardians: %w", err)
	}
	defer rows.Close()

	var links []*models.GuardianStudent
	for rows.Next() {
		var link models.GuardianStudent
		var g models.Guardian
		if err := rows.Scan(
			&link.ID, &link.TenantID, &link.GuardianID, &link.StudentID,
			&link.Relation, &link.IsPrimary, &link.CreatedAt, &link.UpdatedAt,
			&g.ID, &g.TenantID, &g.Name, &g.Phone, &g.Email,
			&g.CreatedAt, &g.UpdatedAt, &g.DeletedAt,
		); err != nil {
			return nil, err
		}
		link.Guardian = &g
		links = append(links, &link)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return links, nil
}
