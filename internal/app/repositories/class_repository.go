package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seojin/hakwonhub/internal/app/models"
)

// ClassRepository abstracts persistent storage for classes
type ClassRepository interface {
	GetByID(ctx context.Context, tenantID, id string) (*models.Class, error)
	FindAll(ctx context.Context, tenantID string) ([]*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	AdjustEnrolledCount(ctx context.Context, tenantID, id string, delta int) error
}

type classRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *pgxpool.Pool) ClassRepository {
	return &classRepository{db: db}
}

const classColumns = `id, tenant_id, name, subject, capacity, enrolled_count,
	created_at, updated_at, deleted_at`

func (r *classRepository) GetByID(ctx context.Context, tenantID, id string) (*models.Class, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`

	var c models.Class
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Subject, &c.Capacity, &c.EnrolledCount,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *classRepository) FindAll(ctx context.Context, tenantID string) ([]*models.Class, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes
		WHERE tenant_id = $1 AND deleted_at IS NULL
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		var c models.Class
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.Name, &c.Subject, &c.Capacity, &c.EnrolledCount,
			&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
		); err != nil {
			return nil, err
		}
		classes = append(classes, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *classRepository) Create(ctx context.Context, class *models.Class) error {
	query := `
		INSERT INTO classes (tenant_id, name, subject, capacity, enrolled_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		class.TenantID, class.Name, class.Subject, class.Capacity, class.EnrolledCount,
	).Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt)
}

// AdjustEnrolledCount changes the headcount by delta, clamped at zero
func (r *classRepository) AdjustEnrolledCount(ctx context.Context, tenantID, id string, delta int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE classes
		SET enrolled_count = GREATEST(enrolled_count + $3, 0), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`,
		tenantID, id, delta)
	if err != nil {
		return fmt.Errorf("error adjusting enrolled count: %w", err)
	}
	return nil
}
