package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seojin/hakwonhub/internal/app/models"
)

// StudentRepository abstracts persistent storage for students. Every
// operation is scoped by tenant id; soft-deleted rows are invisible.
type StudentRepository interface {
	FindAll(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error)
	Count(ctx context.Context, filter models.StudentFilter) (int64, error)
	GetByID(ctx context.Context, tenantID, id string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	SoftDelete(ctx context.Context, tenantID, id string) error
}

// studentRepository is the PostgreSQL adapter
type studentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) StudentRepository {
	return &studentRepository{db: db}
}

const studentColumns = `id, tenant_id, student_code, name, grade_level, status, gender,
	enrollment_date, avatar_url, meta, created_at, updated_at, deleted_at`

// allowed sort columns; anything else falls back to created_at
var studentSortColumns = map[string]string{
	"name":            "name",
	"student_code":    "student_code",
	"grade_level":     "grade_level",
	"status":          "status",
	"enrollment_date": "enrollment_date",
	"created_at":      "created_at",
}

// buildStudentPredicates appends the filter conditions shared by FindAll and
// Count so both queries see identical predicates.
func buildStudentPredicates(filter models.StudentFilter, sb *strings.Builder, args *[]interface{}) {
	sb.WriteString(" WHERE tenant_id = $1 AND deleted_at IS NULL")
	*args = append(*args, filter.TenantID)

	if filter.Status != "" {
		*args = append(*args, filter.Status)
		fmt.Fprintf(sb, " AND status = $%d", len(*args))
	}
	if filter.GradeLevel != "" {
		*args = append(*args, filter.GradeLevel)
		fmt.Fprintf(sb, " AND grade_level = $%d", len(*args))
	}
	if filter.Search != "" {
		*args = append(*args, "%"+filter.Search+"%")
		fmt.Fprintf(sb, " AND (name ILIKE $%d OR student_code ILIKE $%d)", len(*args), len(*args))
	}
}

// FindAll retrieves a filtered, sorted, paged slice of students
func (r *studentRepository) FindAll(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	var sb strings.Builder
	var args []interface{}

	sb.WriteString("SELECT " + studentColumns + " FROM students")
	buildStudentPredicates(filter, &sb, &args)

	sortCol, ok := studentSortColumns[filter.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	order := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		order = "DESC"
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s", sortCol, order)

	args = append(args, filter.Limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	fmt.Fprintf(&sb, " OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(
			&s.ID, &s.TenantID, &s.StudentCode, &s.Name, &s.GradeLevel, &s.Status,
			&s.Gender, &s.EnrollmentDate, &s.AvatarURL, &s.Meta,
			&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Count returns the total number of students matching the filter, ignoring
// pagination.
func (r *studentRepository) Count(ctx context.Context, filter models.StudentFilter) (int64, error) {
	var sb strings.Builder
	var args []interface{}

	sb.WriteString("SELECT COUNT(*) FROM students")
	buildStudentPredicates(filter, &sb, &args)

	var count int64
	if err := r.db.QueryRow(ctx, sb.String(), args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// GetByID retrieves a single student within a tenant
func (r *studentRepository) GetByID(ctx context.Context, tenantID, id string) (*models.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`

	var s models.Student
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&s.ID, &s.TenantID, &s.StudentCode, &s.Name, &s.GradeLevel, &s.Status,
		&s.Gender, &s.EnrollmentDate, &s.AvatarURL, &s.Meta,
		&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Create inserts a new student row
func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (tenant_id, student_code, name, grade_level, status, gender,
			enrollment_date, avatar_url, meta)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		student.TenantID, student.StudentCode, student.Name, student.GradeLevel,
		student.Status, student.Gender, student.EnrollmentDate, student.AvatarURL,
		student.Meta,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
}

// Update persists mutated student fields
func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $3, grade_level = $4, status = $5, avatar_url = $6, meta = $7,
			updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
		RETURNING updated_at
	`

	return r.db.QueryRow(ctx, query,
		student.TenantID, student.ID, student.Name, student.GradeLevel,
		student.Status, student.AvatarURL, student.Meta,
	).Scan(&student.UpdatedAt)
}

// SoftDelete marks a student deleted; the row is never removed
func (r *studentRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students SET deleted_at = NOW(), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`,
		tenantID, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
