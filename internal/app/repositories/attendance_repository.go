package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seojin/hakwonhub/internal/app/models"
)

// AttendanceRepository abstracts persistent storage for attendance sessions
type AttendanceRepository interface {
	GetByID(ctx context.Context, tenantID, id string) (*models.AttendanceSession, error)
	FindByClass(ctx context.Context, tenantID, classID string) ([]*models.AttendanceSession, error)
	Create(ctx context.Context, session *models.AttendanceSession) error
	Update(ctx context.Context, session *models.AttendanceSession) error
	SoftDelete(ctx context.Context, tenantID, id string) error
}

type attendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{db: db}
}

const sessionColumns = `id, tenant_id, class_id, session_date, status,
	scheduled_start_at, scheduled_end_at, actual_start_at, actual_end_at,
	created_at, updated_at, deleted_at`

func scanSession(row pgx.Row) (*models.AttendanceSession, error) {
	var s models.AttendanceSession
	err := row.Scan(
		&s.ID, &s.TenantID, &s.ClassID, &s.SessionDate, &s.Status,
		&s.ScheduledStartAt, &s.ScheduledEndAt, &s.ActualStartAt, &s.ActualEndAt,
		&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, tenantID, id string) (*models.AttendanceSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	return scanSession(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *attendanceRepository) FindByClass(ctx context.Context, tenantID, classID string) ([]*models.AttendanceSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE tenant_id = $1 AND class_id = $2 AND deleted_at IS NULL
		ORDER BY session_date DESC
	`

	rows, err := r.db.Query(ctx, query, tenantID, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.AttendanceSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *attendanceRepository) Create(ctx context.Context, session *models.AttendanceSession) error {
	query := `
		INSERT INTO attendance_sessions (tenant_id, class_id, session_date, status,
			scheduled_start_at, scheduled_end_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		session.TenantID, session.ClassID, session.SessionDate, session.Status,
		session.ScheduledStartAt, session.ScheduledEndAt,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
}

func (r *attendanceRepository) Update(ctx context.Context, session *models.AttendanceSession) error {
	query := `
		UPDATE attendance_sessions
		SET status = $3, actual_start_at = $4, actual_end_at = $5, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
		RETURNING updated_at
	`
	return r.db.QueryRow(ctx, query,
		session.TenantID, session.ID, session.Status,
		session.ActualStartAt, session.ActualEndAt,
	).Scan(&session.UpdatedAt)
}

func (r *attendanceRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE attendance_sessions SET deleted_at = NOW(), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`,
		tenantID, id)
	if err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
