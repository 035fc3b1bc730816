package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances. Services depend on the
// interfaces so tests can substitute fakes.
type Repositories struct {
	UserRepository       UserRepository
	TokenRepository      TokenRepository
	StudentRepository    StudentRepository
	GuardianRepository   GuardianRepository
	ClassRepository      ClassRepository
	AttendanceRepository AttendanceRepository
	InvoiceRepository    InvoiceRepository
	DashboardRepository  DashboardRepository
}

// NewRepositories initializes all repositories against the shared pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
		StudentRepository:    NewStudentRepository(db),
		GuardianRepository:   NewGuardianRepository(db),
		ClassRepository:      NewClassRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
		InvoiceRepository:    NewInvoiceRepository(db),
		DashboardRepository:  NewDashboardRepository(db),
	}
}
