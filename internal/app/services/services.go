package services

import (
	"github.com/seojin/hakwonhub/internal/app/repositories"
	"github.com/seojin/hakwonhub/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService       *AuthService
	StudentService    *StudentService
	GuardianService   *GuardianService
	ClassService      *ClassService
	AttendanceService *AttendanceService
	InvoiceService    *InvoiceService
	DashboardService  *DashboardService
}

// NewServices wires the services against their repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService) *Services {
	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		StudentService:    NewStudentService(repos.StudentRepository),
		GuardianService:   NewGuardianService(repos.GuardianRepository, repos.StudentRepository),
		ClassService:      NewClassService(repos.ClassRepository),
		AttendanceService: NewAttendanceService(repos.AttendanceRepository, repos.ClassRepository),
		InvoiceService:    NewInvoiceService(repos.InvoiceRepository, repos.StudentRepository),
		DashboardService:  NewDashboardService(repos.DashboardRepository),
	}
}
