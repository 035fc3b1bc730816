package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/seojin/hakwonhub/internal/app/models"
	"github.com/seojin/hakwonhub/internal/app/repositories"
)

// In-memory repository fakes. They implement just enough of the repository
// contracts for the service tests; errors can be injected per call.

type fakeStudentRepo struct {
	students  map[string]*models.Student
	nextID    int
	findErr   error
	countErr  error
	lastFind  models.StudentFilter
	lastCount models.StudentFilter
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[string]*models.Student{}}
}

func (r *fakeStudentRepo) add(s *models.Student) *models.Student {
	r.nextID++
	if s.ID == "" {
		s.ID = fmt.Sprintf("student-%d", r.nextID)
	}
	r.students[s.ID] = s
	return s
}

func (r *fakeStudentRepo) matches(s *models.Student, filter models.StudentFilter) bool {
	if s.TenantID != filter.TenantID || s.DeletedAt != nil {
		return false
	}
	if filter.Status != "" && s.Status != filter.Status {
		return false
	}
	if filter.GradeLevel != "" && s.GradeLevel != filter.GradeLevel {
		return false
	}
	return true
}

func (r *fakeStudentRepo) FindAll(_ context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.lastFind = filter

	var all []*models.Student
	for i := 1; i <= r.nextID; i++ {
		s, ok := r.students[fmt.Sprintf("student-%d", i)]
		if ok && r.matches(s, filter) {
			all = append(all, s)
		}
	}

	start := int(filter.Offset)
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *fakeStudentRepo) Count(_ context.Context, filter models.StudentFilter) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	r.lastCount = filter

	var n int64
	for _, s := range r.students {
		if r.matches(s, filter) {
			n++
		}
	}
	return n, nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, tenantID, id string) (*models.Student, error) {
	s, ok := r.students[id]
	if !ok || s.TenantID != tenantID || s.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func (r *fakeStudentRepo) Create(_ context.Context, s *models.Student) error {
	r.add(s)
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	return nil
}

func (r *fakeStudentRepo) Update(_ context.Context, s *models.Student) error {
	stored, ok := r.students[s.ID]
	if !ok || stored.TenantID != s.TenantID || stored.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	*stored = *s
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeStudentRepo) SoftDelete(_ context.Context, tenantID, id string) error {
	s, ok := r.students[id]
	if !ok || s.TenantID != tenantID || s.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	s.DeletedAt = &now
	return nil
}

type fakeClassRepo struct {
	classes map[string]*models.Class
	nextID  int
}

func newFakeClassRepo() *fakeClassRepo {
	return &fakeClassRepo{classes: map[string]*models.Class{}}
}

func (r *fakeClassRepo) add(c *models.Class) *models.Class {
	r.nextID++
	if c.ID == "" {
		c.ID = fmt.Sprintf("class-%d", r.nextID)
	}
	r.classes[c.ID] = c
	return c
}

func (r *fakeClassRepo) GetByID(_ context.Context, tenantID, id string) (*models.Class, error) {
	c, ok := r.classes[id]
	if !ok || c.TenantID != tenantID || c.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (r *fakeClassRepo) FindAll(_ context.Context, tenantID string) ([]*models.Class, error) {
	var out []*models.Class
	for _, c := range r.classes {
		if c.TenantID == tenantID && c.DeletedAt == nil {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeClassRepo) Create(_ context.Context, c *models.Class) error {
	r.add(c)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	return nil
}

func (r *fakeClassRepo) AdjustEnrolledCount(_ context.Context, tenantID, id string, delta int) error {
	c, ok := r.classes[id]
	if !ok || c.TenantID != tenantID {
		return nil
	}
	c.EnrolledCount += delta
	if c.EnrolledCount < 0 {
		c.EnrolledCount = 0
	}
	return nil
}

type fakeAttendanceRepo struct {
	sessions map[string]*models.AttendanceSession
	nextID   int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{sessions: map[string]*models.AttendanceSession{}}
}

func (r *fakeAttendanceRepo) add(s *models.AttendanceSession) *models.AttendanceSession {
	r.nextID++
	if s.ID == "" {
		s.ID = fmt.Sprintf("session-%d", r.nextID)
	}
	r.sessions[s.ID] = s
	return s
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, tenantID, id string) (*models.AttendanceSession, error) {
	s, ok := r.sessions[id]
	if !ok || s.TenantID != tenantID || s.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	copied := *s
	return &copied, nil
}

func (r *fakeAttendanceRepo) FindByClass(_ context.Context, tenantID, classID string) ([]*models.AttendanceSession, error) {
	var out []*models.AttendanceSession
	for _, s := range r.sessions {
		if s.TenantID == tenantID && s.ClassID == classID && s.DeletedAt == nil {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) Create(_ context.Context, s *models.AttendanceSession) error {
	r.add(s)
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	return nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, s *models.AttendanceSession) error {
	stored, ok := r.sessions[s.ID]
	if !ok || stored.TenantID != s.TenantID || stored.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	*stored = *s
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeAttendanceRepo) SoftDelete(_ context.Context, tenantID, id string) error {
	s, ok := r.sessions[id]
	if !ok || s.TenantID != tenantID || s.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	s.DeletedAt = &now
	return nil
}

type fakeGuardianRepo struct {
	guardians map[string]*models.Guardian
	links     []*models.GuardianStudent
	nextID    int
}

func newFakeGuardianRepo() *fakeGuardianRepo {
	return &fakeGuardianRepo{guardians: map[string]*models.Guardian{}}
}

func (r *fakeGuardianRepo) add(g *models.Guardian) *models.Guardian {
	r.nextID++
	if g.ID == "" {
		g.ID = fmt.Sprintf("guardian-%d", r.nextID)
	}
	r.guardians[g.ID] = g
	return g
}

func (r *fakeGuardianRepo) GetByID(_ context.Context, tenantID, id string) (*models.Guardian, error) {
	g, ok := r.guardians[id]
	if !ok || g.TenantID != tenantID || g.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	return g, nil
}

func (r *fakeGuardianRepo) Create(_ context.Context, g *models.Guardian) error {
	r.add(g)
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	return nil
}

func (r *fakeGuardianRepo) Update(_ context.Context, g *models.Guardian) error {
	stored, ok := r.guardians[g.ID]
	if !ok || stored.TenantID != g.TenantID || stored.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	*stored = *g
	return nil
}

func (r *fakeGuardianRepo) SoftDelete(_ context.Context, tenantID, id string) error {
	g, ok := r.guardians[id]
	if !ok || g.TenantID != tenantID || g.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	g.DeletedAt = &now
	return nil
}

func (r *fakeGuardianRepo) LinkStudent(_ context.Context, link *models.GuardianStudent) error {
	if link.IsPrimary {
		for _, l := range r.links {
			if l.TenantID == link.TenantID && l.StudentID == link.StudentID {
				l.IsPrimary = false
			}
		}
	}
	r.nextID++
	link.ID = fmt.Sprintf("link-%d", r.nextID)
	link.CreatedAt = time.Now()
	link.UpdatedAt = link.CreatedAt
	r.links = append(r.links, link)
	return nil
}

func (r *fakeGuardianRepo) FindByStudent(_ context.Context, tenantID, studentID string) ([]*models.GuardianStudent, error) {
	var out []*models.GuardianStudent
	for _, l := range r.links {
		if l.TenantID == tenantID && l.StudentID == studentID {
			copied := *l
			copied.Guardian = r.guardians[l.GuardianID]
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*models.Invoice
	nextID   int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[string]*models.Invoice{}}
}

func (r *fakeInvoiceRepo) add(inv *models.Invoice) *models.Invoice {
	r.nextID++
	if inv.ID == "" {
		inv.ID = fmt.Sprintf("invoice-%d", r.nextID)
	}
	r.invoices[inv.ID] = inv
	return inv
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, tenantID, id string) (*models.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.TenantID != tenantID || inv.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	copied := *inv
	return &copied, nil
}

func (r *fakeInvoiceRepo) FindByStudent(_ context.Context, tenantID, studentID string) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, inv := range r.invoices {
		if inv.TenantID == tenantID && inv.StudentID == studentID && inv.DeletedAt == nil {
			copied := *inv
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) CreateWithItems(_ context.Context, inv *models.Invoice) error {
	r.add(inv)
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	for i := range inv.Items {
		inv.Items[i].TenantID = inv.TenantID
		inv.Items[i].InvoiceID = inv.ID
		inv.Items[i].ID = fmt.Sprintf("%s-item-%d", inv.ID, i+1)
	}
	return nil
}

func (r *fakeInvoiceRepo) RecordPayment(_ context.Context, p *models.Payment) (*models.Invoice, error) {
	inv, ok := r.invoices[p.InvoiceID]
	if !ok || inv.TenantID != p.TenantID || inv.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	p.ID = fmt.Sprintf("%s-payment-%d", inv.ID, len(inv.Payments)+1)
	p.CreatedAt = time.Now()
	inv.Payments = append(inv.Payments, *p)
	inv.PaidAmount += p.Amount
	inv.Recalculate(p.PaidAt)
	copied := *inv
	return &copied, nil
}

type fakeDashboardRepo struct {
	stats     *models.DashboardStats
	statsErr  error
	prefs     map[string]json.RawMessage
	lastStart time.Time
	lastEnd   time.Time
}

func newFakeDashboardRepo() *fakeDashboardRepo {
	return &fakeDashboardRepo{prefs: map[string]json.RawMessage{}}
}

func (r *fakeDashboardRepo) AggregateStats(_ context.Context, _ string, periodStart, periodEnd time.Time) (*models.DashboardStats, error) {
	if r.statsErr != nil {
		return nil, r.statsErr
	}
	r.lastStart = periodStart
	r.lastEnd = periodEnd
	stats := *r.stats
	stats.PeriodStart = periodStart
	stats.PeriodEnd = periodEnd
	return &stats, nil
}

func (r *fakeDashboardRepo) GetPreferences(_ context.Context, userID string) (json.RawMessage, error) {
	prefs, ok := r.prefs[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return prefs, nil
}

func (r *fakeDashboardRepo) MergePreferences(_ context.Context, userID string, preferences json.RawMessage) (json.RawMessage, error) {
	existing, ok := r.prefs[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	merged := map[string]json.RawMessage{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &merged); err != nil {
			return nil, err
		}
	}
	incoming := map[string]json.RawMessage{}
	if err := json.Unmarshal(preferences, &incoming); err != nil {
		return nil, err
	}
	for k, v := range incoming {
		merged[k] = v
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	r.prefs[userID] = out
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.DeletedAt == nil {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]*repositories.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*repositories.RefreshToken{}}
}

func (r *fakeTokenRepo) Store(_ context.Context, token *repositories.RefreshToken) error {
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeTokenRepo) Get(_ context.Context, token string) (*repositories.RefreshToken, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return t, nil
}

func (r *fakeTokenRepo) Revoke(_ context.Context, token string) error {
	if t, ok := r.tokens[token]; ok {
		t.Revoked = true
	}
	return nil
}
