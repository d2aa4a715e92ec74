package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/arnavshah/roster-api-go/internal/repository"
	"github.com/arnavshah/roster-api-go/pkg/models"
)

// In-memory repository doubles backing the service tests.

type mockProfessionalRepo struct {
	pros   map[uint]*models.Professional
	nextID uint
}

func newMockProfessionalRepo() *mockProfessionalRepo {
	return &mockProfessionalRepo{pros: make(map[uint]*models.Professional), nextID: 1}
}

func (m *mockProfessionalRepo) add(p models.Professional) *models.Professional {
	if p.ID == 0 {
		p.ID = m.nextID
	}
	if p.ID >= m.nextID {
		m.nextID = p.ID + 1
	}
	m.pros[p.ID] = &p
	return &p
}

func (m *mockProfessionalRepo) GetByID(_ context.Context, id uint) (*models.Professional, error) {
	if p, ok := m.pros[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfessionalRepo) GetByEmail(_ context.Context, email string) (*models.Professional, error) {
	for _, p := range m.pros {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfessionalRepo) ListActiveByHospital(_ context.Context, hospitalID uint) ([]models.Professional, error) {
	var out []models.Professional
	for _, p := range m.pros {
		if p.HospitalID == hospitalID && p.Active {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockProfessionalRepo) List(_ context.Context, hospitalID uint) ([]models.Professional, error) {
	var out []models.Professional
	for _, p := range m.pros {
		if p.HospitalID == hospitalID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockProfessionalRepo) Create(_ context.Context, p *models.Professional) error {
	m.add(*p)
	return nil
}

func (m *mockProfessionalRepo) Update(_ context.Context, p *models.Professional) error {
	m.pros[p.ID] = p
	return nil
}

func (m *mockProfessionalRepo) Deactivate(_ context.Context, id uint) error {
	p, ok := m.pros[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = false
	return nil
}

type mockShiftRepo struct {
	shifts map[uint]*models.Shift
	nextID uint
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[uint]*models.Shift), nextID: 1}
}

func (m *mockShiftRepo) add(s models.Shift) *models.Shift {
	if s.ID == 0 {
		s.ID = m.nextID
	}
	if s.ID >= m.nextID {
		m.nextID = s.ID + 1
	}
	m.shifts[s.ID] = &s
	return &s
}

func (m *mockShiftRepo) GetByID(_ context.Context, id uint) (*models.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Shift, error) {
	return m.GetByID(ctx, id)
}

func (m *mockShiftRepo) ListByHospitalAndDateRange(_ context.Context, hospitalID uint, from, to time.Time) ([]models.Shift, error) {
	var out []models.Shift
	for _, s := range m.shifts {
		if s.HospitalID == hospitalID && !s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (m *mockShiftRepo) Save(_ context.Context, shift *models.Shift) error {
	if shift.ID == 0 {
		shift.ID = m.nextID
		m.nextID++
	}
	cp := *shift
	m.shifts[shift.ID] = &cp
	return nil
}

func (m *mockShiftRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.shifts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.shifts, id)
	return nil
}

type mockRosterRepo struct {
	rosters map[uint]*models.Roster
	nextID  uint
	saveErr error
}

func newMockRosterRepo() *mockRosterRepo {
	return &mockRosterRepo{rosters: make(map[uint]*models.Roster), nextID: 1}
}

func (m *mockRosterRepo) GetByID(_ context.Context, id uint) (*models.Roster, error) {
	if r, ok := m.rosters[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRosterRepo) GetLatestByHospital(_ context.Context, hospitalID uint) (*models.Roster, error) {
	var latest *models.Roster
	for _, r := range m.rosters {
		if r.HospitalID != hospitalID {
			continue
		}
		if latest == nil || r.StartDate.After(latest.StartDate) {
			latest = r
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockRosterRepo) SaveWithShifts(_ context.Context, roster *models.Roster) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if roster.ID == 0 {
		roster.ID = m.nextID
		m.nextID++
	}
	m.rosters[roster.ID] = roster
	return nil
}

func (m *mockRosterRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.rosters[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rosters, id)
	return nil
}

type mockAvailabilityRepo struct {
	declarations []models.Availability
}

func (m *mockAvailabilityRepo) ListAvailableIDs(_ context.Context, hospitalID uint, date time.Time, shiftType string) ([]uint, error) {
	var ids []uint
	for _, a := range m.declarations {
		if a.HospitalID == hospitalID && a.Date.Equal(date) && a.ShiftType == shiftType && a.Available {
			ids = append(ids, a.ProfessionalID)
		}
	}
	return ids, nil
}

func (m *mockAvailabilityRepo) ListByProfessional(_ context.Context, professionalID uint) ([]models.Availability, error) {
	var out []models.Availability
	for _, a := range m.declarations {
		if a.ProfessionalID == professionalID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAvailabilityRepo) Save(_ context.Context, a *models.Availability) error {
	m.declarations = append(m.declarations, *a)
	return nil
}

func (m *mockAvailabilityRepo) Delete(_ context.Context, id uint) error { return nil }

type mockRuleRepo struct {
	hospitalParams map[uint][]models.RuleParameter
	configParams   map[uint][]models.RuleParameter
	configs        map[uint]*models.RuleConfiguration
}

func newMockRuleRepo() *mockRuleRepo {
	return &mockRuleRepo{
		hospitalParams: make(map[uint][]models.RuleParameter),
		configParams:   make(map[uint][]models.RuleParameter),
		configs:        make(map[uint]*models.RuleConfiguration),
	}
}

func (m *mockRuleRepo) ListActiveByHospitalAt(_ context.Context, hospitalID uint, _ time.Time) ([]models.RuleParameter, error) {
	return m.hospitalParams[hospitalID], nil
}

func (m *mockRuleRepo) ListByConfiguration(_ context.Context, configID uint) ([]models.RuleParameter, error) {
	return m.configParams[configID], nil
}

func (m *mockRuleRepo) ListParameters(_ context.Context, hospitalID uint) ([]models.RuleParameter, error) {
	return m.hospitalParams[hospitalID], nil
}

func (m *mockRuleRepo) SaveParameter(_ context.Context, p *models.RuleParameter) error {
	if p.HospitalID != nil {
		m.hospitalParams[*p.HospitalID] = append(m.hospitalParams[*p.HospitalID], *p)
	}
	if p.RuleConfigurationID != nil {
		m.configParams[*p.RuleConfigurationID] = append(m.configParams[*p.RuleConfigurationID], *p)
	}
	return nil
}

func (m *mockRuleRepo) DeleteParameter(_ context.Context, id uint) error { return nil }

func (m *mockRuleRepo) GetConfiguration(_ context.Context, id uint) (*models.RuleConfiguration, error) {
	if c, ok := m.configs[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRuleRepo) ListConfigurations(_ context.Context, hospitalID uint) ([]models.RuleConfiguration, error) {
	var out []models.RuleConfiguration
	for _, c := range m.configs {
		if c.HospitalID == hospitalID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockRuleRepo) SaveConfiguration(_ context.Context, c *models.RuleConfiguration) error {
	m.configs[c.ID] = c
	return nil
}

func (m *mockRuleRepo) DeleteConfiguration(_ context.Context, id uint) error { return nil }

type mockSwapRepo struct {
	requests map[uint]*models.ShiftSwapRequest
	nextID   uint
}

func newMockSwapRepo() *mockSwapRepo {
	return &mockSwapRepo{requests: make(map[uint]*models.ShiftSwapRequest), nextID: 1}
}

func (m *mockSwapRepo) GetByID(_ context.Context, id uint) (*models.ShiftSwapRequest, error) {
	if r, ok := m.requests[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSwapRepo) List(_ context.Context, hospitalID uint) ([]models.ShiftSwapRequest, error) {
	var out []models.ShiftSwapRequest
	for _, r := range m.requests {
		if hospitalID == 0 || r.HospitalID == hospitalID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockSwapRepo) Save(_ context.Context, req *models.ShiftSwapRequest) error {
	if req.ID == 0 {
		req.ID = m.nextID
		m.nextID++
	}
	cp := *req
	m.requests[req.ID] = &cp
	return nil
}

type mockAuditRepo struct {
	entries []models.AuditLog
	saveErr error
}

func (m *mockAuditRepo) Save(_ context.Context, entry *models.AuditLog) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditRepo) ListRecent(_ context.Context, limit int) ([]models.AuditLog, error) {
	return m.entries, nil
}

func (m *mockAuditRepo) ListByActor(_ context.Context, actorID string, limit int) ([]models.AuditLog, error) {
	var out []models.AuditLog
	for _, e := range m.entries {
		if e.ActorID == actorID {
			out = append(out, e)
		}
	}
	return out, nil
}

// testRepos aggregates the mocks so each test can seed data directly
type testRepos struct {
	professional *mockProfessionalRepo
	shift        *mockShiftRepo
	roster       *mockRosterRepo
	availability *mockAvailabilityRepo
	rule         *mockRuleRepo
	swap         *mockSwapRepo
	audit        *mockAuditRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		professional: newMockProfessionalRepo(),
		shift:        newMockShiftRepo(),
		roster:       newMockRosterRepo(),
		availability: &mockAvailabilityRepo{},
		rule:         newMockRuleRepo(),
		swap:         newMockSwapRepo(),
		audit:        &mockAuditRepo{},
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	agg := &repository.Repository{
		Professional: r.professional,
		Shift:        r.shift,
		Roster:       r.roster,
		Availability: r.availability,
		Rule:         r.rule,
		SwapRequest:  r.swap,
		AuditLog:     r.audit,
	}
	agg.Atomic = func(_ context.Context, fn func(*repository.Repository) error) error {
		return fn(agg)
	}
	return agg
}

// recordingNotifier captures notifications and optionally fails
type recordingNotifier struct {
	requested int
	updated   int
	err       error
}

func (n *recordingNotifier) SwapRequested(context.Context, *models.ShiftSwapRequest, *models.Professional, *models.Professional, *models.Shift) error {
	n.requested++
	return n.err
}

func (n *recordingNotifier) SwapUpdated(context.Context, *models.ShiftSwapRequest, *models.Professional, *models.Professional, *models.Shift) error {
	n.updated++
	return n.err
}
