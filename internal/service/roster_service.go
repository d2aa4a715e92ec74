package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arnavshah/roster-api-go/internal/repository"
	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/arnavshah/roster-api-go/pkg/scheduler"
)

const (
	defaultWindowDays = 15
	maxWindowDays     = 30
	defaultLocation   = "Main Ward"
)

// GenerateInput carries the caller's optional overrides for one generation
// run. Zero values mean "use the defaults".
type GenerateInput struct {
	Days                int    `json:"days"`
	Location            string `json:"location"`
	ProfessionalIDs     []uint `json:"professional_ids"`
	SpecialtyIDs        []uint `json:"specialty_ids"`
	RuleConfigurationID *uint  `json:"rule_configuration_id"`
}

// GenerateResult is a generated roster plus the slots the engine could not
// fill. Unfilled slots are an accepted output requiring manual follow-up.
type GenerateResult struct {
	Roster    *models.Roster             `json:"roster"`
	Rules     scheduler.RuleSet          `json:"rules"`
	Conflicts []scheduler.ConflictReason `json:"conflicts,omitempty"`
}

// RosterService generates and manages rosters
type RosterService interface {
	Generate(ctx context.Context, hospitalID uint, input GenerateInput, actor Actor) (*GenerateResult, error)
	LatestRoster(ctx context.Context, hospitalID uint) (*models.Roster, error)
	GetRoster(ctx context.Context, id uint) (*models.Roster, error)
	DeleteRoster(ctx context.Context, id uint, actor Actor) error
}

type rosterService struct {
	repo   *repository.Repository
	audit  *AuditService
	logger *zap.Logger
	// now is swappable for tests
	now func() time.Time
}

// NewRosterService creates a RosterService
func NewRosterService(repo *repository.Repository, audit *AuditService, logger *zap.Logger) RosterService {
	return &rosterService{repo: repo, audit: audit, logger: logger, now: time.Now}
}

// Generate runs one greedy allocation pass for a hospital window starting
// today and persists the resulting roster with all its shifts atomically.
// An empty professional pool yields a roster of unassigned shifts, not an
// error.
func (s *rosterService) Generate(ctx context.Context, hospitalID uint, input GenerateInput, actor Actor) (*GenerateResult, error) {
	days := input.Days
	if days <= 0 {
		days = defaultWindowDays
	}
	if days > maxWindowDays {
		days = maxWindowDays
	}
	location := input.Location
	if location == "" {
		location = defaultLocation
	}

	start := dateOnly(s.now())
	end := start.AddDate(0, 0, days)

	pool, err := s.eligiblePool(ctx, hospitalID, input)
	if err != nil {
		return nil, err
	}

	rules, err := s.resolveRules(ctx, hospitalID, start, input.RuleConfigurationID)
	if err != nil {
		return nil, err
	}

	// Shifts one day either side of the window are fetched too: a night shift
	// just outside the boundary can still overlap a shift inside it.
	existing, err := s.existingShiftsByProfessional(ctx, hospitalID, start.AddDate(0, 0, -1), end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	shifts := scheduler.DefaultShiftsForWindow(hospitalID, start, end, location)
	engine := scheduler.NewEngine(pool, shifts, existing, s.availabilityLookup(ctx, hospitalID), rules)
	engine.Assign()

	roster := &models.Roster{
		HospitalID: hospitalID,
		StartDate:  start,
		EndDate:    end,
		Status:     models.RosterStatusGenerated,
		Shifts:     make([]models.Shift, 0, len(shifts)),
	}
	for _, sh := range shifts {
		roster.Shifts = append(roster.Shifts, *sh)
	}

	if err := s.repo.Roster.SaveWithShifts(ctx, roster); err != nil {
		return nil, fmt.Errorf("persisting roster: %w", err)
	}

	s.logger.Info("roster generated",
		zap.Uint("hospital_id", hospitalID),
		zap.Int("shifts", len(roster.Shifts)),
		zap.Int("unfilled", len(engine.Conflicts)))
	s.audit.Record(ctx, actor, "CREATE", "roster", fmt.Sprint(roster.ID), nil, roster)

	return &GenerateResult{Roster: roster, Rules: rules, Conflicts: engine.Conflicts}, nil
}

// eligiblePool loads the hospital's active professionals, optionally narrowed
// to an explicit id list and/or specialty list.
func (s *rosterService) eligiblePool(ctx context.Context, hospitalID uint, input GenerateInput) ([]*models.Professional, error) {
	active, err := s.repo.Professional.ListActiveByHospital(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("loading professionals: %w", err)
	}

	wantedIDs := toSet(input.ProfessionalIDs)
	wantedSpecialties := toSet(input.SpecialtyIDs)

	pool := make([]*models.Professional, 0, len(active))
	for i := range active {
		p := &active[i]
		if len(wantedIDs) > 0 && !wantedIDs[p.ID] {
			continue
		}
		if len(wantedSpecialties) > 0 {
			if p.SpecialtyID == nil || !wantedSpecialties[*p.SpecialtyID] {
				continue
			}
		}
		pool = append(pool, p)
	}
	return pool, nil
}

// resolveRules flattens the rule parameters for the run. A configuration id
// selects the named bundle; otherwise the hospital's standing rules as of the
// window start apply. Missing rules resolve to an unconstrained RuleSet.
func (s *rosterService) resolveRules(ctx context.Context, hospitalID uint, ref time.Time, configID *uint) (scheduler.RuleSet, error) {
	var params []models.RuleParameter
	var err error
	if configID != nil {
		params, err = s.repo.Rule.ListByConfiguration(ctx, *configID)
	} else {
		params, err = s.repo.Rule.ListActiveByHospitalAt(ctx, hospitalID, ref)
	}
	if err != nil {
		return scheduler.RuleSet{}, fmt.Errorf("loading rule parameters: %w", err)
	}
	return scheduler.ResolveRules(params), nil
}

func (s *rosterService) existingShiftsByProfessional(ctx context.Context, hospitalID uint, from, to time.Time) (map[uint][]*models.Shift, error) {
	shifts, err := s.repo.Shift.ListByHospitalAndDateRange(ctx, hospitalID, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading existing shifts: %w", err)
	}
	byPro := make(map[uint][]*models.Shift)
	for i := range shifts {
		sh := &shifts[i]
		if sh.ProfessionalID == nil {
			continue
		}
		byPro[*sh.ProfessionalID] = append(byPro[*sh.ProfessionalID], sh)
	}
	return byPro, nil
}

// availabilityLookup adapts the availability store to the engine's callback.
// A store failure is logged and treated as "no declarations", which falls
// back to the whole pool rather than aborting generation.
func (s *rosterService) availabilityLookup(ctx context.Context, hospitalID uint) scheduler.AvailabilityFunc {
	return func(date time.Time, shiftType string) map[uint]bool {
		ids, err := s.repo.Availability.ListAvailableIDs(ctx, hospitalID, date, shiftType)
		if err != nil {
			s.logger.Warn("availability lookup failed",
				zap.Uint("hospital_id", hospitalID),
				zap.Time("date", date),
				zap.Error(err))
			return nil
		}
		return toSet(ids)
	}
}

func (s *rosterService) LatestRoster(ctx context.Context, hospitalID uint) (*models.Roster, error) {
	roster, err := s.repo.Roster.GetLatestByHospital(ctx, hospitalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRosterNotFound
	}
	return roster, err
}

func (s *rosterService) GetRoster(ctx context.Context, id uint) (*models.Roster, error) {
	roster, err := s.repo.Roster.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRosterNotFound
	}
	return roster, err
}

func (s *rosterService) DeleteRoster(ctx context.Context, id uint, actor Actor) error {
	roster, err := s.repo.Roster.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRosterNotFound
	}
	if err != nil {
		return err
	}

	if err := s.repo.Roster.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRosterNotFound
		}
		return err
	}
	s.audit.Record(ctx, actor, "DELETE", "roster", fmt.Sprint(id), roster, nil)
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func toSet(ids []uint) map[uint]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
