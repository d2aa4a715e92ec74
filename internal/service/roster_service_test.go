package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

func setupRosterService(repos *testRepos) (*rosterService, *AuditService) {
	logger := zap.NewNop()
	audit := NewAuditService(repos.audit, logger)
	svc := NewRosterService(repos.toRepository(), audit, logger).(*rosterService)
	svc.now = func() time.Time { return time.Date(2026, time.March, 2, 10, 30, 0, 0, time.UTC) }
	return svc, audit
}

func TestGenerate_TwoProfessionalsBalancedWindow(t *testing.T) {
	repos := newTestRepos()
	repos.professional.add(models.Professional{ID: 1, Name: "Alice", HospitalID: 1, Active: true})
	repos.professional.add(models.Professional{ID: 2, Name: "Bruno", HospitalID: 1, Active: true})
	svc, _ := setupRosterService(repos)

	// Days=1 gives an inclusive 2-day window: 4 shifts total.
	result, err := svc.Generate(context.Background(), 1, GenerateInput{Days: 1}, Actor{ID: "admin"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if len(result.Roster.Shifts) != 4 {
		t.Fatalf("expected 4 shifts, got %d", len(result.Roster.Shifts))
	}
	counts := map[uint]int{}
	for _, sh := range result.Roster.Shifts {
		if sh.ProfessionalID == nil {
			t.Errorf("shift %s %s left unassigned", sh.Date.Format("2006-01-02"), sh.Type)
			continue
		}
		counts[*sh.ProfessionalID]++
	}
	if counts[1] != 2 || counts[2] != 2 {
		t.Errorf("expected 2 shifts each, got %v", counts)
	}
	if result.Roster.Status != models.RosterStatusGenerated {
		t.Errorf("expected status %q, got %q", models.RosterStatusGenerated, result.Roster.Status)
	}
	if _, ok := repos.roster.rosters[result.Roster.ID]; !ok {
		t.Error("expected roster persisted")
	}
}

func TestGenerate_EmptyPoolYieldsUnassignedRoster(t *testing.T) {
	repos := newTestRepos()
	svc, _ := setupRosterService(repos)

	result, err := svc.Generate(context.Background(), 1, GenerateInput{Days: 2}, Actor{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(result.Roster.Shifts) != 6 {
		t.Fatalf("expected 6 shifts, got %d", len(result.Roster.Shifts))
	}
	for _, sh := range result.Roster.Shifts {
		if sh.ProfessionalID != nil {
			t.Error("expected every shift unassigned with an empty pool")
		}
	}
}

func TestGenerate_SpecialtyFilterNarrowsPool(t *testing.T) {
	cardio, ortho := uint(10), uint(20)
	repos := newTestRepos()
	repos.professional.add(models.Professional{ID: 1, HospitalID: 1, Active: true, SpecialtyID: &cardio})
	repos.professional.add(models.Professional{ID: 2, HospitalID: 1, Active: true, SpecialtyID: &ortho})
	repos.professional.add(models.Professional{ID: 3, HospitalID: 1, Active: true})
	svc, _ := setupRosterService(repos)

	result, err := svc.Generate(context.Background(), 1, GenerateInput{Days: 1, SpecialtyIDs: []uint{cardio}}, Actor{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	for _, sh := range result.Roster.Shifts {
		if sh.ProfessionalID == nil || *sh.ProfessionalID != 1 {
			t.Errorf("expected only the cardiology professional assigned, got %v", sh.ProfessionalID)
		}
	}
}

func TestGenerate_RuleConfigurationTakesPrecedence(t *testing.T) {
	repos := newTestRepos()
	repos.professional.add(models.Professional{ID: 1, HospitalID: 1, Active: true})
	hospital := uint(1)
	twelve, two := 12, 2
	repos.rule.hospitalParams[1] = []models.RuleParameter{
		{Key: "MIN_REST_HOURS", IntValue: &twelve, HospitalID: &hospital},
	}
	configID := uint(7)
	repos.rule.configParams[configID] = []models.RuleParameter{
		{Key: "MIN_REST_HOURS", IntValue: &two, RuleConfigurationID: &configID},
	}
	svc, _ := setupRosterService(repos)

	result, err := svc.Generate(context.Background(), 1, GenerateInput{Days: 1, RuleConfigurationID: &configID}, Actor{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.Rules.MinRestHours != 2 {
		t.Errorf("expected configuration rules to win, got MinRestHours=%d", result.Rules.MinRestHours)
	}
}

func TestGenerate_ExistingShiftBlocksOverlap(t *testing.T) {
	repos := newTestRepos()
	repos.professional.add(models.Professional{ID: 1, HospitalID: 1, Active: true})
	// A shift already on record in the middle of the window's first day
	// blocks the sole professional from that day's day shift.
	one := uint(1)
	day1 := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	existing := repos.shift.add(models.Shift{
		HospitalID: 1, Date: day1,
		StartTime: "10:00", EndTime: "14:00", Type: models.ShiftTypeDay, ProfessionalID: &one,
	})
	svc, _ := setupRosterService(repos)

	result, err := svc.Generate(context.Background(), 1, GenerateInput{Days: 1}, Actor{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	for i := range result.Roster.Shifts {
		sh := &result.Roster.Shifts[i]
		if sh.ProfessionalID == nil {
			continue
		}
		if sh.Overlaps(existing) {
			t.Errorf("assigned shift overlaps the pre-existing one: %s %s", sh.Date.Format("2006-01-02"), sh.StartTime)
		}
	}
	if len(result.Conflicts) == 0 {
		t.Error("expected the blocked day shift to be reported as a conflict")
	}
}

func TestGenerate_PersistFailurePropagates(t *testing.T) {
	repos := newTestRepos()
	repos.professional.add(models.Professional{ID: 1, HospitalID: 1, Active: true})
	repos.roster.saveErr = errors.New("disk full")
	svc, _ := setupRosterService(repos)

	if _, err := svc.Generate(context.Background(), 1, GenerateInput{Days: 1}, Actor{}); err == nil {
		t.Fatal("expected persistence failure to surface")
	}
	if len(repos.roster.rosters) != 0 {
		t.Error("expected no roster persisted after failure")
	}
}

func TestGenerate_AvailabilityDeclarationsNarrowSlot(t *testing.T) {
	repos := newTestRepos()
	repos.professional.add(models.Professional{ID: 1, HospitalID: 1, Active: true})
	repos.professional.add(models.Professional{ID: 2, HospitalID: 1, Active: true})
	day1 := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	repos.availability.declarations = []models.Availability{
		{HospitalID: 1, ProfessionalID: 2, Date: day1, ShiftType: models.ShiftTypeNight, Available: true},
	}
	svc, _ := setupRosterService(repos)

	result, err := svc.Generate(context.Background(), 1, GenerateInput{Days: 0}, Actor{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	for _, sh := range result.Roster.Shifts {
		if sh.Type == models.ShiftTypeNight && sh.Date.Equal(day1) {
			if sh.ProfessionalID == nil || *sh.ProfessionalID != 2 {
				t.Errorf("expected the opted-in professional on the night shift, got %v", sh.ProfessionalID)
			}
		}
	}
}

func TestLatestRoster_NotFound(t *testing.T) {
	repos := newTestRepos()
	svc, _ := setupRosterService(repos)

	if _, err := svc.LatestRoster(context.Background(), 99); !errors.Is(err, ErrRosterNotFound) {
		t.Errorf("expected ErrRosterNotFound, got %v", err)
	}
}

func TestDeleteRoster(t *testing.T) {
	repos := newTestRepos()
	repos.roster.rosters[5] = &models.Roster{ID: 5, HospitalID: 1}
	repos.roster.nextID = 6
	svc, _ := setupRosterService(repos)

	if err := svc.DeleteRoster(context.Background(), 5, Actor{ID: "admin"}); err != nil {
		t.Fatalf("DeleteRoster returned error: %v", err)
	}
	if _, ok := repos.roster.rosters[5]; ok {
		t.Error("expected roster removed")
	}
	if len(repos.audit.entries) != 1 {
		t.Errorf("expected 1 audit entry, got %d", len(repos.audit.entries))
	}

	if err := svc.DeleteRoster(context.Background(), 5, Actor{}); !errors.Is(err, ErrRosterNotFound) {
		t.Errorf("expected ErrRosterNotFound on second delete, got %v", err)
	}
}
