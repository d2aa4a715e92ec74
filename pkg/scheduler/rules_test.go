package scheduler

import (
	"testing"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

func intp(v int) *int { return &v }

func TestResolveRules_FirstPositiveMatchWins(t *testing.T) {
	params := []models.RuleParameter{
		{Key: "MIN_REST_HOURS", IntValue: intp(0)},  // non-positive, treated as absent
		{Key: "MIN_REST_HOURS", IntValue: intp(12)}, // first positive match
		{Key: "MIN_REST_HOURS", IntValue: intp(8)},  // duplicate, ignored
		{Key: "max_nights_month", IntValue: intp(6)},
	}

	rules := ResolveRules(params)
	if rules.MinRestHours != 12 {
		t.Errorf("expected MinRestHours=12, got %d", rules.MinRestHours)
	}
	if rules.MaxNightsPerMonth != 6 {
		t.Errorf("expected case-insensitive key match, got %d", rules.MaxNightsPerMonth)
	}
	if rules.MaxConsecutiveShifts != 0 {
		t.Errorf("expected absent parameter to resolve to 0, got %d", rules.MaxConsecutiveShifts)
	}
}

func TestResolveRules_NilAndNegativeValues(t *testing.T) {
	params := []models.RuleParameter{
		{Key: "MAX_CONSECUTIVE_SHIFTS"},                  // no value at all
		{Key: "MAX_CONSECUTIVE_SHIFTS", IntValue: intp(-3)},
	}

	if got := ResolveRules(params).MaxConsecutiveShifts; got != 0 {
		t.Errorf("expected 0 for nil/negative values, got %d", got)
	}
}

func TestResolveRules_Idempotent(t *testing.T) {
	params := []models.RuleParameter{
		{Key: "MAX_NIGHTS_MONTH", IntValue: intp(4)},
		{Key: "MIN_REST_HOURS", IntValue: intp(10)},
		{Key: "MAX_CONSECUTIVE_SHIFTS", IntValue: intp(3)},
	}

	first := ResolveRules(params)
	second := ResolveRules(params)
	if first != second {
		t.Errorf("expected identical results across resolutions: %+v vs %+v", first, second)
	}
}

func TestResolveRules_EmptyInputIsUnconstrained(t *testing.T) {
	if got := ResolveRules(nil); got != (RuleSet{}) {
		t.Errorf("expected zero RuleSet for no parameters, got %+v", got)
	}
}
