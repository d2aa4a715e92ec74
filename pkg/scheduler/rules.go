package scheduler

import (
	"strings"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// Rule parameter keys recognized by the resolver.
const (
	KeyMaxNightsPerMonth    = "MAX_NIGHTS_MONTH"
	KeyMinRestHours         = "MIN_REST_HOURS"
	KeyMaxConsecutiveShifts = "MAX_CONSECUTIVE_SHIFTS"
)

// RuleSet holds the flattened labor-safety parameters for one generation run.
// A zero value means "unconstrained"; missing rules are not an error.
type RuleSet struct {
	MaxNightsPerMonth    int `json:"max_nights_per_month"`
	MinRestHours         int `json:"min_rest_hours"`
	MaxConsecutiveShifts int `json:"max_consecutive_shifts"`
}

// ResolveRules flattens a list of stored rule parameters into a RuleSet.
// When several parameters share a key, the first one with a strictly positive
// integer value wins; values <= 0 are treated as absent.
func ResolveRules(params []models.RuleParameter) RuleSet {
	return RuleSet{
		MaxNightsPerMonth:    firstPositiveInt(params, KeyMaxNightsPerMonth),
		MinRestHours:         firstPositiveInt(params, KeyMinRestHours),
		MaxConsecutiveShifts: firstPositiveInt(params, KeyMaxConsecutiveShifts),
	}
}

func firstPositiveInt(params []models.RuleParameter, key string) int {
	for i := range params {
		p := &params[i]
		if !strings.EqualFold(p.Key, key) {
			continue
		}
		if p.IntValue != nil && *p.IntValue > 0 {
			return *p.IntValue
		}
	}
	return 0
}
