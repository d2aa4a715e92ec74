package models

import (
	"time"
)

// Shift type tags produced by the default generation inputs. The column is
// free-form, so manually created shifts may carry other tags.
const (
	ShiftTypeDay   = "DAY"
	ShiftTypeNight = "NIGHT"
)

// Swap request lifecycle. REQUESTED is the only non-terminal state.
const (
	SwapStatusRequested = "REQUESTED"
	SwapStatusApproved  = "APPROVED"
	SwapStatusRejected  = "REJECTED"
)

// RosterStatusGenerated is the status stamped on freshly generated rosters.
const RosterStatusGenerated = "GENERATED"

// Professional profiles used for route gating.
const (
	ProfileAdmin        = "ADMIN"
	ProfileScheduler    = "SCHEDULER"
	ProfileProfessional = "PROFESSIONAL"
)

// Hospital is the owning scope for professionals, shifts and rules.
type Hospital struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Active    bool       `gorm:"default:true" json:"active"`
	Locations []Location `gorm:"foreignKey:HospitalID" json:"locations,omitempty"`
}

// Location is a place inside a hospital where shifts happen
type Location struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	HospitalID uint   `gorm:"index;not null" json:"hospital_id"`
	Name       string `gorm:"not null" json:"name"`
}

// Specialty is a medical specialty professionals may hold
type Specialty struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// Professional represents a healthcare worker that can be rostered
type Professional struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"not null" json:"name"`
	Registration    string `json:"registration"`
	HospitalID      uint   `gorm:"index;not null" json:"hospital_id"`
	SpecialtyID     *uint  `gorm:"index" json:"specialty_id"`
	MaxMonthlyHours *int   `json:"max_monthly_hours"`
	MinMonthlyHours *int   `json:"min_monthly_hours"`
	Active          bool   `gorm:"default:true" json:"active"`
	Email           string `gorm:"index" json:"email"`
	Phone           string `json:"phone"`
	PasswordHash    string `json:"-"`
	Profile         string `gorm:"default:PROFESSIONAL" json:"profile"`
}

// parseClock converts "HH:MM" into hour/minute. Malformed values collapse to
// midnight rather than erroring so the engine never aborts on bad input rows.
func parseClock(s string) (hour, min int) {
	if len(s) < 5 {
		return 0, 0
	}
	hour = int(s[0]-'0')*10 + int(s[1]-'0')
	min = int(s[3]-'0')*10 + int(s[4]-'0')
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, 0
	}
	return hour, min
}

// Shift is one scheduled work interval with at most one assigned professional.
// StartTime and EndTime are wall-clock "HH:MM" values; an end earlier than the
// start means the shift crosses midnight and ends on the following day.
type Shift struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RosterID       *uint     `gorm:"index" json:"roster_id"`
	HospitalID     uint      `gorm:"index;not null" json:"hospital_id"`
	Date           time.Time `gorm:"type:date;not null;index" json:"date"`
	StartTime      string    `gorm:"not null" json:"start_time"`
	EndTime        string    `gorm:"not null" json:"end_time"`
	Type           string    `gorm:"not null" json:"type"`
	Location       string    `json:"location"`
	ProfessionalID *uint     `gorm:"index" json:"professional_id"`
}

// EffectiveStart is the shift's start instant on its calendar date.
func (s *Shift) EffectiveStart() time.Time {
	h, m := parseClock(s.StartTime)
	d := s.Date
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, d.Location())
}

// EffectiveEnd is the shift's end instant, pushed to the next calendar day
// when the end-of-day clock time is earlier than the start-of-day one.
func (s *Shift) EffectiveEnd() time.Time {
	sh, sm := parseClock(s.StartTime)
	eh, em := parseClock(s.EndTime)
	d := s.Date
	if eh*60+em < sh*60+sm {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), eh, em, 0, 0, d.Location())
}

// DurationHours is the shift's effective length in hours.
func (s *Shift) DurationHours() float64 {
	return s.EffectiveEnd().Sub(s.EffectiveStart()).Hours()
}

// Overlaps reports whether two shifts' effective intervals intersect using
// half-open semantics: [a,b) and [c,d) conflict iff a < d and b > c.
func (s *Shift) Overlaps(other *Shift) bool {
	return s.EffectiveStart().Before(other.EffectiveEnd()) &&
		s.EffectiveEnd().After(other.EffectiveStart())
}

// Roster is a generated set of shifts for one hospital over a date window.
// The window is fixed at creation; the shifts inside it may still be edited.
type Roster struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	HospitalID uint      `gorm:"index;not null" json:"hospital_id"`
	StartDate  time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null" json:"end_date"`
	Status     string    `gorm:"not null" json:"status"`
	Shifts     []Shift   `gorm:"foreignKey:RosterID;constraint:OnDelete:CASCADE" json:"shifts"`
}

// Availability is a professional's opt-in declaration for a slot
type Availability struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	HospitalID     uint      `gorm:"index;not null" json:"hospital_id"`
	ProfessionalID uint      `gorm:"index;not null" json:"professional_id"`
	Date           time.Time `gorm:"type:date;not null" json:"date"`
	ShiftType      string    `gorm:"not null" json:"shift_type"`
	Available      bool      `gorm:"default:true" json:"available"`
}

// RuleParameter is a typed key/value constraint scoped to a hospital (with a
// validity interval) or to a named RuleConfiguration.
type RuleParameter struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	Key                 string     `gorm:"not null;index" json:"key"`
	Description         string     `json:"description"`
	IntValue            *int       `json:"int_value"`
	DecimalValue        *float64   `json:"decimal_value"`
	TextValue           string     `json:"text_value"`
	Unit                string     `json:"unit"`
	Scope               string     `json:"scope"`
	HospitalID          *uint      `gorm:"index" json:"hospital_id"`
	ValidFrom           *time.Time `gorm:"type:date" json:"valid_from"`
	ValidTo             *time.Time `gorm:"type:date" json:"valid_to"`
	Active              bool       `gorm:"default:true" json:"active"`
	RuleConfigurationID *uint      `gorm:"index" json:"rule_configuration_id"`
}

// RuleConfiguration is a named bundle of RuleParameters selectable at
// generation time instead of the hospital's standing rules.
type RuleConfiguration struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	HospitalID  uint            `gorm:"index;not null" json:"hospital_id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Active      bool            `gorm:"default:true" json:"active"`
	Parameters  []RuleParameter `gorm:"foreignKey:RuleConfigurationID" json:"parameters,omitempty"`
}

// ShiftSwapRequest records a request to move one shift's ownership from its
// current owner to another professional. Created REQUESTED, resolved exactly
// once to APPROVED or REJECTED, never deleted.
type ShiftSwapRequest struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	HospitalID    uint       `gorm:"index;not null" json:"hospital_id"`
	ShiftID       uint       `gorm:"index;not null" json:"shift_id"`
	OriginID      uint       `gorm:"not null" json:"origin_professional_id"`
	DestinationID uint       `gorm:"not null" json:"destination_professional_id"`
	Status        string     `gorm:"not null" json:"status"`
	RequestedAt   time.Time  `gorm:"not null" json:"requested_at"`
	RespondedAt   *time.Time `json:"responded_at"`
	Reason        string     `json:"reason"`
}

// AuditLog is an out-of-band record of a state change. Writes never block or
// fail the operation being audited.
type AuditLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Timestamp    time.Time `gorm:"not null;index" json:"timestamp"`
	ActorID      string    `gorm:"index" json:"actor_id"`
	ActorEmail   string    `json:"actor_email"`
	Action       string    `gorm:"not null" json:"action"`
	ResourceName string    `json:"resource_name"`
	ResourceID   string    `json:"resource_id"`
	OldValue     string    `json:"old_value"`
	NewValue     string    `json:"new_value"`
	IPAddress    string    `json:"ip_address"`
}
