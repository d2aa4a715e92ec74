package scheduler

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// Default shift clock times for generated windows.
const (
	DayShiftStart   = "07:00"
	DayShiftEnd     = "19:00"
	NightShiftStart = "19:00"
	NightShiftEnd   = "07:00"
)

// AvailabilityFunc returns the set of professional ids explicitly marked
// available for a (date, shift type) slot. An empty set means nobody opted
// in, in which case the whole eligible pool is treated as available.
type AvailabilityFunc func(date time.Time, shiftType string) map[uint]bool

// ConflictReason explains why a shift could not be assigned
type ConflictReason struct {
	ShiftDate time.Time `json:"shift_date"`
	ShiftType string    `json:"shift_type"`
	Reasons   []string  `json:"reasons"`
}

// allocState tracks one professional's running counters within a single
// generation pass. Never shared across runs.
type allocState struct {
	assigned    int
	nights      int
	lastEnd     time.Time
	hasLastEnd  bool
	consecutive int
	lastDate    time.Time
	hasLastDate bool
}

// Engine performs the greedy allocation pass for one hospital/window pair.
// It is pure in-memory logic: callers fetch the pool, the availability
// declarations and the surrounding shifts up front and read the mutated
// Shifts back out afterwards.
type Engine struct {
	Pool         []*models.Professional
	Shifts       []*models.Shift
	Existing     map[uint][]*models.Shift
	Availability AvailabilityFunc
	Rules        RuleSet
	Conflicts    []ConflictReason

	state map[uint]*allocState
}

// NewEngine creates an engine for one generation run. existing maps each
// professional to their shifts already on record, spanning at least one day
// beyond the window on each side so boundary-crossing nights are caught.
func NewEngine(pool []*models.Professional, shifts []*models.Shift, existing map[uint][]*models.Shift, availability AvailabilityFunc, rules RuleSet) *Engine {
	if existing == nil {
		existing = make(map[uint][]*models.Shift)
	}
	return &Engine{
		Pool:         pool,
		Shifts:       shifts,
		Existing:     existing,
		Availability: availability,
		Rules:        rules,
		state:        make(map[uint]*allocState),
	}
}

// DefaultShiftsForWindow builds the standard two-shifts-per-day list for a
// window: a day shift (07:00-19:00) and a night shift (19:00-07:00 next day)
// for every date from start through end inclusive.
func DefaultShiftsForWindow(hospitalID uint, start, end time.Time, location string) []*models.Shift {
	var shifts []*models.Shift
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		shifts = append(shifts,
			&models.Shift{
				HospitalID: hospitalID,
				Date:       d,
				StartTime:  DayShiftStart,
				EndTime:    DayShiftEnd,
				Type:       models.ShiftTypeDay,
				Location:   location,
			},
			&models.Shift{
				HospitalID: hospitalID,
				Date:       d,
				StartTime:  NightShiftStart,
				EndTime:    NightShiftEnd,
				Type:       models.ShiftTypeNight,
				Location:   location,
			})
	}
	return shifts
}

// Assign populates Shift.ProfessionalID for every shift it can fill. Shifts
// are processed in ascending (date, start time) order so the running rest,
// night and consecutive-day counters see assignments in chronological order.
// A shift with no feasible candidate is left unassigned and recorded in
// Conflicts; partial results are an accepted output, not an error.
func (e *Engine) Assign() {
	if len(e.Pool) == 0 {
		return
	}

	ordered := make([]*models.Shift, len(e.Shifts))
	copy(ordered, e.Shifts)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].StartTime < ordered[j].StartTime
	})

	for _, shift := range ordered {
		candidates := e.availableCandidates(shift)
		if len(candidates) == 0 {
			e.recordConflict(shift, "no professional available for this slot")
			continue
		}

		noConflict := make([]*models.Professional, 0, len(candidates))
		for _, p := range candidates {
			if !e.hasConflict(p.ID, shift) {
				noConflict = append(noConflict, p)
			}
		}
		if len(noConflict) == 0 {
			e.recordConflict(shift, fmt.Sprintf("%d candidates had overlapping shifts", len(candidates)))
			continue
		}

		filtered := make([]*models.Professional, 0, len(noConflict))
		for _, p := range noConflict {
			if e.respectsRest(p.ID, shift) && e.respectsNightCap(p.ID, shift) && e.respectsConsecutiveCap(p.ID, shift) {
				filtered = append(filtered, p)
			}
		}
		// Soft rules are advisory: an empty soft-filtered set falls back to
		// the conflict-free set so a shift is never left unfilled while any
		// conflict-free candidate exists.
		if len(filtered) == 0 {
			filtered = noConflict
		}

		e.commit(e.pickLeastLoaded(filtered), shift)
	}
}

// availableCandidates narrows the pool to the slot's availability set.
// Nobody opting in means everybody in the pool is a candidate.
func (e *Engine) availableCandidates(shift *models.Shift) []*models.Professional {
	var ids map[uint]bool
	if e.Availability != nil {
		ids = e.Availability(shift.Date, shift.Type)
	}
	if len(ids) == 0 {
		return e.Pool
	}
	candidates := make([]*models.Professional, 0, len(ids))
	for _, p := range e.Pool {
		if ids[p.ID] {
			candidates = append(candidates, p)
		}
	}
	return candidates
}

// hasConflict reports whether the candidate shift overlaps any shift already
// held by the professional, including assignments made earlier in this run
// and shifts outside the generation window.
func (e *Engine) hasConflict(professionalID uint, shift *models.Shift) bool {
	for _, existing := range e.Existing[professionalID] {
		if shift.Overlaps(existing) {
			return true
		}
	}
	return false
}

func (e *Engine) respectsRest(professionalID uint, shift *models.Shift) bool {
	if e.Rules.MinRestHours <= 0 {
		return true
	}
	st := e.state[professionalID]
	if st == nil || !st.hasLastEnd {
		return true
	}
	earliest := st.lastEnd.Add(time.Duration(e.Rules.MinRestHours) * time.Hour)
	return !shift.EffectiveStart().Before(earliest)
}

func (e *Engine) respectsNightCap(professionalID uint, shift *models.Shift) bool {
	if e.Rules.MaxNightsPerMonth <= 0 || !strings.EqualFold(shift.Type, models.ShiftTypeNight) {
		return true
	}
	st := e.state[professionalID]
	return st == nil || st.nights < e.Rules.MaxNightsPerMonth
}

func (e *Engine) respectsConsecutiveCap(professionalID uint, shift *models.Shift) bool {
	if e.Rules.MaxConsecutiveShifts <= 0 {
		return true
	}
	st := e.state[professionalID]
	if st == nil || !st.hasLastDate {
		return true
	}
	// Only an assignment on the day immediately after the last one extends a
	// streak; any wider gap resets it.
	if daysBetween(st.lastDate, shift.Date) == 1 {
		return st.consecutive < e.Rules.MaxConsecutiveShifts
	}
	return true
}

// pickLeastLoaded chooses the candidate with the fewest shifts assigned so
// far in this run, ties broken by encounter order.
func (e *Engine) pickLeastLoaded(candidates []*models.Professional) *models.Professional {
	best := candidates[0]
	bestLoad := e.loadOf(best.ID)
	for _, p := range candidates[1:] {
		if load := e.loadOf(p.ID); load < bestLoad {
			best = p
			bestLoad = load
		}
	}
	return best
}

func (e *Engine) loadOf(professionalID uint) int {
	if st := e.state[professionalID]; st != nil {
		return st.assigned
	}
	return 0
}

// commit records the assignment and updates the professional's running
// counters and known-shift list.
func (e *Engine) commit(p *models.Professional, shift *models.Shift) {
	id := p.ID
	shift.ProfessionalID = &id

	st := e.state[id]
	if st == nil {
		st = &allocState{}
		e.state[id] = st
	}
	st.assigned++
	st.lastEnd = shift.EffectiveEnd()
	st.hasLastEnd = true

	switch {
	case !st.hasLastDate:
		st.consecutive = 1
	case daysBetween(st.lastDate, shift.Date) == 1:
		st.consecutive++
	case daysBetween(st.lastDate, shift.Date) > 1:
		st.consecutive = 1
	}
	st.lastDate = shift.Date
	st.hasLastDate = true

	if strings.EqualFold(shift.Type, models.ShiftTypeNight) {
		st.nights++
	}

	e.Existing[id] = append(e.Existing[id], shift)
}

func (e *Engine) recordConflict(shift *models.Shift, reasons ...string) {
	e.Conflicts = append(e.Conflicts, ConflictReason{
		ShiftDate: shift.Date,
		ShiftType: shift.Type,
		Reasons:   reasons,
	})
}

// AssignedCount returns how many shifts this run assigned to a professional.
func (e *Engine) AssignedCount(professionalID uint) int {
	return e.loadOf(professionalID)
}

func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
