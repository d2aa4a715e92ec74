package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arnavshah/roster-api-go/internal/repository"
	"github.com/arnavshah/roster-api-go/pkg/models"
)

// ShiftTypeAll in a report filter matches every shift type.
const ShiftTypeAll = "ALL"

// ProfessionalPeriodSummary aggregates one professional's workload over a
// reporting period, with their monthly hour bounds for comparison.
type ProfessionalPeriodSummary struct {
	ProfessionalID  uint    `json:"professional_id"`
	Name            string  `json:"name"`
	Registration    string  `json:"registration"`
	TotalShifts     int     `json:"total_shifts"`
	TotalNights     int     `json:"total_nights"`
	TotalHours      float64 `json:"total_hours"`
	MinMonthlyHours *int    `json:"min_monthly_hours"`
	MaxMonthlyHours *int    `json:"max_monthly_hours"`
}

// ProfessionalSwapSummary counts one professional's involvement in swaps.
type ProfessionalSwapSummary struct {
	ProfessionalID uint   `json:"professional_id"`
	Name           string `json:"name"`
	Registration   string `json:"registration"`
	AsOrigin       int    `json:"as_origin"`
	AsDestination  int    `json:"as_destination"`
}

// SwapPeriodIndicators totals the swap activity in a reporting period.
type SwapPeriodIndicators struct {
	TotalRequests   int                       `json:"total_requests"`
	TotalRequested  int                       `json:"total_requested"`
	TotalApproved   int                       `json:"total_approved"`
	TotalRejected   int                       `json:"total_rejected"`
	PerProfessional []ProfessionalSwapSummary `json:"per_professional"`
}

// ReportService produces period reports over shifts and swap requests.
// Reports are read-only aggregations; they never mutate anything.
type ReportService interface {
	ProfessionalSummary(ctx context.Context, hospitalID uint, from, to time.Time, shiftType string) ([]ProfessionalPeriodSummary, error)
	SwapIndicators(ctx context.Context, hospitalID uint, from, to time.Time, shiftType string) (*SwapPeriodIndicators, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService creates a ReportService
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// matchesTypeFilter applies the optional shift-type narrowing. Empty and
// "ALL" match everything.
func matchesTypeFilter(filter, shiftType string) bool {
	if filter == "" || strings.EqualFold(filter, ShiftTypeAll) {
		return true
	}
	return strings.EqualFold(filter, shiftType)
}

// ProfessionalSummary walks the hospital's shifts in [from, to] inclusive and
// accumulates per-professional totals. Unassigned shifts are skipped;
// professionals deleted since their shifts were recorded are skipped too.
func (s *reportService) ProfessionalSummary(ctx context.Context, hospitalID uint, from, to time.Time, shiftType string) ([]ProfessionalPeriodSummary, error) {
	shifts, err := s.repo.Shift.ListByHospitalAndDateRange(ctx, hospitalID, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading shifts: %w", err)
	}

	type acc struct {
		shifts int
		nights int
		hours  float64
	}
	byPro := make(map[uint]*acc)
	for i := range shifts {
		sh := &shifts[i]
		if sh.ProfessionalID == nil || !matchesTypeFilter(shiftType, sh.Type) {
			continue
		}
		a := byPro[*sh.ProfessionalID]
		if a == nil {
			a = &acc{}
			byPro[*sh.ProfessionalID] = a
		}
		a.shifts++
		if strings.EqualFold(sh.Type, models.ShiftTypeNight) {
			a.nights++
		}
		a.hours += sh.DurationHours()
	}

	summaries := make([]ProfessionalPeriodSummary, 0, len(byPro))
	for id, a := range byPro {
		p, err := s.repo.Professional.GetByID(ctx, id)
		if err != nil {
			continue
		}
		summaries = append(summaries, ProfessionalPeriodSummary{
			ProfessionalID:  id,
			Name:            p.Name,
			Registration:    p.Registration,
			TotalShifts:     a.shifts,
			TotalNights:     a.nights,
			TotalHours:      a.hours,
			MinMonthlyHours: p.MinMonthlyHours,
			MaxMonthlyHours: p.MaxMonthlyHours,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ProfessionalID < summaries[j].ProfessionalID
	})
	return summaries, nil
}

// SwapIndicators totals the swap requests whose request timestamp falls in
// [from, to] inclusive of the whole final day, broken down by status and by
// professional involvement. A shift-type filter narrows to swaps whose shift
// carries that type.
func (s *reportService) SwapIndicators(ctx context.Context, hospitalID uint, from, to time.Time, shiftType string) (*SwapPeriodIndicators, error) {
	requests, err := s.repo.SwapRequest.List(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("loading swap requests: %w", err)
	}

	periodEnd := to.AddDate(0, 0, 1)
	filtered := shiftType != "" && !strings.EqualFold(shiftType, ShiftTypeAll)

	indicators := &SwapPeriodIndicators{PerProfessional: []ProfessionalSwapSummary{}}
	byPro := make(map[uint]*ProfessionalSwapSummary)
	touch := func(id uint) *ProfessionalSwapSummary {
		r := byPro[id]
		if r == nil {
			r = &ProfessionalSwapSummary{ProfessionalID: id}
			byPro[id] = r
		}
		return r
	}

	for i := range requests {
		req := &requests[i]
		if req.RequestedAt.Before(from) || !req.RequestedAt.Before(periodEnd) {
			continue
		}
		if filtered {
			shift, err := s.repo.Shift.GetByID(ctx, req.ShiftID)
			if err != nil || !strings.EqualFold(shiftType, shift.Type) {
				continue
			}
		}

		indicators.TotalRequests++
		switch req.Status {
		case models.SwapStatusRequested:
			indicators.TotalRequested++
		case models.SwapStatusApproved:
			indicators.TotalApproved++
		case models.SwapStatusRejected:
			indicators.TotalRejected++
		}
		touch(req.OriginID).AsOrigin++
		touch(req.DestinationID).AsDestination++
	}

	for id, r := range byPro {
		if p, err := s.repo.Professional.GetByID(ctx, id); err == nil {
			r.Name = p.Name
			r.Registration = p.Registration
		}
		indicators.PerProfessional = append(indicators.PerProfessional, *r)
	}
	sort.Slice(indicators.PerProfessional, func(i, j int) bool {
		return indicators.PerProfessional[i].ProfessionalID < indicators.PerProfessional[j].ProfessionalID
	})
	return indicators, nil
}
