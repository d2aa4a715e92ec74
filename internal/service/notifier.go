package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arnavshah/roster-api-go/internal/repository"
	"github.com/arnavshah/roster-api-go/pkg/models"
)

// Notifier delivers swap-workflow messages to the two professionals involved.
// Delivery failures are the caller's problem to swallow: the swap state
// transition must never depend on a notification going out.
type Notifier interface {
	SwapRequested(ctx context.Context, req *models.ShiftSwapRequest, origin, destination *models.Professional, shift *models.Shift) error
	SwapUpdated(ctx context.Context, req *models.ShiftSwapRequest, origin, destination *models.Professional, shift *models.Shift) error
}

// logNotifier writes the composed messages to the structured log. Swapping in
// an email or messaging transport only means replacing this implementation.
type logNotifier struct {
	shifts repository.ShiftRepository
	logger *zap.Logger
}

// NewLogNotifier creates the log-backed Notifier
func NewLogNotifier(shifts repository.ShiftRepository, logger *zap.Logger) Notifier {
	return &logNotifier{shifts: shifts, logger: logger}
}

func (n *logNotifier) SwapRequested(ctx context.Context, req *models.ShiftSwapRequest, origin, destination *models.Professional, shift *models.Shift) error {
	subject := fmt.Sprintf("Swap requested - %s %s-%s", shift.Date.Format("02/01/2006"), shift.StartTime, shift.EndTime)
	return n.deliver(ctx, subject, req, origin, destination, shift)
}

func (n *logNotifier) SwapUpdated(ctx context.Context, req *models.ShiftSwapRequest, origin, destination *models.Professional, shift *models.Shift) error {
	subject := fmt.Sprintf("Swap %s - %s %s-%s", req.Status, shift.Date.Format("02/01/2006"), shift.StartTime, shift.EndTime)
	return n.deliver(ctx, subject, req, origin, destination, shift)
}

func (n *logNotifier) deliver(ctx context.Context, subject string, req *models.ShiftSwapRequest, origin, destination *models.Professional, shift *models.Shift) error {
	summary := n.monthlySummary(ctx, shift.HospitalID, destination, shift.Date)

	body := fmt.Sprintf(
		"Shift: %s %s-%s at %s | Origin: %s (%s) | Destination: %s (%s) | %s | Reason: %s",
		shift.Date.Format("02/01/2006"), shift.StartTime, shift.EndTime, shift.Location,
		origin.Name, origin.Registration,
		destination.Name, destination.Registration,
		summary, req.Reason,
	)

	for _, recipient := range []string{origin.Email, destination.Email} {
		if recipient == "" {
			continue
		}
		n.logger.Info("notification",
			zap.String("to", recipient),
			zap.String("subject", subject),
			zap.String("body", body))
	}
	return nil
}

// monthlySummary estimates the destination professional's workload in the
// shift's calendar month, so both parties see the load the swap would add to.
func (n *logNotifier) monthlySummary(ctx context.Context, hospitalID uint, p *models.Professional, ref time.Time) string {
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	shifts, err := n.shifts.ListByHospitalAndDateRange(ctx, hospitalID, monthStart, monthEnd)
	if err != nil {
		return "monthly summary unavailable"
	}

	var total, nights int
	var hours float64
	for i := range shifts {
		sh := &shifts[i]
		if sh.ProfessionalID == nil || *sh.ProfessionalID != p.ID {
			continue
		}
		total++
		if sh.Type == models.ShiftTypeNight {
			nights++
		}
		hours += sh.DurationHours()
	}

	summary := fmt.Sprintf("Month %d/%d: %d shifts (%d nights), %.1f h", ref.Month(), ref.Year(), total, nights, hours)
	if p.MinMonthlyHours != nil || p.MaxMonthlyHours != nil {
		limits := ""
		if p.MinMonthlyHours != nil {
			limits += fmt.Sprintf("min %d h", *p.MinMonthlyHours)
		}
		if p.MinMonthlyHours != nil && p.MaxMonthlyHours != nil {
			limits += " / "
		}
		if p.MaxMonthlyHours != nil {
			limits += fmt.Sprintf("max %d h", *p.MaxMonthlyHours)
		}
		summary += " (limits: " + limits + ")"
	}
	return summary
}
