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
)

// SwapService runs the shift-swap workflow: a REQUESTED record that is
// resolved exactly once to APPROVED or REJECTED. Approval reassigns the
// shift's owner; rejection leaves it untouched.
type SwapService interface {
	Request(ctx context.Context, shiftID, destinationID uint, reason string, actor Actor) (*models.ShiftSwapRequest, error)
	Approve(ctx context.Context, requestID uint, actor Actor) (*models.ShiftSwapRequest, error)
	Reject(ctx context.Context, requestID uint, actor Actor) (*models.ShiftSwapRequest, error)
	List(ctx context.Context, hospitalID uint) ([]models.ShiftSwapRequest, error)
}

type swapService struct {
	repo     *repository.Repository
	notifier Notifier
	audit    *AuditService
	logger   *zap.Logger
	now      func() time.Time
}

// NewSwapService creates a SwapService
func NewSwapService(repo *repository.Repository, notifier Notifier, audit *AuditService, logger *zap.Logger) SwapService {
	return &swapService{repo: repo, notifier: notifier, audit: audit, logger: logger, now: time.Now}
}

// Request opens a swap for a shift. The shift must exist and have a current
// owner; that owner is captured as the request's origin.
func (s *swapService) Request(ctx context.Context, shiftID, destinationID uint, reason string, actor Actor) (*models.ShiftSwapRequest, error) {
	shift, err := s.repo.Shift.GetByID(ctx, shiftID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, err
	}
	if shift.ProfessionalID == nil {
		return nil, ErrShiftUnassigned
	}

	origin, err := s.getProfessional(ctx, *shift.ProfessionalID)
	if err != nil {
		return nil, err
	}
	destination, err := s.getProfessional(ctx, destinationID)
	if err != nil {
		return nil, err
	}

	req := &models.ShiftSwapRequest{
		HospitalID:    shift.HospitalID,
		ShiftID:       shift.ID,
		OriginID:      origin.ID,
		DestinationID: destination.ID,
		Status:        models.SwapStatusRequested,
		RequestedAt:   s.now(),
		Reason:        reason,
	}
	if err := s.repo.SwapRequest.Save(ctx, req); err != nil {
		return nil, fmt.Errorf("saving swap request: %w", err)
	}

	s.notify(ctx, func() error { return s.notifier.SwapRequested(ctx, req, origin, destination, shift) })
	s.audit.Record(ctx, actor, "CREATE", "swap_request", fmt.Sprint(req.ID), nil, req)
	return req, nil
}

// Approve resolves a REQUESTED swap by handing the shift to the destination
// professional. The shift row is locked for the duration of the transaction
// so two resolutions of swaps on the same shift cannot interleave.
func (s *swapService) Approve(ctx context.Context, requestID uint, actor Actor) (*models.ShiftSwapRequest, error) {
	return s.resolve(ctx, requestID, actor, true)
}

// Reject resolves a REQUESTED swap without touching the shift's owner.
func (s *swapService) Reject(ctx context.Context, requestID uint, actor Actor) (*models.ShiftSwapRequest, error) {
	return s.resolve(ctx, requestID, actor, false)
}

func (s *swapService) resolve(ctx context.Context, requestID uint, actor Actor, approve bool) (*models.ShiftSwapRequest, error) {
	var req *models.ShiftSwapRequest
	var origin, destination *models.Professional
	var shift *models.Shift
	var before models.ShiftSwapRequest

	err := s.repo.Atomic(ctx, func(tx *repository.Repository) error {
		var err error
		req, err = tx.SwapRequest.GetByID(ctx, requestID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSwapNotFound
		}
		if err != nil {
			return err
		}
		if req.Status != models.SwapStatusRequested {
			return ErrSwapAlreadyResolved
		}
		before = *req

		// The lock is taken on the shift even for rejections so approve and
		// reject of competing requests on one shift serialize with each other.
		shift, err = tx.Shift.GetByIDForUpdate(ctx, req.ShiftID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		if err != nil {
			return err
		}

		origin, err = getProfessionalTx(ctx, tx, req.OriginID)
		if err != nil {
			return err
		}
		destination, err = getProfessionalTx(ctx, tx, req.DestinationID)
		if err != nil {
			return err
		}

		if approve {
			shift.ProfessionalID = &destination.ID
			if err := tx.Shift.Save(ctx, shift); err != nil {
				return err
			}
			req.Status = models.SwapStatusApproved
		} else {
			req.Status = models.SwapStatusRejected
		}
		now := s.now()
		req.RespondedAt = &now
		return tx.SwapRequest.Save(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, func() error { return s.notifier.SwapUpdated(ctx, req, origin, destination, shift) })
	s.audit.Record(ctx, actor, "UPDATE", "swap_request", fmt.Sprint(req.ID), before, req)
	return req, nil
}

func (s *swapService) List(ctx context.Context, hospitalID uint) ([]models.ShiftSwapRequest, error) {
	return s.repo.SwapRequest.List(ctx, hospitalID)
}

func (s *swapService) getProfessional(ctx context.Context, id uint) (*models.Professional, error) {
	return getProfessionalTx(ctx, s.repo, id)
}

func getProfessionalTx(ctx context.Context, repo *repository.Repository, id uint) (*models.Professional, error) {
	p, err := repo.Professional.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfessionalNotFound
	}
	return p, err
}

// notify runs a notification side effect without letting its failure reach
// the caller.
func (s *swapService) notify(ctx context.Context, fn func() error) {
	if s.notifier == nil {
		return
	}
	if err := fn(); err != nil {
		s.logger.Warn("swap notification failed", zap.Error(err))
	}
}
