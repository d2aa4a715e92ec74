package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates all store interfaces consumed by the services.
// Atomic runs a function against a Repository bound to one transaction so a
// whole roster generation or swap commit either fully applies or not at all.
type Repository struct {
	Professional ProfessionalRepository
	Shift        ShiftRepository
	Roster       RosterRepository
	Availability AvailabilityRepository
	Rule         RuleRepository
	SwapRequest  SwapRequestRepository
	AuditLog     AuditLogRepository

	Atomic func(ctx context.Context, fn func(*Repository) error) error
}

// NewRepository wires the gorm-backed implementations of every store.
func NewRepository(db *gorm.DB) *Repository {
	r := &Repository{
		Professional: NewProfessionalRepo(db),
		Shift:        NewShiftRepo(db),
		Roster:       NewRosterRepo(db),
		Availability: NewAvailabilityRepo(db),
		Rule:         NewRuleRepo(db),
		SwapRequest:  NewSwapRequestRepo(db),
		AuditLog:     NewAuditLogRepo(db),
	}
	r.Atomic = func(ctx context.Context, fn func(*Repository) error) error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(NewRepository(tx))
		})
	}
	return r
}
