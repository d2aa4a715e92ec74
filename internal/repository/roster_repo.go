package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// RosterRepository is the store for generated rosters
type RosterRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Roster, error)
	// GetLatestByHospital returns the roster with the most recent start date.
	GetLatestByHospital(ctx context.Context, hospitalID uint) (*models.Roster, error)
	// SaveWithShifts persists a roster together with all of its shifts as one
	// atomic unit.
	SaveWithShifts(ctx context.Context, roster *models.Roster) error
	Delete(ctx context.Context, id uint) error
}

type rosterRepo struct {
	db *gorm.DB
}

// NewRosterRepo creates the gorm-backed RosterRepository
func NewRosterRepo(db *gorm.DB) RosterRepository {
	return &rosterRepo{db: db}
}

func (r *rosterRepo) GetByID(ctx context.Context, id uint) (*models.Roster, error) {
	var roster models.Roster
	err := r.db.WithContext(ctx).
		Preload("Shifts", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, start_time ASC")
		}).
		First(&roster, id).Error
	if err != nil {
		return nil, err
	}
	return &roster, nil
}

func (r *rosterRepo) GetLatestByHospital(ctx context.Context, hospitalID uint) (*models.Roster, error) {
	var roster models.Roster
	err := r.db.WithContext(ctx).
		Preload("Shifts", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, start_time ASC")
		}).
		Where("hospital_id = ?", hospitalID).
		Order("start_date DESC").
		First(&roster).Error
	if err != nil {
		return nil, err
	}
	return &roster, nil
}

func (r *rosterRepo) SaveWithShifts(ctx context.Context, roster *models.Roster) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// gorm cascades the Shifts association in the same transaction
		return tx.Create(roster).Error
	})
}

func (r *rosterRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("roster_id = ?", id).Delete(&models.Shift{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Roster{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
