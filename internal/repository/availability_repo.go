package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// AvailabilityRepository is the store for availability declarations
type AvailabilityRepository interface {
	// ListAvailableIDs returns the professionals explicitly marked available
	// for a (hospital, date, shift type) slot. An empty result is a valid
	// "nobody opted in" state, not an error.
	ListAvailableIDs(ctx context.Context, hospitalID uint, date time.Time, shiftType string) ([]uint, error)
	ListByProfessional(ctx context.Context, professionalID uint) ([]models.Availability, error)
	Save(ctx context.Context, a *models.Availability) error
	Delete(ctx context.Context, id uint) error
}

type availabilityRepo struct {
	db *gorm.DB
}

// NewAvailabilityRepo creates the gorm-backed AvailabilityRepository
func NewAvailabilityRepo(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) ListAvailableIDs(ctx context.Context, hospitalID uint, date time.Time, shiftType string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Availability{}).
		Where("hospital_id = ? AND date = ? AND shift_type = ? AND available = ?", hospitalID, date, shiftType, true).
		Pluck("professional_id", &ids).Error
	return ids, err
}

func (r *availabilityRepo) ListByProfessional(ctx context.Context, professionalID uint) ([]models.Availability, error) {
	var avs []models.Availability
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("date ASC").
		Find(&avs).Error
	return avs, err
}

func (r *availabilityRepo) Save(ctx context.Context, a *models.Availability) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *availabilityRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Availability{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
