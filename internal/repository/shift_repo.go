package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// ShiftRepository is the store for individual shifts
type ShiftRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Shift, error)
	// GetByIDForUpdate takes a row lock so no two swap commits on the same
	// shift can interleave. Only meaningful inside Repository.Atomic.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Shift, error)
	ListByHospitalAndDateRange(ctx context.Context, hospitalID uint, from, to time.Time) ([]models.Shift, error)
	Save(ctx context.Context, shift *models.Shift) error
	Delete(ctx context.Context, id uint) error
}

type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo creates the gorm-backed ShiftRepository
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) GetByID(ctx context.Context, id uint) (*models.Shift, error) {
	var s models.Shift
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shiftRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Shift, error) {
	var s models.Shift
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shiftRepo) ListByHospitalAndDateRange(ctx context.Context, hospitalID uint, from, to time.Time) ([]models.Shift, error) {
	var shifts []models.Shift
	err := r.db.WithContext(ctx).
		Where("hospital_id = ? AND date BETWEEN ? AND ?", hospitalID, from, to).
		Order("date ASC, start_time ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) Save(ctx context.Context, shift *models.Shift) error {
	return r.db.WithContext(ctx).Save(shift).Error
}

func (r *shiftRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Shift{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
