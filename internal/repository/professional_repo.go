package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// ProfessionalRepository is the store for healthcare professionals
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Professional, error)
	GetByEmail(ctx context.Context, email string) (*models.Professional, error)
	ListActiveByHospital(ctx context.Context, hospitalID uint) ([]models.Professional, error)
	List(ctx context.Context, hospitalID uint) ([]models.Professional, error)
	Create(ctx context.Context, p *models.Professional) error
	Update(ctx context.Context, p *models.Professional) error
	Deactivate(ctx context.Context, id uint) error
}

type professionalRepo struct {
	db *gorm.DB
}

// NewProfessionalRepo creates the gorm-backed ProfessionalRepository
func NewProfessionalRepo(db *gorm.DB) ProfessionalRepository {
	return &professionalRepo{db: db}
}

func (r *professionalRepo) GetByID(ctx context.Context, id uint) (*models.Professional, error) {
	var p models.Professional
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *professionalRepo) GetByEmail(ctx context.Context, email string) (*models.Professional, error) {
	var p models.Professional
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *professionalRepo) ListActiveByHospital(ctx context.Context, hospitalID uint) ([]models.Professional, error) {
	var pros []models.Professional
	err := r.db.WithContext(ctx).
		Where("hospital_id = ? AND active = ?", hospitalID, true).
		Order("id ASC").
		Find(&pros).Error
	return pros, err
}

func (r *professionalRepo) List(ctx context.Context, hospitalID uint) ([]models.Professional, error) {
	var pros []models.Professional
	err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("id ASC").
		Find(&pros).Error
	return pros, err
}

func (r *professionalRepo) Create(ctx context.Context, p *models.Professional) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *professionalRepo) Update(ctx context.Context, p *models.Professional) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Deactivate flips the active flag instead of deleting; rostered history
// keeps referring to the professional.
func (r *professionalRepo) Deactivate(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Professional{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
