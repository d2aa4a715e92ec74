package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// SwapRequestRepository is the store for shift-swap workflow records.
// Requests are append-and-update only; nothing deletes them.
type SwapRequestRepository interface {
	GetByID(ctx context.Context, id uint) (*models.ShiftSwapRequest, error)
	List(ctx context.Context, hospitalID uint) ([]models.ShiftSwapRequest, error)
	Save(ctx context.Context, req *models.ShiftSwapRequest) error
}

type swapRequestRepo struct {
	db *gorm.DB
}

// NewSwapRequestRepo creates the gorm-backed SwapRequestRepository
func NewSwapRequestRepo(db *gorm.DB) SwapRequestRepository {
	return &swapRequestRepo{db: db}
}

func (r *swapRequestRepo) GetByID(ctx context.Context, id uint) (*models.ShiftSwapRequest, error) {
	var req models.ShiftSwapRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *swapRequestRepo) List(ctx context.Context, hospitalID uint) ([]models.ShiftSwapRequest, error) {
	var reqs []models.ShiftSwapRequest
	q := r.db.WithContext(ctx).Order("requested_at DESC")
	if hospitalID != 0 {
		q = q.Where("hospital_id = ?", hospitalID)
	}
	err := q.Find(&reqs).Error
	return reqs, err
}

func (r *swapRequestRepo) Save(ctx context.Context, req *models.ShiftSwapRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}
