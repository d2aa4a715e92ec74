package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// RuleRepository is the store for rule parameters and named configurations
type RuleRepository interface {
	// ListActiveByHospitalAt returns the hospital's standing parameters whose
	// validity interval contains the reference date.
	ListActiveByHospitalAt(ctx context.Context, hospitalID uint, ref time.Time) ([]models.RuleParameter, error)
	ListByConfiguration(ctx context.Context, configID uint) ([]models.RuleParameter, error)
	ListParameters(ctx context.Context, hospitalID uint) ([]models.RuleParameter, error)
	SaveParameter(ctx context.Context, p *models.RuleParameter) error
	DeleteParameter(ctx context.Context, id uint) error

	GetConfiguration(ctx context.Context, id uint) (*models.RuleConfiguration, error)
	ListConfigurations(ctx context.Context, hospitalID uint) ([]models.RuleConfiguration, error)
	SaveConfiguration(ctx context.Context, c *models.RuleConfiguration) error
	DeleteConfiguration(ctx context.Context, id uint) error
}

type ruleRepo struct {
	db *gorm.DB
}

// NewRuleRepo creates the gorm-backed RuleRepository
func NewRuleRepo(db *gorm.DB) RuleRepository {
	return &ruleRepo{db: db}
}

func (r *ruleRepo) ListActiveByHospitalAt(ctx context.Context, hospitalID uint, ref time.Time) ([]models.RuleParameter, error) {
	var params []models.RuleParameter
	err := r.db.WithContext(ctx).
		Where("hospital_id = ? AND active = ?", hospitalID, true).
		Where("(valid_from IS NULL OR valid_from <= ?)", ref).
		Where("(valid_to IS NULL OR valid_to >= ?)", ref).
		Order("id ASC").
		Find(&params).Error
	return params, err
}

func (r *ruleRepo) ListByConfiguration(ctx context.Context, configID uint) ([]models.RuleParameter, error) {
	var params []models.RuleParameter
	err := r.db.WithContext(ctx).
		Where("rule_configuration_id = ?", configID).
		Order("id ASC").
		Find(&params).Error
	return params, err
}

func (r *ruleRepo) ListParameters(ctx context.Context, hospitalID uint) ([]models.RuleParameter, error) {
	var params []models.RuleParameter
	err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("id ASC").
		Find(&params).Error
	return params, err
}

func (r *ruleRepo) SaveParameter(ctx context.Context, p *models.RuleParameter) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ruleRepo) DeleteParameter(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.RuleParameter{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ruleRepo) GetConfiguration(ctx context.Context, id uint) (*models.RuleConfiguration, error) {
	var c models.RuleConfiguration
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ruleRepo) ListConfigurations(ctx context.Context, hospitalID uint) ([]models.RuleConfiguration, error) {
	var cs []models.RuleConfiguration
	err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("id ASC").
		Find(&cs).Error
	return cs, err
}

func (r *ruleRepo) SaveConfiguration(ctx context.Context, c *models.RuleConfiguration) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ruleRepo) DeleteConfiguration(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rule_configuration_id = ?", id).Delete(&models.RuleParameter{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.RuleConfiguration{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
