package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

// AuditLogRepository is the append-only store for audit records
type AuditLogRepository interface {
	Save(ctx context.Context, entry *models.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
	ListByActor(ctx context.Context, actorID string, limit int) ([]models.AuditLog, error)
}

type auditLogRepo struct {
	db *gorm.DB
}

// NewAuditLogRepo creates the gorm-backed AuditLogRepository
func NewAuditLogRepo(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Save(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepo) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []models.AuditLog
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *auditLogRepo) ListByActor(ctx context.Context, actorID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
