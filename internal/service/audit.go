package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/arnavshah/roster-api-go/internal/repository"
	"github.com/arnavshah/roster-api-go/pkg/models"
)

// Actor identifies who performed an audited operation
type Actor struct {
	ID    string
	Email string
	IP    string
}

// AuditService records state changes out of band. Recording is strictly
// fire-and-forget: failures are logged and never propagated, so a broken
// audit store can never roll back or block the primary operation.
type AuditService struct {
	repo   repository.AuditLogRepository
	logger *zap.Logger
}

// NewAuditService creates an AuditService
func NewAuditService(repo repository.AuditLogRepository, logger *zap.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// Record writes one audit entry. oldValue and newValue are JSON-serialized
// snapshots of the resource before and after the change; either may be nil.
func (a *AuditService) Record(ctx context.Context, actor Actor, action, resourceName, resourceID string, oldValue, newValue interface{}) {
	entry := &models.AuditLog{
		Timestamp:    time.Now(),
		ActorID:      actor.ID,
		ActorEmail:   actor.Email,
		Action:       action,
		ResourceName: resourceName,
		ResourceID:   resourceID,
		IPAddress:    actor.IP,
		OldValue:     marshalValue(oldValue),
		NewValue:     marshalValue(newValue),
	}

	if err := a.repo.Save(ctx, entry); err != nil {
		a.logger.Warn("audit write failed",
			zap.String("action", action),
			zap.String("resource", resourceName),
			zap.Error(err))
	}
}

// ListRecent returns the newest audit entries
func (a *AuditService) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	return a.repo.ListRecent(ctx, limit)
}

// ListByActor returns the newest audit entries for one actor
func (a *AuditService) ListByActor(ctx context.Context, actorID string, limit int) ([]models.AuditLog, error) {
	return a.repo.ListByActor(ctx, actorID, limit)
}

func marshalValue(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "error serializing value"
	}
	return string(b)
}
