package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mealbridge/internal/model"
	"mealbridge/internal/repository"
)

const (
	auditBatchSize   = 10
	auditFlushPeriod = time.Second
)

// AuditService is the append-only audit sink. Writes are fire-and-forget:
// a failed or delayed audit write never rolls back the action it records.
type AuditService interface {
	Record(ctx context.Context, actorID *uuid.UUID, action model.AuditAction, resourceType, resourceID, detail string)
	Logs(ctx context.Context, limit int) ([]model.AuditLogRow, error)
}

type auditService struct {
	repo    repository.AuditRepository
	logChan chan model.AuditLog
}

// NewAuditService creates the audit sink and starts its flush worker.
func NewAuditService(repo repository.AuditRepository) AuditService {
	s := &auditService{
		repo:    repo,
		logChan: make(chan model.AuditLog, 100),
	}
	go s.flushWorker(context.Background())
	return s
}

// flushWorker batches audit entries and writes them on size or period.
func (s *auditService) flushWorker(ctx context.Context) {
	batch := make([]model.AuditLog, 0, auditBatchSize)
	ticker := time.NewTicker(auditFlushPeriod)
	defer ticker.Stop()

	for {
		select {
		case entry, ok := <-s.logChan:
			if !ok {
				if len(batch) > 0 {
					_ = s.repo.CreateBatch(ctx, batch)
				}
				return
			}
			batch = append(batch, entry)
			if len(batch) >= auditBatchSize {
				_ = s.repo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				_ = s.repo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ctx.Done():
			return
		}
	}
}

// Record appends one audit entry without blocking the caller.
func (s *auditService) Record(ctx context.Context, actorID *uuid.UUID, action model.AuditAction, resourceType, resourceID, detail string) {
	entry := model.AuditLog{
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Detail:       detail,
	}

	select {
	case s.logChan <- entry:
	default:
		// Channel full, write synchronously as fallback
		_ = s.repo.Create(ctx, &entry)
	}
}

// Logs returns the most recent audit entries for the admin view.
func (s *auditService) Logs(ctx context.Context, limit int) ([]model.AuditLogRow, error) {
	return s.repo.ListRecent(ctx, limit)
}
