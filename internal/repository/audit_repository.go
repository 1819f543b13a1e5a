package repository

import (
	"context"

	"gorm.io/gorm"

	"mealbridge/internal/model"
)

// AuditRepository defines append-only audit log persistence. There are no
// update or delete operations on purpose.
type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	CreateBatch(ctx context.Context, entries []model.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]model.AuditLogRow, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit log repository.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Create appends a single audit entry.
func (r *auditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreateBatch appends multiple audit entries in one statement.
func (r *auditRepository) CreateBatch(ctx context.Context, entries []model.AuditLog) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(entries, 100).Error
}

// ListRecent returns the newest entries joined with actor display fields.
// The join is LEFT so entries outlive their actors.
func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]model.AuditLogRow, error) {
	var rows []model.AuditLogRow
	err := r.db.WithContext(ctx).
		Table("audit_logs").
		Select(`audit_logs.id, audit_logs.actor_id, audit_logs.action, audit_logs.resource_type,
audit_logs.resource_id, audit_logs.detail, audit_logs.created_at,
users.name AS actor_name, users.email AS actor_email`).
		Joins("LEFT JOIN users ON users.id = audit_logs.actor_id").
		Order("audit_logs.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
