package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditAction tags the kind of mutating action recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate     AuditAction = "CREATE"
	AuditActionSoftDelete AuditAction = "SOFT_DELETE"
	AuditActionRestore    AuditAction = "RESTORE"
	AuditActionDelete     AuditAction = "DELETE"
)

// AuditLog is an immutable record of a mutating action. Entries are only
// ever appended; nothing updates or deletes them.
type AuditLog struct {
	ID           uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	ActorID      *uuid.UUID  `json:"actor_id,omitempty" gorm:"type:char(36);index"`
	Action       AuditAction `json:"action" gorm:"type:varchar(32);not null;index"`
	ResourceType string      `json:"resource_type" gorm:"size:32;not null"`
	ResourceID   string      `json:"resource_id" gorm:"size:64"`
	Detail       string      `json:"detail,omitempty" gorm:"type:text"`
	CreatedAt    time.Time   `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AuditLogRow is an audit entry joined with the actor's display fields for
// the admin view. ActorName/ActorEmail are empty when the actor is gone.
type AuditLogRow struct {
	ID           uuid.UUID   `json:"id"`
	ActorID      *uuid.UUID  `json:"actor_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	Detail       string      `json:"detail,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	ActorName    string      `json:"actor_name,omitempty"`
	ActorEmail   string      `json:"actor_email,omitempty"`
}
