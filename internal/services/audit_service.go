package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"spendsmart/internal/logger"
	"spendsmart/internal/models"
)

// AuditEntry is one mutation to be written to the audit trail.
type AuditEntry struct {
	OwnerID    string
	Action     models.AuditAction
	ResourceID string
	IPAddress  string
	// Changes holds the submitted fields; empty for deletes.
	Changes map[string]any
}

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Record writes entry. Failures are logged, never returned.
func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	log := logger.Get().With(
		"owner_id", entry.OwnerID,
		"action", entry.Action,
		"resource_id", entry.ResourceID,
	)

	row := models.AuditLog{
		OwnerID:      entry.OwnerID,
		Action:       entry.Action,
		ResourceType: entry.Action.ResourceType(),
		ResourceID:   entry.ResourceID,
		IPAddress:    entry.IPAddress,
	}
	if len(entry.Changes) > 0 {
		data, err := json.Marshal(entry.Changes)
		if err != nil {
			log.Warnw("audit changes not serializable", "error", err)
			data = []byte("{}")
		}
		row.Changes = string(data)
	}

	// The write outlives request cancellation.
	if err := s.db.WithContext(context.WithoutCancel(ctx)).Create(&row).Error; err != nil {
		log.Errorw("failed to write audit log", "error", err)
	}
}
