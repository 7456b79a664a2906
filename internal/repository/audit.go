package repository

import (
	"context"
	"time"

	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

// InsertAuditRecord persists one consumed audit event. Called by cmd/auditor.
func (r *Repository) InsertAuditRecord(record *domain.AuditRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO audit_log (action, company_id, actor_id, entity, entity_id, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	args := []any{record.Action, record.CompanyID, record.ActorID, record.Entity, record.EntityID, record.Detail, record.OccurredAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.CreatedAt); err != nil {
		return err
	}

	return nil
}
