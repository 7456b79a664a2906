package domain

import "time"

// AuditEvent is the message published to the audit queue for every mutating
// admin action. cmd/auditor consumes these and persists audit_log rows.
type AuditEvent struct {
	Action     string    `json:"action"`
	CompanyID  int64     `json:"companyID"`
	ActorID    int64     `json:"actorID"`
	Entity     string    `json:"entity"`
	EntityID   int64     `json:"entityID"`
	Detail     any       `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type AuditRecord struct {
	ID         int64     `json:"id"`
	Action     string    `json:"action"`
	CompanyID  int64     `json:"companyID"`
	ActorID    int64     `json:"actorID"`
	Entity     string    `json:"entity"`
	EntityID   int64     `json:"entityID"`
	Detail     string    `json:"detail"`
	OccurredAt time.Time `json:"occurredAt"`
	CreatedAt  time.Time `json:"createdAt"`
}
