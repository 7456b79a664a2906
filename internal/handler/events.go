package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

const auditQueue = "audit_queue"

func (h *Handler) actorID(r *http.Request) int64 {
	sub, ok := r.Context().Value(SubCtxKey).(string)
	if !ok {
		return 0
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// publishAudit sends a mutation record to the audit queue. Auditing is
// best-effort: a lost event must never fail the admin action that caused it.
func (h *Handler) publishAudit(r *http.Request, action string, entity string, entityID int64, detail any) {
	event := domain.AuditEvent{
		Action:     action,
		CompanyID:  h.companyID(r),
		ActorID:    h.actorID(r),
		Entity:     entity,
		EntityID:   entityID,
		Detail:     detail,
		OccurredAt: time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal audit event", "action", action, "entity", entity, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.auditChannel.PublishWithContext(
		ctx,
		"",
		auditQueue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Error("failed to publish audit event", "action", action, "entity", entity, "error", err)
	}
}
