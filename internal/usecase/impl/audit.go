package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"
)

// publishAudit stamps and sends an audit event. A failed publish never fails
// the operation that produced it.
func publishAudit(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, event *service.AuditEvent) {
	if publisher == nil {
		return
	}

	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish audit event",
			slog.String("type", string(event.Type)),
			slog.String("subject_id", event.SubjectID),
			slog.Any("error", err))
	}
}
