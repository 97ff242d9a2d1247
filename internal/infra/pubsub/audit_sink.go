package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"gocloud.dev/pubsub"
)

// AuditSink drains an audit subscription into the structured log.
// The in-memory driver rejects sends to a topic nobody subscribes to,
// so the mem provider always runs one.
type AuditSink struct {
	sub    *pubsub.Subscription
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewAuditSink subscribes to url. The topic must already be open.
func NewAuditSink(ctx context.Context, url string, logger *slog.Logger) (*AuditSink, error) {
	sub, err := pubsub.OpenSubscription(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open subscription %s", url)
	}

	return &AuditSink{sub: sub, logger: logger}, nil
}

// Start receives until the subscription is shut down.
func (s *AuditSink) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			msg, err := s.sub.Receive(ctx)
			if err != nil {
				s.logger.Debug("Audit sink stopped", slog.Any("error", err))

				return
			}

			var event service.AuditEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				s.logger.Warn("Dropping malformed audit event", slog.Any("error", err))
			} else {
				s.logger.Info("Audit event",
					slog.String("type", string(event.Type)),
					slog.String("actor_id", event.ActorID),
					slog.String("subject_id", event.SubjectID),
					slog.String("request_id", event.RequestID),
				)
			}
			msg.Ack()
		}
	}()
}

// Stop shuts the subscription down and waits for the receive loop.
func (s *AuditSink) Stop(ctx context.Context) error {
	err := s.sub.Shutdown(ctx)
	s.wg.Wait()

	return errors.WithStack(err)
}
