package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"storefront/internal/domain/service"
	"storefront/internal/infra/metrics"

	"github.com/pkg/errors"
	"gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/mempubsub" // registers the mem:// scheme
)

// cloudPublisher implements EventPublisher on a portable gocloud topic.
type cloudPublisher struct {
	topic  *pubsub.Topic
	logger *slog.Logger
}

// NewCloudPublisher opens the topic at url, e.g. "mem://storefront-audit".
func NewCloudPublisher(ctx context.Context, url string, logger *slog.Logger) (service.EventPublisher, error) {
	topic, err := pubsub.OpenTopic(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open topic %s", url)
	}

	logger.Info("Pub/Sub publisher initialized", slog.String("topic", url))

	return &cloudPublisher{
		topic:  topic,
		logger: logger,
	}, nil
}

// Publish serializes the event to JSON and sends it with routing attributes.
func (p *cloudPublisher) Publish(ctx context.Context, event *service.AuditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	metadata := map[string]string{
		"type":       string(event.Type),
		"subject_id": event.SubjectID,
	}
	if event.RequestID != "" {
		metadata["request_id"] = event.RequestID
	}

	if err := p.topic.Send(ctx, &pubsub.Message{Body: data, Metadata: metadata}); err != nil {
		metrics.RecordEvent(string(event.Type), "error")

		return errors.Wrapf(err, "failed to publish %s event", event.Type)
	}

	metrics.RecordEvent(string(event.Type), "ok")
	p.logger.Debug("[PubSub] Event published",
		slog.String("type", string(event.Type)),
		slog.String("subject_id", event.SubjectID),
	)

	return nil
}

// Close flushes pending sends and releases the topic.
func (p *cloudPublisher) Close() error {
	return errors.WithStack(p.topic.Shutdown(context.Background()))
}
