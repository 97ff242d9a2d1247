package pubsub

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"go.uber.org/fx"
)

// ProviderMem publishes to an in-process gocloud topic.
const ProviderMem = "mem"

const defaultTopic = "storefront-audit"

// noopPublisher is a no-op implementation when Pub/Sub is disabled
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) Publish(ctx context.Context, event *service.AuditEvent) error {
	p.logger.Debug("[NoopPubSub] Event publishing disabled, skipping",
		slog.String("type", string(event.Type)),
		slog.String("subject_id", event.SubjectID),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher creates an EventPublisher based on configuration
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	logger := params.Logger

	// If PubSub is not configured, return a no-op publisher
	if cfg == nil || cfg.Provider == "" {
		logger.Info("PubSub not configured, using no-op publisher")

		return &noopPublisher{logger: logger}, nil
	}

	topic := cfg.Topic
	if topic == "" {
		topic = defaultTopic
	}

	var publisher service.EventPublisher
	var sink *AuditSink
	var err error

	switch cfg.Provider {
	case ProviderMem:
		url := "mem://" + topic
		publisher, err = NewCloudPublisher(params.Ctx, url, logger)
		if err != nil {
			return nil, err
		}
		sink, err = NewAuditSink(params.Ctx, url, logger)
		if err != nil {
			_ = publisher.Close()

			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}

	// Register lifecycle hook to close publisher on shutdown
	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			// The receive loop outlives the start hook's context.
			sink.Start(context.Background())

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing EventPublisher")

			pubErr := publisher.Close()

			return errors.Join(pubErr, sink.Stop(ctx))
		},
	})

	return publisher, nil
}
