package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"gocloud.dev/pubsub"
)

func TestCloudPublisher_DeliversEvent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "mem://" + t.Name()
	publisher, err := NewCloudPublisher(ctx, url, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer publisher.Close()

	sub, err := pubsub.OpenSubscription(ctx, url)
	require.NoError(t, err)
	defer sub.Shutdown(ctx)

	event := &service.AuditEvent{
		RequestID:  "req-1",
		Type:       service.AuditUserDeleted,
		ActorID:    "admin-id",
		SubjectID:  "user-id",
		OccurredAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.Publish(ctx, event))

	msg, err := sub.Receive(ctx)
	require.NoError(t, err)
	msg.Ack()

	assert.Equal(t, "user.deleted", msg.Metadata["type"])
	assert.Equal(t, "user-id", msg.Metadata["subject_id"])
	assert.Equal(t, "req-1", msg.Metadata["request_id"])

	var got service.AuditEvent
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, *event, got)
}

func TestNewEventPublisher(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	tests := []struct {
		name     string
		cfg      *config.PubSubConfig
		wantNoop bool
		wantErr  bool
	}{
		{name: "not configured", cfg: nil, wantNoop: true},
		{name: "empty provider", cfg: &config.PubSubConfig{}, wantNoop: true},
		{name: "mem", cfg: &config.PubSubConfig{Provider: ProviderMem, Topic: "provider-test"}},
		{name: "unknown", cfg: &config.PubSubConfig{Provider: "kafka"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.cfg},
				Logger: logger,
			})
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)

			_, isNoop := publisher.(*noopPublisher)
			assert.Equal(t, tt.wantNoop, isNoop)
			assert.NoError(t, publisher.Publish(context.Background(), &service.AuditEvent{Type: service.AuditUserRegistered}))

			lc.RequireStart()
			lc.RequireStop()
		})
	}
}
