package service

import (
	"context"
	"time"
)

// AuditEventType names what happened to an account or donation.
type AuditEventType string

const (
	AuditUserRegistered        AuditEventType = "user.registered"
	AuditUserDeleted           AuditEventType = "user.deleted"
	AuditDonationStatusChanged AuditEventType = "donation.status_changed"
)

// AuditEvent is published after a state change that admins may want to trace.
type AuditEvent struct {
	RequestID  string            `json:"request_id,omitempty"` // For distributed tracing
	Type       AuditEventType    `json:"type"`
	ActorID    string            `json:"actor_id,omitempty"`
	SubjectID  string            `json:"subject_id"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// Publish sends an audit event to the configured topic
	Publish(ctx context.Context, event *AuditEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
