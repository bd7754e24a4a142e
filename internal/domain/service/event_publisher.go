package service

import (
	"context"
	"time"
)

// OtpDispatchEvent is consumed by the dispatcher worker.
type OtpDispatchEvent struct {
	RequestID string    `json:"request_id,omitempty"` // For distributed tracing
	SessionID string    `json:"session_id"`
	Channel   string    `json:"channel"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOtpDispatch publishes a code for asynchronous delivery.
	PublishOtpDispatch(ctx context.Context, event *OtpDispatchEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
