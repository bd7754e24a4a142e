package service

import (
	"context"

	"otpauth/internal/domain/entity"
	"otpauth/internal/errors"
)

// ErrUndeliverable marks a send that will never succeed on retry, such as a
// recipient the provider rejects.
var ErrUndeliverable = errors.New("message undeliverable")

// MessageSender pushes a text message to one recipient over one channel.
type MessageSender interface {
	Channel() entity.Channel
	Send(ctx context.Context, recipient, body string) error
}
