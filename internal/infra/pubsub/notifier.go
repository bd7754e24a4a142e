package pubsub

import (
	"context"

	deliverycontext "otpauth/internal/delivery/context"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"
)

// eventNotifier hands codes to the dispatcher through the event publisher.
// The request that issued the code and the worker that sends it share the
// request ID.
type eventNotifier struct {
	publisher service.EventPublisher
}

// NewNotifier is the constructor for eventNotifier.
func NewNotifier(publisher service.EventPublisher) service.Notifier {
	return &eventNotifier{publisher: publisher}
}

func (n *eventNotifier) Notify(ctx context.Context, delivery *service.OtpDelivery) error {
	event := &service.OtpDispatchEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		SessionID: delivery.SessionID.String(),
		Channel:   delivery.Channel.String(),
		Phone:     delivery.Phone,
		Email:     delivery.Email,
		Code:      delivery.Code,
		ExpiresAt: delivery.ExpiresAt,
	}

	if err := n.publisher.PublishOtpDispatch(ctx, event); err != nil {
		return errors.Wrap(err, "failed to publish otp dispatch")
	}

	return nil
}
