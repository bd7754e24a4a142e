package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "otpauth/internal/delivery/context"
	"otpauth/internal/domain/entity"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"
	"otpauth/internal/usecase"

	"go.uber.org/fx"
)

// dispatchService sends codes through the transport matching their channel.
type dispatchService struct {
	senders map[entity.Channel]service.MessageSender
	logger  *slog.Logger
	now     func() time.Time
}

// DispatchServiceParams holds dependencies for DispatchService, injected by Fx.
type DispatchServiceParams struct {
	fx.In

	Senders []service.MessageSender
	Logger  *slog.Logger
}

// NewDispatchService is the constructor for dispatchService.
func NewDispatchService(params DispatchServiceParams) usecase.DispatchUsecase {
	senders := make(map[entity.Channel]service.MessageSender, len(params.Senders))
	for _, sender := range params.Senders {
		senders[sender.Channel()] = sender
	}

	return &dispatchService{
		senders: senders,
		logger:  params.Logger,
		now:     time.Now,
	}
}

type dispatchTarget struct {
	channel   entity.Channel
	recipient string
}

// Dispatch sends the code on every channel the event names. Codes that have
// already expired are dropped.
func (srv *dispatchService) Dispatch(ctx context.Context, event *service.OtpDispatchEvent) error {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger).With(
		slog.String("session_id", event.SessionID),
		slog.String("channel", event.Channel),
	)

	now := srv.now()
	if !event.ExpiresAt.IsZero() && now.After(event.ExpiresAt) {
		logger.Info("[Dispatch] Code expired before delivery, dropping")

		return nil
	}

	targets, err := dispatchTargets(event)
	if err != nil {
		return err
	}

	body := formatCodeMessage(event.Code, event.ExpiresAt.Sub(now))

	// A transient failure on any channel wins so the event is retried.
	var transient, permanent []error
	for _, target := range targets {
		sender, ok := srv.senders[target.channel]
		if !ok {
			permanent = append(permanent, errors.Wrapf(service.ErrUndeliverable, "no sender for channel %s", target.channel))

			continue
		}

		if err := sender.Send(ctx, target.recipient, body); err != nil {
			err = errors.Wrapf(err, "send over %s", target.channel)
			if errors.Is(err, service.ErrUndeliverable) {
				permanent = append(permanent, err)
			} else {
				transient = append(transient, err)
			}

			continue
		}
		logger.Info("[Dispatch] Code delivered", slog.String("via", target.channel.String()))
	}

	if len(transient) > 0 {
		return errors.Join(transient...)
	}

	return errors.Join(permanent...)
}

func dispatchTargets(event *service.OtpDispatchEvent) ([]dispatchTarget, error) {
	channel := entity.Channel(event.Channel)

	var targets []dispatchTarget
	if channel == entity.ChannelSMS || channel == entity.ChannelBoth {
		targets = append(targets, dispatchTarget{channel: entity.ChannelSMS, recipient: event.Phone})
	}
	if channel == entity.ChannelEmail || channel == entity.ChannelBoth {
		targets = append(targets, dispatchTarget{channel: entity.ChannelEmail, recipient: event.Email})
	}

	if len(targets) == 0 {
		return nil, errors.Wrapf(service.ErrUndeliverable, "unknown channel %q", event.Channel)
	}
	for _, target := range targets {
		if target.recipient == "" {
			return nil, errors.Wrapf(service.ErrUndeliverable, "missing %s recipient", target.channel)
		}
	}

	return targets, nil
}

func formatCodeMessage(code string, validFor time.Duration) string {
	minutes := max(int(validFor.Round(time.Minute)/time.Minute), 1)

	return fmt.Sprintf("Your verification code is %s. It expires in %d minutes. Do not share it with anyone.", code, minutes)
}
