// Package sender holds the message transports used by the dispatcher.
package sender

import (
	"log/slog"

	"otpauth/config"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"
)

// NewSenders builds a sender for every configured transport.
func NewSenders(cfg *config.Config, logger *slog.Logger) ([]service.MessageSender, error) {
	var senders []service.MessageSender

	if cfg.SMS != nil && cfg.SMS.BaseURL != "" {
		senders = append(senders, NewSMSSender(cfg.SMS))
		logger.Info("SMS sender configured", slog.String("base_url", cfg.SMS.BaseURL))
	}
	if cfg.SMTP != nil && cfg.SMTP.Host != "" {
		mailer, err := NewSMTPSender(cfg.SMTP)
		if err != nil {
			return nil, errors.Wrap(err, "failed to configure smtp sender")
		}
		senders = append(senders, mailer)
		logger.Info("SMTP sender configured",
			slog.String("host", cfg.SMTP.Host),
			slog.String("tls_policy", cfg.SMTP.TLSPolicy),
		)
	}

	if len(senders) == 0 {
		logger.Warn("No message senders configured; dispatch events will be dropped")
	}

	return senders, nil
}
