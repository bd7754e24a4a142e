package sender

import (
	"context"

	"otpauth/config"
	"otpauth/internal/domain/entity"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"

	"github.com/wneessen/go-mail"
)

const emailSubject = "Your verification code"

// TLS policies accepted in smtp.tlsPolicy.
const (
	TLSPolicyMandatory     = "mandatory"
	TLSPolicyOpportunistic = "opportunistic"
	TLSPolicyNone          = "none"
)

// smtpSender relays mail through an SMTP server. A fresh client is dialed
// per message, bounded by the configured timeout and the caller's context.
type smtpSender struct {
	host    string
	from    string
	options []mail.Option
}

// NewSMTPSender is the constructor for smtpSender. It rejects an unusable
// sender address up front so dispatch never retries a config error.
func NewSMTPSender(cfg *config.SMTPConfig) (service.MessageSender, error) {
	policy, err := parseTLSPolicy(cfg.TLSPolicy)
	if err != nil {
		return nil, err
	}
	if err := mail.NewMsg().From(cfg.From); err != nil {
		return nil, errors.Wrapf(err, "invalid smtp.from %q", cfg.From)
	}

	options := []mail.Option{mail.WithTLSPolicy(policy)}
	if cfg.Port > 0 {
		options = append(options, mail.WithPort(cfg.Port))
	}
	if cfg.Timeout > 0 {
		options = append(options, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	return &smtpSender{
		host:    cfg.Host,
		from:    cfg.From,
		options: options,
	}, nil
}

func (s *smtpSender) Channel() entity.Channel {
	return entity.ChannelEmail
}

func (s *smtpSender) Send(ctx context.Context, recipient, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(recipient); err != nil {
		return errors.Wrap(service.ErrUndeliverable, err.Error())
	}
	msg.Subject(emailSubject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(s.host, s.options...)
	if err != nil {
		return errors.Wrap(err, "failed to build smtp client")
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return classifySendError(err)
	}

	return nil
}

// classifySendError marks permanent recipient rejections as undeliverable.
// Everything else, 4xx replies included, is worth a retry.
func classifySendError(err error) error {
	var sendErr *mail.SendError
	if errors.As(err, &sendErr) && sendErr.Reason == mail.ErrSMTPRcptTo && !sendErr.IsTemp() {
		return errors.Wrap(service.ErrUndeliverable, err.Error())
	}

	return errors.Wrap(err, "smtp send failed")
}

func parseTLSPolicy(policy string) (mail.TLSPolicy, error) {
	switch policy {
	case "", TLSPolicyMandatory:
		return mail.TLSMandatory, nil
	case TLSPolicyOpportunistic:
		return mail.TLSOpportunistic, nil
	case TLSPolicyNone:
		return mail.NoTLS, nil
	default:
		return mail.NoTLS, errors.Errorf("unknown smtp.tlsPolicy %q", policy)
	}
}
