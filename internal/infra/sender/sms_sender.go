package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"otpauth/config"
	"otpauth/internal/domain/entity"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"
)

// smsSender posts messages to an HTTP SMS gateway.
type smsSender struct {
	endpoint   string
	apiKey     string
	senderID   string
	httpClient *http.Client
}

type smsRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message"`
}

// NewSMSSender is the constructor for smsSender.
func NewSMSSender(cfg *config.SMSConfig) service.MessageSender {
	return &smsSender{
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/messages",
		apiKey:     cfg.APIKey,
		senderID:   cfg.Sender,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (s *smsSender) Channel() entity.Channel {
	return entity.ChannelSMS
}

// Send treats 4xx answers other than 429 as permanent.
func (s *smsSender) Send(ctx context.Context, recipient, body string) error {
	payload, err := json.Marshal(smsRequest{From: s.senderID, To: recipient, Message: body})
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "sms gateway request failed")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return errors.Errorf("sms gateway returned status %d", resp.StatusCode)
	default:
		return errors.Wrapf(service.ErrUndeliverable, "sms gateway rejected message with status %d", resp.StatusCode)
	}
}
