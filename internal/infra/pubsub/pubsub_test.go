package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "otpauth/internal/delivery/context"
	"otpauth/internal/domain/constants"
	"otpauth/internal/domain/entity"
	"otpauth/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []*service.OtpDispatchEvent
	err    error
}

func (p *recordingPublisher) PublishOtpDispatch(_ context.Context, event *service.OtpDispatchEvent) error {
	p.events = append(p.events, event)

	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestNotifier_MapsDeliveryToEvent(t *testing.T) {
	publisher := &recordingPublisher{}
	notifier := NewNotifier(publisher)

	sessionID := uuid.New()
	expiresAt := time.Date(2026, 3, 1, 12, 10, 0, 0, time.UTC)
	ctx := deliverycontext.WithRequestID(context.Background(), "req-1")

	err := notifier.Notify(ctx, &service.OtpDelivery{
		SessionID: sessionID,
		Channel:   entity.ChannelSMS,
		Phone:     "+260961234567",
		Code:      "123456",
		ExpiresAt: expiresAt,
	})
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, "req-1", event.RequestID)
	assert.Equal(t, sessionID.String(), event.SessionID)
	assert.Equal(t, "sms", event.Channel)
	assert.Equal(t, "+260961234567", event.Phone)
	assert.Equal(t, expiresAt, event.ExpiresAt)
}

func TestLocalHTTPPublisher_PostsPushEnvelope(t *testing.T) {
	var (
		received PushMessage
		header   string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get(deliverycontext.HeaderXRequestID)
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.DiscardHandler))
	event := &service.OtpDispatchEvent{
		RequestID: "req-2",
		SessionID: uuid.NewString(),
		Channel:   "email",
		Email:     "ada@example.com",
		Code:      "654321",
	}
	require.NoError(t, publisher.PublishOtpDispatch(context.Background(), event))

	assert.Equal(t, "req-2", header)
	assert.Equal(t, constants.EventTypeOtpDispatch, received.Message.Attributes[constants.AttrEventType])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded service.OtpDispatchEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "ada@example.com", decoded.Email)
	assert.Equal(t, "654321", decoded.Code)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.DiscardHandler))
	err := publisher.PublishOtpDispatch(context.Background(), &service.OtpDispatchEvent{SessionID: "s"})

	assert.ErrorContains(t, err, "503")
}

func TestNoopPublisher_LogsCodeOnlyInDebug(t *testing.T) {
	for _, debug := range []bool{false, true} {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		publisher := &noopPublisher{debug: debug, logger: logger}

		require.NoError(t, publisher.PublishOtpDispatch(context.Background(), &service.OtpDispatchEvent{
			SessionID: "s",
			Code:      "999111",
		}))

		assert.Equal(t, debug, bytes.Contains(buf.Bytes(), []byte("999111")))
	}
}
