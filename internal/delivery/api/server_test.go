package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"otpauth/config"
	"otpauth/internal/delivery/api/middleware"
	"otpauth/internal/delivery/api/router"
	"otpauth/internal/delivery/api/router/handler"
	deliverycontext "otpauth/internal/delivery/context"
	"otpauth/internal/domain/constants"
	"otpauth/internal/domain/service"
	"otpauth/internal/infra/auth"
	"otpauth/internal/infra/identifier"
	"otpauth/internal/infra/persistence/postgres"
	"otpauth/internal/infra/persistence/sqlitetest"
	"otpauth/internal/infra/ratelimit"
	"otpauth/internal/usecase"
	"otpauth/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Token: &config.TokenConfig{
			Issuer:        "otpauth-test",
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    30 * 24 * time.Hour,
			OnboardingTTL: 15 * time.Minute,
		},
		OTP: &config.OTPConfig{
			CodeLength:    6,
			TTL:           10 * time.Minute,
			MaxAttempts:   5,
			MaxResends:    3,
			BcryptCost:    bcrypt.MinCost,
			DefaultRegion: "ZM",
			ChannelPolicy: constants.ChannelPolicyNatural,
			NotifyTimeout: time.Second,
		},
		RateLimit: &config.RateLimitConfig{
			Window:        time.Hour,
			PerIdentifier: 100,
			PerSource:     100,
		},
		Reaper: &config.ReaperConfig{
			Interval:  time.Minute,
			Retention: 24 * time.Hour,
		},
	}
	cfg.HTTP.MaxRequestBodySize = "16KB"
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"
	cfg.SecretKey.Onboarding = "test_onboarding_secret_key_very_long_for_testing"

	return cfg
}

// capturingNotifier keeps the last code sent to each recipient.
type capturingNotifier struct {
	mu    sync.Mutex
	codes map[string]string
}

func (n *capturingNotifier) Notify(_ context.Context, delivery *service.OtpDelivery) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.codes[delivery.Phone+delivery.Email] = delivery.Code

	return nil
}

func (n *capturingNotifier) code(recipient string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.codes[recipient]
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type testServer struct {
	e        *echo.Echo
	notifier *capturingNotifier
	admins   usecase.AdminUsecase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := newTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := sqlitetest.New(t)

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	notifier := &capturingNotifier{codes: map[string]string{}}
	txManager := postgres.NewTransactionManager(db)

	otpUsecase := impl.NewOtpService(impl.OtpServiceParams{
		TxManager:    txManager,
		SessionRepo:  postgres.NewOtpSessionRepository(db),
		Normalizer:   identifier.NewNormalizer(cfg),
		Limiter:      ratelimit.NewOtpRateLimiter(ratelimit.LimiterParams{Config: cfg, Logger: logger}),
		Generator:    auth.NewCodeGenerator(cfg),
		Hasher:       auth.NewBcryptHasher(cfg),
		Notifier:     notifier,
		TokenService: tokens,
		Config:       cfg,
		Logger:       logger,
	})
	authUsecase := impl.NewAuthService(impl.AuthServiceParams{
		TxManager:        txManager,
		UserRepo:         postgres.NewUserRepository(db),
		RefreshTokenRepo: postgres.NewRefreshTokenRepository(db),
		TokenService:     tokens,
		Logger:           logger,
	})

	e := NewEcho(cfg, logger, router.RouterParams{
		OtpHandler:     handler.NewOtpHandler(otpUsecase, logger),
		AuthHandler:    handler.NewAuthHandler(authUsecase, logger),
		AdminHandler:   handler.NewAdminHandler(impl.NewMaintenanceService(txManager, cfg, logger), logger),
		AuthMiddleware: middleware.NewAuthMiddleware(tokens),
	})

	admins := impl.NewAdminService(impl.AdminServiceParams{
		TxManager:  txManager,
		Normalizer: identifier.NewNormalizer(cfg),
		Logger:     logger,
	})

	return &testServer{e: e, notifier: notifier, admins: admins}
}

func (s *testServer) do(t *testing.T, method, path string, body any, bearer string) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	if rec.Body.Len() == 0 {
		return rec, nil
	}
	env := &envelope{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), env), rec.Body.String())

	return rec, env
}

func decodeData[T any](t *testing.T, env *envelope) *T {
	t.Helper()

	out := new(T)
	require.NoError(t, json.Unmarshal(env.Data, out))

	return out
}

func TestServer_OnboardingFlow(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/otp/start", map[string]string{"identifier": "0978000111"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	started := decodeData[handler.StartOtpResponse](t, env)
	assert.Equal(t, "sms", started.Channel)
	assert.Equal(t, int64(600), started.ExpiresIn)

	code := s.notifier.code("+260978000111")
	require.Len(t, code, 6)

	rec, env = s.do(t, http.MethodPost, "/otp/verify", map[string]string{"sessionId": started.SessionID, "code": code}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	verified := decodeData[handler.VerifyOtpResponse](t, env)
	assert.True(t, verified.IsNewUser)
	assert.Empty(t, verified.AccessToken)
	require.NotEmpty(t, verified.OnboardingToken)
	assert.Equal(t, "unassigned", verified.User.Role)

	rec, env = s.do(t, http.MethodPost, "/auth/select-role", map[string]string{
		"onboardingToken": verified.OnboardingToken,
		"role":            "customer",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	selected := decodeData[handler.SelectRoleResponse](t, env)
	assert.Equal(t, "customer", selected.User.Role)
	assert.True(t, selected.User.IsVerified)

	rec, env = s.do(t, http.MethodGet, "/auth/me", nil, selected.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	me := decodeData[handler.MeResponse](t, env)
	assert.Equal(t, "+260978000111", me.User.Identifier)

	rec, env = s.do(t, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": selected.RefreshToken}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rotated := decodeData[handler.TokenPairResponse](t, env)

	rec, env = s.do(t, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": selected.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_REUSE_DETECTED", env.Error.Code)

	rec, env = s.do(t, http.MethodPost, "/auth/logout", map[string]string{"refreshToken": rotated.RefreshToken}, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, env)
}

func TestServer_ReturningUserGetsTokens(t *testing.T) {
	s := newTestServer(t)

	signIn := func() *handler.VerifyOtpResponse {
		_, env := s.do(t, http.MethodPost, "/otp/start", map[string]string{"identifier": "Ada@Example.com"}, "")
		started := decodeData[handler.StartOtpResponse](t, env)
		assert.Equal(t, "email", started.Channel)

		rec, env := s.do(t, http.MethodPost, "/otp/verify", map[string]string{
			"sessionId": started.SessionID,
			"code":      s.notifier.code("ada@example.com"),
		}, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		return decodeData[handler.VerifyOtpResponse](t, env)
	}

	first := signIn()
	rec, _ := s.do(t, http.MethodPost, "/auth/select-role", map[string]string{
		"onboardingToken": first.OnboardingToken,
		"role":            "vendor",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	second := signIn()
	assert.False(t, second.IsNewUser)
	assert.NotEmpty(t, second.AccessToken)
	assert.NotEmpty(t, second.RefreshToken)
	assert.Empty(t, second.OnboardingToken)
	assert.Equal(t, "vendor", second.User.Role)

	rec, env := s.do(t, http.MethodPost, "/admin/maintenance/cleanup", nil, second.AccessToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
}

func TestServer_AdminCleanup(t *testing.T) {
	s := newTestServer(t)

	_, err := s.admins.SeedAdmins(context.Background(), []string{"0978000999"})
	require.NoError(t, err)

	t.Run("admin cannot be self-selected", func(t *testing.T) {
		_, env := s.do(t, http.MethodPost, "/otp/start", map[string]string{"identifier": "mallory@example.com"}, "")
		started := decodeData[handler.StartOtpResponse](t, env)

		_, env = s.do(t, http.MethodPost, "/otp/verify", map[string]string{
			"sessionId": started.SessionID,
			"code":      s.notifier.code("mallory@example.com"),
		}, "")
		verified := decodeData[handler.VerifyOtpResponse](t, env)
		require.True(t, verified.IsNewUser)

		rec, env := s.do(t, http.MethodPost, "/auth/select-role", map[string]string{
			"onboardingToken": verified.OnboardingToken,
			"role":            "admin",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_ROLE", env.Error.Code)
	})

	t.Run("seeded admin runs cleanup", func(t *testing.T) {
		_, env := s.do(t, http.MethodPost, "/otp/start", map[string]string{"identifier": "+260978000999"}, "")
		started := decodeData[handler.StartOtpResponse](t, env)

		rec, env := s.do(t, http.MethodPost, "/otp/verify", map[string]string{
			"sessionId": started.SessionID,
			"code":      s.notifier.code("+260978000999"),
		}, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		verified := decodeData[handler.VerifyOtpResponse](t, env)
		assert.False(t, verified.IsNewUser)
		assert.Equal(t, "admin", verified.User.Role)

		rec, env = s.do(t, http.MethodPost, "/admin/maintenance/cleanup", nil, verified.AccessToken)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.NotNil(t, decodeData[handler.CleanupResponse](t, env))
	})
}

func TestServer_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		bearer   string
		wantHTTP int
		wantCode string
	}{
		{
			name:     "missing identifier",
			method:   http.MethodPost,
			path:     "/otp/start",
			body:     map[string]string{},
			wantHTTP: http.StatusBadRequest,
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "unsupported channel",
			method:   http.MethodPost,
			path:     "/otp/start",
			body:     map[string]string{"identifier": "ada@example.com", "preferredChannel": "fax"},
			wantHTTP: http.StatusBadRequest,
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "malformed json",
			method:   http.MethodPost,
			path:     "/otp/start",
			body:     `{"identifier":`,
			wantHTTP: http.StatusBadRequest,
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "invalid identifier",
			method:   http.MethodPost,
			path:     "/otp/start",
			body:     map[string]string{"identifier": "not-an-identifier"},
			wantHTTP: http.StatusBadRequest,
			wantCode: "INVALID_IDENTIFIER",
		},
		{
			name:     "session id not a uuid",
			method:   http.MethodPost,
			path:     "/otp/verify",
			body:     map[string]string{"sessionId": "s1", "code": "123456"},
			wantHTTP: http.StatusBadRequest,
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "unknown session",
			method:   http.MethodPost,
			path:     "/otp/verify",
			body:     map[string]string{"sessionId": "6f1c1a6e-8c3a-4c39-9a41-0e0a1b7e2f10", "code": "123456"},
			wantHTTP: http.StatusNotFound,
			wantCode: "SESSION_NOT_FOUND",
		},
		{
			name:     "garbage refresh token",
			method:   http.MethodPost,
			path:     "/auth/refresh",
			body:     map[string]string{"refreshToken": "garbage"},
			wantHTTP: http.StatusUnauthorized,
			wantCode: "TOKEN_INVALID",
		},
		{
			name:     "me without credentials",
			method:   http.MethodGet,
			path:     "/auth/me",
			wantHTTP: http.StatusUnauthorized,
			wantCode: "UNAUTHORIZED",
		},
		{
			name:     "me with garbage token",
			method:   http.MethodGet,
			path:     "/auth/me",
			bearer:   "garbage",
			wantHTTP: http.StatusUnauthorized,
			wantCode: "TOKEN_INVALID",
		},
		{
			name:     "unknown route",
			method:   http.MethodGet,
			path:     "/nope",
			wantHTTP: http.StatusNotFound,
			wantCode: "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, tt.method, tt.path, tt.body, tt.bearer)
			assert.Equal(t, tt.wantHTTP, rec.Code, rec.Body.String())
			require.NotNil(t, env)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantHTTP, env.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestServer_ValidationDetails(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodPost, "/otp/verify", map[string]string{"sessionId": "6f1c1a6e-8c3a-4c39-9a41-0e0a1b7e2f10"}, "")
	require.NotNil(t, env.Error)

	var fields []map[string]string
	require.NoError(t, json.Unmarshal(env.Error.Details, &fields))
	require.Len(t, fields, 1)
	assert.Equal(t, "code", fields[0]["field"])
	assert.Equal(t, "required", fields[0]["rule"])
}

func TestServer_RequestID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(deliverycontext.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))
}
