package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"otpauth/config"
	"otpauth/internal/domain/constants"
	"otpauth/internal/domain/service"
	"otpauth/internal/infra/auth"
	"otpauth/internal/infra/identifier"
	"otpauth/internal/infra/persistence/postgres"
	"otpauth/internal/infra/persistence/sqlitetest"
	"otpauth/internal/infra/ratelimit"
	"otpauth/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testCode = "123456"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

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
			MaxResends:    2,
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
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"
	cfg.SecretKey.Onboarding = "test_onboarding_secret_key_very_long_for_testing"

	return cfg
}

// queuedCodes hands out codes in order and repeats the last one.
type queuedCodes struct {
	mu    sync.Mutex
	codes []string
	err   error
}

func (q *queuedCodes) Generate() (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.err != nil {
		return "", q.err
	}
	code := q.codes[0]
	if len(q.codes) > 1 {
		q.codes = q.codes[1:]
	}

	return code, nil
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, delivery *service.OtpDelivery) error {
	args := m.Called(ctx, delivery)

	return args.Error(0)
}

type mockRateLimiter struct {
	mock.Mock
}

func (m *mockRateLimiter) Allow(ctx context.Context, identifier, sourceKey string) (service.Reservation, bool, error) {
	args := m.Called(ctx, identifier, sourceKey)

	reservation, _ := args.Get(0).(service.Reservation)

	return reservation, args.Bool(1), args.Error(2)
}

type mockReservation struct {
	mock.Mock
}

func (m *mockReservation) Rollback(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

// serviceFixture wires the services against a private SQLite database.
type serviceFixture struct {
	db          *gorm.DB
	cfg         *config.Config
	codes       *queuedCodes
	notifier    *mockNotifier
	tokens      service.TokenService
	otp         *otpService
	auth        *authService
	maintenance *maintenanceService
	admin       *adminService
}

type fixtureOption func(*usecaseDeps)

type usecaseDeps struct {
	limiter service.OtpRateLimiter
}

func withLimiter(limiter service.OtpRateLimiter) fixtureOption {
	return func(d *usecaseDeps) { d.limiter = limiter }
}

func newServiceFixture(t *testing.T, opts ...fixtureOption) *serviceFixture {
	t.Helper()

	cfg := newTestConfig()
	logger := newDiscardLogger()
	db := sqlitetest.New(t)

	deps := &usecaseDeps{
		limiter: ratelimit.NewOtpRateLimiter(ratelimit.LimiterParams{Config: cfg, Logger: logger}),
	}
	for _, opt := range opts {
		opt(deps)
	}

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	notifier := &mockNotifier{}
	codes := &queuedCodes{codes: []string{testCode}}
	txManager := postgres.NewTransactionManager(db)

	otp := NewOtpService(OtpServiceParams{
		TxManager:    txManager,
		SessionRepo:  postgres.NewOtpSessionRepository(db),
		Normalizer:   identifier.NewNormalizer(cfg),
		Limiter:      deps.limiter,
		Generator:    codes,
		Hasher:       auth.NewBcryptHasher(cfg),
		Notifier:     notifier,
		TokenService: tokens,
		Config:       cfg,
		Logger:       logger,
	}).(*otpService)

	authSrv := NewAuthService(AuthServiceParams{
		TxManager:        txManager,
		UserRepo:         postgres.NewUserRepository(db),
		RefreshTokenRepo: postgres.NewRefreshTokenRepository(db),
		TokenService:     tokens,
		Logger:           logger,
	}).(*authService)

	maintenance := NewMaintenanceService(txManager, cfg, logger).(*maintenanceService)

	admin := NewAdminService(AdminServiceParams{
		TxManager:  txManager,
		Normalizer: identifier.NewNormalizer(cfg),
		Logger:     logger,
	}).(*adminService)

	return &serviceFixture{
		db:          db,
		cfg:         cfg,
		codes:       codes,
		notifier:    notifier,
		tokens:      tokens,
		otp:         otp,
		auth:        authSrv,
		maintenance: maintenance,
		admin:       admin,
	}
}

// expectDeliveries accepts every notification.
func (f *serviceFixture) expectDeliveries() {
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)
}

func (f *serviceFixture) start(t *testing.T, identifier string) *usecase.StartOtpOutput {
	t.Helper()

	out, err := f.otp.StartOtp(context.Background(), &usecase.StartOtpInput{
		Identifier: identifier,
		SourceKey:  "203.0.113.7",
	})
	require.NoError(t, err)

	return out
}

// signIn runs start and verify with the expected code.
func (f *serviceFixture) signIn(t *testing.T, identifier string) *usecase.VerifyOtpOutput {
	t.Helper()

	started := f.start(t, identifier)
	out, err := f.otp.VerifyOtp(context.Background(), &usecase.VerifyOtpInput{
		SessionID: started.SessionID,
		Code:      testCode,
	})
	require.NoError(t, err)

	return out
}
