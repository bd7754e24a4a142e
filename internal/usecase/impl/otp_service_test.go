package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"otpauth/internal/domain/entity"
	domainerrors "otpauth/internal/domain/errors"
	"otpauth/internal/domain/service"
	"otpauth/internal/errors"
	"otpauth/internal/infra/persistence/postgres"
	"otpauth/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOtpService_StartOtp_Phone(t *testing.T) {
	f := newServiceFixture(t)

	var delivered *service.OtpDelivery
	f.notifier.On("Notify", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { delivered = args.Get(1).(*service.OtpDelivery) }).
		Return(nil)

	out, err := f.otp.StartOtp(context.Background(), &usecase.StartOtpInput{
		Identifier: "+260 96 123 4567",
		SourceKey:  "203.0.113.7",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ChannelSMS, out.Channel)
	assert.Equal(t, 10*time.Minute, out.ExpiresIn.Round(time.Second))

	require.NotNil(t, delivered)
	assert.Equal(t, out.SessionID, delivered.SessionID)
	assert.Equal(t, "+260961234567", delivered.Phone)
	assert.Empty(t, delivered.Email)
	assert.Equal(t, testCode, delivered.Code)

	session, err := postgres.NewOtpSessionRepository(f.db).FindByID(context.Background(), out.SessionID)
	require.NoError(t, err)
	assert.Equal(t, entity.OtpStatusPending, session.Status)
	assert.Zero(t, session.Attempts)
	assert.NotEqual(t, testCode, session.CodeHash)
}

func TestOtpService_StartOtp_EmailIgnoresUnreachablePreference(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()

	out, err := f.otp.StartOtp(context.Background(), &usecase.StartOtpInput{
		Identifier:       "  Ada@Example.COM ",
		PreferredChannel: entity.ChannelSMS,
		SourceKey:        "203.0.113.7",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ChannelEmail, out.Channel)

	session, err := postgres.NewOtpSessionRepository(f.db).FindByID(context.Background(), out.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", session.Identifier)
}

func TestOtpService_StartOtp_InvalidIdentifier(t *testing.T) {
	limiter := &mockRateLimiter{}
	f := newServiceFixture(t, withLimiter(limiter))

	_, err := f.otp.StartOtp(context.Background(), &usecase.StartOtpInput{Identifier: "not-an-identifier"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidIdentifier)
	limiter.AssertNotCalled(t, "Allow", mock.Anything, mock.Anything, mock.Anything)
}

func TestOtpService_StartOtp_RateLimited(t *testing.T) {
	limiter := &mockRateLimiter{}
	limiter.On("Allow", mock.Anything, "ada@example.com", "203.0.113.7").Return(nil, false, nil)
	f := newServiceFixture(t, withLimiter(limiter))

	_, err := f.otp.StartOtp(context.Background(), &usecase.StartOtpInput{
		Identifier: "ada@example.com",
		SourceKey:  "203.0.113.7",
	})

	assert.ErrorIs(t, err, domainerrors.ErrRateLimited)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestOtpService_StartOtp_GeneratorFailureRollsBack(t *testing.T) {
	reservation := &mockReservation{}
	reservation.On("Rollback", mock.Anything).Return(nil).Once()

	limiter := &mockRateLimiter{}
	limiter.On("Allow", mock.Anything, mock.Anything, mock.Anything).Return(reservation, true, nil)

	f := newServiceFixture(t, withLimiter(limiter))
	f.codes.err = errors.New("entropy unavailable")

	_, err := f.otp.StartOtp(context.Background(), &usecase.StartOtpInput{Identifier: "ada@example.com"})

	require.Error(t, err)
	reservation.AssertExpectations(t)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestOtpService_StartOtp_StoreFailureRollsBack(t *testing.T) {
	reservation := &mockReservation{}
	reservation.On("Rollback", mock.Anything).Return(nil).Once()

	limiter := &mockRateLimiter{}
	limiter.On("Allow", mock.Anything, mock.Anything, mock.Anything).Return(reservation, true, nil)

	f := newServiceFixture(t, withLimiter(limiter))
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = f.otp.StartOtp(context.Background(), &usecase.StartOtpInput{Identifier: "ada@example.com"})

	require.Error(t, err)
	reservation.AssertExpectations(t)
}

func TestOtpService_StartOtp_DeliveryFailureStillSucceeds(t *testing.T) {
	f := newServiceFixture(t)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("gateway down"))

	out, err := f.otp.StartOtp(context.Background(), &usecase.StartOtpInput{Identifier: "ada@example.com"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, out.SessionID)
}

func TestOtpService_VerifyOtp_NewUserGetsOnboardingToken(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()

	out := f.signIn(t, "ada@example.com")

	assert.True(t, out.IsNewUser)
	assert.Nil(t, out.Tokens)
	require.NotEmpty(t, out.OnboardingToken)
	assert.Equal(t, entity.RoleUnassigned, out.User.Role)
	assert.Equal(t, entity.IdentifierEmail, out.User.IdentifierKind)

	claims, err := f.tokens.ValidateToken(out.OnboardingToken, service.TokenTypeOnboarding)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID.String(), claims.Subject)

	_, err = f.tokens.ValidateToken(out.OnboardingToken, service.TokenTypeAccess)
	assert.Error(t, err)
}

func TestOtpService_VerifyOtp_ReturningUserGetsTokens(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()

	first := f.signIn(t, "ada@example.com")
	_, err := f.auth.SelectRole(context.Background(), &usecase.SelectRoleInput{
		OnboardingToken: first.OnboardingToken,
		Role:            entity.RoleCustomer,
	})
	require.NoError(t, err)

	out := f.signIn(t, "ada@example.com")

	assert.False(t, out.IsNewUser)
	assert.Empty(t, out.OnboardingToken)
	require.NotNil(t, out.Tokens)
	assert.Equal(t, first.User.ID, out.User.ID)
	assert.Equal(t, entity.RoleCustomer, out.User.Role)

	claims, err := f.tokens.ValidateToken(out.Tokens.AccessToken, service.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "customer", claims.Role)

	record, err := postgres.NewRefreshTokenRepository(f.db).FindByHash(context.Background(), f.tokens.HashToken(out.Tokens.RefreshToken))
	require.NoError(t, err)
	assert.Nil(t, record.ParentID)
}

func TestOtpService_VerifyOtp_WrongCodesExhaustSession(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	started := f.start(t, "+260961234567")
	wrong := &usecase.VerifyOtpInput{SessionID: started.SessionID, Code: "000000"}

	for range 4 {
		_, err := f.otp.VerifyOtp(ctx, wrong)
		require.ErrorIs(t, err, domainerrors.ErrInvalidCode)
	}

	_, err := f.otp.VerifyOtp(ctx, wrong)
	require.ErrorIs(t, err, domainerrors.ErrTooManyAttempts)

	session, err := postgres.NewOtpSessionRepository(f.db).FindByID(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, entity.OtpStatusExhausted, session.Status)
	assert.Equal(t, 5, session.Attempts)

	// The right code no longer helps and nothing is mutated.
	_, err = f.otp.VerifyOtp(ctx, &usecase.VerifyOtpInput{SessionID: started.SessionID, Code: testCode})
	require.ErrorIs(t, err, domainerrors.ErrTooManyAttempts)

	after, err := postgres.NewOtpSessionRepository(f.db).FindByID(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, session.Version, after.Version)
}

func TestOtpService_VerifyOtp_Expired(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	started := f.start(t, "ada@example.com")
	f.otp.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	_, err := f.otp.VerifyOtp(ctx, &usecase.VerifyOtpInput{SessionID: started.SessionID, Code: testCode})
	require.ErrorIs(t, err, domainerrors.ErrSessionExpired)

	session, err := postgres.NewOtpSessionRepository(f.db).FindByID(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, entity.OtpStatusExpired, session.Status)
	assert.Zero(t, session.Attempts)

	_, err = f.otp.VerifyOtp(ctx, &usecase.VerifyOtpInput{SessionID: started.SessionID, Code: testCode})
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
}

func TestOtpService_VerifyOtp_UnknownSession(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.otp.VerifyOtp(context.Background(), &usecase.VerifyOtpInput{SessionID: uuid.New(), Code: testCode})

	assert.ErrorIs(t, err, domainerrors.ErrSessionNotFound)
}

func TestOtpService_VerifyOtp_AlreadyVerified(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	started := f.start(t, "ada@example.com")
	input := &usecase.VerifyOtpInput{SessionID: started.SessionID, Code: testCode}

	_, err := f.otp.VerifyOtp(ctx, input)
	require.NoError(t, err)

	_, err = f.otp.VerifyOtp(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyVerified)
}

func TestOtpService_VerifyOtp_ConcurrentCorrectCodes(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()

	started := f.start(t, "ada@example.com")
	input := &usecase.VerifyOtpInput{SessionID: started.SessionID, Code: testCode}

	const workers = 6
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		lost    int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := f.otp.VerifyOtp(context.Background(), input)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, domainerrors.ErrAlreadyVerified):
				lost++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, workers-1, lost)

	session, err := postgres.NewOtpSessionRepository(f.db).FindByID(context.Background(), started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, entity.OtpStatusVerified, session.Status)
	assert.Equal(t, 1, session.Attempts)
}

func TestOtpService_ResendOtp(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	f.codes.codes = []string{testCode, "654321"}
	started := f.start(t, "ada@example.com")

	_, err := f.otp.VerifyOtp(ctx, &usecase.VerifyOtpInput{SessionID: started.SessionID, Code: "000000"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCode)

	resent, err := f.otp.ResendOtp(ctx, &usecase.ResendOtpInput{SessionID: started.SessionID, SourceKey: "203.0.113.7"})
	require.NoError(t, err)
	assert.Equal(t, started.SessionID, resent.SessionID)
	assert.Equal(t, entity.ChannelEmail, resent.Channel)
	assert.LessOrEqual(t, resent.ExpiresIn, started.ExpiresIn)

	session, err := postgres.NewOtpSessionRepository(f.db).FindByID(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, session.Attempts)
	assert.Equal(t, 1, session.ResendCount)

	_, err = f.otp.VerifyOtp(ctx, &usecase.VerifyOtpInput{SessionID: started.SessionID, Code: testCode})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCode)

	out, err := f.otp.VerifyOtp(ctx, &usecase.VerifyOtpInput{SessionID: started.SessionID, Code: "654321"})
	require.NoError(t, err)
	assert.True(t, out.IsNewUser)
}

func TestOtpService_ResendOtp_Limits(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()
	ctx := context.Background()

	started := f.start(t, "ada@example.com")
	input := &usecase.ResendOtpInput{SessionID: started.SessionID}

	for range f.cfg.OTP.MaxResends {
		_, err := f.otp.ResendOtp(ctx, input)
		require.NoError(t, err)
	}

	_, err := f.otp.ResendOtp(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrRateLimited)

	_, err = f.otp.ResendOtp(ctx, &usecase.ResendOtpInput{SessionID: uuid.New()})
	assert.ErrorIs(t, err, domainerrors.ErrSessionNotFound)
}

func TestOtpService_ResendOtp_VerifiedSession(t *testing.T) {
	f := newServiceFixture(t)
	f.expectDeliveries()

	started := f.start(t, "ada@example.com")
	_, err := f.otp.VerifyOtp(context.Background(), &usecase.VerifyOtpInput{SessionID: started.SessionID, Code: testCode})
	require.NoError(t, err)

	_, err = f.otp.ResendOtp(context.Background(), &usecase.ResendOtpInput{SessionID: started.SessionID})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyVerified)
}

func TestChannelSelector(t *testing.T) {
	phoneOnly := contactSet{Phone: "+260961234567"}
	emailOnly := contactSet{Email: "ada@example.com"}
	both := contactSet{Phone: "+260961234567", Email: "ada@example.com"}

	tests := []struct {
		name      string
		policy    string
		contacts  contactSet
		preferred entity.Channel
		want      entity.Channel
	}{
		{"natural phone", "natural", phoneOnly, "", entity.ChannelSMS},
		{"natural email", "natural", emailOnly, "", entity.ChannelEmail},
		{"preference unreachable", "natural", phoneOnly, entity.ChannelEmail, entity.ChannelSMS},
		{"preference honoured", "natural", both, entity.ChannelEmail, entity.ChannelEmail},
		{"policy both with both contacts", "both", both, "", entity.ChannelBoth},
		{"policy both with one contact", "both", emailOnly, "", entity.ChannelEmail},
		{"policy email over natural", "email", both, "", entity.ChannelEmail},
		{"preference over policy", "both", both, entity.ChannelSMS, entity.ChannelSMS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newChannelSelector(tt.policy).Select(tt.contacts, tt.preferred))
		})
	}
}
