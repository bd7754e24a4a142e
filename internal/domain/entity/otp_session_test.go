package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingSession(t *testing.T, now time.Time) *OtpSession {
	t.Helper()

	return NewOtpSession(
		Identifier{Value: "+260978000111", Kind: IdentifierPhone},
		ChannelSMS,
		"hash",
		5,
		now,
		10*time.Minute,
	)
}

func TestNewOtpSession(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	session := newPendingSession(t, now)

	assert.Equal(t, OtpStatusPending, session.Status)
	assert.Zero(t, session.Attempts)
	assert.Equal(t, int64(1), session.Version)
	assert.Equal(t, now.Add(10*time.Minute), session.ExpiresAt)
	assert.Equal(t, 600*time.Second, session.ExpiresIn(now))
	assert.Zero(t, session.ExpiresIn(now.Add(time.Hour)))
}

func TestOtpSession_RegisterAttempt(t *testing.T) {
	now := time.Now()

	t.Run("wrong codes exhaust at max attempts", func(t *testing.T) {
		session := newPendingSession(t, now)

		for i := 1; i < session.MaxAttempts; i++ {
			require.Equal(t, AttemptInvalidCode, session.RegisterAttempt(false, now))
			assert.Equal(t, i, session.Attempts)
			assert.Equal(t, OtpStatusPending, session.Status)
		}

		assert.Equal(t, AttemptExhausted, session.RegisterAttempt(false, now))
		assert.Equal(t, session.MaxAttempts, session.Attempts)
		assert.Equal(t, OtpStatusExhausted, session.Status)
		assert.True(t, session.Status.IsTerminal())
	})

	t.Run("match verifies", func(t *testing.T) {
		session := newPendingSession(t, now)

		assert.Equal(t, AttemptVerified, session.RegisterAttempt(true, now))
		assert.Equal(t, 1, session.Attempts)
		assert.Equal(t, OtpStatusVerified, session.Status)
	})

	t.Run("match on last attempt still verifies", func(t *testing.T) {
		session := newPendingSession(t, now)
		session.Attempts = session.MaxAttempts - 1

		assert.Equal(t, AttemptVerified, session.RegisterAttempt(true, now))
		assert.Equal(t, session.MaxAttempts, session.Attempts)
	})
}

func TestOtpSession_Expire(t *testing.T) {
	now := time.Now()
	session := newPendingSession(t, now)

	assert.False(t, session.IsExpiredAt(now.Add(10*time.Minute)))
	assert.True(t, session.IsExpiredAt(now.Add(10*time.Minute+time.Nanosecond)))

	session.Expire(now)
	assert.Equal(t, OtpStatusExpired, session.Status)

	verified := newPendingSession(t, now)
	verified.Status = OtpStatusVerified
	verified.Expire(now)
	assert.Equal(t, OtpStatusVerified, verified.Status)
}

func TestOtpSession_Rotate(t *testing.T) {
	now := time.Now()
	session := newPendingSession(t, now)
	session.Attempts = 2

	session.Rotate("new-hash", now.Add(time.Minute))

	assert.Equal(t, "new-hash", session.CodeHash)
	assert.Equal(t, 1, session.ResendCount)
	assert.Equal(t, 2, session.Attempts)
	assert.Equal(t, now.Add(10*time.Minute), session.ExpiresAt)
}

func TestRole(t *testing.T) {
	assert.True(t, RoleUnassigned.IsValid())
	assert.False(t, RoleUnassigned.IsSelectable())
	assert.True(t, RoleCustomer.IsSelectable())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, RoleAdmin.IsSelectable())
	assert.False(t, Role("owner").IsValid())
	assert.Len(t, SelectableRoles(), 3)
}
