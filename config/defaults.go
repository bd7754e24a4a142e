package config

import (
	"time"

	"otpauth/internal/domain/constants"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultIssuer        = "otpauth"
	defaultAccessTTL     = 15 * time.Minute
	defaultRefreshTTL    = 30 * 24 * time.Hour
	defaultOnboardingTTL = 15 * time.Minute

	defaultCodeLength    = 6
	defaultOTPTTL        = 10 * time.Minute
	defaultMaxAttempts   = 5
	defaultMaxResends    = 3
	defaultDefaultRegion = "ZM"
	defaultNotifyTimeout = 5 * time.Second

	defaultRateWindow       = time.Hour
	defaultPerIdentifier    = 5
	defaultPerSource        = 20
	defaultReaperInterval   = 15 * time.Minute
	defaultReaperRetention  = 24 * time.Hour
	defaultRedisDialTimeout = 3 * time.Second
	defaultRedisKeyPrefix   = "otpauth:ratelimit:"
	defaultSenderTimeout    = 10 * time.Second
	defaultSMTPPort         = 587
	defaultDispatcherPort   = 8081
	minCodeLength           = 4
	maxCodeLength           = 10
)

// applyDefaults fills every optional section so callers never see nil.
func (c *Config) applyDefaults() {
	if c.Token == nil {
		c.Token = &TokenConfig{}
	}
	if c.Token.Issuer == "" {
		c.Token.Issuer = defaultIssuer
	}
	if c.Token.AccessTTL == 0 {
		c.Token.AccessTTL = defaultAccessTTL
	}
	if c.Token.RefreshTTL == 0 {
		c.Token.RefreshTTL = defaultRefreshTTL
	}
	if c.Token.OnboardingTTL == 0 {
		c.Token.OnboardingTTL = defaultOnboardingTTL
	}

	if c.OTP == nil {
		c.OTP = &OTPConfig{}
	}
	if c.OTP.CodeLength == 0 {
		c.OTP.CodeLength = defaultCodeLength
	}
	if c.OTP.TTL == 0 {
		c.OTP.TTL = defaultOTPTTL
	}
	if c.OTP.MaxAttempts == 0 {
		c.OTP.MaxAttempts = defaultMaxAttempts
	}
	if c.OTP.MaxResends == 0 {
		c.OTP.MaxResends = defaultMaxResends
	}
	if c.OTP.BcryptCost == 0 {
		c.OTP.BcryptCost = bcrypt.DefaultCost
	}
	if c.OTP.DefaultRegion == "" {
		c.OTP.DefaultRegion = defaultDefaultRegion
	}
	if c.OTP.ChannelPolicy == "" {
		c.OTP.ChannelPolicy = constants.ChannelPolicyNatural
	}
	if c.OTP.NotifyTimeout == 0 {
		c.OTP.NotifyTimeout = defaultNotifyTimeout
	}

	if c.RateLimit == nil {
		c.RateLimit = &RateLimitConfig{}
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = defaultRateWindow
	}
	if c.RateLimit.PerIdentifier == 0 {
		c.RateLimit.PerIdentifier = defaultPerIdentifier
	}
	if c.RateLimit.PerSource == 0 {
		c.RateLimit.PerSource = defaultPerSource
	}

	if c.Reaper == nil {
		c.Reaper = &ReaperConfig{}
	}
	if c.Reaper.Interval == 0 {
		c.Reaper.Interval = defaultReaperInterval
	}
	if c.Reaper.Retention == 0 {
		c.Reaper.Retention = defaultReaperRetention
	}

	if c.Redis != nil {
		if c.Redis.DialTimeout == 0 {
			c.Redis.DialTimeout = defaultRedisDialTimeout
		}
		if c.Redis.KeyPrefix == "" {
			c.Redis.KeyPrefix = defaultRedisKeyPrefix
		}
	}

	if c.PubSub == nil {
		c.PubSub = &PubSubConfig{Provider: constants.PubSubProviderNoop}
	}
	if c.SMS != nil && c.SMS.Timeout == 0 {
		c.SMS.Timeout = defaultSenderTimeout
	}
	if c.SMTP != nil && c.SMTP.Timeout == 0 {
		c.SMTP.Timeout = defaultSenderTimeout
	}
	if c.SMTP != nil && c.SMTP.Port == 0 {
		c.SMTP.Port = defaultSMTPPort
	}

	if c.Dispatcher == nil {
		c.Dispatcher = &DispatcherConfig{}
	}
	if c.Dispatcher.Port == 0 {
		c.Dispatcher.Port = defaultDispatcherPort
	}

	if c.Admin == nil {
		c.Admin = &AdminConfig{}
	}
}

// Validate rejects configurations the engine cannot run safely with.
func (c *Config) Validate() error {
	keys := c.SecretKey
	if keys.Access == "" || keys.Refresh == "" || keys.Onboarding == "" {
		return errors.New("secretKey.access, secretKey.refresh and secretKey.onboarding are required")
	}
	if keys.Access == keys.Refresh || keys.Access == keys.Onboarding || keys.Refresh == keys.Onboarding {
		return errors.New("secret keys must be distinct")
	}

	if c.Token.AccessTTL < 0 || c.Token.RefreshTTL < 0 || c.Token.OnboardingTTL < 0 {
		return errors.New("token TTLs must be positive")
	}

	if c.OTP.CodeLength < minCodeLength || c.OTP.CodeLength > maxCodeLength {
		return errors.Errorf("otp.codeLength must be between %d and %d", minCodeLength, maxCodeLength)
	}
	if c.OTP.MaxAttempts < 1 {
		return errors.New("otp.maxAttempts must be at least 1")
	}
	if c.OTP.TTL < 0 || c.OTP.NotifyTimeout < 0 {
		return errors.New("otp durations must be positive")
	}
	if c.OTP.BcryptCost < bcrypt.MinCost || c.OTP.BcryptCost > bcrypt.MaxCost {
		return errors.Errorf("otp.bcryptCost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	switch c.OTP.ChannelPolicy {
	case constants.ChannelPolicyNatural, constants.ChannelPolicySMS, constants.ChannelPolicyEmail, constants.ChannelPolicyBoth:
	default:
		return errors.Errorf("unknown otp.channelPolicy %q", c.OTP.ChannelPolicy)
	}

	if c.RateLimit.PerIdentifier < 1 || c.RateLimit.PerSource < 1 || c.RateLimit.Window <= 0 {
		return errors.New("rateLimit limits and window must be positive")
	}

	return nil
}
