// Package constants holds string values shared by configuration and wiring.
package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Channel policies used when an identity has both a phone and an email on file.
const (
	ChannelPolicyNatural = "natural"
	ChannelPolicySMS     = "sms"
	ChannelPolicyEmail   = "email"
	ChannelPolicyBoth    = "both"
)

// Pub/Sub message attribute keys
const (
	AttrRequestID = "request_id"
	AttrEventType = "event_type"
)

// EventTypeOtpDispatch tags OTP dispatch messages.
const EventTypeOtpDispatch = "otp.dispatch"
