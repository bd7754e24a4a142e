package entity

// IdentifierKind distinguishes phone numbers from email addresses.
type IdentifierKind string

const (
	IdentifierPhone IdentifierKind = "phone"
	IdentifierEmail IdentifierKind = "email"
)

// Identifier is a normalized contact handle.
type Identifier struct {
	Value string
	Kind  IdentifierKind
}

// Channel is the transport used to deliver a one-time code.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
	ChannelBoth  Channel = "both"
)

// IsValid checks if the Channel is a known value.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelSMS, ChannelEmail, ChannelBoth:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Channel.
func (c Channel) String() string {
	return string(c)
}

// NaturalChannel is the channel that can reach an identifier of this kind.
func (k IdentifierKind) NaturalChannel() Channel {
	if k == IdentifierEmail {
		return ChannelEmail
	}

	return ChannelSMS
}
