package impl

import (
	"otpauth/internal/domain/constants"
	"otpauth/internal/domain/entity"
)

// contactSet is what is known about how to reach someone.
type contactSet struct {
	Phone string
	Email string
}

func contactsFor(identifier entity.Identifier) contactSet {
	if identifier.Kind == entity.IdentifierEmail {
		return contactSet{Email: identifier.Value}
	}

	return contactSet{Phone: identifier.Value}
}

func (c contactSet) reaches(channel entity.Channel) bool {
	switch channel {
	case entity.ChannelSMS:
		return c.Phone != ""
	case entity.ChannelEmail:
		return c.Email != ""
	case entity.ChannelBoth:
		return c.Phone != "" && c.Email != ""
	default:
		return false
	}
}

// natural is the channel for whichever contact is present.
func (c contactSet) natural() entity.Channel {
	if c.Phone == "" && c.Email != "" {
		return entity.ChannelEmail
	}

	return entity.ChannelSMS
}

// channelSelector picks the delivery channel. A caller preference wins when
// the contacts can serve it, then the configured policy, then the channel
// that matches the contact present.
type channelSelector struct {
	policy string
}

func newChannelSelector(policy string) *channelSelector {
	return &channelSelector{policy: policy}
}

func (s *channelSelector) Select(contacts contactSet, preferred entity.Channel) entity.Channel {
	if preferred != "" && contacts.reaches(preferred) {
		return preferred
	}

	if policyChannel := policyChannel(s.policy); policyChannel != "" && contacts.reaches(policyChannel) {
		return policyChannel
	}

	return contacts.natural()
}

func policyChannel(policy string) entity.Channel {
	switch policy {
	case constants.ChannelPolicySMS:
		return entity.ChannelSMS
	case constants.ChannelPolicyEmail:
		return entity.ChannelEmail
	case constants.ChannelPolicyBoth:
		return entity.ChannelBoth
	default:
		return ""
	}
}
