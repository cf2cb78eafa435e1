package messaging

import "time"

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a plain, factual tone
	ToneNeutral MessageTone = "neutral"

	// ToneEncouraging is a friendly, upbeat tone
	ToneEncouraging MessageTone = "encouraging"
)

// RejectionReason names why a signature was refused
type RejectionReason string

const (
	ReasonInvalidCode    RejectionReason = "invalid_code"
	ReasonSessionExpired RejectionReason = "session_expired"
	ReasonAlreadySigned  RejectionReason = "already_signed"
	ReasonDeviceReused   RejectionReason = "device_reused"
	ReasonUnknown        RejectionReason = "unknown"
)

// GetSessionOpenedMessageInput contains parameters for the session announcement
type GetSessionOpenedMessageInput struct {
	// Code is the 6-digit join code
	Code string

	// Duration is how long the session stays open
	Duration time.Duration

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetSessionOpenedMessageOutput contains the announcement
type GetSessionOpenedMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetAdmittedMessageInput contains parameters for a sign-in confirmation
type GetAdmittedMessageInput struct {
	// StudentName is the display name of the student
	StudentName string

	// SignedAt is when the record was stored
	SignedAt time.Time

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetAdmittedMessageOutput contains the confirmation
type GetAdmittedMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetRejectionMessageInput contains parameters for a rejection explanation
type GetRejectionMessageInput struct {
	Reason RejectionReason

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetRejectionMessageOutput contains the explanation
type GetRejectionMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetStatusMessageInput contains a session's state
type GetStatusMessageInput struct {
	Code      string
	Active    bool
	Remaining time.Duration
	Signed    int
}

// GetStatusMessageOutput contains the summary line
type GetStatusMessageOutput struct {
	Message string
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Seed fixes message selection. Zero seeds from the clock.
	Seed int64
}
