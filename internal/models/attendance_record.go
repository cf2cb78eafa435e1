package models

import (
	"time"
)

// AttendanceRecord is one student's signature on one session
type AttendanceRecord struct {
	// SessionID is the session that was signed
	SessionID string `json:"session_id"`

	// StudentID is the student who signed
	StudentID string `json:"student_id"`

	// StudentName is the display name at signing time
	StudentName string `json:"student_name"`

	// SignedAt is when the signature was admitted
	SignedAt time.Time `json:"signed_at"`

	// DeviceFingerprint is the advisory device signal, empty when unavailable
	DeviceFingerprint string `json:"device_fingerprint,omitempty"`
}
