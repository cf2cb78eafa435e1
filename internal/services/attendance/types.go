package attendance

import (
	"github.com/KirkDiggler/rollcall/internal/common/clock"
	"github.com/KirkDiggler/rollcall/internal/models"
	attendanceRepo "github.com/KirkDiggler/rollcall/internal/repositories/attendance"
	sessionService "github.com/KirkDiggler/rollcall/internal/services/session"
)

// Config holds configuration for the attendance service
type Config struct {
	// SessionService resolves join codes
	SessionService sessionService.Service

	// AttendanceRepo persists records with atomic uniqueness
	AttendanceRepo attendanceRepo.Repository

	// Clock supplies the current time
	Clock clock.Clock

	// Notifier is optional
	Notifier Notifier
}

// AdmitInput contains one signing attempt
type AdmitInput struct {
	// Code is what the student typed or scanned
	Code string

	StudentID   string
	StudentName string

	// Fingerprint is the advisory device signal, empty to skip the device check
	Fingerprint string
}

// AdmitOutput contains the new record and the session it signs
type AdmitOutput struct {
	Record  *models.AttendanceRecord
	Session *models.Session
}

// ListRecordsForSessionInput contains parameters for listing a roster
type ListRecordsForSessionInput struct {
	SessionID string
}

// ListRecordsForSessionOutput contains a session's records
type ListRecordsForSessionOutput struct {
	Records []*models.AttendanceRecord
}

// ListRecordsForStudentInput contains parameters for listing a student's history
type ListRecordsForStudentInput struct {
	StudentID string
}

// ListRecordsForStudentOutput contains a student's records
type ListRecordsForStudentOutput struct {
	Records []*models.AttendanceRecord
}
