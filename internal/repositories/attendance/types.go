package attendance

import (
	"errors"

	"github.com/KirkDiggler/rollcall/internal/models"
)

var (
	// ErrRecordNotFound is returned when no matching record exists
	ErrRecordNotFound = errors.New("attendance record not found")

	// ErrStudentAlreadySigned is returned when the (session, student) pair is taken
	ErrStudentAlreadySigned = errors.New("student already has a record for this session")

	// ErrDeviceAlreadyUsed is returned when the (session, fingerprint) pair belongs to another student
	ErrDeviceAlreadyUsed = errors.New("device fingerprint already used in this session")
)

// CreateRecordInput contains parameters for inserting a record
type CreateRecordInput struct {
	Record *models.AttendanceRecord
}

// GetRecordInput contains parameters for retrieving a student's record
type GetRecordInput struct {
	SessionID string
	StudentID string
}

// GetRecordByFingerprintInput contains parameters for retrieving a record by device
type GetRecordByFingerprintInput struct {
	SessionID   string
	Fingerprint string
}

// ListRecordsForSessionInput contains parameters for listing a session's records
type ListRecordsForSessionInput struct {
	SessionID string
}

// ListRecordsForSessionOutput contains a session's records
type ListRecordsForSessionOutput struct {
	Records []*models.AttendanceRecord
}

// ListRecordsForStudentInput contains parameters for listing a student's records
type ListRecordsForStudentInput struct {
	StudentID string
}

// ListRecordsForStudentOutput contains a student's records
type ListRecordsForStudentOutput struct {
	Records []*models.AttendanceRecord
}

func validateRecord(record *models.AttendanceRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}
	if record.SessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	if record.StudentID == "" {
		return errors.New("student ID cannot be empty")
	}
	if record.SignedAt.IsZero() {
		return errors.New("signed at cannot be zero")
	}
	return nil
}
