package attendance

import (
	"context"

	"github.com/KirkDiggler/rollcall/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/rollcall/internal/repositories/attendance Repository

// Repository defines the interface for attendance record persistence
type Repository interface {
	// CreateRecord atomically inserts a record. It fails with
	// ErrStudentAlreadySigned or ErrDeviceAlreadyUsed when the insert
	// would break per-session uniqueness.
	CreateRecord(ctx context.Context, input *CreateRecordInput) error

	// GetRecord retrieves the record of a student for a session
	GetRecord(ctx context.Context, input *GetRecordInput) (*models.AttendanceRecord, error)

	// GetRecordByFingerprint retrieves the record holding a device fingerprint in a session
	GetRecordByFingerprint(ctx context.Context, input *GetRecordByFingerprintInput) (*models.AttendanceRecord, error)

	// ListRecordsForSession retrieves a session's records, earliest signature first
	ListRecordsForSession(ctx context.Context, input *ListRecordsForSessionInput) (*ListRecordsForSessionOutput, error)

	// ListRecordsForStudent retrieves a student's records, earliest signature first
	ListRecordsForStudent(ctx context.Context, input *ListRecordsForStudentInput) (*ListRecordsForStudentOutput, error)
}
