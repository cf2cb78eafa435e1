package attendance

import (
	"context"

	"github.com/KirkDiggler/rollcall/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/rollcall/internal/services/attendance Service
//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/KirkDiggler/rollcall/internal/services/attendance Notifier

// Service defines the interface for attendance operations
type Service interface {
	// Admit validates a signing attempt and records it
	Admit(ctx context.Context, input *AdmitInput) (*AdmitOutput, error)

	// ListRecordsForSession returns a session's roster, earliest signature first
	ListRecordsForSession(ctx context.Context, input *ListRecordsForSessionInput) (*ListRecordsForSessionOutput, error)

	// ListRecordsForStudent returns a student's attendance history, earliest first
	ListRecordsForStudent(ctx context.Context, input *ListRecordsForStudentInput) (*ListRecordsForStudentOutput, error)
}

// Notifier is told about every admitted record, e.g. to refresh a live roster
type Notifier interface {
	RecordAdmitted(ctx context.Context, session *models.Session, record *models.AttendanceRecord) error
}
