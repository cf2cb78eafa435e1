package attendance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/KirkDiggler/rollcall/internal/code"
	"github.com/KirkDiggler/rollcall/internal/common/clock"
	"github.com/KirkDiggler/rollcall/internal/models"
	attendanceRepo "github.com/KirkDiggler/rollcall/internal/repositories/attendance"
	sessionService "github.com/KirkDiggler/rollcall/internal/services/session"
)

// service implements the Service interface
type service struct {
	sessionService sessionService.Service
	attendanceRepo attendanceRepo.Repository
	clock          clock.Clock
	notifier       Notifier
}

// New creates a new attendance service
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionService == nil {
		return nil, ErrNilSessionService
	}

	if cfg.AttendanceRepo == nil {
		return nil, ErrNilAttendanceRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	return &service{
		sessionService: cfg.SessionService,
		attendanceRepo: cfg.AttendanceRepo,
		clock:          cfg.Clock,
		notifier:       cfg.Notifier,
	}, nil
}

// Admit runs the signing pipeline. Checks happen in a fixed order and the
// first failing one decides the rejection: unknown code, expiry, duplicate
// student, then shared device. Nothing is written unless every check passes.
func (s *service) Admit(ctx context.Context, input *AdmitInput) (*AdmitOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.StudentID == "" {
		return nil, ErrStudentRequired
	}

	entered := strings.TrimSpace(input.Code)
	if !code.Valid(entered) {
		return nil, ErrInvalidCode
	}

	found, err := s.sessionService.FindSessionByCode(ctx, &sessionService.FindSessionByCodeInput{
		Code: entered,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve code: %w", err)
	}
	if found.Session == nil {
		return nil, ErrInvalidCode
	}
	session := found.Session

	now := s.clock.Now()
	if !session.IsActive(now) {
		return nil, ErrSessionExpired
	}

	_, err = s.attendanceRepo.GetRecord(ctx, &attendanceRepo.GetRecordInput{
		SessionID: session.ID,
		StudentID: input.StudentID,
	})
	if err == nil {
		return nil, ErrAlreadySigned
	}
	if !errors.Is(err, attendanceRepo.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing record: %w", err)
	}

	if input.Fingerprint != "" {
		holder, err := s.attendanceRepo.GetRecordByFingerprint(ctx, &attendanceRepo.GetRecordByFingerprintInput{
			SessionID:   session.ID,
			Fingerprint: input.Fingerprint,
		})
		switch {
		case err == nil:
			if holder.StudentID != input.StudentID {
				return nil, ErrDeviceReused
			}
		case errors.Is(err, attendanceRepo.ErrRecordNotFound):
		default:
			return nil, fmt.Errorf("failed to check device: %w", err)
		}
	}

	record := &models.AttendanceRecord{
		SessionID:         session.ID,
		StudentID:         input.StudentID,
		StudentName:       input.StudentName,
		SignedAt:          now,
		DeviceFingerprint: input.Fingerprint,
	}

	// the store re-checks both constraints atomically; losing a race lands here
	err = s.attendanceRepo.CreateRecord(ctx, &attendanceRepo.CreateRecordInput{
		Record: record,
	})
	switch {
	case err == nil:
	case errors.Is(err, attendanceRepo.ErrStudentAlreadySigned):
		return nil, ErrAlreadySigned
	case errors.Is(err, attendanceRepo.ErrDeviceAlreadyUsed):
		return nil, ErrDeviceReused
	default:
		return nil, fmt.Errorf("failed to record attendance: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.RecordAdmitted(ctx, session, record); err != nil {
			log.Printf("Failed to notify admission of %s to session %s: %v", record.StudentID, session.ID, err)
		}
	}

	return &AdmitOutput{
		Record:  record,
		Session: session,
	}, nil
}

// ListRecordsForSession returns a session's roster
func (s *service) ListRecordsForSession(ctx context.Context, input *ListRecordsForSessionInput) (*ListRecordsForSessionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.SessionID == "" {
		return nil, ErrSessionRequired
	}

	out, err := s.attendanceRepo.ListRecordsForSession(ctx, &attendanceRepo.ListRecordsForSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list session records: %w", err)
	}

	return &ListRecordsForSessionOutput{
		Records: out.Records,
	}, nil
}

// ListRecordsForStudent returns a student's history
func (s *service) ListRecordsForStudent(ctx context.Context, input *ListRecordsForStudentInput) (*ListRecordsForStudentOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.StudentID == "" {
		return nil, ErrStudentRequired
	}

	out, err := s.attendanceRepo.ListRecordsForStudent(ctx, &attendanceRepo.ListRecordsForStudentInput{
		StudentID: input.StudentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list student records: %w", err)
	}

	return &ListRecordsForStudentOutput{
		Records: out.Records,
	}, nil
}
