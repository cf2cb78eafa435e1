package messaging

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/rollcall/internal/services/messaging Service

// Service is the interface for the messaging service
type Service interface {
	// GetSessionOpenedMessage returns the announcement for a freshly opened session
	GetSessionOpenedMessage(ctx context.Context, input *GetSessionOpenedMessageInput) (*GetSessionOpenedMessageOutput, error)

	// GetAdmittedMessage returns the confirmation shown to a student who signed
	GetAdmittedMessage(ctx context.Context, input *GetAdmittedMessageInput) (*GetAdmittedMessageOutput, error)

	// GetRejectionMessage returns a user-friendly explanation of a refused signature
	GetRejectionMessage(ctx context.Context, input *GetRejectionMessageInput) (*GetRejectionMessageOutput, error)

	// GetStatusMessage returns a one-line summary of a session's state
	GetStatusMessage(ctx context.Context, input *GetStatusMessageInput) (*GetStatusMessageOutput, error)
}
