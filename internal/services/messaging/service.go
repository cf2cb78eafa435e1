package messaging

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// service implements the Service interface
type service struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	seed := time.Now().UnixNano()
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}

func toneOrDefault(tone MessageTone) MessageTone {
	if tone == "" {
		return ToneEncouraging
	}
	return tone
}

// GetSessionOpenedMessage returns the announcement for a freshly opened session
func (s *service) GetSessionOpenedMessage(ctx context.Context, input *GetSessionOpenedMessageInput) (*GetSessionOpenedMessageOutput, error) {
	tone := toneOrDefault(input.PreferredTone)
	window := formatDuration(input.Duration)

	var messages []string
	switch tone {
	case ToneNeutral:
		messages = []string{
			fmt.Sprintf("Attendance is open for %s. Code: **%s**", window, input.Code),
		}
	default:
		messages = []string{
			fmt.Sprintf("Roll call! Sign in with **%s** within the next %s.", input.Code, window),
			fmt.Sprintf("Attendance is open. Use `/attendance sign code:%s` in the next %s.", input.Code, window),
			fmt.Sprintf("Good to see everyone! The code is **%s** and it works for %s.", input.Code, window),
		}
	}

	return &GetSessionOpenedMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetAdmittedMessage returns the confirmation shown to a student who signed
func (s *service) GetAdmittedMessage(ctx context.Context, input *GetAdmittedMessageInput) (*GetAdmittedMessageOutput, error) {
	tone := toneOrDefault(input.PreferredTone)
	at := input.SignedAt.UTC().Format("15:04:05 MST")

	var messages []string
	switch tone {
	case ToneNeutral:
		messages = []string{
			fmt.Sprintf("Attendance recorded for %s at %s.", input.StudentName, at),
		}
	default:
		messages = []string{
			fmt.Sprintf("You're in, %s! Signed at %s.", input.StudentName, at),
			fmt.Sprintf("Got it, %s. You're marked present (%s).", input.StudentName, at),
			fmt.Sprintf("Welcome, %s! Attendance recorded at %s.", input.StudentName, at),
		}
	}

	return &GetAdmittedMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetRejectionMessage returns a user-friendly explanation of a refused signature
func (s *service) GetRejectionMessage(ctx context.Context, input *GetRejectionMessageInput) (*GetRejectionMessageOutput, error) {
	tone := toneOrDefault(input.PreferredTone)

	var messages []string
	switch input.Reason {
	case ReasonInvalidCode:
		messages = []string{
			"That code doesn't match any session. Double-check the digits.",
			"No session uses that code. Check the board and try again.",
		}
	case ReasonSessionExpired:
		messages = []string{
			"This attendance code has expired. Ask your teacher to open a new session.",
			"Too late, this session has closed.",
		}
	case ReasonAlreadySigned:
		messages = []string{
			"You already signed this session. You're all set!",
			"You're already on the list for this session.",
		}
	case ReasonDeviceReused:
		messages = []string{
			"This device was already used by another student for this session.",
			"Someone else already signed from this device. Use your own device.",
		}
	default:
		messages = []string{
			"Something went wrong recording your attendance. Try again in a moment.",
		}
	}

	if tone == ToneNeutral {
		messages = messages[:1]
	}

	return &GetRejectionMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetStatusMessage returns a one-line summary of a session's state
func (s *service) GetStatusMessage(ctx context.Context, input *GetStatusMessageInput) (*GetStatusMessageOutput, error) {
	students := "students have"
	if input.Signed == 1 {
		students = "student has"
	}

	if !input.Active {
		return &GetStatusMessageOutput{
			Message: fmt.Sprintf("Session **%s** is closed. %d %s signed.", input.Code, input.Signed, students),
		}, nil
	}

	return &GetStatusMessageOutput{
		Message: fmt.Sprintf("Session **%s** closes in %s. %d %s signed so far.", input.Code, formatDuration(input.Remaining), input.Signed, students),
	}, nil
}

// formatDuration renders whole minutes as "5 minutes" and shorter spans as "42s"
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	minutes := int(d.Minutes())
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
