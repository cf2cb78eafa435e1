package attendance

import "errors"

// AttendanceError is a custom error type for attendance-related errors
type AttendanceError string

// Error implements the error interface
func (e AttendanceError) Error() string {
	return string(e)
}

// Rejections of a signing attempt, in the order Admit checks them
const (
	ErrInvalidCode    AttendanceError = "invalid attendance code"
	ErrSessionExpired AttendanceError = "this attendance code has expired"
	ErrAlreadySigned  AttendanceError = "you already signed this session"
	ErrDeviceReused   AttendanceError = "this device was already used by another student for this session"
)

// Define errors
const (
	ErrStudentRequired   AttendanceError = "student ID is required"
	ErrSessionRequired   AttendanceError = "session ID is required"
	ErrNilInput          AttendanceError = "input cannot be nil"
	ErrNilConfig         AttendanceError = "config cannot be nil"
	ErrNilSessionService AttendanceError = "session service cannot be nil"
	ErrNilAttendanceRepo AttendanceError = "attendance repository cannot be nil"
	ErrNilClock          AttendanceError = "clock cannot be nil"
)

// IsRejection reports whether err is one of the user-facing admission outcomes
func IsRejection(err error) bool {
	var attErr AttendanceError
	if !errors.As(err, &attErr) {
		return false
	}
	switch attErr {
	case ErrInvalidCode, ErrSessionExpired, ErrAlreadySigned, ErrDeviceReused:
		return true
	}
	return false
}
