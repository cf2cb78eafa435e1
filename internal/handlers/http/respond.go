package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	attendanceService "github.com/KirkDiggler/rollcall/internal/services/attendance"
	identityService "github.com/KirkDiggler/rollcall/internal/services/identity"
	sessionService "github.com/KirkDiggler/rollcall/internal/services/session"
	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

// decodeAndValidate writes the 400 itself and reports whether to continue
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := decodeJSON(r, out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return false
	}

	if err := s.validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return false
		}

		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = fe.Tag()
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "invalid_request",
			Message: "validation failed",
			Fields:  fields,
		})
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeServiceError maps domain errors to status codes. Anything unmapped is
// logged and reported as server_error.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		log.Printf("Failed to %s: %v", op, err)
		writeError(w, status, code, "internal error")
		return
	}
	writeError(w, status, code, err.Error())
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, attendanceService.ErrInvalidCode):
		return http.StatusNotFound, "invalid_code"
	case errors.Is(err, attendanceService.ErrSessionExpired):
		return http.StatusGone, "session_expired"
	case errors.Is(err, attendanceService.ErrAlreadySigned):
		return http.StatusConflict, "already_signed"
	case errors.Is(err, attendanceService.ErrDeviceReused):
		return http.StatusConflict, "device_reused"
	case errors.Is(err, identityService.ErrUsernameTaken):
		return http.StatusConflict, "username_taken"
	case errors.Is(err, identityService.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, identityService.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid_token"
	case errors.Is(err, identityService.ErrNameRequired),
		errors.Is(err, identityService.ErrPasswordTooShort),
		errors.Is(err, identityService.ErrInvalidRole),
		errors.Is(err, sessionService.ErrInvalidDuration):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, sessionService.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	}
	return http.StatusInternalServerError, "server_error"
}
