package http

import (
	"net/http"
	"time"

	"github.com/KirkDiggler/rollcall/internal/models"
	attendanceService "github.com/KirkDiggler/rollcall/internal/services/attendance"
	sessionService "github.com/KirkDiggler/rollcall/internal/services/session"
	"github.com/go-chi/chi/v5"
)

type createSessionRequest struct {
	DurationMinutes int `json:"duration_minutes" validate:"required,min=1,max=1440"`
}

type sessionResponse struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	OwnerID          string    `json:"owner_id"`
	CreatedAt        time.Time `json:"created_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	Active           bool      `json:"active"`
	RemainingSeconds int64     `json:"remaining_seconds"`
}

type recordsResponse struct {
	Records []*models.AttendanceRecord `json:"records"`
}

func mapSession(session *models.Session, now time.Time) sessionResponse {
	return sessionResponse{
		ID:               session.ID,
		Code:             session.Code,
		OwnerID:          session.OwnerID,
		CreatedAt:        session.CreatedAt,
		ExpiresAt:        session.ExpiresAt,
		Active:           session.IsActive(now),
		RemainingSeconds: int64(session.Remaining(now) / time.Second),
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var req createSessionRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	out, err := s.sessions.CreateSession(r.Context(), &sessionService.CreateSessionInput{
		OwnerID:         claims.UserID,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		writeServiceError(w, "create session", err)
		return
	}

	sessionsCreated.Inc()
	writeJSON(w, http.StatusCreated, mapSession(out.Session, s.clock.Now()))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	out, err := s.sessions.ListSessions(r.Context(), &sessionService.ListSessionsInput{
		OwnerID: claims.UserID,
	})
	if err != nil {
		writeServiceError(w, "list sessions", err)
		return
	}

	now := s.clock.Now()
	resp := make([]sessionResponse, 0, len(out.Sessions))
	for _, session := range out.Sessions {
		resp = append(resp, mapSession(session, now))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": resp})
}

func (s *Server) handleGetActiveSession(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	out, err := s.sessions.GetActiveSession(r.Context(), &sessionService.GetActiveSessionInput{
		OwnerID: claims.UserID,
	})
	if err != nil {
		writeServiceError(w, "get active session", err)
		return
	}
	if out.Session == nil {
		writeError(w, http.StatusNotFound, "no_active_session", "no attendance session is open")
		return
	}

	writeJSON(w, http.StatusOK, mapSession(out.Session, s.clock.Now()))
}

func (s *Server) handleListSessionRecords(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionId")

	found, err := s.sessions.GetSession(r.Context(), &sessionService.GetSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		writeServiceError(w, "get session", err)
		return
	}
	if found.Session.OwnerID != claims.UserID {
		writeError(w, http.StatusForbidden, "forbidden", "session belongs to another teacher")
		return
	}

	out, err := s.attendance.ListRecordsForSession(r.Context(), &attendanceService.ListRecordsForSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		writeServiceError(w, "list session records", err)
		return
	}

	writeJSON(w, http.StatusOK, recordsResponse{Records: nonNil(out.Records)})
}

func nonNil(records []*models.AttendanceRecord) []*models.AttendanceRecord {
	if records == nil {
		return []*models.AttendanceRecord{}
	}
	return records
}
