package http

import (
	"log"
	"net/http"
	"strings"

	"github.com/KirkDiggler/rollcall/internal/fingerprint"
	"github.com/KirkDiggler/rollcall/internal/models"
	attendanceService "github.com/KirkDiggler/rollcall/internal/services/attendance"
	"github.com/mileusna/useragent"
)

// signRequest carries the typed or scanned code. The device is identified by
// a precomputed fingerprint or, failing that, the raw signals.
type signRequest struct {
	Code        string               `json:"code" validate:"required,max=32"`
	Fingerprint string               `json:"fingerprint" validate:"omitempty,max=64"`
	Signals     *fingerprint.Signals `json:"signals"`
}

type signResponse struct {
	Record  *models.AttendanceRecord `json:"record"`
	Session sessionResponse          `json:"session"`
	Device  string                   `json:"device"`
}

func (s *Server) handleSign(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var req signRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	device := deviceLabel(r.UserAgent())

	out, err := s.attendance.Admit(r.Context(), &attendanceService.AdmitInput{
		Code:        req.Code,
		StudentID:   claims.UserID,
		StudentName: claims.Name,
		Fingerprint: resolveFingerprint(r, &req),
	})
	if err != nil {
		_, code := classify(err)
		admissions.WithLabelValues(code).Inc()
		if attendanceService.IsRejection(err) {
			log.Printf("Rejected attendance for %s from %s: %v", claims.UserID, device, err)
		}
		writeServiceError(w, "admit attendance", err)
		return
	}

	admissions.WithLabelValues("admitted").Inc()
	writeJSON(w, http.StatusCreated, signResponse{
		Record:  out.Record,
		Session: mapSession(out.Session, out.Record.SignedAt),
		Device:  device,
	})
}

func (s *Server) handleListMyRecords(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	out, err := s.attendance.ListRecordsForStudent(r.Context(), &attendanceService.ListRecordsForStudentInput{
		StudentID: claims.UserID,
	})
	if err != nil {
		writeServiceError(w, "list student records", err)
		return
	}

	writeJSON(w, http.StatusOK, recordsResponse{Records: nonNil(out.Records)})
}

// resolveFingerprint prefers the client's fingerprint, then its signals.
// Headers alone never produce one.
func resolveFingerprint(r *http.Request, req *signRequest) string {
	if fp := strings.TrimSpace(req.Fingerprint); fp != "" {
		return fp
	}
	if req.Signals == nil {
		return ""
	}

	signals := *req.Signals
	if signals.UserAgent == "" {
		signals.UserAgent = r.UserAgent()
	}
	return fingerprint.Compute(signals)
}

// deviceLabel renders a user agent as "Chrome on Android (mobile)"
func deviceLabel(userAgent string) string {
	if userAgent == "" {
		return "unknown device"
	}

	ua := useragent.Parse(userAgent)
	browser := ua.Name
	if browser == "" {
		browser = "unknown browser"
	}
	os := ua.OS
	if os == "" {
		os = "unknown OS"
	}

	kind := "desktop"
	switch {
	case ua.Bot:
		kind = "bot"
	case ua.Tablet:
		kind = "tablet"
	case ua.Mobile:
		kind = "mobile"
	}

	return browser + " on " + os + " (" + kind + ")"
}
