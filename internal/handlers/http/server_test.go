package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/rollcall/internal/common/clock/mocks"
	"github.com/KirkDiggler/rollcall/internal/fingerprint"
	"github.com/KirkDiggler/rollcall/internal/models"
	attendanceService "github.com/KirkDiggler/rollcall/internal/services/attendance"
	attendanceMocks "github.com/KirkDiggler/rollcall/internal/services/attendance/mocks"
	identityService "github.com/KirkDiggler/rollcall/internal/services/identity"
	identityMocks "github.com/KirkDiggler/rollcall/internal/services/identity/mocks"
	sessionService "github.com/KirkDiggler/rollcall/internal/services/session"
	sessionMocks "github.com/KirkDiggler/rollcall/internal/services/session/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	teacherToken = "teacher-token"
	studentToken = "student-token"
)

type ServerTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockIdentity   *identityMocks.MockService
	mockSessions   *sessionMocks.MockService
	mockAttendance *attendanceMocks.MockService
	mockClock      *clockMocks.MockClock
	handler        http.Handler

	testTime time.Time
	session  *models.Session
}

func (s *ServerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockIdentity = identityMocks.NewMockService(s.mockCtrl)
	s.mockSessions = sessionMocks.NewMockService(s.mockCtrl)
	s.mockAttendance = attendanceMocks.NewMockService(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)

	s.testTime = time.Date(2025, 9, 1, 9, 0, 10, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	s.session = &models.Session{
		ID:        "session-1",
		Code:      "482913",
		OwnerID:   "teacher-1",
		CreatedAt: s.testTime.Add(-10 * time.Second),
		ExpiresAt: s.testTime.Add(50 * time.Second),
	}

	s.mockIdentity.EXPECT().
		ParseToken(gomock.Any(), &identityService.ParseTokenInput{Token: teacherToken}).
		Return(&identityService.ParseTokenOutput{Claims: &identityService.Claims{UserID: "teacher-1", Name: "Prof", Role: models.RoleTeacher}}, nil).
		AnyTimes()
	s.mockIdentity.EXPECT().
		ParseToken(gomock.Any(), &identityService.ParseTokenInput{Token: studentToken}).
		Return(&identityService.ParseTokenOutput{Claims: &identityService.Claims{UserID: "s1", Name: "Alice", Role: models.RoleStudent}}, nil).
		AnyTimes()

	server, err := NewServer(&Config{
		IdentityService:   s.mockIdentity,
		SessionService:    s.mockSessions,
		AttendanceService: s.mockAttendance,
		Clock:             s.mockClock,
	})
	s.Require().NoError(err)
	s.handler = server.Router()
}

func (s *ServerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) do(method, path, token string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			s.Require().NoError(json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decodeError(rec *httptest.ResponseRecorder) errorResponse {
	var resp errorResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *ServerTestSuite) TestRegisterHidesPasswordHash() {
	s.mockIdentity.EXPECT().
		Register(gomock.Any(), &identityService.RegisterInput{Name: "alice", Password: "secret1", Role: models.RoleStudent}).
		Return(&identityService.RegisterOutput{
			User:  &models.User{ID: "s1", Name: "alice", Role: models.RoleStudent, PasswordHash: "salt$hash"},
			Token: "tok",
		}, nil)

	rec := s.do(http.MethodPost, "/auth/register", "", map[string]string{"name": "alice", "password": "secret1", "role": "student"})
	s.Equal(http.StatusCreated, rec.Code)
	s.NotContains(rec.Body.String(), "salt$hash")
	s.Contains(rec.Body.String(), `"token":"tok"`)
}

func (s *ServerTestSuite) TestRegisterValidation() {
	rec := s.do(http.MethodPost, "/auth/register", "", map[string]string{"name": "alice", "password": "abc", "role": "admin"})
	s.Equal(http.StatusBadRequest, rec.Code)

	resp := s.decodeError(rec)
	s.Equal("invalid_request", resp.Error)
	s.Equal("min", resp.Fields["password"])
	s.Equal("oneof", resp.Fields["role"])
}

func (s *ServerTestSuite) TestRegisterUsernameTaken() {
	s.mockIdentity.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, identityService.ErrUsernameTaken)

	rec := s.do(http.MethodPost, "/auth/register", "", map[string]string{"name": "alice", "password": "secret1", "role": "teacher"})
	s.Equal(http.StatusConflict, rec.Code)
	resp := s.decodeError(rec)
	s.Equal("username_taken", resp.Error)
	s.Equal("username already taken", resp.Message)
}

func (s *ServerTestSuite) TestLoginInvalidCredentials() {
	s.mockIdentity.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, identityService.ErrInvalidCredentials)

	rec := s.do(http.MethodPost, "/auth/login", "", map[string]string{"name": "alice", "password": "nope"})
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("invalid_credentials", s.decodeError(rec).Error)
}

func (s *ServerTestSuite) TestUnknownFieldsRejected() {
	rec := s.do(http.MethodPost, "/auth/login", "", `{"name":"alice","password":"secret1","admin":true}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestAuthRequired() {
	rec := s.do(http.MethodGet, "/sessions", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("missing_token", s.decodeError(rec).Error)

	s.mockIdentity.EXPECT().ParseToken(gomock.Any(), &identityService.ParseTokenInput{Token: "bogus"}).Return(nil, identityService.ErrInvalidToken)
	rec = s.do(http.MethodGet, "/sessions", "bogus", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("invalid_token", s.decodeError(rec).Error)
}

func (s *ServerTestSuite) TestRoleChecks() {
	rec := s.do(http.MethodPost, "/sessions", studentToken, map[string]int{"duration_minutes": 1})
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/attendance", teacherToken, map[string]string{"code": "482913"})
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *ServerTestSuite) TestCreateSession() {
	s.mockSessions.EXPECT().
		CreateSession(gomock.Any(), &sessionService.CreateSessionInput{OwnerID: "teacher-1", DurationMinutes: 1}).
		Return(&sessionService.CreateSessionOutput{Session: s.session}, nil)

	before := testutil.ToFloat64(sessionsCreated)
	rec := s.do(http.MethodPost, "/sessions", teacherToken, map[string]int{"duration_minutes": 1})
	s.Equal(http.StatusCreated, rec.Code)

	var resp sessionResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal("482913", resp.Code)
	s.True(resp.Active)
	s.Equal(int64(50), resp.RemainingSeconds)
	s.Equal(before+1, testutil.ToFloat64(sessionsCreated))
}

func (s *ServerTestSuite) TestCreateSessionRejectsZeroDuration() {
	rec := s.do(http.MethodPost, "/sessions", teacherToken, map[string]int{"duration_minutes": 0})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestListSessions() {
	expired := *s.session
	expired.ID = "session-0"
	expired.ExpiresAt = s.testTime.Add(-time.Minute)

	s.mockSessions.EXPECT().
		ListSessions(gomock.Any(), &sessionService.ListSessionsInput{OwnerID: "teacher-1"}).
		Return(&sessionService.ListSessionsOutput{Sessions: []*models.Session{&expired, s.session}}, nil)

	rec := s.do(http.MethodGet, "/sessions", teacherToken, nil)
	s.Equal(http.StatusOK, rec.Code)

	var resp struct {
		Sessions []sessionResponse `json:"sessions"`
	}
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Require().Len(resp.Sessions, 2)
	s.False(resp.Sessions[0].Active)
	s.Equal(int64(0), resp.Sessions[0].RemainingSeconds)
	s.True(resp.Sessions[1].Active)
}

func (s *ServerTestSuite) TestGetActiveSessionNone() {
	s.mockSessions.EXPECT().GetActiveSession(gomock.Any(), gomock.Any()).Return(&sessionService.GetActiveSessionOutput{}, nil)

	rec := s.do(http.MethodGet, "/sessions/active", teacherToken, nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("no_active_session", s.decodeError(rec).Error)
}

func (s *ServerTestSuite) TestSessionRecordsOwnerOnly() {
	foreign := *s.session
	foreign.OwnerID = "teacher-2"
	s.mockSessions.EXPECT().
		GetSession(gomock.Any(), &sessionService.GetSessionInput{SessionID: "session-1"}).
		Return(&sessionService.GetSessionOutput{Session: &foreign}, nil)

	rec := s.do(http.MethodGet, "/sessions/session-1/records", teacherToken, nil)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *ServerTestSuite) TestSessionRecords() {
	s.mockSessions.EXPECT().
		GetSession(gomock.Any(), gomock.Any()).
		Return(&sessionService.GetSessionOutput{Session: s.session}, nil)
	s.mockAttendance.EXPECT().
		ListRecordsForSession(gomock.Any(), &attendanceService.ListRecordsForSessionInput{SessionID: "session-1"}).
		Return(&attendanceService.ListRecordsForSessionOutput{}, nil)

	rec := s.do(http.MethodGet, "/sessions/session-1/records", teacherToken, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"records":[]}`, rec.Body.String())
}

func (s *ServerTestSuite) TestSessionRecordsNotFound() {
	s.mockSessions.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(nil, sessionService.ErrSessionNotFound)

	rec := s.do(http.MethodGet, "/sessions/missing/records", teacherToken, nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("session_not_found", s.decodeError(rec).Error)
}

func (s *ServerTestSuite) TestSignWithPrecomputedFingerprint() {
	record := &models.AttendanceRecord{SessionID: "session-1", StudentID: "s1", StudentName: "Alice", SignedAt: s.testTime, DeviceFingerprint: "fp_abc"}
	s.mockAttendance.EXPECT().
		Admit(gomock.Any(), &attendanceService.AdmitInput{Code: "482913", StudentID: "s1", StudentName: "Alice", Fingerprint: "fp_abc"}).
		Return(&attendanceService.AdmitOutput{Record: record, Session: s.session}, nil)

	before := testutil.ToFloat64(admissions.WithLabelValues("admitted"))
	rec := s.do(http.MethodPost, "/attendance", studentToken, map[string]string{"code": "482913", "fingerprint": "fp_abc"},
		"User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
	s.Equal(http.StatusCreated, rec.Code)

	var resp signResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal("s1", resp.Record.StudentID)
	s.Equal("session-1", resp.Session.ID)
	s.Contains(resp.Device, "(mobile)")
	s.Equal(before+1, testutil.ToFloat64(admissions.WithLabelValues("admitted")))
}

func (s *ServerTestSuite) TestSignComputesFingerprintFromSignals() {
	signals := fingerprint.Signals{Language: "en-US", ScreenWidth: 390, ScreenHeight: 844}
	withUA := signals
	withUA.UserAgent = "test-agent"

	s.mockAttendance.EXPECT().
		Admit(gomock.Any(), &attendanceService.AdmitInput{Code: "482913", StudentID: "s1", StudentName: "Alice", Fingerprint: fingerprint.Compute(withUA)}).
		Return(&attendanceService.AdmitOutput{Record: &models.AttendanceRecord{SignedAt: s.testTime}, Session: s.session}, nil)

	rec := s.do(http.MethodPost, "/attendance", studentToken, map[string]interface{}{"code": "482913", "signals": signals}, "User-Agent", "test-agent")
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *ServerTestSuite) TestSignRejections() {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{attendanceService.ErrInvalidCode, http.StatusNotFound, "invalid_code"},
		{attendanceService.ErrSessionExpired, http.StatusGone, "session_expired"},
		{attendanceService.ErrAlreadySigned, http.StatusConflict, "already_signed"},
		{attendanceService.ErrDeviceReused, http.StatusConflict, "device_reused"},
		{errors.New("redis down"), http.StatusInternalServerError, "server_error"},
	}

	for _, tc := range cases {
		s.mockAttendance.EXPECT().
			Admit(gomock.Any(), &attendanceService.AdmitInput{Code: " 482913 ", StudentID: "s1", StudentName: "Alice"}).
			Return(nil, tc.err)

		before := testutil.ToFloat64(admissions.WithLabelValues(tc.code))
		rec := s.do(http.MethodPost, "/attendance", studentToken, map[string]string{"code": " 482913 "})
		s.Equal(tc.status, rec.Code, tc.code)

		resp := s.decodeError(rec)
		s.Equal(tc.code, resp.Error)
		if tc.status != http.StatusInternalServerError {
			s.Equal(tc.err.Error(), resp.Message)
		} else {
			s.NotContains(resp.Message, "redis")
		}
		s.Equal(before+1, testutil.ToFloat64(admissions.WithLabelValues(tc.code)))
	}
}

func (s *ServerTestSuite) TestListMyRecords() {
	records := []*models.AttendanceRecord{{SessionID: "session-1", StudentID: "s1", SignedAt: s.testTime}}
	s.mockAttendance.EXPECT().
		ListRecordsForStudent(gomock.Any(), &attendanceService.ListRecordsForStudentInput{StudentID: "s1"}).
		Return(&attendanceService.ListRecordsForStudentOutput{Records: records}, nil)

	rec := s.do(http.MethodGet, "/attendance", studentToken, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"session_id":"session-1"`)
}

func (s *ServerTestSuite) TestMetricsEndpoint() {
	s.do(http.MethodGet, "/health", "", nil)

	rec := s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.True(strings.Contains(rec.Body.String(), `http_requests_total{method="GET",route="/health",status="200"}`))
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"":             "",
		"Bearer":       "",
	}
	for header, want := range cases {
		if got := bearerToken(header); got != want {
			t.Fatalf("bearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestDeviceLabel(t *testing.T) {
	if got := deviceLabel(""); got != "unknown device" {
		t.Fatalf("got %q", got)
	}

	got := deviceLabel("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	if got != "Chrome on Windows (desktop)" {
		t.Fatalf("got %q", got)
	}
}
