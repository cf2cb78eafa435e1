package session

import (
	"context"
	"errors"
	"testing"
	"time"

	codeMocks "github.com/KirkDiggler/rollcall/internal/code/mocks"
	"github.com/KirkDiggler/rollcall/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/rollcall/internal/common/uuid/mocks"
	"github.com/KirkDiggler/rollcall/internal/models"
	sessionRepo "github.com/KirkDiggler/rollcall/internal/repositories/session"
	sessionMocks "github.com/KirkDiggler/rollcall/internal/repositories/session/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockSessionRepo *sessionMocks.MockRepository
	mockClock       *mocks.MockClock
	mockUUID        *uuidMocks.MockUUID
	mockCode        *codeMocks.MockGenerator
	sessionService  Service
	ctx             context.Context

	// Test data
	testTime      time.Time
	testOwnerID   string
	testSessionID string
	testCode      string
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockCode = codeMocks.NewMockGenerator(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	s.testOwnerID = "teacher-1"
	s.testSessionID = "session-1"
	s.testCode = "482913"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	svc, err := New(&Config{
		SessionRepo:     s.mockSessionRepo,
		Clock:           s.mockClock,
		UUIDGenerator:   s.mockUUID,
		CodeGenerator:   s.mockCode,
		MaxCodeAttempts: 3,
	})
	s.Require().NoError(err)
	s.sessionService = svc
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionServiceSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

func (s *SessionServiceTestSuite) session(id, code string, createdAt time.Time, duration time.Duration) *models.Session {
	return &models.Session{
		ID:        id,
		Code:      code,
		OwnerID:   s.testOwnerID,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(duration),
	}
}

func (s *SessionServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Equal(ErrNilConfig, err)

	_, err = New(&Config{})
	s.Equal(ErrNilSessionRepo, err)

	_, err = New(&Config{SessionRepo: s.mockSessionRepo})
	s.Equal(ErrNilClock, err)

	_, err = New(&Config{SessionRepo: s.mockSessionRepo, Clock: s.mockClock})
	s.Equal(ErrNilUUIDGenerator, err)

	_, err = New(&Config{SessionRepo: s.mockSessionRepo, Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.Equal(ErrNilCodeGenerator, err)
}

func (s *SessionServiceTestSuite) TestCreateSession() {
	s.mockCode.EXPECT().Generate().Return(s.testCode)
	s.mockSessionRepo.EXPECT().
		ListSessionsByCode(s.ctx, &sessionRepo.ListSessionsByCodeInput{Code: s.testCode}).
		Return(&sessionRepo.ListSessionsByCodeOutput{Sessions: []*models.Session{}}, nil)
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)

	expected := s.session(s.testSessionID, s.testCode, s.testTime, time.Minute)
	s.mockSessionRepo.EXPECT().
		CreateSession(s.ctx, &sessionRepo.CreateSessionInput{Session: expected}).
		Return(nil)

	out, err := s.sessionService.CreateSession(s.ctx, &CreateSessionInput{
		OwnerID:         s.testOwnerID,
		DurationMinutes: 1,
	})
	s.Require().NoError(err)
	s.Equal(expected, out.Session)
	s.Equal(s.testTime.Add(60*time.Second), out.Session.ExpiresAt)
}

func (s *SessionServiceTestSuite) TestCreateSessionRegeneratesCodeHeldByActiveSession() {
	held := s.session("other", s.testCode, s.testTime.Add(-time.Minute), 10*time.Minute)
	expired := s.session("old", "111111", s.testTime.Add(-time.Hour), time.Minute)

	gomock.InOrder(
		s.mockCode.EXPECT().Generate().Return(s.testCode),
		s.mockCode.EXPECT().Generate().Return("111111"),
	)
	s.mockSessionRepo.EXPECT().
		ListSessionsByCode(s.ctx, &sessionRepo.ListSessionsByCodeInput{Code: s.testCode}).
		Return(&sessionRepo.ListSessionsByCodeOutput{Sessions: []*models.Session{held}}, nil)
	// an expired holder does not block reuse
	s.mockSessionRepo.EXPECT().
		ListSessionsByCode(s.ctx, &sessionRepo.ListSessionsByCodeInput{Code: "111111"}).
		Return(&sessionRepo.ListSessionsByCodeOutput{Sessions: []*models.Session{expired}}, nil)
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().CreateSession(s.ctx, gomock.Any()).Return(nil)

	out, err := s.sessionService.CreateSession(s.ctx, &CreateSessionInput{
		OwnerID:         s.testOwnerID,
		DurationMinutes: 5,
	})
	s.Require().NoError(err)
	s.Equal("111111", out.Session.Code)
}

func (s *SessionServiceTestSuite) TestCreateSessionAcceptsCollisionAfterBudget() {
	held := s.session("other", s.testCode, s.testTime, 10*time.Minute)

	s.mockCode.EXPECT().Generate().Return(s.testCode).Times(3)
	s.mockSessionRepo.EXPECT().
		ListSessionsByCode(s.ctx, gomock.Any()).
		Return(&sessionRepo.ListSessionsByCodeOutput{Sessions: []*models.Session{held}}, nil).
		Times(3)
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().CreateSession(s.ctx, gomock.Any()).Return(nil)

	out, err := s.sessionService.CreateSession(s.ctx, &CreateSessionInput{
		OwnerID:         s.testOwnerID,
		DurationMinutes: 5,
	})
	s.Require().NoError(err)
	s.Equal(s.testCode, out.Session.Code)
}

func (s *SessionServiceTestSuite) TestCreateSessionValidation() {
	_, err := s.sessionService.CreateSession(s.ctx, nil)
	s.Equal(ErrNilInput, err)

	_, err = s.sessionService.CreateSession(s.ctx, &CreateSessionInput{DurationMinutes: 5})
	s.Equal(ErrOwnerRequired, err)

	_, err = s.sessionService.CreateSession(s.ctx, &CreateSessionInput{OwnerID: s.testOwnerID})
	s.Equal(ErrInvalidDuration, err)

	_, err = s.sessionService.CreateSession(s.ctx, &CreateSessionInput{OwnerID: s.testOwnerID, DurationMinutes: -3})
	s.Equal(ErrInvalidDuration, err)
}

func (s *SessionServiceTestSuite) TestCreateSessionRepositoryFailure() {
	repoErr := errors.New("redis down")

	s.mockCode.EXPECT().Generate().Return(s.testCode)
	s.mockSessionRepo.EXPECT().
		ListSessionsByCode(s.ctx, gomock.Any()).
		Return(&sessionRepo.ListSessionsByCodeOutput{}, nil)
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().CreateSession(s.ctx, gomock.Any()).Return(repoErr)

	_, err := s.sessionService.CreateSession(s.ctx, &CreateSessionInput{
		OwnerID:         s.testOwnerID,
		DurationMinutes: 5,
	})
	s.ErrorIs(err, repoErr)
}

func (s *SessionServiceTestSuite) TestGetActiveSessionPrefersMostRecent() {
	older := s.session("older", "111111", s.testTime.Add(-5*time.Minute), 30*time.Minute)
	newer := s.session("newer", "222222", s.testTime.Add(-time.Minute), 30*time.Minute)
	expired := s.session("expired", "333333", s.testTime.Add(-time.Hour), time.Minute)

	s.mockSessionRepo.EXPECT().
		ListSessionsByOwner(s.ctx, &sessionRepo.ListSessionsByOwnerInput{OwnerID: s.testOwnerID}).
		Return(&sessionRepo.ListSessionsByOwnerOutput{Sessions: []*models.Session{expired, older, newer}}, nil)

	out, err := s.sessionService.GetActiveSession(s.ctx, &GetActiveSessionInput{OwnerID: s.testOwnerID})
	s.Require().NoError(err)
	s.Require().NotNil(out.Session)
	s.Equal("newer", out.Session.ID)
}

func (s *SessionServiceTestSuite) TestGetActiveSessionNoneActive() {
	expired := s.session("expired", "333333", s.testTime.Add(-time.Hour), time.Minute)
	// a session expiring exactly now is no longer active
	boundary := s.session("boundary", "444444", s.testTime.Add(-time.Minute), time.Minute)

	s.mockSessionRepo.EXPECT().
		ListSessionsByOwner(s.ctx, gomock.Any()).
		Return(&sessionRepo.ListSessionsByOwnerOutput{Sessions: []*models.Session{expired, boundary}}, nil)

	out, err := s.sessionService.GetActiveSession(s.ctx, &GetActiveSessionInput{OwnerID: s.testOwnerID})
	s.Require().NoError(err)
	s.Nil(out.Session)
}

func (s *SessionServiceTestSuite) TestListSessions() {
	sessions := []*models.Session{
		s.session("a", "111111", s.testTime.Add(-2*time.Hour), time.Minute),
		s.session("b", "222222", s.testTime.Add(-time.Hour), time.Minute),
	}
	s.mockSessionRepo.EXPECT().
		ListSessionsByOwner(s.ctx, &sessionRepo.ListSessionsByOwnerInput{OwnerID: s.testOwnerID}).
		Return(&sessionRepo.ListSessionsByOwnerOutput{Sessions: sessions}, nil)

	out, err := s.sessionService.ListSessions(s.ctx, &ListSessionsInput{OwnerID: s.testOwnerID})
	s.Require().NoError(err)
	s.Equal(sessions, out.Sessions)

	_, err = s.sessionService.ListSessions(s.ctx, &ListSessionsInput{})
	s.Equal(ErrOwnerRequired, err)
}

func (s *SessionServiceTestSuite) TestFindSessionByCodePrefersActive() {
	// a newer expired session must not shadow the active one
	active := s.session("active", s.testCode, s.testTime.Add(-10*time.Minute), time.Hour)
	newerExpired := s.session("newer-expired", s.testCode, s.testTime.Add(-5*time.Minute), time.Minute)

	s.mockSessionRepo.EXPECT().
		ListSessionsByCode(s.ctx, &sessionRepo.ListSessionsByCodeInput{Code: s.testCode}).
		Return(&sessionRepo.ListSessionsByCodeOutput{Sessions: []*models.Session{active, newerExpired}}, nil)

	out, err := s.sessionService.FindSessionByCode(s.ctx, &FindSessionByCodeInput{Code: s.testCode})
	s.Require().NoError(err)
	s.Equal("active", out.Session.ID)
}

func (s *SessionServiceTestSuite) TestFindSessionByCodeTwoActiveUsesMostRecent() {
	first := s.session("first", s.testCode, s.testTime.Add(-10*time.Minute), time.Hour)
	second := s.session("second", s.testCode, s.testTime.Add(-5*time.Minute), time.Hour)

	s.mockSessionRepo.EXPECT().
		ListSessionsByCode(s.ctx, gomock.Any()).
		Return(&sessionRepo.ListSessionsByCodeOutput{Sessions: []*models.Session{first, second}}, nil)

	out, err := s.sessionService.FindSessionByCode(s.ctx, &FindSessionByCodeInput{Code: s.testCode})
	s.Require().NoError(err)
	s.Equal("second", out.Session.ID)
}

func (s *SessionServiceTestSuite) TestFindSessionByCodeFallsBackToMostRecentExpired() {
	older := s.session("older", s.testCode, s.testTime.Add(-3*time.Hour), time.Minute)
	newer := s.session("newer", s.testCode, s.testTime.Add(-2*time.Hour), time.Minute)

	s.mockSessionRepo.EXPECT().
		ListSessionsByCode(s.ctx, gomock.Any()).
		Return(&sessionRepo.ListSessionsByCodeOutput{Sessions: []*models.Session{older, newer}}, nil)

	out, err := s.sessionService.FindSessionByCode(s.ctx, &FindSessionByCodeInput{Code: s.testCode})
	s.Require().NoError(err)
	s.Equal("newer", out.Session.ID)
}

func (s *SessionServiceTestSuite) TestFindSessionByCodeUnknown() {
	s.mockSessionRepo.EXPECT().
		ListSessionsByCode(s.ctx, &sessionRepo.ListSessionsByCodeInput{Code: "000000"}).
		Return(&sessionRepo.ListSessionsByCodeOutput{Sessions: []*models.Session{}}, nil)

	out, err := s.sessionService.FindSessionByCode(s.ctx, &FindSessionByCodeInput{Code: " 000000\n"})
	s.Require().NoError(err)
	s.Nil(out.Session)

	// blank input never reaches the store
	out, err = s.sessionService.FindSessionByCode(s.ctx, &FindSessionByCodeInput{Code: "   "})
	s.Require().NoError(err)
	s.Nil(out.Session)
}

func (s *SessionServiceTestSuite) TestGetSession() {
	expected := s.session(s.testSessionID, s.testCode, s.testTime, time.Minute)

	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(expected, nil)
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: "missing"}).
		Return(nil, sessionRepo.ErrSessionNotFound)

	out, err := s.sessionService.GetSession(s.ctx, &GetSessionInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.Equal(expected, out.Session)

	_, err = s.sessionService.GetSession(s.ctx, &GetSessionInput{SessionID: "missing"})
	s.Equal(ErrSessionNotFound, err)
}
