package discord

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/rollcall/internal/common/clock/mocks"
	"github.com/KirkDiggler/rollcall/internal/models"
	attendanceService "github.com/KirkDiggler/rollcall/internal/services/attendance"
	attendanceMocks "github.com/KirkDiggler/rollcall/internal/services/attendance/mocks"
	"github.com/KirkDiggler/rollcall/internal/services/messaging"
	messagingMocks "github.com/KirkDiggler/rollcall/internal/services/messaging/mocks"
	sessionService "github.com/KirkDiggler/rollcall/internal/services/session"
	sessionMocks "github.com/KirkDiggler/rollcall/internal/services/session/mocks"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AttendanceCommandTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockSessions   *sessionMocks.MockService
	mockAttendance *attendanceMocks.MockService
	mockMessaging  *messagingMocks.MockService
	mockClock      *clockMocks.MockClock
	command        *AttendanceCommand
	ctx            context.Context

	testTime time.Time
	session  *models.Session
}

func (s *AttendanceCommandTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessions = sessionMocks.NewMockService(s.mockCtrl)
	s.mockAttendance = attendanceMocks.NewMockService(s.mockCtrl)
	s.mockMessaging = messagingMocks.NewMockService(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 9, 1, 9, 0, 10, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	s.session = &models.Session{
		ID:        "session-1",
		Code:      "482913",
		OwnerID:   "teacher-1",
		CreatedAt: s.testTime.Add(-10 * time.Second),
		ExpiresAt: s.testTime.Add(50 * time.Second),
	}

	s.command = NewAttendanceCommand(s.mockSessions, s.mockAttendance, s.mockMessaging, s.mockClock)
}

func (s *AttendanceCommandTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAttendanceCommandSuite(t *testing.T) {
	suite.Run(t, new(AttendanceCommandTestSuite))
}

func (s *AttendanceCommandTestSuite) TestCommandDefinition() {
	cmd := s.command.GetCommand()
	s.Equal("attendance", cmd.Name)

	var names []string
	for _, opt := range cmd.Options {
		names = append(names, opt.Name)
	}
	s.Equal([]string{"open", "sign", "status", "roster"}, names)
}

func (s *AttendanceCommandTestSuite) TestOpenAnnouncesCodeWithButtons() {
	created := *s.session
	created.ExpiresAt = created.CreatedAt.Add(5 * time.Minute)

	s.mockSessions.EXPECT().
		CreateSession(s.ctx, &sessionService.CreateSessionInput{OwnerID: "teacher-1", DurationMinutes: 5}).
		Return(&sessionService.CreateSessionOutput{Session: &created}, nil)
	s.mockMessaging.EXPECT().
		GetSessionOpenedMessage(s.ctx, &messaging.GetSessionOpenedMessageInput{Code: "482913", Duration: 5 * time.Minute}).
		Return(&messaging.GetSessionOpenedMessageOutput{Message: "open!"}, nil)

	resp, err := s.command.open(s.ctx, "teacher-1", 5)
	s.Require().NoError(err)
	s.Require().Len(resp.Embeds, 1)
	s.Equal("open!", resp.Embeds[0].Description)
	s.Equal("482913", resp.Embeds[0].Fields[0].Value)
	s.Zero(resp.Flags)

	row := resp.Components[0].(discordgo.ActionsRow)
	s.Equal(ButtonSignIn, row.Components[0].(discordgo.Button).CustomID)
	s.Equal(ButtonRosterPrefix+"session-1", row.Components[1].(discordgo.Button).CustomID)
}

func (s *AttendanceCommandTestSuite) TestOpenRejectsBadDuration() {
	s.mockSessions.EXPECT().CreateSession(s.ctx, gomock.Any()).Return(nil, sessionService.ErrInvalidDuration)

	resp, err := s.command.open(s.ctx, "teacher-1", 0)
	s.Require().NoError(err)
	s.Equal(discordgo.MessageFlagsEphemeral, resp.Flags)
}

func (s *AttendanceCommandTestSuite) TestSignSuccess() {
	record := &models.AttendanceRecord{SessionID: "session-1", StudentID: "s1", StudentName: "Alice", SignedAt: s.testTime}
	s.mockAttendance.EXPECT().
		Admit(s.ctx, &attendanceService.AdmitInput{Code: "482913", StudentID: "s1", StudentName: "Alice"}).
		Return(&attendanceService.AdmitOutput{Record: record, Session: s.session}, nil)
	s.mockMessaging.EXPECT().
		GetAdmittedMessage(s.ctx, &messaging.GetAdmittedMessageInput{StudentName: "Alice", SignedAt: s.testTime}).
		Return(&messaging.GetAdmittedMessageOutput{Message: "welcome"}, nil)

	resp, err := s.command.sign(s.ctx, "s1", "Alice", "482913")
	s.Require().NoError(err)
	s.Equal("welcome", resp.Content)
	s.Equal(discordgo.MessageFlagsEphemeral, resp.Flags)
}

func (s *AttendanceCommandTestSuite) TestSignRejectionIsExplained() {
	s.mockAttendance.EXPECT().Admit(s.ctx, gomock.Any()).Return(nil, attendanceService.ErrSessionExpired)
	s.mockMessaging.EXPECT().
		GetRejectionMessage(s.ctx, &messaging.GetRejectionMessageInput{Reason: messaging.ReasonSessionExpired}).
		Return(&messaging.GetRejectionMessageOutput{Message: "expired"}, nil)

	resp, err := s.command.sign(s.ctx, "s1", "Alice", "482913")
	s.Require().NoError(err)
	s.Equal("expired", resp.Content)
}

func (s *AttendanceCommandTestSuite) TestSignInfrastructureErrorPropagates() {
	storeErr := errors.New("redis down")
	s.mockAttendance.EXPECT().Admit(s.ctx, gomock.Any()).Return(nil, storeErr)

	_, err := s.command.sign(s.ctx, "s1", "Alice", "482913")
	s.ErrorIs(err, storeErr)
}

func (s *AttendanceCommandTestSuite) TestStatusWithoutSession() {
	s.mockSessions.EXPECT().GetActiveSession(s.ctx, gomock.Any()).Return(&sessionService.GetActiveSessionOutput{}, nil)

	resp, err := s.command.status(s.ctx, "teacher-1")
	s.Require().NoError(err)
	s.Contains(resp.Content, "no open session")
}

func (s *AttendanceCommandTestSuite) TestStatusCountsRecords() {
	s.mockSessions.EXPECT().
		GetActiveSession(s.ctx, &sessionService.GetActiveSessionInput{OwnerID: "teacher-1"}).
		Return(&sessionService.GetActiveSessionOutput{Session: s.session}, nil)
	s.mockAttendance.EXPECT().
		ListRecordsForSession(s.ctx, &attendanceService.ListRecordsForSessionInput{SessionID: "session-1"}).
		Return(&attendanceService.ListRecordsForSessionOutput{Records: []*models.AttendanceRecord{{StudentID: "s1"}, {StudentID: "s2"}}}, nil)
	s.mockMessaging.EXPECT().
		GetStatusMessage(s.ctx, &messaging.GetStatusMessageInput{Code: "482913", Active: true, Remaining: 50 * time.Second, Signed: 2}).
		Return(&messaging.GetStatusMessageOutput{Message: "status"}, nil)

	resp, err := s.command.status(s.ctx, "teacher-1")
	s.Require().NoError(err)
	s.Equal("status", resp.Content)
}

func (s *AttendanceCommandTestSuite) TestRosterUsesLatestSession() {
	older := *s.session
	older.ID = "session-0"

	s.mockSessions.EXPECT().
		ListSessions(s.ctx, &sessionService.ListSessionsInput{OwnerID: "teacher-1"}).
		Return(&sessionService.ListSessionsOutput{Sessions: []*models.Session{&older, s.session}}, nil)
	s.mockAttendance.EXPECT().
		ListRecordsForSession(s.ctx, &attendanceService.ListRecordsForSessionInput{SessionID: "session-1"}).
		Return(&attendanceService.ListRecordsForSessionOutput{Records: []*models.AttendanceRecord{
			{StudentName: "Alice", SignedAt: s.testTime},
		}}, nil)

	resp, err := s.command.roster(s.ctx, "teacher-1", "")
	s.Require().NoError(err)
	s.Require().Len(resp.Embeds, 1)
	s.Contains(resp.Embeds[0].Description, "1. Alice (09:00:10)")
	s.Equal("1 signed", resp.Embeds[0].Footer.Text)
}

func (s *AttendanceCommandTestSuite) TestRosterOwnerOnly() {
	s.mockSessions.EXPECT().
		GetSession(s.ctx, &sessionService.GetSessionInput{SessionID: "session-1"}).
		Return(&sessionService.GetSessionOutput{Session: s.session}, nil)

	resp, err := s.command.roster(s.ctx, "s1", "session-1")
	s.Require().NoError(err)
	s.Contains(resp.Content, "Only the teacher")
}

func (s *AttendanceCommandTestSuite) TestRosterWithoutSessions() {
	s.mockSessions.EXPECT().ListSessions(s.ctx, gomock.Any()).Return(&sessionService.ListSessionsOutput{}, nil)

	resp, err := s.command.roster(s.ctx, "teacher-1", "")
	s.Require().NoError(err)
	s.Contains(resp.Content, "haven't opened")
}

func TestRejectionReason(t *testing.T) {
	cases := map[error]messaging.RejectionReason{
		attendanceService.ErrInvalidCode:    messaging.ReasonInvalidCode,
		attendanceService.ErrSessionExpired: messaging.ReasonSessionExpired,
		attendanceService.ErrAlreadySigned:  messaging.ReasonAlreadySigned,
		attendanceService.ErrDeviceReused:   messaging.ReasonDeviceReused,
		errors.New("other"):                 messaging.ReasonUnknown,
	}
	for err, want := range cases {
		if got := rejectionReason(err); got != want {
			t.Fatalf("rejectionReason(%v) = %s, want %s", err, got, want)
		}
	}
}

func TestOptions(t *testing.T) {
	options := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "minutes", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(15)},
		{Name: "code", Type: discordgo.ApplicationCommandOptionString, Value: "482913"},
	}

	if got := intOption(options, "minutes", defaultMinutes); got != 15 {
		t.Fatalf("minutes = %d", got)
	}
	if got := intOption(nil, "minutes", defaultMinutes); got != defaultMinutes {
		t.Fatalf("default minutes = %d", got)
	}
	if got := stringOption(options, "code"); got != "482913" {
		t.Fatalf("code = %q", got)
	}
}

func TestInteractionUser(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{Nick: "Ali", User: &discordgo.User{ID: "u1", Username: "alice"}},
	}}
	if id, name := interactionUser(guild); id != "u1" || name != "Ali" {
		t.Fatalf("guild user = %s %s", id, name)
	}

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "u2", Username: "bob"},
	}}
	if id, name := interactionUser(dm); id != "u2" || name != "bob" {
		t.Fatalf("dm user = %s %s", id, name)
	}
}

func TestModalValue(t *testing.T) {
	components := []discordgo.MessageComponent{
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.TextInput{CustomID: InputCode, Value: " 482913 "},
		}},
	}
	if got := modalValue(components, InputCode); got != " 482913 " {
		t.Fatalf("modal value = %q", got)
	}
	if got := modalValue(components, "other"); got != "" {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestRenderRosterEmbedTruncates(t *testing.T) {
	now := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	session := &models.Session{Code: "482913", ExpiresAt: now.Add(-time.Second)}

	records := make([]*models.AttendanceRecord, rosterLimit+3)
	for idx := range records {
		records[idx] = &models.AttendanceRecord{StudentName: "student", SignedAt: now}
	}

	embed := renderRosterEmbed(session, records, now)
	if embed.Title != "Roster for 482913 (closed)" {
		t.Fatalf("title = %q", embed.Title)
	}
	if want := "…and 3 more"; !strings.Contains(embed.Description, want) {
		t.Fatalf("description missing %q", want)
	}
}
