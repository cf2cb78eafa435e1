package discord

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/KirkDiggler/rollcall/internal/common/clock"
	"github.com/KirkDiggler/rollcall/internal/models"
	attendanceService "github.com/KirkDiggler/rollcall/internal/services/attendance"
	"github.com/KirkDiggler/rollcall/internal/services/messaging"
	sessionService "github.com/KirkDiggler/rollcall/internal/services/session"
	"github.com/bwmarrin/discordgo"
)

const (
	defaultMinutes = 5
	maxMinutes     = 240
)

var minMinutes = float64(1)

// AttendanceCommand handles the /attendance command
type AttendanceCommand struct {
	BaseCommand
	sessionService    sessionService.Service
	attendanceService attendanceService.Service
	messagingService  messaging.Service
	clock             clock.Clock
}

// NewAttendanceCommand creates a new attendance command handler
func NewAttendanceCommand(sessions sessionService.Service, attendance attendanceService.Service, messages messaging.Service, clk clock.Clock) *AttendanceCommand {
	return &AttendanceCommand{
		BaseCommand: BaseCommand{
			Name:        "attendance",
			Description: "Take attendance with a short-lived code",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "open",
					Description: "Open an attendance session",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "minutes",
							Description: "How long the code stays valid (default 5)",
							MinValue:    &minMinutes,
							MaxValue:    maxMinutes,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "sign",
					Description: "Sign an open session",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "code",
							Description: "The 6-digit code",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show your open session",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "roster",
					Description: "List who signed your latest session",
				},
			},
		},
		sessionService:    sessions,
		attendanceService: attendance,
		messagingService:  messages,
		clock:             clk,
	}
}

// Handle processes a Discord interaction for the attendance command
func (c *AttendanceCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx := context.Background()
	userID, username := interactionUser(i)
	sub := data.Options[0]

	var resp *discordgo.InteractionResponseData
	var err error
	switch sub.Name {
	case "open":
		resp, err = c.open(ctx, userID, intOption(sub.Options, "minutes", defaultMinutes))
	case "sign":
		resp, err = c.sign(ctx, userID, username, stringOption(sub.Options, "code"))
	case "status":
		resp, err = c.status(ctx, userID)
	case "roster":
		resp, err = c.roster(ctx, userID, "")
	default:
		err = errors.New("unknown subcommand")
	}
	if err != nil {
		log.Printf("Error handling /attendance %s: %v", sub.Name, err)
		return RespondWithError(s, i, "Something went wrong. Try again in a moment.")
	}

	return Respond(s, i, resp)
}

// open creates a session owned by the caller and announces it publicly
func (c *AttendanceCommand) open(ctx context.Context, userID string, minutes int) (*discordgo.InteractionResponseData, error) {
	out, err := c.sessionService.CreateSession(ctx, &sessionService.CreateSessionInput{
		OwnerID:         userID,
		DurationMinutes: minutes,
	})
	if errors.Is(err, sessionService.ErrInvalidDuration) {
		return ephemeralData("The session must last at least one minute."), nil
	}
	if err != nil {
		return nil, err
	}

	msg, err := c.messagingService.GetSessionOpenedMessage(ctx, &messaging.GetSessionOpenedMessageInput{
		Code:     out.Session.Code,
		Duration: out.Session.ExpiresAt.Sub(out.Session.CreatedAt),
	})
	if err != nil {
		return nil, err
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{renderSessionEmbed(out.Session, msg.Message)},
		Components: sessionComponents(out.Session.ID),
	}, nil
}

// sign admits the caller. Discord exposes no device signals, so no fingerprint is sent.
func (c *AttendanceCommand) sign(ctx context.Context, userID, username, code string) (*discordgo.InteractionResponseData, error) {
	out, err := c.attendanceService.Admit(ctx, &attendanceService.AdmitInput{
		Code:        code,
		StudentID:   userID,
		StudentName: username,
	})
	if err != nil {
		if !attendanceService.IsRejection(err) {
			return nil, err
		}
		msg, msgErr := c.messagingService.GetRejectionMessage(ctx, &messaging.GetRejectionMessageInput{
			Reason: rejectionReason(err),
		})
		if msgErr != nil {
			return nil, msgErr
		}
		return ephemeralData(msg.Message), nil
	}

	msg, err := c.messagingService.GetAdmittedMessage(ctx, &messaging.GetAdmittedMessageInput{
		StudentName: out.Record.StudentName,
		SignedAt:    out.Record.SignedAt,
	})
	if err != nil {
		return nil, err
	}

	return ephemeralData(msg.Message), nil
}

// status summarizes the caller's open session
func (c *AttendanceCommand) status(ctx context.Context, userID string) (*discordgo.InteractionResponseData, error) {
	active, err := c.sessionService.GetActiveSession(ctx, &sessionService.GetActiveSessionInput{
		OwnerID: userID,
	})
	if err != nil {
		return nil, err
	}
	if active.Session == nil {
		return ephemeralData("You have no open session. Start one with `/attendance open`."), nil
	}

	records, err := c.attendanceService.ListRecordsForSession(ctx, &attendanceService.ListRecordsForSessionInput{
		SessionID: active.Session.ID,
	})
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	msg, err := c.messagingService.GetStatusMessage(ctx, &messaging.GetStatusMessageInput{
		Code:      active.Session.Code,
		Active:    active.Session.IsActive(now),
		Remaining: active.Session.Remaining(now).Truncate(time.Second),
		Signed:    len(records.Records),
	})
	if err != nil {
		return nil, err
	}

	return ephemeralData(msg.Message), nil
}

// roster lists a session's records for its owner. An empty sessionID means
// the caller's most recent session.
func (c *AttendanceCommand) roster(ctx context.Context, userID, sessionID string) (*discordgo.InteractionResponseData, error) {
	var session *models.Session
	if sessionID == "" {
		list, err := c.sessionService.ListSessions(ctx, &sessionService.ListSessionsInput{
			OwnerID: userID,
		})
		if err != nil {
			return nil, err
		}
		if len(list.Sessions) == 0 {
			return ephemeralData("You haven't opened any sessions yet."), nil
		}
		session = list.Sessions[len(list.Sessions)-1]
	} else {
		found, err := c.sessionService.GetSession(ctx, &sessionService.GetSessionInput{
			SessionID: sessionID,
		})
		if errors.Is(err, sessionService.ErrSessionNotFound) {
			return ephemeralData("That session no longer exists."), nil
		}
		if err != nil {
			return nil, err
		}
		session = found.Session
	}

	if session.OwnerID != userID {
		return ephemeralData("Only the teacher who opened this session can see its roster."), nil
	}

	records, err := c.attendanceService.ListRecordsForSession(ctx, &attendanceService.ListRecordsForSessionInput{
		SessionID: session.ID,
	})
	if err != nil {
		return nil, err
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{renderRosterEmbed(session, records.Records, c.clock.Now())},
		Flags:  discordgo.MessageFlagsEphemeral,
	}, nil
}

func intOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string, fallback int) int {
	for _, opt := range options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionInteger {
			return int(opt.IntValue())
		}
	}
	return fallback
}

func stringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}
