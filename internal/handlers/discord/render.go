package discord

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/rollcall/internal/models"
	attendanceService "github.com/KirkDiggler/rollcall/internal/services/attendance"
	"github.com/KirkDiggler/rollcall/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// rosterLimit caps listed names; Discord rejects embed descriptions over 4096 characters
const rosterLimit = 50

// renderSessionEmbed renders the announcement of an open session
func renderSessionEmbed(session *models.Session, announcement string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Attendance open",
		Description: announcement,
		Color:       colorOK,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Code",
				Value:  session.Code,
				Inline: true,
			},
			{
				Name:   "Closes",
				Value:  fmt.Sprintf("<t:%d:R>", session.ExpiresAt.Unix()),
				Inline: true,
			},
		},
	}
}

// renderRosterEmbed lists who signed a session in signing order
func renderRosterEmbed(session *models.Session, records []*models.AttendanceRecord, now time.Time) *discordgo.MessageEmbed {
	state := "closed"
	color := colorInfo
	if session.IsActive(now) {
		state = "open"
		color = colorOK
	}

	var b strings.Builder
	if len(records) == 0 {
		b.WriteString("Nobody has signed yet.")
	}
	for idx, record := range records {
		if idx == rosterLimit {
			fmt.Fprintf(&b, "…and %d more", len(records)-rosterLimit)
			break
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", idx+1, record.StudentName, record.SignedAt.UTC().Format("15:04:05"))
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Roster for %s (%s)", session.Code, state),
		Description: b.String(),
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d signed", len(records)),
		},
	}
}

// sessionComponents are the buttons attached to a session announcement
func sessionComponents(sessionID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Sign in",
					Style:    discordgo.PrimaryButton,
					CustomID: ButtonSignIn,
					Emoji: &discordgo.ComponentEmoji{
						Name: "✅",
					},
				},
				discordgo.Button{
					Label:    "Roster",
					Style:    discordgo.SecondaryButton,
					CustomID: ButtonRosterPrefix + sessionID,
				},
			},
		},
	}
}

// signInModal asks for the code typed from the board or read off a QR scan
func signInModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: ModalSignIn,
		Title:    "Sign attendance",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    InputCode,
						Label:       "Attendance code",
						Style:       discordgo.TextInputShort,
						Placeholder: "123456",
						Required:    true,
						MinLength:   6,
						MaxLength:   6,
					},
				},
			},
		},
	}
}

// rejectionReason maps admission errors to message reasons
func rejectionReason(err error) messaging.RejectionReason {
	switch {
	case errors.Is(err, attendanceService.ErrInvalidCode):
		return messaging.ReasonInvalidCode
	case errors.Is(err, attendanceService.ErrSessionExpired):
		return messaging.ReasonSessionExpired
	case errors.Is(err, attendanceService.ErrAlreadySigned):
		return messaging.ReasonAlreadySigned
	case errors.Is(err, attendanceService.ErrDeviceReused):
		return messaging.ReasonDeviceReused
	}
	return messaging.ReasonUnknown
}
