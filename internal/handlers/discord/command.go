package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Embed colors
const (
	colorOK    = 0x00ff00
	colorError = 0xff0000
	colorInfo  = 0x3498db
)

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a Discord interaction
	Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// Respond sends prepared response data to an interaction
func Respond(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// RespondWithError sends an ephemeral error embed to an interaction
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, errorMessage string) error {
	return Respond(s, i, errorData(errorMessage))
}

// RespondWithEphemeralMessage sends an ephemeral message response to an interaction
func RespondWithEphemeralMessage(s *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	return Respond(s, i, ephemeralData(message))
}

func ephemeralData(message string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: message,
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}

func errorData(message string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Error",
			Description: message,
			Color:       colorError,
		}},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

// interactionUser returns the caller's ID and display name. Guild
// interactions carry a Member, DMs only a User.
func interactionUser(i *discordgo.InteractionCreate) (string, string) {
	if i.Member != nil && i.Member.User != nil {
		name := i.Member.User.Username
		if i.Member.Nick != "" {
			name = i.Member.Nick
		} else if i.Member.User.GlobalName != "" {
			name = i.Member.User.GlobalName
		}
		return i.Member.User.ID, name
	}
	if i.User != nil {
		name := i.User.Username
		if i.User.GlobalName != "" {
			name = i.User.GlobalName
		}
		return i.User.ID, name
	}
	return "", ""
}
