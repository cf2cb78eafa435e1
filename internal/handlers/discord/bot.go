package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/KirkDiggler/rollcall/internal/common/clock"
	attendanceService "github.com/KirkDiggler/rollcall/internal/services/attendance"
	"github.com/KirkDiggler/rollcall/internal/services/messaging"
	sessionService "github.com/KirkDiggler/rollcall/internal/services/session"
	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	attendance *AttendanceCommand
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	SessionService    sessionService.Service
	AttendanceService attendanceService.Service
	MessagingService  messaging.Service
	Clock             clock.Clock
}

// Component custom IDs
const (
	ButtonSignIn       = "sign_in"
	ButtonRosterPrefix = "roster:"
	ModalSignIn        = "sign_in_modal"
	InputCode          = "code"
)

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}

	if cfg.AttendanceService == nil {
		return nil, errors.New("attendance service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		attendance: NewAttendanceCommand(cfg.SessionService, cfg.AttendanceService, cfg.MessagingService, cfg.Clock),
		config:     cfg,
	}

	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(b.attendance); err != nil {
		return fmt.Errorf("failed to register attendance command: %w", err)
	}

	log.Println("Discord bot is now running")
	return nil
}

// Stop removes registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		} else {
			log.Printf("Successfully deleted command %s (ID: %s)", cmdName, cmdID)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord. With a guild ID the
// command is guild-scoped, otherwise global.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	if b.config.GuildID != "" {
		log.Printf("Registering command %s for guild %s", cmd.GetName(), b.config.GuildID)
	} else {
		log.Printf("Registering command %s globally", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Printf("Registered command: %s with ID: %s", cmd.GetName(), createdCmd.ID)

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Printf("Error handling command %s: %v", i.ApplicationCommandData().Name, err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Printf("Error handling component interaction: %v", err)
		}
	case discordgo.InteractionModalSubmit:
		if err := b.handleModalSubmit(s, i); err != nil {
			log.Printf("Error handling modal submit: %v", err)
		}
	}
}

// handleComponentInteraction handles clicks on session announcement buttons
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	switch {
	case customID == ButtonSignIn:
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: signInModal(),
		})
	case strings.HasPrefix(customID, ButtonRosterPrefix):
		userID, _ := interactionUser(i)
		resp, err := b.attendance.roster(context.Background(), userID, strings.TrimPrefix(customID, ButtonRosterPrefix))
		if err != nil {
			log.Printf("Error loading roster: %v", err)
			return RespondWithError(s, i, "Could not load the roster. Try again in a moment.")
		}
		return Respond(s, i, resp)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}
}

// handleModalSubmit signs the code entered in the sign-in modal
func (b *Bot) handleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ModalSubmitData()
	if data.CustomID != ModalSignIn {
		return nil
	}

	userID, username := interactionUser(i)
	resp, err := b.attendance.sign(context.Background(), userID, username, modalValue(data.Components, InputCode))
	if err != nil {
		log.Printf("Error signing from modal: %v", err)
		return RespondWithError(s, i, "Something went wrong. Try again in a moment.")
	}

	return Respond(s, i, resp)
}

// modalValue finds a text input's value among the modal's action rows
func modalValue(components []discordgo.MessageComponent, customID string) string {
	for _, component := range components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
