package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// DiscordService exposes the chat pipeline to a Discord channel. It is
// optional: without a bot token the service stays disabled.
type DiscordService struct {
	session       *discordgo.Session
	chatbot       *Chatbot
	commandPrefix string
	enabled       bool
}

// NewDiscordService creates a Discord front-end over the chatbot.
func NewDiscordService(chatbot *Chatbot, token, commandPrefix string) *DiscordService {
	if commandPrefix == "" {
		commandPrefix = "!health "
	}

	service := &DiscordService{
		chatbot:       chatbot,
		commandPrefix: commandPrefix,
	}

	if token == "" {
		log.Printf("Discord bot disabled: DISCORD_BOT_TOKEN environment variable not set")
		return service
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Printf("Error creating Discord session: %v", err)
		return service
	}
	service.session = session

	session.AddHandler(func(s *discordgo.Session, event *discordgo.Ready) {
		log.Printf("Bot is online as: %s", event.User.Username)
	})
	session.AddHandler(service.messageCreate)
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	service.enabled = true
	log.Printf("Discord service initialized with prefix: %q", commandPrefix)
	return service
}

// Start opens the websocket connection to Discord.
func (d *DiscordService) Start() error {
	if !d.enabled {
		return fmt.Errorf("Discord service not enabled (missing bot token)")
	}
	if err := d.session.Open(); err != nil {
		return fmt.Errorf("error opening Discord connection: %w", err)
	}
	log.Printf("Discord bot started. Use '%s<message>' in Discord", d.commandPrefix)
	return nil
}

// Stop closes the Discord connection.
func (d *DiscordService) Stop() error {
	if d.session != nil {
		return d.session.Close()
	}
	return nil
}

// IsEnabled returns whether the Discord service is configured.
func (d *DiscordService) IsEnabled() bool {
	return d.enabled
}

// messageCreate handles incoming Discord messages. Each message runs
// the same stateless pipeline as /chat; no channel history is used.
func (d *DiscordService) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot {
		return
	}
	if !strings.HasPrefix(m.Content, d.commandPrefix) {
		return
	}

	message := strings.TrimSpace(m.Content[len(d.commandPrefix):])
	if message == "" {
		d.sendMessage(s, m.ChannelID, fmt.Sprintf("Please provide a message after `%s`", strings.TrimSpace(d.commandPrefix)))
		return
	}

	s.ChannelTyping(m.ChannelID)

	requestID := uuid.NewString()
	response := d.chatbot.BuildReply(context.Background(), message)
	d.sendMessage(s, m.ChannelID, response.Reply)

	log.Printf("Discord chat %s: user %s in channel %s (emergency=%v)",
		requestID, m.Author.ID, m.ChannelID, response.EmergencyRecommended)
}

// sendMessage sends a message to Discord, splitting around the 2000
// character limit.
func (d *DiscordService) sendMessage(s *discordgo.Session, channelID, message string) {
	if len(message) <= 2000 {
		if _, err := s.ChannelMessageSend(channelID, message); err != nil {
			log.Printf("Error sending Discord message: %v", err)
		}
		return
	}

	chunks := splitMessage(message, 1900)
	for i, chunk := range chunks {
		if i > 0 {
			chunk = "...continued:\n" + chunk
		}
		if i < len(chunks)-1 {
			chunk = chunk + "\n..."
		}

		if _, err := s.ChannelMessageSend(channelID, chunk); err != nil {
			log.Printf("Error sending Discord message chunk: %v", err)
		}

		// Small delay between messages to avoid rate limiting.
		time.Sleep(200 * time.Millisecond)
	}
}

// splitMessage splits a message into chunks respecting word boundaries.
func splitMessage(message string, maxLength int) []string {
	if len(message) <= maxLength {
		return []string{message}
	}

	var chunks []string
	for len(message) > maxLength {
		splitIndex := maxLength
		if spaceIndex := strings.LastIndex(message[:maxLength], " "); spaceIndex > maxLength/2 {
			splitIndex = spaceIndex
		}

		chunks = append(chunks, message[:splitIndex])
		message = strings.TrimPrefix(message[splitIndex:], " ")
	}

	if len(message) > 0 {
		chunks = append(chunks, message)
	}
	return chunks
}
