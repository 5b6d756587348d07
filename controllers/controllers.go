package controllers

import (
	"log"

	"healthbot/services"
)

// Controller owns the chat pipeline and the optional Discord front-end.
type Controller struct {
	chatbot        *services.Chatbot
	discordService *services.DiscordService
}

// NewController creates a new controller instance.
func NewController(chatbot *services.Chatbot, discordService *services.DiscordService) *Controller {
	return &Controller{
		chatbot:        chatbot,
		discordService: discordService,
	}
}

// StartServices starts background services (the Discord bot).
func (c *Controller) StartServices(enableDiscord bool) error {
	if enableDiscord && c.discordService.IsEnabled() {
		if err := c.discordService.Start(); err != nil {
			log.Printf("Failed to start Discord service: %v", err)
			return err
		}
	} else if enableDiscord {
		log.Printf("Discord service requested but not configured (missing DISCORD_BOT_TOKEN)")
	}
	return nil
}

// StopServices stops background services.
func (c *Controller) StopServices() error {
	if c.discordService != nil {
		return c.discordService.Stop()
	}
	return nil
}
