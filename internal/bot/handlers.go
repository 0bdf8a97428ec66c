package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/crazyeights/internal/discord"
	"github.com/fadedpez/crazyeights/internal/types"
)

// handleInteraction routes an interaction to the game it belongs to
func (b *Bot) handleInteraction(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleSlashCommand(s, i)
	case discordgo.InteractionMessageComponent:
		b.handleMessageComponent(s, i)
	}
}

// handleSlashCommand handles all slash commands
func (b *Bot) handleSlashCommand(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	manager, ok := b.routes[name]
	if !ok {
		b.log.Warn("Unknown command: %s", name)
		if err := discord.SendErrorResponse(s, i, types.NewGameError(types.ErrInvalidCommand, fmt.Sprintf("Unknown command %s", name))); err != nil {
			b.log.Error("Failed to send error response: %v", err)
		}
		return
	}

	manager.HandleCommand(s, i)
}

// handleMessageComponent handles button clicks and other message components
func (b *Bot) handleMessageComponent(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	for _, manager := range b.managers {
		if strings.HasPrefix(customID, manager.ComponentPrefix()) {
			manager.HandleButton(s, i)
			return
		}
	}

	b.log.Warn("Unknown component interaction: %s", customID)
}
