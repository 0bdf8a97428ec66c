package bot

import (
	"github.com/bwmarrin/discordgo"
)

// Commands returns the slash commands of every registered game
func (b *Bot) Commands() []*discordgo.ApplicationCommand {
	commands := make([]*discordgo.ApplicationCommand, len(b.commands))
	copy(commands, b.commands)
	return commands
}

// registerCommands replaces the application's commands with the games'
func (b *Bot) registerCommands() error {
	registered, err := b.session.ApplicationCommandBulkOverwrite(b.config.AppID, b.config.GuildID, b.commands)
	if err != nil {
		return err
	}
	b.registered = registered
	return nil
}

// cleanupCommands deletes the commands registered by Start
func (b *Bot) cleanupCommands() {
	for _, cmd := range b.registered {
		if err := b.session.ApplicationCommandDelete(b.config.AppID, b.config.GuildID, cmd.ID); err != nil {
			b.log.Warn("Failed to delete command %s: %v", cmd.Name, err)
		}
	}
	b.registered = nil
}
