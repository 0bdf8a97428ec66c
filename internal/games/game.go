package games

import (
	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/crazyeights/internal/discord"
)

// Manager hosts every running instance of one game and answers the
// interactions addressed to it
type Manager interface {
	// Commands returns the slash commands the manager answers
	Commands() []*discordgo.ApplicationCommand

	// ComponentPrefix is the custom id prefix of the manager's components
	ComponentPrefix() string

	// HandleCommand handles one of the manager's slash commands
	HandleCommand(s discord.SessionHandler, i *discordgo.InteractionCreate)

	// HandleButton handles button and select interactions for the game
	HandleButton(s discord.SessionHandler, i *discordgo.InteractionCreate)
}

// Factory creates the manager of a game
type Factory interface {
	// CreateManager creates a manager bound to session
	CreateManager(session discord.SessionHandler) Manager
}
