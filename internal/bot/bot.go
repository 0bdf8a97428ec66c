package bot

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/crazyeights/internal/config"
	"github.com/fadedpez/crazyeights/internal/discord"
	"github.com/fadedpez/crazyeights/internal/games"
	"github.com/fadedpez/crazyeights/internal/logging"
	"github.com/fadedpez/crazyeights/internal/types"
)

// Bot represents the Discord bot and its dependencies
type Bot struct {
	config   *config.Config
	session  discord.SessionHandler
	registry *games.Registry

	// managers by game name, and the manager answering each command
	managers map[string]games.Manager
	routes   map[string]games.Manager

	commands      []*discordgo.ApplicationCommand
	registered    []*discordgo.ApplicationCommand
	removeHandler func()
	shutdownWg    sync.WaitGroup
	log           *logging.Logger
}

// New creates a bot that serves every game in registry over session
func New(cfg *config.Config, session discord.SessionHandler, registry *games.Registry) (*Bot, error) {
	bot := &Bot{
		config:   cfg,
		session:  session,
		registry: registry,
		managers: make(map[string]games.Manager),
		routes:   make(map[string]games.Manager),
		commands: make([]*discordgo.ApplicationCommand, 0),
		log:      logging.Default.WithField("component", "bot"),
	}

	// Initialize game managers
	if err := bot.registerGames(); err != nil {
		return nil, err
	}

	// Register handlers
	bot.registerHandlers()

	return bot, nil
}

// registerGames creates a manager for every registered game and routes its
// commands to it
func (b *Bot) registerGames() error {
	for _, name := range b.registry.ListGames() {
		manager, err := b.registry.CreateManager(name, b.session)
		if err != nil {
			return fmt.Errorf("failed to create manager for %s: %w", name, err)
		}
		b.managers[name] = manager

		for _, cmd := range manager.Commands() {
			if _, exists := b.routes[cmd.Name]; exists {
				return types.NewGameError(types.ErrInvalidCommand, fmt.Sprintf("command %s is registered twice", cmd.Name))
			}
			b.routes[cmd.Name] = manager
			b.commands = append(b.commands, cmd)
		}
		b.log.Info("Registered game %s", name)
	}
	return nil
}

func (b *Bot) registerHandlers() {
	b.removeHandler = b.session.AddHandler(b.onInteractionCreate)
}

// Start connects to Discord and registers the slash commands
func (b *Bot) Start() error {
	// Open connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	// Register commands
	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.log.Info("Bot started with %d commands", len(b.registered))
	return nil
}

// Shutdown gracefully shuts down the bot
func (b *Bot) Shutdown() {
	// Cleanup commands if in development
	if b.config.IsDevelopment() {
		b.cleanupCommands()
	}

	if b.removeHandler != nil {
		b.removeHandler()
	}

	// Close Discord session
	if err := b.session.Close(); err != nil {
		b.log.Error("Error closing Discord session: %v", err)
	}

	// Wait for any ongoing interactions to complete
	b.shutdownWg.Wait()
	b.log.Info("Bot stopped")
}

// Manager returns the manager of a registered game
func (b *Bot) Manager(name string) (games.Manager, bool) {
	manager, ok := b.managers[name]
	return manager, ok
}

// onInteractionCreate is the discordgo handler for interactions
func (b *Bot) onInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	b.shutdownWg.Add(1)
	defer b.shutdownWg.Done()

	b.handleInteraction(b.session, i)
}
